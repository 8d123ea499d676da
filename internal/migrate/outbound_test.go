package migrate_test

import (
	"testing"

	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/migrate"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformOutbounds(t *testing.T) {
	subs := fakeSubscriptions{
		"sub-1": {ID: "sub-1", Name: "Airport"},
	}
	groups := []legacy.ProxyGroup{
		{
			ID:   "proxy",
			Tag:  "🚀 Select",
			Type: "selector",
			Proxies: []legacy.Member{
				builtIn("auto", "🎈 Auto"),
				builtIn("direct", "direct"),
				builtIn("block", "block"),
				{ID: "node-1", Type: "sub-1", Tag: "HK 01"},
			},
			Use:       []string{"sub-1", "sub-gone"},
			URL:       "https://ignored.example.com",
			Tolerance: 99,
		},
		{
			ID:        "auto",
			Tag:       "🎈 Auto",
			Type:      "urltest",
			Use:       []string{"sub-1"},
			URL:       "https://www.gstatic.com/generate_204",
			Interval:  300,
			Tolerance: 150,
			Filter:    "HK|SG",
		},
		{ID: "g-direct", Tag: "🎯 Direct", Type: "selector", Proxies: []legacy.Member{}},
		{ID: "lb", Tag: "LB", Type: "load-balance"},
	}

	out := migrate.TransformOutbounds(groups, subs)
	require.Len(t, out, 3)

	assert.Equal(t, profile.Outbound{
		ID:   "proxy",
		Tag:  "🚀 Select",
		Type: "selector",
		Outbounds: []profile.Member{
			{ID: "auto", Tag: "🎈 Auto", Type: profile.MemberBuiltIn},
			{ID: "sub-1", Tag: "HK 01", Type: profile.MemberSubscription},
			{ID: "sub-1", Tag: "Airport", Type: profile.MemberSubscription},
		},
		InterruptExistConnections: true,
		Interval:                  "3m",
	}, out[0])

	assert.Equal(t, profile.Outbound{
		ID:                        "auto",
		Tag:                       "🎈 Auto",
		Type:                      "urltest",
		Outbounds:                 []profile.Member{{ID: "sub-1", Tag: "Airport", Type: profile.MemberSubscription}},
		InterruptExistConnections: true,
		URL:                       "https://www.gstatic.com/generate_204",
		Interval:                  "3m",
		Tolerance:                 150,
		Include:                   "HK|SG",
	}, out[1])

	assert.Equal(t, "direct", out[2].Type)
	assert.NotNil(t, out[2].Outbounds)
	assert.Empty(t, out[2].Outbounds)
}

func TestTransformOutbounds_NilLookupDropsUse(t *testing.T) {
	groups := []legacy.ProxyGroup{{ID: "p", Tag: "P", Type: "selector", Use: []string{"sub-1"}}}

	out := migrate.TransformOutbounds(groups, nil)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].Outbounds)
}
