package render_test

import (
	"context"
	"testing"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/kyson-dev/profile-upgrader/internal/render"
	"github.com/sagernet/sing-box/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeIPPayload = `{
  "type": "logical",
  "mode": "and",
  "rules": [
    {"domain_suffix": ["lan"], "invert": true},
    {"query_type": ["A", "AAAA"]}
  ]
}`

func sampleProfile() *profile.Profile {
	listen := profile.Listen{Listen: "127.0.0.1", ListenPort: 20122}
	return &profile.Profile{
		ID:  "p1",
		Log: profile.Log{Level: "info"},
		Experimental: profile.Experimental{
			ClashAPI: profile.ClashAPI{
				ExternalController:       "127.0.0.1:20123",
				DefaultMode:              "rule",
				AccessControlAllowOrigin: []string{"*"},
			},
			CacheFile: profile.CacheFile{Enabled: true, Path: "cache.db", RDRCTimeout: "7d"},
		},
		Inbounds: []profile.Inbound{
			{ID: "mixed-in", Type: "mixed", Tag: "mixed-in", Enable: true, Mixed: &profile.InboundNet{Listen: listen, Users: []string{"u:p"}}},
			{ID: "http-in", Type: "http", Tag: "http-in", Enable: false, HTTP: &profile.InboundNet{Listen: listen, Users: []string{}}},
		},
		Outbounds: []profile.Outbound{
			{
				ID:   "proxy",
				Tag:  "🚀 Select",
				Type: "selector",
				Outbounds: []profile.Member{
					{ID: "auto", Tag: "🎈 Auto", Type: profile.MemberBuiltIn},
					{ID: "sub-1", Tag: "Airport", Type: profile.MemberSubscription},
				},
				InterruptExistConnections: true,
				Interval:                  "3m",
			},
			{
				ID:                        "auto",
				Tag:                       "🎈 Auto",
				Type:                      "urltest",
				Outbounds:                 []profile.Member{},
				InterruptExistConnections: true,
				URL:                       "https://www.gstatic.com/generate_204",
				Interval:                  "3m",
				Tolerance:                 150,
			},
			{ID: "g-direct", Tag: "🎯 Direct", Type: "direct", Outbounds: []profile.Member{}},
		},
		Route: profile.Route{
			RuleSet: []profile.RuleSet{
				{ID: "rs-ads", Type: "remote", Tag: "geosite-ads", Format: "binary", URL: "https://example.com/ads.srs", DownloadDetour: "g-direct"},
				{ID: "rs-cn", Type: "local", Tag: "geosite-cn", Format: "binary", Path: "data/geosite-cn.srs"},
			},
			Rules: []profile.RouteRule{
				{ID: "r1", Type: "rule_set", Payload: "rs-ads", Action: "reject"},
				{ID: "r2", Type: "rule_set", Payload: "rs-cn", Action: "route", Outbound: "g-direct"},
				{ID: "r3", Type: "protocol", Payload: "dns", Action: "hijack-dns"},
				{ID: "r4", Type: "port", Payload: "80, 443", Action: "route", Outbound: "proxy"},
			},
			AutoDetectInterface:   true,
			Final:                 "proxy",
			DefaultDomainResolver: profile.DomainResolver{Server: "resolver-dns"},
		},
		DNS: profile.DNS{
			Servers: []profile.DNSServer{
				{ID: "remote-dns", Tag: "remote-dns", Type: "tls", Server: "8.8.8.8", Detour: "proxy"},
				{ID: "local-dns", Tag: "local-dns", Type: "https", Server: "223.5.5.5", Path: "/dns-query", DomainResolver: "resolver-dns"},
				{ID: "resolver-dns", Tag: "resolver-dns", Type: "udp", Server: "223.5.5.5", ServerPort: "53"},
				{ID: "system", Tag: "system", Type: "local"},
				{ID: "fakeip", Tag: "fakeip-dns", Type: "fakeip", Inet4Range: "198.18.0.0/15"},
			},
			Rules: []profile.DNSRule{
				{ID: "0", Type: "rule_set", Payload: "rs-cn", Action: "route", Server: "local-dns", Strategy: "default"},
				{ID: "1", Type: "inline", Payload: fakeIPPayload, Action: "route", Server: "fakeip", Strategy: "default"},
				{ID: "2", Type: "domain_suffix", Payload: "ads.example.com", Action: "reject"},
			},
			Final:    "remote-dns",
			Strategy: "default",
		},
	}
}

func TestBuild(t *testing.T) {
	opts, err := render.Build(sampleProfile())
	require.NoError(t, err)

	assert.Equal(t, "info", opts.Log.Level)

	require.Len(t, opts.Inbounds, 1, "disabled inbounds are not rendered")
	assert.Equal(t, "mixed", opts.Inbounds[0].Type)

	require.Len(t, opts.Outbounds, 3)
	assert.Equal(t, "🚀 Select", opts.Outbounds[0].Tag)
	selector, ok := opts.Outbounds[0].Options.(*option.SelectorOutboundOptions)
	require.True(t, ok)
	assert.Equal(t, []string{"🎈 Auto"}, selector.Outbounds)
	assert.Equal(t, "direct", opts.Outbounds[2].Type)

	require.NotNil(t, opts.Route)
	assert.Equal(t, "🚀 Select", opts.Route.Final)
	assert.Len(t, opts.Route.RuleSet, 2)
	assert.Len(t, opts.Route.Rules, 4)
	require.NotNil(t, opts.Route.DefaultDomainResolver)
	assert.Equal(t, "resolver-dns", opts.Route.DefaultDomainResolver.Server)

	require.NotNil(t, opts.DNS)
	require.Len(t, opts.DNS.Servers, 5)
	assert.Equal(t, "tls", opts.DNS.Servers[0].Type)
	assert.Equal(t, "fakeip-dns", opts.DNS.Servers[4].Tag)
	assert.Len(t, opts.DNS.Rules, 3)
}

func TestMarshalRoundTrip(t *testing.T) {
	opts, err := render.Build(sampleProfile())
	require.NoError(t, err)

	data, err := render.Marshal(opts)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"default_domain_resolver"`)
	assert.Contains(t, string(data), `"geosite-cn"`)

	loaded, err := render.Load(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, render.Summarize(opts), render.Summarize(loaded))
}

func TestSummarize(t *testing.T) {
	opts, err := render.Build(sampleProfile())
	require.NoError(t, err)

	s := render.Summarize(opts)
	assert.Equal(t, render.Summary{Inbounds: 1, Outbounds: 3, RuleSets: 2, Rules: 4, DNSServers: 5, DNSRules: 3}, s)
	assert.Equal(t, "inbounds=1 outbounds=3 rule_sets=2 rules=4 dns_servers=5 dns_rules=3", s.String())
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unknown dns server type", func(t *testing.T) {
		p := sampleProfile()
		p.DNS.Servers[0].Type = "carrier-pigeon"
		_, err := render.Build(p)
		assert.ErrorContains(t, err, "remote-dns")
	})

	t.Run("bad port payload", func(t *testing.T) {
		p := sampleProfile()
		p.Route.Rules[3].Payload = "http"
		_, err := render.Build(p)
		assert.ErrorContains(t, err, "r4")
	})

	t.Run("bad inline payload", func(t *testing.T) {
		p := sampleProfile()
		p.DNS.Rules[1].Payload = "{"
		_, err := render.Build(p)
		assert.Error(t, err)
	})
}
