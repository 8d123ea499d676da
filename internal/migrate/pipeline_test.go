package migrate_test

import (
	"errors"
	"os"
	"testing"

	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/migrate"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLegacy(t *testing.T) *legacy.Profile {
	t.Helper()
	data, err := os.ReadFile("testdata/legacy.yaml")
	require.NoError(t, err)
	doc, err := legacy.Decode(data)
	require.NoError(t, err)
	return doc
}

func testContext() *migrate.Context {
	return &migrate.Context{
		RuleSets: fakeRuleSets{
			"store-cn": {ID: "store-cn", Tag: "geosite-cn", Type: "local", Format: "binary", Path: "data/rulesets/geosite-cn.srs"},
		},
		Subscriptions: fakeSubscriptions{
			"sub-1": {ID: "sub-1", Name: "Airport"},
		},
	}
}

func migrateFixture(t *testing.T) *profile.Profile {
	t.Helper()
	out, err := migrate.Migrate(migrate.Document{Version: profile.VersionLegacy, Legacy: loadLegacy(t)}, testContext())
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func TestMigrate_SharedRuleSetURL(t *testing.T) {
	out := migrateFixture(t)

	remote := 0
	for _, rs := range out.Route.RuleSet {
		if rs.URL == "https://example.com/geosite-ads.srs" {
			remote++
			assert.Equal(t, "r-ads-1", rs.ID)
			assert.Equal(t, "remote", rs.Type)
			assert.Equal(t, "geosite-ads", rs.Tag)
		}
	}
	assert.Equal(t, 1, remote, "one rule set per url")

	rules := map[string]profile.RouteRule{}
	for _, r := range out.Route.Rules {
		rules[r.ID] = r
	}
	assert.Equal(t, "r-ads-1", rules["r-ads-1"].Payload)
	assert.Equal(t, "r-ads-1", rules["r-ads-2"].Payload)
	assert.Equal(t, "rule_set", rules["r-ads-2"].Type)
}

func TestMigrate_DefaultDomainResolver(t *testing.T) {
	out := migrateFixture(t)

	assert.Equal(t, "8.8.8.8", out.Route.DefaultDomainResolver.Server)
	for _, r := range out.DNS.Rules {
		assert.NotEqual(t, "outbound", r.Type)
	}
	require.Len(t, out.DNS.Rules, 2)
}

func TestMigrate_Fixture(t *testing.T) {
	out := migrateFixture(t)

	assert.Equal(t, "profile-1", out.ID)
	assert.Equal(t, "info", out.Log.Level)
	assert.Equal(t, "127.0.0.1:20123", out.Experimental.ClashAPI.ExternalController)
	assert.Equal(t, "rule", out.Experimental.ClashAPI.DefaultMode)
	assert.True(t, out.Experimental.CacheFile.StoreRDRC)

	t.Run("rule sets", func(t *testing.T) {
		require.Len(t, out.Route.RuleSet, 2)
		local := out.Route.RuleSet[1]
		assert.Equal(t, "r-cn", local.ID)
		assert.Equal(t, "local", local.Type)
		assert.Equal(t, "geosite-cn", local.Tag)
	})

	t.Run("route", func(t *testing.T) {
		assert.Equal(t, "proxy", out.Route.Final)
		require.Len(t, out.Route.Rules, 4)

		byID := map[string]profile.RouteRule{}
		for _, r := range out.Route.Rules {
			byID[r.ID] = r
		}
		assert.Equal(t, "reject", byID["r-ads-1"].Action, "rules aimed at the reject group become reject")
		assert.Equal(t, "reject", byID["r-ads-2"].Action)
		assert.Equal(t, "", byID["r-ads-1"].Outbound)
		assert.Equal(t, "block", byID["r-ads-2"].Outbound, "block keeps its target")
		assert.Equal(t, "route", byID["r-cn"].Action)
		assert.Equal(t, "g-direct", byID["r-cn"].Outbound)
		assert.Equal(t, "hijack-dns", byID["r-dns"].Action)
	})

	t.Run("outbounds", func(t *testing.T) {
		require.Len(t, out.Outbounds, 3)
		for _, o := range out.Outbounds {
			assert.NotEqual(t, "g-reject", o.ID)
			for _, m := range o.Outbounds {
				assert.NotEqual(t, "g-reject", m.ID)
			}
		}
		assert.Equal(t, []profile.Member{
			{ID: "auto", Tag: "🎈 自动选择", Type: profile.MemberBuiltIn},
			{ID: "sub-1", Tag: "HK 01", Type: profile.MemberSubscription},
		}, out.Outbounds[0].Outbounds)
		assert.Equal(t, "direct", out.Outbounds[2].Type)
		assert.Empty(t, out.Outbounds[2].Outbounds)
	})

	t.Run("dns servers", func(t *testing.T) {
		require.Len(t, out.DNS.Servers, 5)
		byID := map[string]profile.DNSServer{}
		for _, s := range out.DNS.Servers {
			byID[s.ID] = s
		}
		assert.Equal(t, "tls", byID["remote-dns"].Type)
		assert.Equal(t, "8.8.8.8", byID["remote-dns"].Server)
		assert.Equal(t, "https", byID["local-dns"].Type)
		assert.Equal(t, "223.5.5.5", byID["local-dns"].Server)
		assert.Equal(t, "/dns-query", byID["local-dns"].Path)
		assert.Equal(t, "resolver-dns", byID["local-dns"].DomainResolver)
		assert.Equal(t, "udp", byID["resolver-dns"].Type)
		assert.Equal(t, "fakeip", byID["fakeip"].Type)
		assert.Equal(t, "198.18.0.1/16", byID["fakeip"].Inet4Range)
	})

	t.Run("dns rules", func(t *testing.T) {
		rs := out.DNS.Rules[0]
		assert.Equal(t, "rule_set", rs.Type)
		assert.Equal(t, "r-cn", rs.Payload, "dns rule follows the routing rule's rule set")
		assert.Equal(t, "default", rs.Strategy)

		fake := out.DNS.Rules[1]
		assert.Equal(t, "inline", fake.Type)
		assert.Equal(t, "fakeip", fake.Server)
	})

	t.Run("inbounds", func(t *testing.T) {
		require.Len(t, out.Inbounds, 4)
		mixed := out.Inbounds[0]
		require.NotNil(t, mixed.Mixed)
		assert.Equal(t, "0.0.0.0", mixed.Mixed.Listen.Listen)
		assert.Equal(t, 20112, mixed.Mixed.Listen.ListenPort)

		tun := out.Inbounds[1]
		require.NotNil(t, tun.Tun)
		assert.Equal(t, []string{"172.19.0.1/30"}, tun.Tun.Address)

		assert.False(t, out.Inbounds[2].Enable, "http inbound disabled without a port")
		assert.True(t, out.Inbounds[3].Enable)
		assert.Equal(t, 20110, out.Inbounds[3].Socks.Listen.ListenPort)
	})

	assert.Equal(t, "gui", out.Mixin["priority"])
}

func TestMigrate_Deterministic(t *testing.T) {
	for _, format := range []string{profile.FormatYAML, profile.FormatJSON} {
		first, err := profile.Encode(migrateFixture(t), format)
		require.NoError(t, err)
		second, err := profile.Encode(migrateFixture(t), format)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second), format)
	}
}

func TestMigrate_InputUntouched(t *testing.T) {
	nested := func() map[string]any {
		return map[string]any{"k": "v", "list": []any{map[string]any{"n": 1}}}
	}
	doc := loadLegacy(t)
	doc.MixinConfig["nested"] = nested()
	before := loadLegacy(t)
	before.MixinConfig["nested"] = nested()

	out, err := migrate.Migrate(migrate.Document{Version: profile.VersionLegacy, Legacy: doc}, testContext())
	require.NoError(t, err)
	assert.Equal(t, before, doc)

	// 修改输出里的嵌套值不能影响输入
	got := out.Mixin["nested"].(map[string]any)
	got["k"] = "mutated"
	got["list"].([]any)[0].(map[string]any)["n"] = 2
	assert.Equal(t, before, doc)
}

func TestPipeline_Steps(t *testing.T) {
	p := migrate.NewPipeline(nil)

	tests := []struct {
		version string
		want    []string
	}{
		{"1.8.9", []string{"legacy-profile", "typed-dns-servers"}},
		{"1.8", []string{"legacy-profile", "typed-dns-servers"}},
		{"1.9.0", []string{"typed-dns-servers"}},
		{"1.9.3", []string{"typed-dns-servers"}},
		{"1.9.4", nil},
		{"2.0.0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			steps, err := p.Steps(tt.version)
			require.NoError(t, err)

			var names []string
			for _, s := range steps {
				names = append(names, s.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := p.Steps("latest")
	assert.ErrorIs(t, err, migrate.ErrUnsupportedVersion)
}

func TestPipeline_CurrentPassesThrough(t *testing.T) {
	current := &profile.Profile{ID: "p"}

	out, err := migrate.Migrate(migrate.Document{Version: profile.VersionCurrent, Current: current}, nil)
	require.NoError(t, err)
	assert.Same(t, current, out)
}

func TestPipeline_MalformedAddressAborts(t *testing.T) {
	doc := &profile.ProfileV190{
		ID: "p",
		DNS: profile.DNSV190{
			Servers: []profile.DNSServerV190{{ID: "remote-dns", Address: "tls://"}},
		},
	}

	out, err := migrate.Migrate(migrate.Document{Version: profile.VersionV190, V190: doc}, nil)
	require.Error(t, err)
	assert.Nil(t, out)

	var migrationErr *migrate.MigrationError
	require.True(t, errors.As(err, &migrationErr))
	assert.Equal(t, "1.9.4", migrationErr.Step)
	assert.Contains(t, err.Error(), "remote-dns")
	assert.Equal(t, "tls://", doc.DNS.Servers[0].Address)
}

func TestPipeline_MissingPayload(t *testing.T) {
	_, err := migrate.Migrate(migrate.Document{Version: profile.VersionLegacy}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, migrate.ErrUnsupportedVersion)

	var migrationErr *migrate.MigrationError
	require.True(t, errors.As(err, &migrationErr))
	assert.Equal(t, "1.9.0", migrationErr.Step)
}

func TestDecodeDocument(t *testing.T) {
	data, err := os.ReadFile("testdata/legacy.yaml")
	require.NoError(t, err)

	doc, err := migrate.DecodeDocument(data, "")
	require.NoError(t, err)
	assert.Equal(t, profile.VersionLegacy, doc.Version)
	require.NotNil(t, doc.Legacy)

	v190, err := migrate.UpgradeLegacy(doc.Legacy, testContext())
	require.NoError(t, err)
	encoded, err := profile.Encode(v190, profile.FormatJSON)
	require.NoError(t, err)

	doc, err = migrate.DecodeDocument(encoded, "")
	require.NoError(t, err)
	assert.Equal(t, profile.VersionV190, doc.Version)
	require.NotNil(t, doc.V190)
	assert.Equal(t, "tls://8.8.8.8", doc.V190.DNS.Servers[0].Address)

	current, err := migrate.Migrate(doc, nil)
	require.NoError(t, err)
	encoded, err = profile.Encode(current, profile.FormatYAML)
	require.NoError(t, err)

	doc, err = migrate.DecodeDocument(encoded, "")
	require.NoError(t, err)
	assert.Equal(t, profile.VersionCurrent, doc.Version)
	require.NotNil(t, doc.Current)
	assert.Equal(t, "8.8.8.8", doc.Current.Route.DefaultDomainResolver.Server)
}

func TestDecodeDocument_ExplicitVersion(t *testing.T) {
	_, err := migrate.DecodeDocument([]byte("id: x\n"), "nightly")
	assert.ErrorIs(t, err, migrate.ErrUnsupportedVersion)

	doc, err := migrate.DecodeDocument([]byte("id: x\ndns: {}\n"), "1.9.4")
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Current.ID)
}
