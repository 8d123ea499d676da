package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/samber/lo"
)

// Defaults applied when the legacy document leaves a field unset.
const (
	defaultExternalController = "127.0.0.1:20123"
	defaultMixedPort          = 20122
	defaultHTTPPort           = 20121
	defaultSocksPort          = 20120
	defaultCachePath          = "cache.db"
	defaultRDRCTimeout        = "7d"
	defaultTunStack           = "mixed"
)

// UpgradeLegacy converts a 1.8.x document into the 1.9.0 shape. The input is
// not modified.
func UpgradeLegacy(doc *legacy.Profile, ctx *Context) (*profile.ProfileV190, error) {
	refs := append(
		lo.Map(doc.Rules, func(r legacy.Rule, _ int) legacy.RuleSetRef { return r.Ref() }),
		lo.Map(doc.DNSRules, func(r legacy.DNSRule, _ int) legacy.RuleSetRef { return r.Ref() })...,
	)
	ruleSets, remap := DedupRuleSets(refs, ctx.ruleSets())

	groups := ResolveDeprecatedGroups(doc.ProxyGroups)
	rules, final := TransformRouteRules(doc.Rules, remap, groups)

	dnsRules, err := TransformDNSRules(doc.DNSRules, remap, doc.DNSConfig.FakeIPFilter)
	if err != nil {
		return nil, &MigrationError{Step: profile.VersionV190, Entity: "dns rules", Err: err}
	}

	general, advanced := doc.GeneralConfig, doc.AdvancedConfig
	return &profile.ProfileV190{
		ID:   doc.ID,
		Name: doc.Name,
		Log: profile.Log{
			Disabled:  false,
			Level:     general.LogLevel,
			Output:    "",
			Timestamp: false,
		},
		Experimental: profile.Experimental{
			ClashAPI: profile.ClashAPI{
				ExternalController:               lo.CoalesceOrEmpty(advanced.ExternalController, defaultExternalController),
				ExternalUI:                       advanced.ExternalUI,
				ExternalUIDownloadURL:            advanced.ExternalUIURL,
				ExternalUIDownloadDetour:         "",
				Secret:                           advanced.Secret,
				DefaultMode:                      general.Mode,
				AccessControlAllowOrigin:         []string{"*"},
				AccessControlAllowPrivateNetwork: false,
			},
			CacheFile: profile.CacheFile{
				Enabled:     advanced.Profile.StoreCache,
				Path:        defaultCachePath,
				CacheID:     "",
				StoreFakeIP: advanced.Profile.StoreFakeIP,
				StoreRDRC:   advanced.Profile.StoreRDRC,
				RDRCTimeout: defaultRDRCTimeout,
			},
		},
		Inbounds:  upgradeInbounds(doc),
		Outbounds: TransformOutbounds(groups.Groups, ctx.subscriptions()),
		Route: profile.RouteV190{
			RuleSet:             ruleSets,
			Rules:               rules,
			AutoDetectInterface: true,
			FindProcess:         false,
			DefaultInterface:    general.InterfaceName,
			Final:               final,
		},
		DNS: profile.DNSV190{
			Servers: DefaultDNSServers(doc.DNSConfig),
			Rules:   dnsRules,
			FakeIP: profile.FakeIP{
				Enabled:    doc.DNSConfig.FakeIP,
				Inet4Range: doc.DNSConfig.FakeIPRangeV4,
				Inet6Range: doc.DNSConfig.FakeIPRangeV6,
			},
			DisableCache:     doc.DNSConfig.DisableCache,
			DisableExpire:    doc.DNSConfig.DisableExpire,
			IndependentCache: doc.DNSConfig.IndependentCache,
			ClientSubnet:     doc.DNSConfig.ClientSubnet,
			Final:            doc.DNSConfig.FinalDNS,
			Strategy:         doc.DNSConfig.Strategy,
		},
		Mixin:  cloneBlob(doc.MixinConfig),
		Script: cloneBlob(doc.ScriptConfig),
	}, nil
}

func upgradeInbounds(doc *legacy.Profile) []profile.Inbound {
	general, advanced, tun := doc.GeneralConfig, doc.AdvancedConfig, doc.TunConfig

	listenAddr := "127.0.0.1"
	if general.AllowLAN {
		listenAddr = "0.0.0.0"
	}
	listen := func(port, fallback int) profile.Listen {
		if port == 0 {
			port = fallback
		}
		return profile.Listen{
			Listen:       listenAddr,
			ListenPort:   port,
			TCPFastOpen:  advanced.TCPFastOpen,
			TCPMultiPath: advanced.TCPMultiPath,
			UDPFragment:  advanced.UDPFragment,
		}
	}

	// 旧版只有 inet4/inet6 两个地址字段
	address := append([]string{}, tun.Address...)
	if len(address) == 0 {
		address = lo.Compact([]string{tun.Inet4Address, tun.Inet6Address})
	}

	return []profile.Inbound{
		{
			ID:     "mixed-in",
			Type:   C.TypeMixed,
			Tag:    "mixed-in",
			Enable: true,
			Mixed:  &profile.InboundNet{Listen: listen(general.MixedPort, defaultMixedPort), Users: []string{}},
		},
		{
			ID:     "tun-in",
			Type:   C.TypeTun,
			Tag:    "tun-in",
			Enable: tun.Enable,
			Tun: &profile.Tun{
				InterfaceName:          tun.InterfaceName,
				Address:                address,
				MTU:                    tun.MTU,
				AutoRoute:              tun.AutoRoute,
				StrictRoute:            tun.StrictRoute,
				RouteAddress:           []string{},
				EndpointIndependentNAT: tun.EndpointIndependentNAT,
				Stack:                  defaultTunStack,
			},
		},
		{
			ID:     "http-in",
			Type:   C.TypeHTTP,
			Tag:    "http-in",
			Enable: advanced.Port != 0,
			HTTP:   &profile.InboundNet{Listen: listen(advanced.Port, defaultHTTPPort), Users: []string{}},
		},
		{
			ID:     "socks-in",
			Type:   C.TypeSOCKS,
			Tag:    "socks-in",
			Enable: advanced.SocksPort != 0,
			Socks:  &profile.InboundNet{Listen: listen(advanced.SocksPort, defaultSocksPort), Users: []string{}},
		},
	}
}

// cloneBlob deep-copies an opaque mixin/script map so the output never
// aliases the input document.
func cloneBlob(blob map[string]any) map[string]any {
	out := make(map[string]any, len(blob))
	for k, v := range blob {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneBlob(v)
	case []any:
		return lo.Map(v, func(item any, _ int) any { return cloneValue(item) })
	default:
		return v
	}
}
