package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/samber/lo"
)

// UpgradeV190 converts a 1.9.0 document into the current shape: DNS servers
// are typed by address scheme, the fake-IP block moves onto the fake-IP
// server, and the legacy "outbound" DNS rule becomes
// route.default_domain_resolver.
func UpgradeV190(doc *profile.ProfileV190) (*profile.Profile, error) {
	servers, err := TransformDNSServers(doc.DNS.Servers, doc.DNS.FakeIP)
	if err != nil {
		return nil, err
	}

	dnsRules, resolver := ExtractDefaultResolver(doc.DNS.Rules)

	return &profile.Profile{
		ID:           doc.ID,
		Name:         doc.Name,
		Log:          doc.Log,
		Experimental: cloneExperimental(doc.Experimental),
		Inbounds:     cloneInbounds(doc.Inbounds),
		Outbounds:    cloneOutbounds(doc.Outbounds),
		Route: profile.Route{
			RuleSet:               append([]profile.RuleSet{}, doc.Route.RuleSet...),
			Rules:                 cloneRouteRules(doc.Route.Rules),
			AutoDetectInterface:   doc.Route.AutoDetectInterface,
			FindProcess:           doc.Route.FindProcess,
			DefaultInterface:      doc.Route.DefaultInterface,
			Final:                 doc.Route.Final,
			DefaultDomainResolver: resolver,
		},
		DNS: profile.DNS{
			Servers:          servers,
			Rules:            UpgradeDNSRules(dnsRules),
			DisableCache:     doc.DNS.DisableCache,
			DisableExpire:    doc.DNS.DisableExpire,
			IndependentCache: doc.DNS.IndependentCache,
			ClientSubnet:     doc.DNS.ClientSubnet,
			Final:            doc.DNS.Final,
			Strategy:         doc.DNS.Strategy,
		},
		Mixin:  cloneBlob(doc.Mixin),
		Script: cloneBlob(doc.Script),
	}, nil
}

func cloneExperimental(e profile.Experimental) profile.Experimental {
	e.ClashAPI.AccessControlAllowOrigin = append([]string{}, e.ClashAPI.AccessControlAllowOrigin...)
	return e
}

func cloneInbounds(in []profile.Inbound) []profile.Inbound {
	return lo.Map(in, func(ib profile.Inbound, _ int) profile.Inbound {
		if ib.Mixed != nil {
			ib.Mixed = cloneInboundNet(*ib.Mixed)
		}
		if ib.HTTP != nil {
			ib.HTTP = cloneInboundNet(*ib.HTTP)
		}
		if ib.Socks != nil {
			ib.Socks = cloneInboundNet(*ib.Socks)
		}
		if ib.Tun != nil {
			tun := *ib.Tun
			tun.Address = append([]string{}, tun.Address...)
			tun.RouteAddress = append([]string{}, tun.RouteAddress...)
			ib.Tun = &tun
		}
		return ib
	})
}

func cloneInboundNet(n profile.InboundNet) *profile.InboundNet {
	n.Users = append([]string{}, n.Users...)
	return &n
}

func cloneOutbounds(in []profile.Outbound) []profile.Outbound {
	return lo.Map(in, func(o profile.Outbound, _ int) profile.Outbound {
		o.Outbounds = append([]profile.Member{}, o.Outbounds...)
		return o
	})
}

func cloneRouteRules(in []profile.RouteRule) []profile.RouteRule {
	return lo.Map(in, func(r profile.RouteRule, _ int) profile.RouteRule {
		r.Sniffer = append([]string{}, r.Sniffer...)
		return r
	})
}
