package migrate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/samber/lo"
)

// Ids of the DNS servers every 1.9 profile starts with.
const (
	ServerRemote         = "remote-dns"
	ServerLocal          = "local-dns"
	ServerResolver       = "resolver-dns"
	ServerRemoteResolver = "remote-resolver-dns"
	ServerFakeIP         = "fakeip"
)

// fakeIPRule is the inline logical rule that sends A/AAAA queries outside the
// fake-IP filter to the fake-IP server.
type fakeIPRule struct {
	Type  string `json:"type"`
	Mode  string `json:"mode"`
	Rules []any  `json:"rules"`
}

type domainSuffixRule struct {
	DomainSuffix []string `json:"domain_suffix"`
	Invert       bool     `json:"invert"`
}

type queryTypeRule struct {
	QueryType []string `json:"query_type"`
}

func fakeIPRulePayload(filter []string) (string, error) {
	if filter == nil {
		filter = []string{}
	}
	data, err := json.MarshalIndent(fakeIPRule{
		Type: C.RuleTypeLogical,
		Mode: C.LogicalTypeAnd,
		Rules: []any{
			domainSuffixRule{DomainSuffix: filter, Invert: true},
			queryTypeRule{QueryType: []string{"A", "AAAA"}},
		},
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TransformDNSRules converts 1.8.x DNS rules. Rule-set references are re-keyed
// like routing rules; a fakeip rule becomes an inline rule aimed at the
// fake-IP server; any other type keeps its payload as is.
func TransformDNSRules(rules []legacy.DNSRule, remap IDRemap, fakeIPFilter []string) ([]profile.DNSRuleV190, error) {
	out := make([]profile.DNSRuleV190, 0, len(rules))
	for i, r := range rules {
		rule := profile.DNSRuleV190{
			ID:      strconv.Itoa(i),
			Type:    r.Type,
			Payload: r.Payload,
			Action:  C.RuleActionTypeRoute,
			Server:  r.Server,
			Invert:  r.Invert,
		}
		if r.Server == TargetBlock {
			rule.Action = C.RuleActionTypeReject
			rule.Server = ""
		}

		switch {
		case legacy.IsRuleSet(r.Type):
			rule.Type = RuleTypeRuleSet
			rule.Payload, _ = remap.Resolve(r.ID)
		case r.Type == legacy.RuleTypeFakeIP:
			payload, err := fakeIPRulePayload(fakeIPFilter)
			if err != nil {
				return nil, fmt.Errorf("dns rule %q: %w", r.ID, err)
			}
			rule.Type = RuleTypeInline
			rule.Payload = payload
			rule.Server = ServerFakeIP
		}
		out = append(out, rule)
	}
	return out, nil
}

// DefaultDNSServers builds the standard 1.9.0 server set from the legacy DNS settings.
func DefaultDNSServers(cfg legacy.DNSConfig) []profile.DNSServerV190 {
	server := func(id, tag, address, resolver, detour string) profile.DNSServerV190 {
		return profile.DNSServerV190{
			ID:              id,
			Tag:             tag,
			Address:         address,
			AddressResolver: resolver,
			Detour:          detour,
			Strategy:        profile.StrategyDefault,
			ClientSubnet:    "",
		}
	}
	return []profile.DNSServerV190{
		server(ServerRemote, ServerRemote, cfg.RemoteDNS, ServerRemoteResolver, cfg.RemoteDNSDetour),
		server(ServerLocal, ServerLocal, cfg.LocalDNS, ServerResolver, cfg.LocalDNSDetour),
		server(ServerResolver, ServerResolver, cfg.ResolverDNS, "", cfg.LocalDNSDetour),
		server(ServerRemoteResolver, ServerRemoteResolver, cfg.RemoteResolverDNS, "", ""),
		server(ServerFakeIP, "fakeip-dns", addressFakeIP, "", ""),
	}
}

// TransformDNSServers retypes 1.9.0 servers by address scheme. rcode servers
// are dropped. A malformed address aborts with the offending server named.
func TransformDNSServers(servers []profile.DNSServerV190, fakeip profile.FakeIP) ([]profile.DNSServer, error) {
	out := make([]profile.DNSServer, 0, len(servers))
	for _, s := range servers {
		addr, keep, err := ParseServerAddress(s.Address, fakeip)
		if err != nil {
			return nil, &MigrationError{
				Step:   profile.VersionCurrent,
				Entity: fmt.Sprintf("dns server %q", s.ID),
				Err:    err,
			}
		}
		if !keep {
			logger.Debug("Dropping rcode dns server", "id", s.ID, "address", s.Address)
			continue
		}
		out = append(out, profile.DNSServer{
			ID:             s.ID,
			Tag:            s.Tag,
			Type:           addr.Type,
			Detour:         s.Detour,
			DomainResolver: s.AddressResolver,
			HostsPath:      []string{},
			Predefined:     map[string]string{},
			Server:         addr.Server,
			ServerPort:     addr.ServerPort,
			Path:           addr.Path,
			Interface:      addr.Interface,
			Inet4Range:     addr.Inet4Range,
			Inet6Range:     addr.Inet6Range,
		})
	}
	return out, nil
}

// ExtractDefaultResolver removes the legacy "outbound" DNS rules and returns
// the server of the first one as the default domain resolver.
func ExtractDefaultResolver(rules []profile.DNSRuleV190) ([]profile.DNSRuleV190, profile.DomainResolver) {
	resolver := profile.DomainResolver{}
	if rule, ok := lo.Find(rules, func(r profile.DNSRuleV190) bool { return r.Type == legacy.RuleTypeOutbound }); ok {
		resolver.Server = rule.Server
	}
	rest := lo.Filter(rules, func(r profile.DNSRuleV190, _ int) bool { return r.Type != legacy.RuleTypeOutbound })
	return rest, resolver
}

// UpgradeDNSRules fills the per-rule fields added in 1.9.4.
func UpgradeDNSRules(rules []profile.DNSRuleV190) []profile.DNSRule {
	return lo.Map(rules, func(r profile.DNSRuleV190, _ int) profile.DNSRule {
		return profile.DNSRule{
			ID:           r.ID,
			Type:         r.Type,
			Payload:      r.Payload,
			Action:       r.Action,
			Invert:       r.Invert,
			Server:       r.Server,
			Strategy:     profile.StrategyDefault,
			DisableCache: false,
			ClientSubnet: "",
		}
	})
}
