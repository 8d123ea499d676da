package render

import (
	"fmt"
	"strconv"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/sagernet/sing-box/option"
)

// DNSModule DNS 模块
// 每种 server type 只写它认识的字段，sing-box 对多余字段会报错
type DNSModule struct{}

func (m *DNSModule) Name() string {
	return "dns"
}

func (m *DNSModule) Apply(opts *option.Options, ctx *BuildContext) error {
	dns := ctx.Profile.DNS

	servers := make([]map[string]any, 0, len(dns.Servers))
	for _, s := range dns.Servers {
		serverMap, err := dnsServerMap(s, ctx)
		if err != nil {
			return fmt.Errorf("dns server %q: %w", s.ID, err)
		}
		servers = append(servers, serverMap)
	}

	rules := make([]map[string]any, 0, len(dns.Rules))
	for _, r := range dns.Rules {
		ruleMap, err := ruleMatch(r.Type, r.Payload, ctx)
		if err != nil {
			return fmt.Errorf("dns rule %q: %w", r.ID, err)
		}
		if r.Invert {
			ruleMap["invert"] = true
		}
		ruleMap["action"] = r.Action
		if r.Action == C.RuleActionTypeRoute {
			ruleMap["server"] = ctx.DNSServerTag(r.Server)
			if r.Strategy != "" && r.Strategy != profile.StrategyDefault {
				ruleMap["strategy"] = r.Strategy
			}
			if r.DisableCache {
				ruleMap["disable_cache"] = true
			}
			if r.ClientSubnet != "" {
				ruleMap["client_subnet"] = r.ClientSubnet
			}
		}
		rules = append(rules, ruleMap)
	}

	dnsMap := map[string]any{
		"servers":           servers,
		"rules":             rules,
		"disable_cache":     dns.DisableCache,
		"disable_expire":    dns.DisableExpire,
		"independent_cache": dns.IndependentCache,
	}
	if dns.Final != "" {
		dnsMap["final"] = ctx.DNSServerTag(dns.Final)
	}
	if dns.Strategy != "" && dns.Strategy != profile.StrategyDefault {
		dnsMap["strategy"] = dns.Strategy
	}
	if dns.ClientSubnet != "" {
		dnsMap["client_subnet"] = dns.ClientSubnet
	}

	var dnsOpts option.DNSOptions
	// 必须使用 include.Context 来正确解析 DNS 类型
	if err := applyMap(&dnsOpts, dnsMap); err != nil {
		return err
	}
	opts.DNS = &dnsOpts
	return nil
}

func dnsServerMap(s profile.DNSServer, ctx *BuildContext) (map[string]any, error) {
	m := map[string]any{
		"type": s.Type,
		"tag":  s.Tag,
	}

	switch s.Type {
	case C.DNSTypeLocal:
	case C.DNSTypeHosts:
		if len(s.HostsPath) > 0 {
			m["path"] = s.HostsPath
		}
		if len(s.Predefined) > 0 {
			m["predefined"] = s.Predefined
		}
	case C.DNSTypeFakeIP:
		if s.Inet4Range != "" {
			m["inet4_range"] = s.Inet4Range
		}
		if s.Inet6Range != "" {
			m["inet6_range"] = s.Inet6Range
		}
	case C.DNSTypeDHCP:
		if s.Interface != "" && s.Interface != "auto" {
			m["interface"] = s.Interface
		}
	case C.DNSTypeUDP, C.DNSTypeTCP, C.DNSTypeTLS, C.DNSTypeQUIC, C.DNSTypeHTTPS, C.DNSTypeHTTP3:
		m["server"] = s.Server
		if s.ServerPort != "" {
			port, err := strconv.ParseUint(s.ServerPort, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid server_port %q", s.ServerPort)
			}
			m["server_port"] = port
		}
		if s.Path != "" && (s.Type == C.DNSTypeHTTPS || s.Type == C.DNSTypeHTTP3) {
			m["path"] = s.Path
		}
		if s.DomainResolver != "" {
			m["domain_resolver"] = ctx.DNSServerTag(s.DomainResolver)
		}
		if s.Detour != "" {
			m["detour"] = ctx.OutboundTag(s.Detour)
		}
	default:
		return nil, fmt.Errorf("unsupported dns server type %q", s.Type)
	}
	return m, nil
}
