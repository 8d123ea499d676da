package render

import (
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/sagernet/sing-box/option"
	singboxjson "github.com/sagernet/sing/common/json"
)

// RouteModule 路由模块：规则集、规则、final 和默认解析器
type RouteModule struct{}

func (m *RouteModule) Name() string {
	return "route"
}

func (m *RouteModule) Apply(opts *option.Options, ctx *BuildContext) error {
	route := ctx.Profile.Route

	ruleSets := make([]map[string]any, 0, len(route.RuleSet))
	for _, rs := range route.RuleSet {
		rsMap, err := ruleSetMap(rs, ctx)
		if err != nil {
			return fmt.Errorf("rule set %q: %w", rs.ID, err)
		}
		ruleSets = append(ruleSets, rsMap)
	}

	rules := make([]map[string]any, 0, len(route.Rules))
	for _, r := range route.Rules {
		ruleMap, err := ruleMatch(r.Type, r.Payload, ctx)
		if err != nil {
			return fmt.Errorf("route rule %q: %w", r.ID, err)
		}
		if r.Invert {
			ruleMap["invert"] = true
		}
		ruleMap["action"] = r.Action
		if r.Action == C.RuleActionTypeRoute {
			ruleMap["outbound"] = ctx.OutboundTag(r.Outbound)
		}
		rules = append(rules, ruleMap)
	}

	routeMap := map[string]any{
		"rule_set":              ruleSets,
		"rules":                 rules,
		"auto_detect_interface": route.AutoDetectInterface,
		"find_process":          route.FindProcess,
	}
	if route.DefaultInterface != "" {
		routeMap["default_interface"] = route.DefaultInterface
	}
	if route.Final != "" {
		routeMap["final"] = ctx.OutboundTag(route.Final)
	}
	if resolver := route.DefaultDomainResolver; resolver.Server != "" {
		resolverMap := map[string]any{"server": ctx.DNSServerTag(resolver.Server)}
		if resolver.ClientSubnet != "" {
			resolverMap["client_subnet"] = resolver.ClientSubnet
		}
		routeMap["default_domain_resolver"] = resolverMap
	}

	var routeOpts option.RouteOptions
	if err := applyMap(&routeOpts, routeMap); err != nil {
		return err
	}
	opts.Route = &routeOpts
	return nil
}

func ruleSetMap(rs profile.RuleSet, ctx *BuildContext) (map[string]any, error) {
	m := map[string]any{
		"type": rs.Type,
		"tag":  rs.Tag,
	}
	switch rs.Type {
	case C.RuleSetTypeLocal:
		m["format"] = rs.Format
		m["path"] = rs.Path
	case C.RuleSetTypeRemote:
		m["format"] = rs.Format
		m["url"] = rs.URL
		if rs.DownloadDetour != "" {
			m["download_detour"] = ctx.OutboundTag(rs.DownloadDetour)
		}
		if rs.UpdateInterval != "" {
			m["update_interval"] = rs.UpdateInterval
		}
	case C.RuleSetTypeInline:
		var rules []map[string]any
		if err := singboxjson.Unmarshal([]byte(rs.Rules), &rules); err != nil {
			return nil, fmt.Errorf("invalid inline rules: %w", err)
		}
		m["rules"] = rules
	default:
		return nil, fmt.Errorf("unsupported rule set type %q", rs.Type)
	}
	return m, nil
}
