package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/samber/lo"
)

// Sentinel rule targets of the 1.8.x schema.
const (
	TargetBlock  = "block"
	TargetDNSOut = "dns-out"
	TargetDirect = "direct"
)

// RuleTypeRuleSet and RuleTypeInline are the 1.9 rule types a legacy rule can be rewritten to.
const (
	RuleTypeRuleSet = "rule_set"
	RuleTypeInline  = "inline"
)

// DeriveRouteAction maps a legacy proxy target to a rule action and outbound.
// Checks run in a fixed order: block, dns-out, the removed reject group, then
// route. block keeps its target as outbound; dns-out and the reject group clear it.
func DeriveRouteAction(target string, groups GroupResolution) (action, outbound string) {
	switch {
	case target == TargetBlock:
		return C.RuleActionTypeReject, TargetBlock
	case target == TargetDNSOut:
		return C.RuleActionTypeHijackDNS, ""
	case groups.HasReject() && target == groups.RejectID:
		return C.RuleActionTypeReject, ""
	case target == TargetDirect:
		return C.RuleActionTypeRoute, groups.DirectID
	default:
		return C.RuleActionTypeRoute, target
	}
}

// TransformRouteRules converts routing rules and pulls out the final target.
// The final rule becomes route.final rather than a rule entry.
func TransformRouteRules(rules []legacy.Rule, remap IDRemap, groups GroupResolution) ([]profile.RouteRule, string) {
	final := ""
	if rule, ok := lo.Find(rules, func(r legacy.Rule) bool { return r.Type == legacy.RuleTypeFinal }); ok {
		final = rule.Proxy
	}

	out := lo.FilterMap(rules, func(r legacy.Rule, _ int) (profile.RouteRule, bool) {
		if r.Type == legacy.RuleTypeFinal {
			return profile.RouteRule{}, false
		}
		action, outbound := DeriveRouteAction(r.Proxy, groups)
		rule := profile.RouteRule{
			ID:       r.ID,
			Type:     r.Type,
			Payload:  r.Payload,
			Invert:   r.Invert,
			Action:   action,
			Outbound: outbound,
			Sniffer:  []string{},
			Strategy: profile.StrategyDefault,
			Server:   "",
		}
		if legacy.IsRuleSet(r.Type) {
			rule.Type = RuleTypeRuleSet
			rule.Payload, _ = remap.Resolve(r.ID)
		}
		return rule, true
	})
	return out, final
}
