package render

import (
	"fmt"
	"strconv"
	"strings"

	singboxjson "github.com/sagernet/sing/common/json"
)

// Rule types whose payload is not a comma separated string list.
const (
	ruleTypeRuleSet    = "rule_set"
	ruleTypeInline     = "inline"
	ruleTypeIPPrivate  = "ip_is_private"
	ruleTypePort       = "port"
	ruleTypeSourcePort = "source_port"
	ruleTypeClashMode  = "clash_mode"
)

// ruleMatch builds the match part of a route or DNS rule from the GUI's
// type/payload pair.
func ruleMatch(ruleType, payload string, ctx *BuildContext) (map[string]any, error) {
	switch ruleType {
	case ruleTypeRuleSet:
		return map[string]any{"rule_set": []string{ctx.RuleSetTag(payload)}}, nil
	case ruleTypeInline:
		var m map[string]any
		if err := singboxjson.Unmarshal([]byte(payload), &m); err != nil {
			return nil, fmt.Errorf("invalid inline rule: %w", err)
		}
		return m, nil
	case ruleTypeClashMode:
		return map[string]any{ruleType: strings.TrimSpace(payload)}, nil
	case ruleTypeIPPrivate:
		return map[string]any{ruleType: true}, nil
	case ruleTypePort, ruleTypeSourcePort:
		ports := []uint16{}
		for _, p := range splitPayload(payload) {
			port, err := strconv.ParseUint(p, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", ruleType, p)
			}
			ports = append(ports, uint16(port))
		}
		return map[string]any{ruleType: ports}, nil
	default:
		return map[string]any{ruleType: splitPayload(payload)}, nil
	}
}

func splitPayload(payload string) []string {
	out := []string{}
	for _, item := range strings.Split(payload, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
