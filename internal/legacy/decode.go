package legacy

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a legacy document whose shape cannot be migrated.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "invalid legacy profile"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Decode parses a 1.8.x profile (YAML or JSON) and validates the parts the
// migration depends on.
func Decode(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Reason: "empty document"}
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &DecodeError{Reason: "unexpected field type", Err: err}
		}
		return nil, &DecodeError{Reason: "malformed document", Err: err}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the identity fields every downstream transform keys on.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return &DecodeError{Path: "id", Reason: "missing profile id"}
	}

	groupIDs := make(map[string]bool, len(p.ProxyGroups))
	for i, g := range p.ProxyGroups {
		path := fmt.Sprintf("proxyGroupsConfig[%d]", i)
		if g.ID == "" {
			return &DecodeError{Path: path + ".id", Reason: "missing group id"}
		}
		if groupIDs[g.ID] {
			return &DecodeError{Path: path + ".id", Reason: fmt.Sprintf("duplicate group id %q", g.ID)}
		}
		groupIDs[g.ID] = true
		if g.Type == "" {
			return &DecodeError{Path: path + ".type", Reason: "missing group type"}
		}
		for j, m := range g.Proxies {
			if m.ID == "" || m.Type == "" {
				return &DecodeError{
					Path:   fmt.Sprintf("%s.proxies[%d]", path, j),
					Reason: "member needs both id and type",
				}
			}
		}
	}

	for i, r := range p.Rules {
		if err := validateRule(fmt.Sprintf("rulesConfig[%d]", i), r.Ref()); err != nil {
			return err
		}
	}
	for i, r := range p.DNSRules {
		if err := validateRule(fmt.Sprintf("dnsRulesConfig[%d]", i), r.Ref()); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(path string, r RuleSetRef) error {
	if r.ID == "" {
		return &DecodeError{Path: path + ".id", Reason: "missing rule id"}
	}
	if r.Type == "" {
		return &DecodeError{Path: path + ".type", Reason: "missing rule type"}
	}
	return nil
}
