package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/samber/lo"
)

// IDRemap maps a legacy rule id to the id of the rule set it now points at.
// It lives for one pass and is never persisted.
type IDRemap map[string]string

// Resolve returns the canonical rule-set id for a legacy rule id.
func (m IDRemap) Resolve(ruleID string) (string, bool) {
	id, ok := m[ruleID]
	return id, ok
}

// DedupRuleSets turns the rule-set references of routing and DNS rules into a
// tag-unique list of rule sets. Remote references are folded before local
// ones, so a remote definition wins a tag collision. An unnamed remote
// reference is tagged with its rule id.
func DedupRuleSets(refs []legacy.RuleSetRef, lookup RuleSetLookup) ([]profile.RuleSet, IDRemap) {
	if lookup == nil {
		lookup = emptyLookup{}
	}

	remote := lo.FilterMap(refs, func(ref legacy.RuleSetRef, _ int) (profile.RuleSet, bool) {
		if ref.Type != legacy.RuleTypeRuleSetURL {
			return profile.RuleSet{}, false
		}
		return profile.RuleSet{
			ID:             ref.ID,
			Type:           C.RuleSetTypeRemote,
			Tag:            lo.CoalesceOrEmpty(ref.RulesetName, ref.ID),
			Format:         ref.RulesetFormat,
			URL:            ref.Payload,
			DownloadDetour: ref.DownloadDetour,
		}, true
	})

	local := lo.FilterMap(refs, func(ref legacy.RuleSetRef, _ int) (profile.RuleSet, bool) {
		if ref.Type != legacy.RuleTypeRuleSet {
			return profile.RuleSet{}, false
		}
		return localRuleSet(ref, lookup), true
	})

	return foldRuleSets(append(remote, local...))
}

// localRuleSet resolves a store reference. On a lookup miss the tag falls back
// to the rule id and the format to binary.
func localRuleSet(ref legacy.RuleSetRef, lookup RuleSetLookup) profile.RuleSet {
	rs := profile.RuleSet{
		ID:             ref.ID,
		Type:           C.RuleSetTypeLocal,
		Tag:            ref.ID,
		Format:         C.RuleSetFormatBinary,
		DownloadDetour: ref.DownloadDetour,
		Path:           ref.Payload,
	}

	record, ok := lookup.RuleSetByID(ref.Payload)
	if !ok {
		logger.Debug("Rule set not found in store, using defaults", "rule", ref.ID, "ruleset", ref.Payload)
		return rs
	}
	if record.Tag != "" {
		rs.Tag = record.Tag
	}
	if record.Format != "" {
		rs.Format = record.Format
	}
	rs.URL = record.URL
	return rs
}

func foldRuleSets(candidates []profile.RuleSet) ([]profile.RuleSet, IDRemap) {
	kept := make([]profile.RuleSet, 0, len(candidates))
	byTag := make(map[string]string, len(candidates))
	remap := make(IDRemap, len(candidates))

	for _, rs := range candidates {
		if keptID, ok := byTag[rs.Tag]; ok {
			remap[rs.ID] = keptID
			continue
		}
		byTag[rs.Tag] = rs.ID
		remap[rs.ID] = rs.ID
		kept = append(kept, rs)
	}
	return kept, remap
}
