package store

import (
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/migrate"
)

// RuleSetEntry is one item of rulesets.yaml. Fields the migration does not
// read are ignored on load.
type RuleSetEntry struct {
	ID     string `yaml:"id"`
	Tag    string `yaml:"tag"`
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
}

// RuleSets is an in-memory index of the rule-set store.
type RuleSets struct {
	byID map[string]RuleSetEntry
}

// LoadRuleSets reads a rulesets.yaml file. A missing file yields an empty store.
func LoadRuleSets(path string) (*RuleSets, error) {
	entries, err := loadList[RuleSetEntry](path)
	if err != nil {
		return nil, err
	}
	return NewRuleSets(entries)
}

// NewRuleSets indexes entries by id. Ids must be unique.
func NewRuleSets(entries []RuleSetEntry) (*RuleSets, error) {
	s := &RuleSets{byID: make(map[string]RuleSetEntry, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("rule set %q has no id", e.Tag)
		}
		if _, ok := s.byID[e.ID]; ok {
			return nil, fmt.Errorf("duplicate rule set id %q", e.ID)
		}
		s.byID[e.ID] = e
	}
	logger.Debug("Rule-set store loaded", "count", len(entries))
	return s, nil
}

// Get returns the entry for id or ErrNotFound.
func (s *RuleSets) Get(id string) (RuleSetEntry, error) {
	e, ok := s.byID[id]
	if !ok {
		return RuleSetEntry{}, fmt.Errorf("rule set %q: %w", id, ErrNotFound)
	}
	return e, nil
}

// RuleSetByID implements migrate.RuleSetLookup.
func (s *RuleSets) RuleSetByID(id string) (migrate.RuleSetRecord, bool) {
	e, err := s.Get(id)
	if err != nil {
		return migrate.RuleSetRecord{}, false
	}
	return migrate.RuleSetRecord{
		ID:     e.ID,
		Tag:    e.Tag,
		Type:   e.Type,
		Format: e.Format,
		URL:    e.URL,
		Path:   e.Path,
	}, true
}
