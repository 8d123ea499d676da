package store

import (
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/migrate"
)

// SubscriptionEntry is one item of subscribes.yaml.
type SubscriptionEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
}

// Subscriptions is an in-memory index of the subscription store.
type Subscriptions struct {
	byID map[string]SubscriptionEntry
}

// LoadSubscriptions reads a subscribes.yaml file. A missing file yields an empty store.
func LoadSubscriptions(path string) (*Subscriptions, error) {
	entries, err := loadList[SubscriptionEntry](path)
	if err != nil {
		return nil, err
	}
	return NewSubscriptions(entries)
}

func NewSubscriptions(entries []SubscriptionEntry) (*Subscriptions, error) {
	s := &Subscriptions{byID: make(map[string]SubscriptionEntry, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("subscription %q has no id", e.Name)
		}
		if _, ok := s.byID[e.ID]; ok {
			return nil, fmt.Errorf("duplicate subscription id %q", e.ID)
		}
		s.byID[e.ID] = e
	}
	logger.Debug("Subscription store loaded", "count", len(entries))
	return s, nil
}

func (s *Subscriptions) Get(id string) (SubscriptionEntry, error) {
	e, ok := s.byID[id]
	if !ok {
		return SubscriptionEntry{}, fmt.Errorf("subscription %q: %w", id, ErrNotFound)
	}
	return e, nil
}

// SubscriptionByID implements migrate.SubscriptionLookup.
func (s *Subscriptions) SubscriptionByID(id string) (migrate.Subscription, bool) {
	e, err := s.Get(id)
	if err != nil {
		return migrate.Subscription{}, false
	}
	return migrate.Subscription{ID: e.ID, Name: e.Name}, true
}
