package migrate_test

import "github.com/kyson-dev/profile-upgrader/internal/migrate"

type fakeRuleSets map[string]migrate.RuleSetRecord

func (f fakeRuleSets) RuleSetByID(id string) (migrate.RuleSetRecord, bool) {
	r, ok := f[id]
	return r, ok
}

type fakeSubscriptions map[string]migrate.Subscription

func (f fakeSubscriptions) SubscriptionByID(id string) (migrate.Subscription, bool) {
	s, ok := f[id]
	return s, ok
}
