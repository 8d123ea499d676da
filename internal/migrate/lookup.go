package migrate

// RuleSetRecord is a rule set as kept by the GUI's rule-set store.
type RuleSetRecord struct {
	ID     string
	Tag    string
	Type   string
	Format string
	URL    string
	Path   string
}

// Subscription is a subscription as kept by the GUI's subscription store.
type Subscription struct {
	ID   string
	Name string
}

// RuleSetLookup resolves a local rule-set reference. A miss is tolerated.
type RuleSetLookup interface {
	RuleSetByID(id string) (RuleSetRecord, bool)
}

// SubscriptionLookup resolves a group's `use` reference. A miss drops the reference.
type SubscriptionLookup interface {
	SubscriptionByID(id string) (Subscription, bool)
}

// Context 迁移上下文，只读查询服务
type Context struct {
	RuleSets      RuleSetLookup
	Subscriptions SubscriptionLookup
}

type emptyLookup struct{}

func (emptyLookup) RuleSetByID(string) (RuleSetRecord, bool)     { return RuleSetRecord{}, false }
func (emptyLookup) SubscriptionByID(string) (Subscription, bool) { return Subscription{}, false }

func (c *Context) ruleSets() RuleSetLookup {
	if c == nil || c.RuleSets == nil {
		return emptyLookup{}
	}
	return c.RuleSets
}

func (c *Context) subscriptions() SubscriptionLookup {
	if c == nil || c.Subscriptions == nil {
		return emptyLookup{}
	}
	return c.Subscriptions
}
