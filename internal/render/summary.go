package render

import (
	"fmt"

	"github.com/sagernet/sing-box/option"
)

// Summary counts what a rendered config contains.
type Summary struct {
	Inbounds   int
	Outbounds  int
	RuleSets   int
	Rules      int
	DNSServers int
	DNSRules   int
}

func Summarize(opts *option.Options) Summary {
	s := Summary{
		Inbounds:  len(opts.Inbounds),
		Outbounds: len(opts.Outbounds),
	}
	if opts.Route != nil {
		s.RuleSets = len(opts.Route.RuleSet)
		s.Rules = len(opts.Route.Rules)
	}
	if opts.DNS != nil {
		s.DNSServers = len(opts.DNS.Servers)
		s.DNSRules = len(opts.DNS.Rules)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("inbounds=%d outbounds=%d rule_sets=%d rules=%d dns_servers=%d dns_rules=%d",
		s.Inbounds, s.Outbounds, s.RuleSets, s.Rules, s.DNSServers, s.DNSRules)
}
