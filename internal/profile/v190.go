package profile

// ProfileV190 is the first 1.9 document. DNS servers still carry a single
// address string and the fake-IP ranges live under dns.fakeip.
type ProfileV190 struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Log          Log            `json:"log" yaml:"log"`
	Experimental Experimental   `json:"experimental" yaml:"experimental"`
	Inbounds     []Inbound      `json:"inbounds" yaml:"inbounds"`
	Outbounds    []Outbound     `json:"outbounds" yaml:"outbounds"`
	Route        RouteV190      `json:"route" yaml:"route"`
	DNS          DNSV190        `json:"dns" yaml:"dns"`
	Mixin        map[string]any `json:"mixin" yaml:"mixin"`
	Script       map[string]any `json:"script" yaml:"script"`
}

type RouteV190 struct {
	RuleSet             []RuleSet   `json:"rule_set" yaml:"rule_set"`
	Rules               []RouteRule `json:"rules" yaml:"rules"`
	AutoDetectInterface bool        `json:"auto_detect_interface" yaml:"auto_detect_interface"`
	FindProcess         bool        `json:"find_process" yaml:"find_process"`
	DefaultInterface    string      `json:"default_interface" yaml:"default_interface"`
	Final               string      `json:"final" yaml:"final"`
}

type DNSV190 struct {
	Servers          []DNSServerV190 `json:"servers" yaml:"servers"`
	Rules            []DNSRuleV190   `json:"rules" yaml:"rules"`
	FakeIP           FakeIP          `json:"fakeip" yaml:"fakeip"`
	DisableCache     bool            `json:"disable_cache" yaml:"disable_cache"`
	DisableExpire    bool            `json:"disable_expire" yaml:"disable_expire"`
	IndependentCache bool            `json:"independent_cache" yaml:"independent_cache"`
	ClientSubnet     string          `json:"client_subnet" yaml:"client_subnet"`
	Final            string          `json:"final" yaml:"final"`
	Strategy         string          `json:"strategy" yaml:"strategy"`
}

type DNSServerV190 struct {
	ID              string `json:"id" yaml:"id"`
	Tag             string `json:"tag" yaml:"tag"`
	Address         string `json:"address" yaml:"address"`
	AddressResolver string `json:"address_resolver" yaml:"address_resolver"`
	Detour          string `json:"detour" yaml:"detour"`
	Strategy        string `json:"strategy" yaml:"strategy"`
	ClientSubnet    string `json:"client_subnet" yaml:"client_subnet"`
}

type DNSRuleV190 struct {
	ID      string `json:"id" yaml:"id"`
	Type    string `json:"type" yaml:"type"`
	Payload string `json:"payload" yaml:"payload"`
	Action  string `json:"action" yaml:"action"`
	Server  string `json:"server" yaml:"server"`
	Invert  bool   `json:"invert" yaml:"invert"`
}
