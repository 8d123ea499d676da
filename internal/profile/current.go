package profile

// Profile is the current document consumed by the engine's config generator.
type Profile struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Log          Log            `json:"log" yaml:"log"`
	Experimental Experimental   `json:"experimental" yaml:"experimental"`
	Inbounds     []Inbound      `json:"inbounds" yaml:"inbounds"`
	Outbounds    []Outbound     `json:"outbounds" yaml:"outbounds"`
	Route        Route          `json:"route" yaml:"route"`
	DNS          DNS            `json:"dns" yaml:"dns"`
	Mixin        map[string]any `json:"mixin" yaml:"mixin"`
	Script       map[string]any `json:"script" yaml:"script"`
}

type Route struct {
	RuleSet               []RuleSet      `json:"rule_set" yaml:"rule_set"`
	Rules                 []RouteRule    `json:"rules" yaml:"rules"`
	AutoDetectInterface   bool           `json:"auto_detect_interface" yaml:"auto_detect_interface"`
	FindProcess           bool           `json:"find_process" yaml:"find_process"`
	DefaultInterface      string         `json:"default_interface" yaml:"default_interface"`
	Final                 string         `json:"final" yaml:"final"`
	DefaultDomainResolver DomainResolver `json:"default_domain_resolver" yaml:"default_domain_resolver"`
}

type DNS struct {
	Servers          []DNSServer `json:"servers" yaml:"servers"`
	Rules            []DNSRule   `json:"rules" yaml:"rules"`
	DisableCache     bool        `json:"disable_cache" yaml:"disable_cache"`
	DisableExpire    bool        `json:"disable_expire" yaml:"disable_expire"`
	IndependentCache bool        `json:"independent_cache" yaml:"independent_cache"`
	ClientSubnet     string      `json:"client_subnet" yaml:"client_subnet"`
	Final            string      `json:"final" yaml:"final"`
	Strategy         string      `json:"strategy" yaml:"strategy"`
}

// DNSServer is the typed server entry. Type is one of the sing-box DNS server
// types; only the fields meaningful to that type are non-empty.
type DNSServer struct {
	ID             string            `json:"id" yaml:"id"`
	Tag            string            `json:"tag" yaml:"tag"`
	Type           string            `json:"type" yaml:"type"`
	Detour         string            `json:"detour" yaml:"detour"`
	DomainResolver string            `json:"domain_resolver" yaml:"domain_resolver"`
	HostsPath      []string          `json:"hosts_path" yaml:"hosts_path"`
	Predefined     map[string]string `json:"predefined" yaml:"predefined"`
	Server         string            `json:"server" yaml:"server"`
	ServerPort     string            `json:"server_port" yaml:"server_port"`
	Path           string            `json:"path" yaml:"path"`
	Interface      string            `json:"interface" yaml:"interface"`
	Inet4Range     string            `json:"inet4_range" yaml:"inet4_range"`
	Inet6Range     string            `json:"inet6_range" yaml:"inet6_range"`
}

type DNSRule struct {
	ID           string `json:"id" yaml:"id"`
	Type         string `json:"type" yaml:"type"`
	Payload      string `json:"payload" yaml:"payload"`
	Action       string `json:"action" yaml:"action"`
	Invert       bool   `json:"invert" yaml:"invert"`
	Server       string `json:"server" yaml:"server"`
	Strategy     string `json:"strategy" yaml:"strategy"`
	DisableCache bool   `json:"disable_cache" yaml:"disable_cache"`
	ClientSubnet string `json:"client_subnet" yaml:"client_subnet"`
}
