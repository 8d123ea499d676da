// Package legacy holds the pre-1.9 profile shape as the GUI stored it.
package legacy

// Rule types used by the 1.8.x routing and DNS rule lists.
const (
	RuleTypeFinal      = "final"
	RuleTypeRuleSet    = "rule_set"     // payload 是规则集 store 里的 id
	RuleTypeRuleSetURL = "rule_set_url" // payload 是远程规则集 url
	RuleTypeFakeIP     = "fakeip"
	RuleTypeOutbound   = "outbound" // 旧版 DNS 默认解析器标记
)

// Member origin marker for built-in proxies; anything else is a subscription id.
const MemberTypeBuiltIn = "built-in"

type Profile struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	GeneralConfig  GeneralConfig  `yaml:"generalConfig"`
	AdvancedConfig AdvancedConfig `yaml:"advancedConfig"`
	TunConfig      TunConfig      `yaml:"tunConfig"`
	DNSConfig      DNSConfig      `yaml:"dnsConfig"`
	ProxyGroups    []ProxyGroup   `yaml:"proxyGroupsConfig"`
	Rules          []Rule         `yaml:"rulesConfig"`
	DNSRules       []DNSRule      `yaml:"dnsRulesConfig"`
	MixinConfig    map[string]any `yaml:"mixinConfig"`
	ScriptConfig   map[string]any `yaml:"scriptConfig"`
}

type GeneralConfig struct {
	Mode          string `yaml:"mode"`
	AllowLAN      bool   `yaml:"allow-lan"`
	MixedPort     int    `yaml:"mixed-port"`
	LogLevel      string `yaml:"log-level"`
	InterfaceName string `yaml:"interface-name"`
}

type AdvancedConfig struct {
	Port               int          `yaml:"port"`
	SocksPort          int          `yaml:"socks-port"`
	Secret             string       `yaml:"secret"`
	ExternalController string       `yaml:"external-controller"`
	ExternalUI         string       `yaml:"external-ui"`
	ExternalUIURL      string       `yaml:"external-ui-url"`
	TCPFastOpen        bool         `yaml:"tcp-fast-open"`
	TCPMultiPath       bool         `yaml:"tcp-multi-path"`
	UDPFragment        bool         `yaml:"udp-fragment"`
	Profile            CacheProfile `yaml:"profile"`
}

type CacheProfile struct {
	StoreCache  bool `yaml:"store-cache"`
	StoreFakeIP bool `yaml:"store-fake-ip"`
	StoreRDRC   bool `yaml:"store-rdrc"`
}

type TunConfig struct {
	Enable                 bool     `yaml:"enable"`
	Stack                  string   `yaml:"stack"`
	InterfaceName          string   `yaml:"interface-name"`
	Address                []string `yaml:"address"`
	Inet4Address           string   `yaml:"inet4-address"`
	Inet6Address           string   `yaml:"inet6-address"`
	MTU                    int      `yaml:"mtu"`
	AutoRoute              bool     `yaml:"auto-route"`
	StrictRoute            bool     `yaml:"strict-route"`
	EndpointIndependentNAT bool     `yaml:"endpoint-independent-nat"`
}

type DNSConfig struct {
	Enable            bool     `yaml:"enable"`
	FakeIP            bool     `yaml:"fakeip"`
	Strategy          string   `yaml:"strategy"`
	LocalDNS          string   `yaml:"local-dns"`
	LocalDNSDetour    string   `yaml:"local-dns-detour"`
	RemoteDNS         string   `yaml:"remote-dns"`
	RemoteDNSDetour   string   `yaml:"remote-dns-detour"`
	ResolverDNS       string   `yaml:"resolver-dns"`
	RemoteResolverDNS string   `yaml:"remote-resolver-dns"`
	FinalDNS          string   `yaml:"final-dns"`
	FakeIPRangeV4     string   `yaml:"fake-ip-range-v4"`
	FakeIPRangeV6     string   `yaml:"fake-ip-range-v6"`
	FakeIPFilter      []string `yaml:"fake-ip-filter"`
	IndependentCache  bool     `yaml:"independent-cache"`
	DisableCache      bool     `yaml:"disable-cache"`
	DisableExpire     bool     `yaml:"disable-expire"`
	ClientSubnet      string   `yaml:"client-subnet"`
}

type ProxyGroup struct {
	ID        string   `yaml:"id"`
	Tag       string   `yaml:"tag"`
	Type      string   `yaml:"type"`
	Proxies   []Member `yaml:"proxies"`
	Use       []string `yaml:"use"`
	URL       string   `yaml:"url"`
	Interval  int      `yaml:"interval"`
	Tolerance int      `yaml:"tolerance"`
	Filter    string   `yaml:"filter"`
}

// Member 代理组成员；Type 为 built-in 或订阅 id
type Member struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
	Tag  string `yaml:"tag"`
}

// Rule is a routing rule entry. The ruleset-* fields only matter for rule_set_url.
type Rule struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Payload        string `yaml:"payload"`
	Proxy          string `yaml:"proxy"`
	Invert         bool   `yaml:"invert"`
	RulesetName    string `yaml:"ruleset-name"`
	RulesetFormat  string `yaml:"ruleset-format"`
	DownloadDetour string `yaml:"download-detour"`
}

type DNSRule struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Payload        string `yaml:"payload"`
	Server         string `yaml:"server"`
	Invert         bool   `yaml:"invert"`
	RulesetName    string `yaml:"ruleset-name"`
	RulesetFormat  string `yaml:"ruleset-format"`
	DownloadDetour string `yaml:"download-detour"`
}

// RuleSetRef is the part of a routing or DNS rule that can reference a rule set.
type RuleSetRef struct {
	ID             string
	Type           string
	Payload        string
	RulesetName    string
	RulesetFormat  string
	DownloadDetour string
}

func (r Rule) Ref() RuleSetRef {
	return RuleSetRef{
		ID:             r.ID,
		Type:           r.Type,
		Payload:        r.Payload,
		RulesetName:    r.RulesetName,
		RulesetFormat:  r.RulesetFormat,
		DownloadDetour: r.DownloadDetour,
	}
}

func (r DNSRule) Ref() RuleSetRef {
	return RuleSetRef{
		ID:             r.ID,
		Type:           r.Type,
		Payload:        r.Payload,
		RulesetName:    r.RulesetName,
		RulesetFormat:  r.RulesetFormat,
		DownloadDetour: r.DownloadDetour,
	}
}

// IsRuleSet reports whether the rule type references a rule set.
func IsRuleSet(ruleType string) bool {
	return ruleType == RuleTypeRuleSet || ruleType == RuleTypeRuleSetURL
}
