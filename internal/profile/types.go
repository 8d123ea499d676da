// Package profile defines the profile documents written for the 1.9 GUI line.
// Every field is always emitted: consumers treat absent and empty differently.
package profile

// Schema versions a document can be in.
const (
	VersionLegacy  = "1.8.9"
	VersionV190    = "1.9.0"
	VersionCurrent = "1.9.4"
)

// Member origins inside an outbound group.
const (
	MemberBuiltIn      = "Built-in"
	MemberSubscription = "Subscription"
)

// StrategyDefault is the GUI's "no preference" domain strategy.
const StrategyDefault = "default"

type Log struct {
	Disabled  bool   `json:"disabled" yaml:"disabled"`
	Level     string `json:"level" yaml:"level"`
	Output    string `json:"output" yaml:"output"`
	Timestamp bool   `json:"timestamp" yaml:"timestamp"`
}

type Experimental struct {
	ClashAPI  ClashAPI  `json:"clash_api" yaml:"clash_api"`
	CacheFile CacheFile `json:"cache_file" yaml:"cache_file"`
}

type ClashAPI struct {
	ExternalController               string   `json:"external_controller" yaml:"external_controller"`
	ExternalUI                       string   `json:"external_ui" yaml:"external_ui"`
	ExternalUIDownloadURL            string   `json:"external_ui_download_url" yaml:"external_ui_download_url"`
	ExternalUIDownloadDetour         string   `json:"external_ui_download_detour" yaml:"external_ui_download_detour"`
	Secret                           string   `json:"secret" yaml:"secret"`
	DefaultMode                      string   `json:"default_mode" yaml:"default_mode"`
	AccessControlAllowOrigin         []string `json:"access_control_allow_origin" yaml:"access_control_allow_origin"`
	AccessControlAllowPrivateNetwork bool     `json:"access_control_allow_private_network" yaml:"access_control_allow_private_network"`
}

type CacheFile struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Path        string `json:"path" yaml:"path"`
	CacheID     string `json:"cache_id" yaml:"cache_id"`
	StoreFakeIP bool   `json:"store_fakeip" yaml:"store_fakeip"`
	StoreRDRC   bool   `json:"store_rdrc" yaml:"store_rdrc"`
	RDRCTimeout string `json:"rdrc_timeout" yaml:"rdrc_timeout"`
}

// Inbound carries exactly one of Mixed/HTTP/Socks/Tun, matching Type.
type Inbound struct {
	ID     string      `json:"id" yaml:"id"`
	Type   string      `json:"type" yaml:"type"`
	Tag    string      `json:"tag" yaml:"tag"`
	Enable bool        `json:"enable" yaml:"enable"`
	Mixed  *InboundNet `json:"mixed,omitempty" yaml:"mixed,omitempty"`
	HTTP   *InboundNet `json:"http,omitempty" yaml:"http,omitempty"`
	Socks  *InboundNet `json:"socks,omitempty" yaml:"socks,omitempty"`
	Tun    *Tun        `json:"tun,omitempty" yaml:"tun,omitempty"`
}

type InboundNet struct {
	Listen Listen   `json:"listen" yaml:"listen"`
	Users  []string `json:"users" yaml:"users"`
}

type Listen struct {
	Listen       string `json:"listen" yaml:"listen"`
	ListenPort   int    `json:"listen_port" yaml:"listen_port"`
	TCPFastOpen  bool   `json:"tcp_fast_open" yaml:"tcp_fast_open"`
	TCPMultiPath bool   `json:"tcp_multi_path" yaml:"tcp_multi_path"`
	UDPFragment  bool   `json:"udp_fragment" yaml:"udp_fragment"`
}

type Tun struct {
	InterfaceName          string   `json:"interface_name" yaml:"interface_name"`
	Address                []string `json:"address" yaml:"address"`
	MTU                    int      `json:"mtu" yaml:"mtu"`
	AutoRoute              bool     `json:"auto_route" yaml:"auto_route"`
	StrictRoute            bool     `json:"strict_route" yaml:"strict_route"`
	RouteAddress           []string `json:"route_address" yaml:"route_address"`
	EndpointIndependentNAT bool     `json:"endpoint_independent_nat" yaml:"endpoint_independent_nat"`
	Stack                  string   `json:"stack" yaml:"stack"`
}

type Outbound struct {
	ID                        string   `json:"id" yaml:"id"`
	Tag                       string   `json:"tag" yaml:"tag"`
	Type                      string   `json:"type" yaml:"type"`
	Outbounds                 []Member `json:"outbounds" yaml:"outbounds"`
	InterruptExistConnections bool     `json:"interrupt_exist_connections" yaml:"interrupt_exist_connections"`
	URL                       string   `json:"url" yaml:"url"`
	Interval                  string   `json:"interval" yaml:"interval"`
	Tolerance                 int      `json:"tolerance" yaml:"tolerance"`
	Include                   string   `json:"include" yaml:"include"`
	Exclude                   string   `json:"exclude" yaml:"exclude"`
}

// Member references a built-in proxy by id or a subscription by id.
type Member struct {
	ID   string `json:"id" yaml:"id"`
	Tag  string `json:"tag" yaml:"tag"`
	Type string `json:"type" yaml:"type"`
}

type RuleSet struct {
	ID             string `json:"id" yaml:"id"`
	Type           string `json:"type" yaml:"type"`
	Tag            string `json:"tag" yaml:"tag"`
	Format         string `json:"format" yaml:"format"`
	URL            string `json:"url" yaml:"url"`
	DownloadDetour string `json:"download_detour" yaml:"download_detour"`
	UpdateInterval string `json:"update_interval" yaml:"update_interval"`
	Rules          string `json:"rules" yaml:"rules"`
	Path           string `json:"path" yaml:"path"`
}

type RouteRule struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	Payload  string   `json:"payload" yaml:"payload"`
	Invert   bool     `json:"invert" yaml:"invert"`
	Action   string   `json:"action" yaml:"action"`
	Outbound string   `json:"outbound" yaml:"outbound"`
	Sniffer  []string `json:"sniffer" yaml:"sniffer"`
	Strategy string   `json:"strategy" yaml:"strategy"`
	Server   string   `json:"server" yaml:"server"`
}

type DomainResolver struct {
	Server       string `json:"server" yaml:"server"`
	ClientSubnet string `json:"client_subnet" yaml:"client_subnet"`
}

type FakeIP struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Inet4Range string `json:"inet4_range" yaml:"inet4_range"`
	Inet6Range string `json:"inet6_range" yaml:"inet6_range"`
}
