package migrate

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/miekg/dns"
	C "github.com/sagernet/sing-box/constant"
	M "github.com/sagernet/sing/common/metadata"
)

// ServerAddress is the typed form of a legacy DNS server address string.
type ServerAddress struct {
	Type       string
	Server     string
	ServerPort string
	Path       string
	Interface  string
	Inet4Range string
	Inet6Range string
}

const (
	addressLocal  = "local"
	addressFakeIP = "fakeip"
	rcodePrefix   = "rcode://"

	httpsDefaultPort = 443
)

// ParseServerAddress classifies a legacy address by scheme. keep is false for
// rcode:// addresses, which have no server form and are dropped. Schemes that
// need a host fail with an error instead of yielding a half-filled descriptor.
func ParseServerAddress(address string, fakeip profile.FakeIP) (addr ServerAddress, keep bool, err error) {
	switch {
	case address == addressLocal:
		return ServerAddress{Type: C.DNSTypeLocal}, true, nil
	case address == addressFakeIP:
		return ServerAddress{
			Type:       C.DNSTypeFakeIP,
			Inet4Range: fakeip.Inet4Range,
			Inet6Range: fakeip.Inet6Range,
		}, true, nil
	case strings.HasPrefix(address, rcodePrefix):
		return ServerAddress{}, false, nil
	case strings.HasPrefix(address, "tcp://"):
		addr, err = parseHostAddress(address, C.DNSTypeTCP, false)
	case strings.HasPrefix(address, "tls://"):
		addr, err = parseHostAddress(address, C.DNSTypeTLS, false)
	case strings.HasPrefix(address, "quic://"):
		addr, err = parseHostAddress(address, C.DNSTypeQUIC, false)
	case strings.HasPrefix(address, "https://"):
		addr, err = parseHostAddress(address, C.DNSTypeHTTPS, true)
	case strings.HasPrefix(address, "h3://"):
		addr, err = parseHostAddress(address, C.DNSTypeHTTP3, true)
	case strings.HasPrefix(address, "dhcp://"):
		addr, err = parseDHCPAddress(address)
	default:
		return ServerAddress{Type: C.DNSTypeUDP, Server: address}, true, nil
	}
	if err != nil {
		return ServerAddress{}, false, err
	}
	return addr, true, nil
}

func parseHostAddress(address, serverType string, withPath bool) (ServerAddress, error) {
	u, err := url.Parse(address)
	if err != nil {
		return ServerAddress{}, fmt.Errorf("invalid %s address %q: %w", serverType, address, err)
	}
	if u.Host == "" {
		return ServerAddress{}, fmt.Errorf("invalid %s address %q: missing host", serverType, address)
	}

	var port uint16
	if raw := u.Port(); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 16)
		if err != nil || value == 0 {
			return ServerAddress{}, fmt.Errorf("invalid %s address %q: bad port %q", serverType, address, raw)
		}
		port = uint16(value)
	}

	socksaddr := M.ParseSocksaddrHostPort(u.Hostname(), port)
	host := socksaddr.AddrString()
	if !validHost(host) {
		return ServerAddress{}, fmt.Errorf("invalid %s address %q: bad host %q", serverType, address, host)
	}

	addr := ServerAddress{
		Type:   serverType,
		Server: host,
	}
	// https 是特殊 scheme：默认端口省略，空路径视为 "/"
	special := u.Scheme == "https"
	if socksaddr.Port != 0 && !(special && socksaddr.Port == httpsDefaultPort) {
		addr.ServerPort = strconv.Itoa(int(socksaddr.Port))
	}
	if withPath {
		addr.Path = u.EscapedPath()
		if special && addr.Path == "" {
			addr.Path = "/"
		}
	}
	return addr, nil
}

func parseDHCPAddress(address string) (ServerAddress, error) {
	u, err := url.Parse(address)
	if err != nil {
		return ServerAddress{}, fmt.Errorf("invalid dhcp address %q: %w", address, err)
	}
	return ServerAddress{Type: C.DNSTypeDHCP, Interface: u.Hostname()}, nil
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}
	_, ok := dns.IsDomainName(host)
	return ok
}
