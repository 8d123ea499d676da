package render

import (
	"strings"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/sagernet/sing-box/option"
)

// InboundModule 入站模块，只输出启用的入站
type InboundModule struct{}

func (m *InboundModule) Name() string {
	return "inbound"
}

func (m *InboundModule) Apply(opts *option.Options, ctx *BuildContext) error {
	for _, ib := range ctx.Profile.Inbounds {
		if !ib.Enable {
			continue
		}

		inboundMap := map[string]any{
			"type": ib.Type,
			"tag":  ib.Tag,
		}
		switch ib.Type {
		case C.TypeMixed:
			applyInboundNet(inboundMap, ib.Mixed)
		case C.TypeHTTP:
			applyInboundNet(inboundMap, ib.HTTP)
		case C.TypeSOCKS:
			applyInboundNet(inboundMap, ib.Socks)
		case C.TypeTun:
			applyTun(inboundMap, ib.Tun)
		default:
			logger.Warn("Skipping inbound of unsupported type", "id", ib.ID, "type", ib.Type)
			continue
		}

		inbound := option.Inbound{}
		if err := applyMap(&inbound, inboundMap); err != nil {
			return err
		}
		opts.Inbounds = append(opts.Inbounds, inbound)
	}
	return nil
}

func applyInboundNet(m map[string]any, in *profile.InboundNet) {
	if in == nil {
		return
	}
	m["listen"] = in.Listen.Listen
	m["listen_port"] = in.Listen.ListenPort
	m["tcp_fast_open"] = in.Listen.TCPFastOpen
	m["tcp_multi_path"] = in.Listen.TCPMultiPath
	m["udp_fragment"] = in.Listen.UDPFragment

	// GUI 里用户写成 user:pass
	users := make([]map[string]any, 0, len(in.Users))
	for _, u := range in.Users {
		name, password, _ := strings.Cut(u, ":")
		users = append(users, map[string]any{"username": name, "password": password})
	}
	if len(users) > 0 {
		m["users"] = users
	}
}

func applyTun(m map[string]any, tun *profile.Tun) {
	if tun == nil {
		return
	}
	m["address"] = tun.Address
	m["mtu"] = tun.MTU
	m["auto_route"] = tun.AutoRoute
	m["strict_route"] = tun.StrictRoute
	m["endpoint_independent_nat"] = tun.EndpointIndependentNAT
	m["stack"] = tun.Stack
	if tun.InterfaceName != "" {
		m["interface_name"] = tun.InterfaceName
	}
	if len(tun.RouteAddress) > 0 {
		m["route_address"] = tun.RouteAddress
	}
}
