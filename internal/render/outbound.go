package render

import (
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/sagernet/sing-box/option"
)

// OutboundModule 出站模块
// 订阅节点存放在订阅文件里，这里只渲染组本身；组成员只保留内置组
type OutboundModule struct{}

func (m *OutboundModule) Name() string {
	return "outbound"
}

func (m *OutboundModule) Apply(opts *option.Options, ctx *BuildContext) error {
	for _, o := range ctx.Profile.Outbounds {
		outMap := map[string]any{
			"type": o.Type,
			"tag":  o.Tag,
		}

		switch o.Type {
		case C.TypeDirect:
		case C.TypeSelector:
			outMap["outbounds"] = memberTags(o, ctx)
			outMap["interrupt_exist_connections"] = o.InterruptExistConnections
		case C.TypeURLTest:
			outMap["outbounds"] = memberTags(o, ctx)
			outMap["interrupt_exist_connections"] = o.InterruptExistConnections
			outMap["url"] = o.URL
			outMap["interval"] = o.Interval
			outMap["tolerance"] = o.Tolerance
		default:
			logger.Warn("Skipping outbound of unsupported type", "id", o.ID, "type", o.Type)
			continue
		}

		out := option.Outbound{}
		if err := applyMap(&out, outMap); err != nil {
			return err
		}
		opts.Outbounds = append(opts.Outbounds, out)
	}
	return nil
}

func memberTags(o profile.Outbound, ctx *BuildContext) []string {
	tags := make([]string, 0, len(o.Outbounds))
	for _, member := range o.Outbounds {
		if member.Type != profile.MemberBuiltIn {
			logger.Debug("Subscription member not rendered", "group", o.ID, "subscription", member.ID)
			continue
		}
		tags = append(tags, ctx.OutboundTag(member.ID))
	}
	return tags
}
