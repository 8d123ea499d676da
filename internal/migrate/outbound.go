package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	C "github.com/sagernet/sing-box/constant"
	"github.com/samber/lo"
)

// DefaultURLTestInterval is the health-check cadence every group gets.
const DefaultURLTestInterval = "3m"

// TransformOutbounds converts selector and urltest groups into outbounds.
// Other group types have no 1.9 counterpart and are skipped.
func TransformOutbounds(groups []legacy.ProxyGroup, subs SubscriptionLookup) []profile.Outbound {
	if subs == nil {
		subs = emptyLookup{}
	}

	return lo.FlatMap(groups, func(g legacy.ProxyGroup, _ int) []profile.Outbound {
		if g.Type != C.TypeSelector && g.Type != C.TypeURLTest {
			logger.Debug("Skipping group of unsupported type", "id", g.ID, "type", g.Type)
			return nil
		}

		out := profile.Outbound{
			ID:                        g.ID,
			Tag:                       g.Tag,
			Type:                      g.Type,
			Outbounds:                 append(memberOutbounds(g.Proxies), useOutbounds(g, subs)...),
			InterruptExistConnections: true,
			Interval:                  DefaultURLTestInterval,
		}
		if IsDirectGroupTag(g.Tag) {
			out.Type = C.TypeDirect
		}
		if g.Type == C.TypeURLTest {
			out.URL = g.URL
			out.Tolerance = g.Tolerance
			out.Include = g.Filter
		}
		return []profile.Outbound{out}
	})
}

func memberOutbounds(members []legacy.Member) []profile.Member {
	return lo.FilterMap(members, func(m legacy.Member, _ int) (profile.Member, bool) {
		if lo.Contains(placeholderMembers, m.Tag) {
			return profile.Member{}, false
		}
		if m.Type == legacy.MemberTypeBuiltIn {
			return profile.Member{ID: m.ID, Tag: m.Tag, Type: profile.MemberBuiltIn}, true
		}
		// 订阅节点：Type 字段里存的是订阅 id
		return profile.Member{ID: m.Type, Tag: m.Tag, Type: profile.MemberSubscription}, true
	})
}

func useOutbounds(g legacy.ProxyGroup, subs SubscriptionLookup) []profile.Member {
	return lo.FilterMap(g.Use, func(id string, _ int) (profile.Member, bool) {
		sub, ok := subs.SubscriptionByID(id)
		if !ok {
			logger.Debug("Dropping unknown subscription reference", "group", g.ID, "subscription", id)
			return profile.Member{}, false
		}
		return profile.Member{ID: sub.ID, Tag: sub.Name, Type: profile.MemberSubscription}, true
	})
}
