package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/samber/lo"
)

// Well-known group tags of the 1.8.x default profile, in both UI languages.
var (
	rejectGroupTags = []string{"🛑 全球拦截", "🛑 Block"}
	directGroupTags = []string{"🎯 全球直连", "🎯 Direct"}
)

// Built-in placeholder members that no longer exist as outbounds.
var placeholderMembers = []string{"block", "direct"}

// IsDirectGroupTag reports whether tag names the legacy global-direct group.
func IsDirectGroupTag(tag string) bool {
	return lo.Contains(directGroupTags, tag)
}

// IsRejectGroupTag reports whether tag names the legacy global-reject group.
func IsRejectGroupTag(tag string) bool {
	return lo.Contains(rejectGroupTags, tag)
}

// GroupResolution is the group list after the legacy reject/direct groups were
// detached. RejectID and DirectID keep the ids those groups had in the input,
// empty when the group was absent.
type GroupResolution struct {
	Groups   []legacy.ProxyGroup
	RejectID string
	DirectID string
}

// HasReject reports whether the input carried a reject group.
func (r GroupResolution) HasReject() bool { return r.RejectID != "" }

// HasDirect reports whether the input carried a direct group.
func (r GroupResolution) HasDirect() bool { return r.DirectID != "" }

// ResolveDeprecatedGroups drains the legacy reject and direct groups and drops
// every nested reference to them. The reject group is removed; the direct
// group stays, empty, to become the built-in direct outbound.
// The direct group is handled whether or not a reject group exists.
func ResolveDeprecatedGroups(groups []legacy.ProxyGroup) GroupResolution {
	out := cloneGroups(groups)
	res := GroupResolution{}

	if reject, ok := lo.Find(out, func(g legacy.ProxyGroup) bool { return IsRejectGroupTag(g.Tag) }); ok {
		res.RejectID = reject.ID
		out = detachGroup(out, reject.ID)
	}

	if direct, ok := lo.Find(out, func(g legacy.ProxyGroup) bool { return IsDirectGroupTag(g.Tag) }); ok {
		res.DirectID = direct.ID
		out = detachGroup(out, direct.ID)
	}

	if res.HasReject() {
		out = lo.Filter(out, func(g legacy.ProxyGroup, _ int) bool { return g.ID != res.RejectID })
		logger.Debug("Removed legacy reject group", "id", res.RejectID)
	}

	res.Groups = out
	return res
}

// detachGroup empties group id and removes it from every member list.
func detachGroup(groups []legacy.ProxyGroup, id string) []legacy.ProxyGroup {
	return lo.Map(groups, func(g legacy.ProxyGroup, _ int) legacy.ProxyGroup {
		if g.ID == id {
			g.Proxies = []legacy.Member{}
			g.Use = []string{}
			return g
		}
		g.Proxies = lo.Filter(g.Proxies, func(m legacy.Member, _ int) bool { return m.ID != id })
		return g
	})
}

func cloneGroups(groups []legacy.ProxyGroup) []legacy.ProxyGroup {
	return lo.Map(groups, func(g legacy.ProxyGroup, _ int) legacy.ProxyGroup {
		g.Proxies = append([]legacy.Member{}, g.Proxies...)
		g.Use = append([]string{}, g.Use...)
		return g
	})
}
