package render

import (
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/sagernet/sing-box/option"
)

// Module 配置模块接口
// 每个模块负责配置的一个部分
type Module interface {
	// Name 返回模块名称，用于日志和调试
	Name() string
	// Apply 将模块的配置应用到 opts 上
	Apply(opts *option.Options, ctx *BuildContext) error
}

// BuildContext 构建上下文，模块间共享数据
// profile 里的引用都是 id，sing-box 只认 tag
type BuildContext struct {
	Profile *profile.Profile

	outboundTags map[string]string
	dnsTags      map[string]string
	ruleSetTags  map[string]string
}

func NewBuildContext(p *profile.Profile) *BuildContext {
	ctx := &BuildContext{
		Profile:      p,
		outboundTags: make(map[string]string, len(p.Outbounds)),
		dnsTags:      make(map[string]string, len(p.DNS.Servers)),
		ruleSetTags:  make(map[string]string, len(p.Route.RuleSet)),
	}
	for _, o := range p.Outbounds {
		ctx.outboundTags[o.ID] = o.Tag
	}
	for _, s := range p.DNS.Servers {
		ctx.dnsTags[s.ID] = s.Tag
	}
	for _, rs := range p.Route.RuleSet {
		ctx.ruleSetTags[rs.ID] = rs.Tag
	}
	return ctx
}

// OutboundTag maps an outbound id to its tag; unknown ids pass through.
func (c *BuildContext) OutboundTag(id string) string {
	return lookupTag(c.outboundTags, id)
}

// DNSServerTag maps a DNS server id to its tag; unknown ids pass through.
func (c *BuildContext) DNSServerTag(id string) string {
	return lookupTag(c.dnsTags, id)
}

// RuleSetTag maps a rule-set id to its tag; unknown ids pass through.
func (c *BuildContext) RuleSetTag(id string) string {
	return lookupTag(c.ruleSetTags, id)
}

func lookupTag(tags map[string]string, id string) string {
	if tag, ok := tags[id]; ok && tag != "" {
		return tag
	}
	return id
}
