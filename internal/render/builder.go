// Package render turns a migrated profile into sing-box options, the same
// way the GUI generates the engine config, so a migration can be checked
// against the engine's own option decoder.
package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/sagernet/sing-box/include"
	"github.com/sagernet/sing-box/option"
	singboxjson "github.com/sagernet/sing/common/json"
)

// Builder 配置构建器
// 支持链式调用添加模块，灵活组装配置
type Builder struct {
	modules []Module
	ctx     *BuildContext
}

// Build renders p with the default module set.
func Build(p *profile.Profile) (*option.Options, error) {
	b := NewBuilder(p)
	for _, m := range DefaultModules() {
		b.With(m)
	}
	return b.Build()
}

func NewBuilder(p *profile.Profile) *Builder {
	return &Builder{
		modules: []Module{},
		ctx:     NewBuildContext(p),
	}
}

// With 添加一个模块（链式调用）
func (b *Builder) With(m Module) *Builder {
	b.modules = append(b.modules, m)
	return b
}

// Build 依次应用各模块
func (b *Builder) Build() (*option.Options, error) {
	result := &option.Options{}
	for _, m := range b.modules {
		logger.Debug("Applying render module", "name", m.Name())
		if err := m.Apply(result, b.ctx); err != nil {
			return nil, fmt.Errorf("module %s failed: %w", m.Name(), err)
		}
	}
	return result, nil
}

// DefaultModules 返回完整的模块组合
func DefaultModules() []Module {
	return []Module{
		&LogModule{},
		&ExperimentalModule{},
		&InboundModule{},
		&OutboundModule{},
		&RouteModule{},
		&DNSModule{},
	}
}

// Marshal encodes options as indented JSON with sing-box's own encoder.
func Marshal(opts *option.Options) ([]byte, error) {
	data, err := singboxjson.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	// Re-marshal for pretty print
	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		return nil, fmt.Errorf("failed to unmarshal for pretty print: %w", err)
	}
	data, err = json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal indent: %w", err)
	}
	return append(data, '\n'), nil
}

// Load decodes a rendered config back through the engine's registries.
func Load(ctx context.Context, data []byte) (*option.Options, error) {
	var opts option.Options
	if err := singboxjson.UnmarshalContext(include.Context(ctx), data, &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &opts, nil
}

// applyMap 将 map 配置应用到 option 结构体
// 必须使用 include.Context，否则 inbound/outbound/dns server 的具体类型无法解析
func applyMap(target any, m map[string]any) error {
	data, err := singboxjson.Marshal(m)
	if err != nil {
		return err
	}
	ctx := include.Context(context.Background())
	return singboxjson.UnmarshalContext(ctx, data, target)
}
