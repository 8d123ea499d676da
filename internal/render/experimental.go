package render

import (
	"github.com/sagernet/sing-box/option"
)

// LogModule 日志模块
type LogModule struct{}

func (m *LogModule) Name() string {
	return "log"
}

func (m *LogModule) Apply(opts *option.Options, ctx *BuildContext) error {
	l := ctx.Profile.Log
	opts.Log = &option.LogOptions{
		Disabled:  l.Disabled,
		Level:     l.Level,
		Output:    l.Output,
		Timestamp: l.Timestamp,
	}
	return nil
}

// ExperimentalModule 实验性模块
// 负责配置 Clash API 和缓存
type ExperimentalModule struct{}

func (m *ExperimentalModule) Name() string {
	return "experimental"
}

func (m *ExperimentalModule) Apply(opts *option.Options, ctx *BuildContext) error {
	api := ctx.Profile.Experimental.ClashAPI
	cache := ctx.Profile.Experimental.CacheFile

	clashAPI := map[string]any{
		"external_controller":                  api.ExternalController,
		"external_ui":                          api.ExternalUI,
		"external_ui_download_url":             api.ExternalUIDownloadURL,
		"secret":                               api.Secret,
		"default_mode":                         api.DefaultMode,
		"access_control_allow_origin":          api.AccessControlAllowOrigin,
		"access_control_allow_private_network": api.AccessControlAllowPrivateNetwork,
	}
	if api.ExternalUIDownloadDetour != "" {
		clashAPI["external_ui_download_detour"] = ctx.OutboundTag(api.ExternalUIDownloadDetour)
	}

	cacheFile := map[string]any{
		"enabled":      cache.Enabled,
		"path":         cache.Path,
		"cache_id":     cache.CacheID,
		"store_fakeip": cache.StoreFakeIP,
		"store_rdrc":   cache.StoreRDRC,
	}
	if cache.RDRCTimeout != "" {
		cacheFile["rdrc_timeout"] = cache.RDRCTimeout
	}

	var experimental option.ExperimentalOptions
	if err := applyMap(&experimental, map[string]any{
		"clash_api":  clashAPI,
		"cache_file": cacheFile,
	}); err != nil {
		return err
	}
	opts.Experimental = &experimental
	return nil
}
