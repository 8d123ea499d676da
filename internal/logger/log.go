package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// Config 日志配置
type Config struct {
	Debug    bool
	FilePath string // 为空时只输出到 stderr
}

// Setup 初始化全局 logger，只生效一次
func Setup(cfg Config) {
	once.Do(func() {
		ops := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		if cfg.Debug {
			ops.Level = slog.LevelDebug
		}

		// stdout 留给迁移结果
		var out io.Writer = os.Stderr
		if cfg.FilePath != "" {
			f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				out = io.MultiWriter(os.Stderr, f)
			}
		}

		instance = slog.New(slog.NewTextHandler(out, ops))
		slog.SetDefault(instance)
	})
}

func get() *slog.Logger {
	if instance == nil {
		Setup(Config{})
	}
	return instance
}

func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }
func Debug(msg string, args ...any) { get().Debug(msg, args...) }
