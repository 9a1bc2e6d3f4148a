package logger

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "storefront-order-core"

var current atomic.Pointer[zap.Logger]

// Init builds the global logger for env. An empty level keeps the
// environment's default (info in production, debug otherwise).
func Init(env, level string) error {
	cfg := newConfig(env)
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	built, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	current.Store(built.With(zap.String("service", serviceName), zap.String("env", env)))
	return nil
}

func newConfig(env string) zap.Config {
	if env != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// L returns the global logger, building a default one from APP_ENV on first use.
func L() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	if err := Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL")); err != nil {
		current.CompareAndSwap(nil, zap.NewExample())
	}
	return current.Load()
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := current.Swap(l)
	return func() { current.Store(prev) }
}

func Sync() {
	if l := current.Load(); l != nil {
		_ = l.Sync()
	}
}
