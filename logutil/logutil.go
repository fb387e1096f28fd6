package logutil

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/config"
)

var globalLogger atomic.Pointer[zap.Logger]

func init() {
	globalLogger.Store(zap.NewNop())
}

// GetGlobalLogger returns the process logger. It is a no-op logger until
// SetGlobalLogger is called.
func GetGlobalLogger() *zap.Logger {
	return globalLogger.Load()
}

func SetGlobalLogger(l *zap.Logger) {
	common.Assert(l != nil, "nil logger")
	globalLogger.Store(l)
}

// NewLogger builds a zap logger writing to stderr with the configured level and encoding.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, common.NewPlanError(common.InvalidConfigError, "log.level: %v", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Format
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	if cfg.Format == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zc.Build()
}
