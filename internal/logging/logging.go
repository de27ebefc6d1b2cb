package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvLogLevel = "SHIPTRACKER_LOG_LEVEL"

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// New builds the process logger. The level given by SHIPTRACKER_LOG_LEVEL, when valid, wins over level.
// An "off" level returns a no-op logger.
func New(level, mode string) (*zap.Logger, error) {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		level = v
	}
	lvl, disabled, ok := parseLevel(level)
	if disabled {
		return zap.NewNop(), nil
	}
	if !ok {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", ModeProduction:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func parseLevel(raw string) (level zapcore.Level, disabled bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace", "debug":
		return zapcore.DebugLevel, false, true
	case "info":
		return zapcore.InfoLevel, false, true
	case "warn", "warning":
		return zapcore.WarnLevel, false, true
	case "error":
		return zapcore.ErrorLevel, false, true
	case "disabled", "off", "none":
		return zapcore.InfoLevel, true, true
	default:
		return zapcore.InfoLevel, false, false
	}
}
