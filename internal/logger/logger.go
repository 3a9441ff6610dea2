package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger for prod-like environments and a
// colored console logger otherwise.
func New(appEnv string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(appEnv)) {
	case "prod", "production", "release":
		return zap.NewProduction()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
}
