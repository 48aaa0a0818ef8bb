// Package logging builds the application logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a logger for the given mode. "production" gets JSON output;
// anything else gets the colored development console encoder.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build()
}

// Sync flushes any buffered log entries. Safe on a nil logger.
func Sync(log *zap.Logger) {
	if log != nil {
		_ = log.Sync()
	}
}
