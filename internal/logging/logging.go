// Package logging builds the single *zap.Logger instance used as the
// injected diagnostic sink for every engine entry point. There is no
// package-level singleton: cmd/vstol builds one logger at startup from the
// root command's --verbose flag and passes it down explicitly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger writing human-readable console output to
// stderr. verbose raises the level from Info to Debug.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want diagnostics.
func Nop() *zap.Logger {
	return zap.NewNop()
}
