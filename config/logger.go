package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. levelOverride, typically the
// --log-level flag, wins over logging.level.
func NewLogger(lc LoggingConfig, levelOverride string) (*zap.Logger, error) {
	name := lc.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	cfg, err := baseLoggerConfig(lc.Format)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lc.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(lc.OutputFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{lc.OutputFile}
		cfg.ErrorOutputPaths = []string{lc.OutputFile}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("loancalc"), nil
}

// baseLoggerConfig picks the zap preset for a logging.format value. Console
// output is for people at a terminal, json for log shippers.
func baseLoggerConfig(format string) (zap.Config, error) {
	switch format {
	case "console":
		return zap.NewDevelopmentConfig(), nil
	case "json", "":
		return zap.NewProductionConfig(), nil
	}
	return zap.Config{}, fmt.Errorf("invalid log format %q", format)
}
