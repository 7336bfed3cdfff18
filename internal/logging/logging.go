// Package logging builds the job logger from the run's logging
// sub-config. Distributed launches set RANK in the environment; the
// default config tags every entry with it, and the no-rank variant
// (logging/custom-no-rank.yaml) drops the field for single-process runs.
package logging

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds job-logging settings. It is composed into the run
// configuration like any other sub-config layer.
type Config struct {
	Level    string `yaml:"level" mapstructure:"level"`         // debug, info, warn, error
	Format   string `yaml:"format" mapstructure:"format"`       // "console" or "json"
	WithRank bool   `yaml:"with_rank" mapstructure:"with_rank"` // tag entries with the process rank
}

// Default returns the standard job-logging configuration.
func Default() Config {
	return Config{
		Level:    "info",
		Format:   "console",
		WithRank: true,
	}
}

// Build constructs a zap logger from the config.
func (c Config) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	var encoderCfg zapcore.EncoderConfig
	switch c.Format {
	case "console":
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	case "json":
		encoderCfg = zap.NewProductionEncoderConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.Format)
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         c.Format,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if c.WithRank {
		logger = logger.With(zap.Int("rank", RankFromEnv()))
	}

	return logger, nil
}

// RankFromEnv reads the process rank from the RANK environment variable.
// Returns 0 when unset or unparsable, matching single-process launches.
func RankFromEnv() int {
	return cast.ToInt(os.Getenv("RANK"))
}
