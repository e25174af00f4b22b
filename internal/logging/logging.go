// Package logging builds the zap logger shared by every component.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the [log] configuration section.
type Config struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`

	// Output lists sinks: stdout, stderr or file paths
	Output []string `mapstructure:"output"`
}

// DefaultConfig logs info and above as JSON to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: []string{"stderr"}}
}

// Validate checks level and format
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q (valid options: json, console)", c.Format)
	}
	return nil
}

// New builds a logger from cfg. JSON output uses the production encoder,
// console output the development one.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(cfg.Output) > 0 {
		zc.OutputPaths = cfg.Output
	}
	zc.InitialFields = map[string]interface{}{
		"service": "nftized",
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
