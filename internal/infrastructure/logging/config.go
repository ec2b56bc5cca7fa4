package logging

import (
	"fmt"
	"io"
	"os"
)

// LogFormat selects the output encoding of log entries.
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig holds the logging system configuration.
type LoggerConfig struct {
	Level       LogLevel
	Format      LogFormat
	Output      io.Writer
	Service     string
	Version     string
	Environment string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     "skin-price-service",
		Version:     "1.0.0",
		Environment: "development",
	}
}

// Validate checks the configuration for unusable values.
func (c *LoggerConfig) Validate() error {
	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("invalid log level: %q", c.Level)
	}

	switch c.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("invalid log format: %q", c.Format)
	}

	if c.Output == nil {
		return fmt.Errorf("output writer cannot be nil")
	}
	if c.Service == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	return nil
}

// LogLevelFromString converts a config string to a LogLevel, defaulting to
// INFO for unknown values.
func LogLevelFromString(level string) LogLevel {
	switch level {
	case "DEBUG", "debug":
		return LevelDebug
	case "INFO", "info":
		return LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogFormatFromString converts a config string to a LogFormat, defaulting to
// JSON for unknown values.
func LogFormatFromString(format string) LogFormat {
	switch format {
	case "text", "TEXT":
		return FormatText
	default:
		return FormatJSON
	}
}
