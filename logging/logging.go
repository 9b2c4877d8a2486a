package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewLogger creates a new slog.Logger writing to w. The output is JSON
// unless Format is "text". The level is parsed from the config; defaults
// to INFO if invalid or empty.
func NewLogger(loggerConfig LoggerConfig, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(loggerConfig.Level)
	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}

	if strings.EqualFold(loggerConfig.Format, "text") {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

// LoadConfig reads a LoggerConfig from the section at path. A missing
// section yields the zero LoggerConfig.
func LoadConfig(cfg *config.Config, path string) (LoggerConfig, error) {
	var loggerConfig LoggerConfig

	err := config.Decode(cfg, path, &loggerConfig)
	if errors.Is(err, config.ErrMissing) {
		return LoggerConfig{}, nil
	}

	if err != nil {
		return LoggerConfig{}, fmt.Errorf("logging section: %w", err)
	}

	return loggerConfig, nil
}

// ParseLevel maps a level name to a slog.Level. Unknown or empty names
// yield INFO and false.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
