package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to out. Console format wraps out in
// a zerolog.ConsoleWriter.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewWithFile logs to stderr and to a rotated file. The file always receives
// JSON lines. The returned closer releases the file.
func NewWithFile(cfg Config, rc RotatorConfig) (zerolog.Logger, io.Closer, error) {
	rotator, err := NewLogRotator(rc)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var stderr io.Writer = os.Stderr
	if cfg.Format == "console" {
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(stderr, rotator)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return logger, rotator, nil
}

// ParseLevel maps a level name to a zerolog level. Unknown names return
// fallback.
func ParseLevel(level string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	}
	return fallback
}

// NewFromConfigValues creates a logger from the raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	return New(configFromValues(level, format))
}

func configFromValues(level, format string) Config {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level, cfg.Level)
	switch format {
	case "json", "console":
		cfg.Format = format
	}
	return cfg
}

// NewFromEnv creates a logger based on environment variables
// DOCKYARD_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// DOCKYARD_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("DOCKYARD_LOG_LEVEL"), os.Getenv("DOCKYARD_LOG_FORMAT"))
}
