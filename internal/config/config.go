// Package config loads the service configuration: built-in defaults, then an
// optional YAML file, then BOOKSHELF_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvAddr            = "BOOKSHELF_ADDR"
	EnvLogLevel        = "BOOKSHELF_LOG_LEVEL"
	EnvLogFormat       = "BOOKSHELF_LOG_FORMAT"
	EnvTraceOutput     = "BOOKSHELF_TRACE_OUTPUT"
	EnvShutdownTimeout = "BOOKSHELF_SHUTDOWN_TIMEOUT"
)

// Config is the runtime configuration of the service.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is json or text.
	LogFormat string `yaml:"log_format"`
	// TraceOutput enables span export: "stdout" or a file path. Empty disables tracing.
	TraceOutput string `yaml:"trace_output"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            ":3333",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Addr = getenv(EnvAddr, cfg.Addr)
	cfg.LogLevel = getenv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getenv(EnvLogFormat, cfg.LogFormat)
	cfg.TraceOutput = getenv(EnvTraceOutput, cfg.TraceOutput)
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q (want json or text)", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// NewLogger builds the structured logger described by the configuration.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch c.LogFormat {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
