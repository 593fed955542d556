// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits before the
// monitor loop starts.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrTelegramTokenRequired is returned when TELEGRAM_TOKEN is not set.
	ErrTelegramTokenRequired = errors.New("config: TELEGRAM_TOKEN is required")
	// ErrTelegramChatIDRequired is returned when TELEGRAM_CHAT_ID is not set.
	ErrTelegramChatIDRequired = errors.New("config: TELEGRAM_CHAT_ID is required")
	// ErrBadCheckInterval is returned when CHECK_INTERVAL is not positive.
	ErrBadCheckInterval = errors.New("config: CHECK_INTERVAL must be a positive number of seconds")
)

// Config holds all runtime configuration for the monitor service.
type Config struct {
	// Store settings. Scheme selects the backend: redis:// or postgres://.
	StoreURL string `env:"STORE_URL, default=redis://localhost:6379"`

	// Notifier settings
	TelegramToken  string `env:"TELEGRAM_TOKEN, required"`
	TelegramChatID string `env:"TELEGRAM_CHAT_ID, required"`

	// Poll interval between cycles, in seconds.
	CheckInterval int `env:"CHECK_INTERVAL, default=300"`

	// DefaultSearches seeds the registry when no searches are persisted.
	// Each entry is "position" or "position:city".
	DefaultSearches []string `env:"DEFAULT_SEARCHES, delimiter=;, default=DevOps Engineer:Wroclaw;Cloud Engineer:Warszawa;DevOps Engineer"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info"`  // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		if strings.Contains(err.Error(), "TELEGRAM_TOKEN") {
			return nil, ErrTelegramTokenRequired
		}
		if strings.Contains(err.Error(), "TELEGRAM_CHAT_ID") {
			return nil, ErrTelegramChatIDRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return ErrTelegramTokenRequired
	}
	if c.TelegramChatID == "" {
		return ErrTelegramChatIDRequired
	}
	if c.CheckInterval < 1 {
		return ErrBadCheckInterval
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration. JSON
// output for production, human-readable text otherwise.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
