// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings of the calculator service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"CALC_ADDR" envDefault:":8080"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"CALC_LOG_LEVEL" envDefault:"info"`
	// SessionTTL is how long an idle session is kept. Zero disables expiry.
	SessionTTL time.Duration `env:"CALC_SESSION_TTL" envDefault:"30m"`
	// SweepInterval is how often idle sessions are looked for.
	SweepInterval time.Duration `env:"CALC_SWEEP_INTERVAL" envDefault:"1m"`
	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int `env:"CALC_MAX_SESSIONS" envDefault:"10000"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `env:"CALC_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// Telemetry enables the OTLP trace, metric and log exporters.
	Telemetry bool `env:"CALC_TELEMETRY_ENABLED" envDefault:"true"`
}

// Load reads .env when present (process variables take precedence) and
// parses the environment into a Config.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that parse but make no sense.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("CALC_ADDR must not be empty")
	case c.SessionTTL < 0:
		return fmt.Errorf("CALC_SESSION_TTL must not be negative, got %s", c.SessionTTL)
	case c.SweepInterval <= 0:
		return fmt.Errorf("CALC_SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	case c.MaxSessions < 0:
		return fmt.Errorf("CALC_MAX_SESSIONS must not be negative, got %d", c.MaxSessions)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("CALC_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}
