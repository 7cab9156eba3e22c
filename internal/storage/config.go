package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// UserConfigFile is the default name of the user configuration file.
	UserConfigFile = ".worldwise.yaml"

	// Default configuration values
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 10 * time.Second
	DefaultLocale    = "en"
	DefaultAddr      = ":8000"
	DefaultRateLimit = 20.0
	DefaultBurst     = 40
)

// DefaultAllowedOrigins are the browser origins the local server accepts by default.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config represents user configuration from .worldwise.yaml.
// This file is user-managed and never written by worldwise.
// Environment variables override file values.
type Config struct {
	// BaseURL is the root of the remote cities API.
	BaseURL string `yaml:"base_url" env:"WORLDWISE_BASE_URL"`

	// Timeout bounds each remote call.
	Timeout time.Duration `yaml:"timeout" env:"WORLDWISE_TIMEOUT"`

	// Locale selects date and number formatting (e.g. "en", "pt-BR").
	Locale string `yaml:"locale" env:"WORLDWISE_LOCALE"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures `worldwise serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr" env:"WORLDWISE_ADDR"`
	RateLimit      float64  `yaml:"rate_limit" env:"WORLDWISE_RATE_LIMIT"`
	Burst          int      `yaml:"burst" env:"WORLDWISE_BURST"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"WORLDWISE_ALLOWED_ORIGINS" envSeparator:","`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Locale:  DefaultLocale,
		Server: ServerConfig{
			Addr:           DefaultAddr,
			RateLimit:      DefaultRateLimit,
			Burst:          DefaultBurst,
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		},
	}
}

// LoadConfig loads the config file at path if it exists, otherwise starts
// from defaults. Partial config files are merged with defaults, and
// WORLDWISE_* environment variables are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file - keep defaults
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst <= 0 {
		return fmt.Errorf("server.burst must be positive when rate_limit is set")
	}
	return nil
}
