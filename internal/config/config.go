// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Loaders accept context.Context as the first parameter.
// - Errors wrap this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stiyes/fpvforge/internal/domain/preset"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite file holding the catalog and saved builds.
	DatabasePath string `koanf:"database_path"`

	// SeedPath optionally points at a YAML/JSON catalog loaded into an
	// empty database. The bundled catalog is used when unset.
	SeedPath string `koanf:"seed_path"`

	// CacheTTLMS bounds the age of the in-memory catalog snapshot.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// MaxPageSize caps GET /components?page_size.
	MaxPageSize int `koanf:"max_page_size"`

	// RateLimitRPS and RateLimitBurst configure the per-client limiter.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// Presets adds or overrides named catalog presets.
	Presets map[string]preset.Preset `koanf:"presets"`
}

// New creates a Config populated with defaults. Context is accepted first
// to follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DatabasePath:      "fpvforge.db",
		CacheTTLMS:        int(time.Hour / time.Millisecond),
		MaxPageSize:       100,
		RateLimitRPS:      20,
		RateLimitBurst:    40,
		ShutdownTimeoutMS: 10_000,
	}
}

// CacheTTL returns CacheTTLMS as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatabasePath) == "":
		return fmt.Errorf("%w: database_path must not be empty", ErrInvalidConfig)
	case c.CacheTTLMS <= 0:
		return fmt.Errorf("%w: cache_ttl_ms must be positive", ErrInvalidConfig)
	case c.MaxPageSize <= 0:
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0:
		return fmt.Errorf("%w: rate_limit_rps must not be negative", ErrInvalidConfig)
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate_limit_burst must be at least 1", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	for name, p := range c.Presets {
		if p.Budget < 0 || p.Multiplier < 0 {
			return fmt.Errorf("%w: preset %q has a negative budget or multiplier", ErrInvalidConfig, name)
		}
	}
	return nil
}
