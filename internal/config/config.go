// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/credvault/credvault/internal/secret"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL    string `env:"DATABASE_URL,required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	// View cache (Redis). Empty disables caching.
	RedisURL         string        `env:"REDIS_URL"`
	ViewCacheTTL     time.Duration `env:"VIEW_CACHE_TTL" envDefault:"1h"`
	NegativeCacheTTL time.Duration `env:"NEGATIVE_CACHE_TTL" envDefault:"30s"`

	// Password hashing: argon2id or bcrypt
	HashAlgorithm string `env:"HASH_ALGORITHM" envDefault:"argon2id"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether a Redis view cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	switch c.HashAlgorithm {
	case secret.AlgorithmArgon2id, secret.AlgorithmBcrypt:
	default:
		return fmt.Errorf("invalid HASH_ALGORITHM %q: must be %s or %s",
			c.HashAlgorithm, secret.AlgorithmArgon2id, secret.AlgorithmBcrypt)
	}

	if c.AppPort <= 0 || c.AppPort > 65535 {
		return fmt.Errorf("invalid APP_PORT %d", c.AppPort)
	}

	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("invalid MAX_REQUEST_BODY_SIZE %d", c.MaxRequestBodySize)
	}

	return nil
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
