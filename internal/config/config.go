// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// SupplierBaseURL is where the two supplier endpoints live. Empty means
	// the service's own address, so the bundled mocks act as the suppliers.
	SupplierBaseURL string        `env:"SUPPLIER_BASE_URL"`
	SupplierTimeout time.Duration `env:"SUPPLIER_TIMEOUT" envDefault:"3s"`

	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	RateLimit  int           `env:"RATE_LIMIT" envDefault:"30"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"60s"`

	// RedisAddr selects the Redis store when set; empty runs in-memory.
	RedisAddr string `env:"REDIS_ADDR"`

	// Aviationstack credentials for mock supplier A's real-upstream mode.
	AviationstackKey  string `env:"AVIATIONSTACK_KEY"`
	AviationstackBase string `env:"AVIATIONSTACK_BASE" envDefault:"https://api.aviationstack.com/v1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.SupplierBaseURL == "" {
		cfg.SupplierBaseURL = "http://127.0.0.1:" + cfg.Port
	}
	return cfg, nil
}
