// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Cache backend selectors for INTENT_CACHE.
const (
	IntentCacheMemory = "mem"
	IntentCacheRedis  = "redis"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`
	// RedisAddr is the Redis endpoint for character documents (and the
	// intent cache when INTENT_CACHE=redis).
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	// IntentCache selects the intent cache backend: mem or redis.
	IntentCache string `env:"INTENT_CACHE" envDefault:"mem"`
	// IntentCacheSize bounds the in-memory intent cache.
	IntentCacheSize int `env:"INTENT_CACHE_SIZE" envDefault:"1024"`
	// ContentPath points at a YAML content file; empty means the
	// compiled-in default tables.
	ContentPath string `env:"CONTENT_PATH"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch c.IntentCache {
	case IntentCacheMemory, IntentCacheRedis:
	default:
		return fmt.Errorf("INTENT_CACHE must be %q or %q, got %q",
			IntentCacheMemory, IntentCacheRedis, c.IntentCache)
	}
	if c.IntentCacheSize < 0 {
		return fmt.Errorf("INTENT_CACHE_SIZE must not be negative, got %d", c.IntentCacheSize)
	}
	return nil
}
