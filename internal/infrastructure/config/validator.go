package config

import (
	"fmt"
)

var validBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Validate checks a loaded configuration for values the service cannot run
// with. It fails fast at startup instead of surfacing misconfiguration as
// runtime errors.
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}

	if !validBackends[cfg.Cache.Backend] {
		return fmt.Errorf("cache.backend must be memory or redis, got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}

	if !validBackends[cfg.History.Backend] {
		return fmt.Errorf("history.backend must be memory or redis, got %q", cfg.History.Backend)
	}
	if cfg.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", cfg.History.MaxEntries)
	}
	if cfg.History.Backend == "redis" && cfg.History.Redis.Addr == "" {
		return fmt.Errorf("history.redis.addr is required for the redis backend")
	}

	if cfg.Catalog.Dir == "" {
		return fmt.Errorf("catalog.dir cannot be empty")
	}

	if cfg.Steam.BaseURL == "" {
		return fmt.Errorf("steam.base_url cannot be empty")
	}
	if cfg.Steam.Timeout <= 0 {
		return fmt.Errorf("steam.timeout must be positive, got %s", cfg.Steam.Timeout)
	}
	if cfg.Steam.MaxRetries < 1 {
		return fmt.Errorf("steam.max_retries must be at least 1, got %d", cfg.Steam.MaxRetries)
	}

	if cfg.Rates.File == "" {
		return fmt.Errorf("rates.file cannot be empty")
	}
	if cfg.Rates.RefreshEnabled && len(cfg.Rates.Endpoints) == 0 {
		return fmt.Errorf("rates.endpoints cannot be empty when refresh is enabled")
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Capacity <= 0 {
			return fmt.Errorf("rate_limit.capacity must be positive, got %d", cfg.RateLimit.Capacity)
		}
		if cfg.RateLimit.RefillRate <= 0 {
			return fmt.Errorf("rate_limit.refill_rate must be positive, got %d", cfg.RateLimit.RefillRate)
		}
	}

	if cfg.Batch.MaxItems <= 0 {
		return fmt.Errorf("batch.max_items must be positive, got %d", cfg.Batch.MaxItems)
	}
	if cfg.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", cfg.Batch.Workers)
	}

	return nil
}
