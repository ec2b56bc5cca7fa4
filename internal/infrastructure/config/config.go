package config

import (
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Steam   SteamConfig   `yaml:"steam" mapstructure:"steam"`
	Rates   RatesConfig   `yaml:"rates" mapstructure:"rates"`

	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig contains price cache configuration.
type CacheConfig struct {
	Backend string        `yaml:"backend" mapstructure:"backend"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// HistoryConfig contains price history store configuration.
type HistoryConfig struct {
	Backend    string      `yaml:"backend" mapstructure:"backend"`
	MaxEntries int         `yaml:"max_entries" mapstructure:"max_entries"`
	Redis      RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// CatalogConfig points at the static weapon/skin catalog.
type CatalogConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// SteamConfig configures the fallback marketplace price fetch.
type SteamConfig struct {
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	// RequestsPerSecond bounds outbound calls to the marketplace API.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// RatesConfig configures the exchange rate source and its refresher.
type RatesConfig struct {
	File           string        `yaml:"file" mapstructure:"file"`
	RefreshEnabled bool          `yaml:"refresh_enabled" mapstructure:"refresh_enabled"`
	RefreshCron    string        `yaml:"refresh_cron" mapstructure:"refresh_cron"`
	Endpoints      []string      `yaml:"endpoints" mapstructure:"endpoints"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// RateLimitConfig contains inbound rate limiting configuration.
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// LoggingConfig contains logging system configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchConfig bounds batch resolution requests.
type BatchConfig struct {
	MaxItems int `yaml:"max_items" mapstructure:"max_items"`
	Workers  int `yaml:"workers" mapstructure:"workers"`
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     600 * time.Second,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		History: HistoryConfig{
			Backend:    "memory",
			MaxEntries: 100,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       1,
			},
		},
		Catalog: CatalogConfig{
			Dir: "weapons",
		},
		Steam: SteamConfig{
			BaseURL:           "https://steamcommunity.com",
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			RequestsPerSecond: 5,
		},
		Rates: RatesConfig{
			File:           "data/exchange_rates.json",
			RefreshEnabled: true,
			RefreshCron:    "@daily",
			Endpoints: []string{
				"https://api.exchangerate.host/latest?base=USD",
				"https://api.exchangerate-api.com/v4/latest/USD",
			},
			RequestTimeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   100,
			RefillRate: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Batch: BatchConfig{
			MaxItems: 100,
			Workers:  8,
		},
	}
}
