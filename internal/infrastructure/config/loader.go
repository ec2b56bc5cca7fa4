package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader instance.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load reads configuration from config files and environment variables,
// layered over the defaults.
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		// Missing config.yaml is fine: env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setupViper configures file search paths and environment binding.
func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/skin-price")

	l.v.AutomaticEnv()
	l.v.SetEnvPrefix("SKIN_PRICE") // SKIN_PRICE_SERVER_PORT etc.
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.bindEnvVars()
}

// bindEnvVars maps short-form environment variables kept for compatibility
// with the deployment scripts.
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":          "PORT",
		"cache.backend":        "CACHE_BACKEND",
		"cache.ttl":            "CACHE_TTL",
		"cache.redis.addr":     "REDIS_ADDR",
		"cache.redis.password": "REDIS_PASSWORD",
		"cache.redis.db":       "REDIS_DB",
		"history.backend":      "HISTORY_BACKEND",
		"history.redis.addr":   "HISTORY_REDIS_ADDR",
		"catalog.dir":          "CATALOG_DIR",
		"steam.base_url":       "STEAM_BASE_URL",
		"steam.timeout":        "STEAM_TIMEOUT",
		"rates.file":           "EXCHANGE_RATES_FILE",
		"rates.refresh_enabled": "RATES_REFRESH_ENABLED",
		"logging.level":        "LOG_LEVEL",
		"logging.format":       "LOG_FORMAT",
		"rate_limit.enabled":   "RATE_LIMIT_ENABLED",
		"rate_limit.capacity":  "RATE_LIMIT_CAPACITY",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envVar)
	}
}

// Load is a convenience wrapper around a fresh Loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}
