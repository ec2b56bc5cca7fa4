package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
)

// NewFromConfig creates a cache backend from the application configuration.
func NewFromConfig(cfg config.CacheConfig) (interfaces.Cache, error) {
	ctx := context.Background()

	switch cfg.Backend {
	case "memory":
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type": "memory",
		})
		return NewMemoryCache(), nil

	case "redis":
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"addr":     cfg.Redis.Addr,
			"database": cfg.Redis.DB,
		})
		return newRedisFromConfig(cfg.Redis)

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// newRedisFromConfig creates the client and verifies connectivity before
// handing it out.
func newRedisFromConfig(cfg config.RedisConfig) (interfaces.Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisCacheWithClient(rdb), nil
}
