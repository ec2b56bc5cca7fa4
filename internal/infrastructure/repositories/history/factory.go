package history

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
)

// NewFromConfig creates a history store from the application configuration.
func NewFromConfig(cfg config.HistoryConfig) (interfaces.HistoryStore, error) {
	ctx := context.Background()

	switch cfg.Backend {
	case "memory":
		logging.Info(ctx, "Creating memory history store", logging.Fields{
			"type":        "memory",
			"max_entries": cfg.MaxEntries,
		})
		return NewMemoryStore(cfg.MaxEntries), nil

	case "redis":
		logging.Info(ctx, "Creating Redis history store", logging.Fields{
			"type":        "redis",
			"addr":        cfg.Redis.Addr,
			"database":    cfg.Redis.DB,
			"max_entries": cfg.MaxEntries,
		})

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}

		return NewRedisStore(rdb, cfg.MaxEntries), nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s", cfg.Backend)
	}
}
