package cache

import (
	"context"
	"encoding/json"
	"time"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
)

// resultKeyPrefix namespaces resolved-price entries inside the shared
// cache backend.
const resultKeyPrefix = "price:"

// ResultCache stores fully resolved PriceResults in any interfaces.Cache
// under the key price:<item>||<wear>||<currency> with a fixed TTL.
type ResultCache struct {
	backend interfaces.Cache
	ttl     time.Duration
}

// NewResultCache creates a new adapter over a cache backend.
func NewResultCache(backend interfaces.Cache, ttl time.Duration) *ResultCache {
	return &ResultCache{
		backend: backend,
		ttl:     ttl,
	}
}

func (c *ResultCache) cacheKey(key entities.ItemKey) string {
	return resultKeyPrefix + key.String()
}

// Get returns the cached result for a key, or false on any miss. A corrupt
// stored value is treated as a miss, never as a failure.
func (c *ResultCache) Get(ctx context.Context, key entities.ItemKey) (*entities.PriceResult, bool) {
	raw, err := c.backend.Get(ctx, c.cacheKey(key))
	if err != nil {
		if !IsMiss(err) {
			logging.WarnWithError(ctx, "Cache read failed, treating as miss", err, logging.Fields{
				logging.FieldCacheKey: c.cacheKey(key),
			})
		}
		return nil, false
	}

	var result entities.PriceResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logging.WarnWithError(ctx, "Corrupt cache entry, treating as miss", err, logging.Fields{
			logging.FieldCacheKey: c.cacheKey(key),
		})
		return nil, false
	}
	return &result, true
}

// Set stores a result, refreshing the TTL window unconditionally.
func (c *ResultCache) Set(ctx context.Context, key entities.ItemKey, result *entities.PriceResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, c.cacheKey(key), string(raw), c.ttl)
}

// Invalidate removes the entry for one key.
func (c *ResultCache) Invalidate(ctx context.Context, key entities.ItemKey) error {
	return c.backend.Delete(ctx, c.cacheKey(key))
}

// InvalidateAll removes every resolved-price entry.
func (c *ResultCache) InvalidateAll(ctx context.Context) error {
	return c.backend.Clear(ctx, resultKeyPrefix)
}

// TTL returns the configured entry lifetime.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
