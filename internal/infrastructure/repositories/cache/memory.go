package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"skin-price-service/internal/domain/interfaces"
)

// cacheItem is one stored value with its expiration time.
type cacheItem struct {
	value     string
	expiresAt time.Time
}

func (item *cacheItem) isExpired() bool {
	return time.Now().After(item.expiresAt)
}

// MemoryCache implements interfaces.Cache with an in-process map. Entries
// are replaced, never mutated in place.
type MemoryCache struct {
	items map[string]*cacheItem
	mu    sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() interfaces.Cache {
	return &MemoryCache{
		items: make(map[string]*cacheItem),
	}
}

// Get returns a value, or a miss error when absent or expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return "", ErrKeyNotFound
	}

	if item.isExpired() {
		// Drop the expired key so the map does not grow unbounded.
		_ = c.Delete(ctx, key)
		return "", ErrKeyExpired
	}

	return item.value, nil
}

// Set stores a value with a TTL, opportunistically sweeping expired entries.
func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, k)
		}
	}

	c.items[key] = &cacheItem{
		value:     value,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// Delete removes a single key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Clear removes every key with the given prefix.
func (c *MemoryCache) Clear(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

// Close is a no-op for the memory backend.
func (c *MemoryCache) Close() error {
	return nil
}

// Size returns the number of stored items, expired or not.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
