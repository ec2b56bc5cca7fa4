package interfaces

import (
	"context"
	"time"
)

// Cache is a TTL-bounded string store. Get must report a miss both when the
// key is absent and when the entry's TTL has elapsed.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key with the given prefix.
	Clear(ctx context.Context, prefix string) error
	Close() error
}
