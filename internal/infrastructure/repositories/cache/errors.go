package cache

import "errors"

var (
	// ErrKeyNotFound is returned when a key does not exist in the cache.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyExpired is returned when a key exists but its TTL has elapsed.
	ErrKeyExpired = errors.New("key expired")
)

// IsMiss reports whether an error represents a cache miss (absent or
// expired) rather than an infrastructure failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrKeyExpired)
}
