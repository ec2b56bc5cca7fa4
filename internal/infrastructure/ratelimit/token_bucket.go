package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a per-client token bucket. Tokens refill continuously at
// refillRate per second up to capacity.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     int
	refillRate int
	lastRefill time.Time
}

// NewTokenBucket creates a bucket that starts full.
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Tokens returns the current number of available tokens.
func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// refill adds tokens for the time elapsed since the last refill. Must be
// called with the lock held.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	tokensToAdd := int(elapsed.Seconds() * float64(tb.refillRate))
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}
}

// Collection manages one bucket per client, with opportunistic cleanup of
// full (idle) buckets to bound memory.
type Collection struct {
	mu         sync.RWMutex
	buckets    map[string]*TokenBucket
	capacity   int
	refillRate int

	lastCleanup     time.Time
	cleanupInterval time.Duration
}

// NewCollection creates an empty bucket collection.
func NewCollection(capacity, refillRate int) *Collection {
	return &Collection{
		buckets:         make(map[string]*TokenBucket),
		capacity:        capacity,
		refillRate:      refillRate,
		lastCleanup:     time.Now(),
		cleanupInterval: 10 * time.Minute,
	}
}

// Allow checks whether a request from the given client is allowed.
func (c *Collection) Allow(clientID string) bool {
	return c.getBucket(clientID).Allow()
}

// Tokens returns the remaining tokens for the given client.
func (c *Collection) Tokens(clientID string) int {
	return c.getBucket(clientID).Tokens()
}

// Size returns the number of tracked clients.
func (c *Collection) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buckets)
}

func (c *Collection) getBucket(clientID string) *TokenBucket {
	c.mu.RLock()
	bucket, exists := c.buckets[clientID]
	c.mu.RUnlock()
	if exists {
		return bucket
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have created it between the two locks.
	if bucket, exists := c.buckets[clientID]; exists {
		return bucket
	}

	bucket = NewTokenBucket(c.capacity, c.refillRate)
	c.buckets[clientID] = bucket
	c.maybeCleanup()
	return bucket
}

// maybeCleanup drops buckets that have refilled to capacity, meaning the
// client has been idle long enough not to matter. Must be called with the
// write lock held.
func (c *Collection) maybeCleanup() {
	now := time.Now()
	if now.Sub(c.lastCleanup) < c.cleanupInterval {
		return
	}

	for id, bucket := range c.buckets {
		if bucket.Tokens() >= c.capacity {
			delete(c.buckets, id)
		}
	}
	c.lastCleanup = now
}
