package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestMemoryCache_GetMissingKey(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.True(t, IsMiss(err))
}

func TestMemoryCache_ExpiredKeyIsAMiss(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyExpired)
	assert.True(t, IsMiss(err))
}

func TestMemoryCache_SetOverwritesAndRefreshesTTL(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "old", time.Minute))
	require.NoError(t, cache.Set(ctx, "key", "new", time.Minute))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_ClearByPrefix(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "price:a", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "price:b", "2", time.Minute))
	require.NoError(t, cache.Set(ctx, "other:c", "3", time.Minute))

	require.NoError(t, cache.Clear(ctx, "price:"))

	_, err := cache.Get(ctx, "price:a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = cache.Get(ctx, "price:b")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	got, err := cache.Get(ctx, "other:c")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestMemoryCache_SetSweepsExpiredEntries(t *testing.T) {
	cache := NewMemoryCache().(*MemoryCache)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, cache.Set(ctx, "fresh", "v", time.Minute))

	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			_ = cache.Set(ctx, key, "value", time.Minute)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}
