package history

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/domain/entities"
)

func TestMemoryStore_AppendAndRecent(t *testing.T) {
	store := NewMemoryStore(100)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Append(ctx, "key", entities.HistoryEntry{
			Timestamp: int64(i),
			Price:     float64(i * 10),
		}))
	}

	entries, err := store.Recent(ctx, "key", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Oldest to newest.
	assert.Equal(t, 10.0, entries[0].Price)
	assert.Equal(t, 30.0, entries[2].Price)
}

func TestMemoryStore_RecentLimitsToLastN(t *testing.T) {
	store := NewMemoryStore(100)
	ctx := context.Background()

	for i := 1; i <= 20; i++ {
		require.NoError(t, store.Append(ctx, "key", entities.HistoryEntry{
			Timestamp: int64(i),
			Price:     float64(i),
		}))
	}

	entries, err := store.Recent(ctx, "key", 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, 11.0, entries[0].Price)
	assert.Equal(t, 20.0, entries[9].Price)
}

func TestMemoryStore_BoundEvictsOldestFirst(t *testing.T) {
	store := NewMemoryStore(100)
	ctx := context.Background()

	for i := 1; i <= 101; i++ {
		require.NoError(t, store.Append(ctx, "key", entities.HistoryEntry{
			Timestamp: int64(i),
			Price:     float64(i),
		}))
	}

	entries, err := store.Recent(ctx, "key", 0)
	require.NoError(t, err)
	require.Len(t, entries, 100)

	// Entry 1 was evicted; 2..101 remain in order.
	assert.Equal(t, 2.0, entries[0].Price)
	assert.Equal(t, 101.0, entries[99].Price)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(100)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", entities.HistoryEntry{Price: 1}))
	require.NoError(t, store.Append(ctx, "b", entities.HistoryEntry{Price: 2}))

	entries, err := store.Recent(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1.0, entries[0].Price)
}

func TestMemoryStore_RecentOnUnknownKey(t *testing.T) {
	store := NewMemoryStore(100)

	entries, err := store.Recent(context.Background(), "absent", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore_ConcurrentAppendsKeepBound(t *testing.T) {
	store := NewMemoryStore(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = store.Append(ctx, "shared", entities.HistoryEntry{
					Timestamp: int64(worker*25 + i),
					Price:     1,
				})
			}
		}(w)
	}
	wg.Wait()

	entries, err := store.Recent(ctx, "shared", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 50, fmt.Sprintf("bound must hold after %d concurrent appends", 8*25))
}
