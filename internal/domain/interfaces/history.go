package interfaces

import (
	"context"

	"skin-price-service/internal/domain/entities"
)

// HistoryStore is an append-only per-key log of price observations, bounded
// to the most recent entries (FIFO eviction). Implementations must make the
// append-and-trim atomic per key so concurrent writers cannot lose entries.
type HistoryStore interface {
	Append(ctx context.Context, key string, entry entities.HistoryEntry) error
	// Recent returns up to n entries ordered oldest to newest.
	Recent(ctx context.Context, key string, n int) ([]entities.HistoryEntry, error)
	Close() error
}
