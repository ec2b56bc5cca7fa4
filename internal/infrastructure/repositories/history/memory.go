package history

import (
	"context"
	"sync"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
)

// MemoryStore implements interfaces.HistoryStore with an in-process map.
// Append-and-trim happens under one lock, so the FIFO bound holds under
// concurrent writers.
type MemoryStore struct {
	maxEntries int
	logs       map[string][]entities.HistoryEntry
	mu         sync.RWMutex
}

// NewMemoryStore creates an in-memory history store keeping at most
// maxEntries entries per key.
func NewMemoryStore(maxEntries int) interfaces.HistoryStore {
	return &MemoryStore{
		maxEntries: maxEntries,
		logs:       make(map[string][]entities.HistoryEntry),
	}
}

// Append adds an entry, evicting from the front when the bound is exceeded.
func (s *MemoryStore) Append(ctx context.Context, key string, entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.logs[key], entry)
	if len(log) > s.maxEntries {
		// Copy instead of re-slicing so the evicted prefix can be collected.
		trimmed := make([]entities.HistoryEntry, s.maxEntries)
		copy(trimmed, log[len(log)-s.maxEntries:])
		log = trimmed
	}
	s.logs[key] = log
	return nil
}

// Recent returns up to n entries ordered oldest to newest.
func (s *MemoryStore) Recent(ctx context.Context, key string, n int) ([]entities.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[key]
	if n <= 0 || n > len(log) {
		n = len(log)
	}

	out := make([]entities.HistoryEntry, n)
	copy(out, log[len(log)-n:])
	return out, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of entries stored for a key.
func (s *MemoryStore) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[key])
}
