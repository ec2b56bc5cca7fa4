package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
)

// historyKeyPrefix namespaces history lists inside the Redis keyspace.
const historyKeyPrefix = "history:"

// RedisStore implements interfaces.HistoryStore on Redis lists. RPUSH plus
// LTRIM in one pipeline keeps the per-key bound atomic, so concurrent
// appenders cannot lose each other's entries.
type RedisStore struct {
	client     *redis.Client
	maxEntries int
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client, maxEntries int) interfaces.HistoryStore {
	return &RedisStore{
		client:     client,
		maxEntries: maxEntries,
	}
}

func (s *RedisStore) redisKey(key string) string {
	return historyKeyPrefix + key
}

// Append pushes an entry and trims the list to the retention bound.
func (s *RedisStore) Append(ctx context.Context, key string, entry entities.HistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.redisKey(key), raw)
	pipe.LTrim(ctx, s.redisKey(key), int64(-s.maxEntries), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history for %s: %w", key, err)
	}
	return nil
}

// Recent returns up to n entries ordered oldest to newest. Corrupt list
// elements are skipped, not fatal: a damaged store degrades to less history.
func (s *RedisStore) Recent(ctx context.Context, key string, n int) ([]entities.HistoryEntry, error) {
	start := int64(-n)
	if n <= 0 {
		start = 0
	}

	raw, err := s.client.LRange(ctx, s.redisKey(key), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", key, err)
	}

	entries := make([]entities.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry entities.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			logging.WarnWithError(ctx, "Skipping corrupt history entry", err, logging.Fields{
				"history_key": key,
			})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
