package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotencyEntry is a stored response for replay.
type IdempotencyEntry struct {
	ResponseStatus int    `json:"status"`
	ResponseBody   string `json:"body"`
}

// IdempotencyStore stores responses keyed by client-supplied idempotency
// keys, with a TTL. A duplicate submission within the TTL gets the original
// response back instead of opening a second processor session.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates a store with the given entry TTL.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Get returns the stored entry or nil when the key is unknown.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*IdempotencyEntry, error) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency entry: %w", err)
	}

	var entry IdempotencyEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("decode idempotency entry: %w", err)
	}
	return &entry, nil
}

// Set stores an entry under the key for the configured TTL.
func (s *IdempotencyStore) Set(ctx context.Context, key string, entry *IdempotencyEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode idempotency entry: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set idempotency entry: %w", err)
	}
	return nil
}
