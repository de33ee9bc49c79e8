package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
)

const subscriptionKeyPrefix = "subscription:view"

// ErrCorruptEntry marks a cached payload that cannot be decoded.
var ErrCorruptEntry = errors.New("cache_corrupt_entry")

// Client is the subset of the go-redis client used by RedisStore.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore is a cache-tier RecordStore holding JSON encoded subscriptions.
// Entries never expire; removal is the caller's job.
type RedisStore struct {
	client Client
}

func NewRedisStore(client Client) *RedisStore {
	return &RedisStore{client: client}
}

// Find returns the cached record. redis.Nil is a miss; every other client
// error is a storage failure.
func (s *RedisStore) Find(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	key := cacheKey(subscriptionKeyPrefix, id)
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var sub *subscriptiondomain.Subscription
	if err := json.Unmarshal(data, &sub); err != nil || sub == nil {
		return nil, fmt.Errorf("cache entry %s: %w", key, ErrCorruptEntry)
	}
	return sub, nil
}

// Put stores sub under id.
func (s *RedisStore) Put(ctx context.Context, id string, sub *subscriptiondomain.Subscription) error {
	if sub == nil {
		return nil
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return s.client.Set(ctx, cacheKey(subscriptionKeyPrefix, id), data, 0).Err()
}

// Delete removes the entry for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, cacheKey(subscriptionKeyPrefix, id)).Err()
}

// cacheKey joins the non-empty parts. Ids are kept byte-exact so the cache
// never answers for an id the authoritative store would not match.
func cacheKey(parts ...string) string {
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return strings.Join(values, ":")
}

var _ subscriptiondomain.RecordStore = (*RedisStore)(nil)
