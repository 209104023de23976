package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// TagCache keeps JSON-encoded tag listings in redis, one key per game and
// kind. A nil *TagCache is safe to call; every operation becomes a no-op,
// which lets services and tests run without redis.
type TagCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTagCache(rdb *redis.Client, ttl time.Duration) *TagCache {
	if rdb == nil {
		return nil
	}
	return &TagCache{rdb: rdb, ttl: ttl}
}

// Get loads the cached listing under key into dest. The bool reports a hit;
// a missing key is not an error.
func (c *TagCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(redis.Nil, err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the listing under key for the cache TTL.
func (c *TagCache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Drop removes key after an association write makes the listing stale.
func (c *TagCache) Drop(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}
