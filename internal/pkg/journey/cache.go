package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SegmentCache keeps executed segment results in Redis so repeated plans on
// the same day reuse source responses instead of re-querying. A short-lived
// SetNX lock prevents concurrent fills of the same key.
type SegmentCache struct {
	redis       RedisClient
	ttl         time.Duration
	lockTimeout time.Duration
}

const defaultLockTimeout = 5 * time.Second

func NewSegmentCache(redis RedisClient, ttl time.Duration) *SegmentCache {
	return &SegmentCache{
		redis:       redis,
		ttl:         ttl,
		lockTimeout: defaultLockTimeout,
	}
}

func (c *SegmentCache) cacheKey(key SegmentKey) string {
	return fmt.Sprintf("segment:cache:%s", key)
}

func (c *SegmentCache) lockKey(key SegmentKey) string {
	return fmt.Sprintf("segment:lock:%s", key)
}

func (c *SegmentCache) AcquireLock(ctx context.Context, key SegmentKey) (bool, error) {
	return c.redis.SetNX(ctx, c.lockKey(key), "1", c.lockTimeout).Result()
}

func (c *SegmentCache) ReleaseLock(ctx context.Context, key SegmentKey) error {
	return c.redis.Del(ctx, c.lockKey(key)).Err()
}

func (c *SegmentCache) Set(ctx context.Context, key SegmentKey, res SegmentResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal segment result: %w", err)
	}

	err = c.redis.Set(ctx, c.cacheKey(key), data, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set segment result: %w", err)
	}

	return nil
}

func (c *SegmentCache) Get(ctx context.Context, key SegmentKey) (SegmentResult, error) {
	data, err := c.redis.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		return SegmentResult{}, err
	}

	var res SegmentResult
	if err := json.Unmarshal(data, &res); err != nil {
		return SegmentResult{}, err
	}

	return res, nil
}
