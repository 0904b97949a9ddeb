package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PollCacheTTL bounds staleness of cached single-poll reads. Every
// mutation invalidates eagerly; the TTL is the backstop.
const PollCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for poll detail reads.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetPoll retrieves a cached poll detail. Returns nil if not cached or
// caching is disabled.
func (c *CacheService) GetPoll(ctx context.Context, pollID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, pollKey(pollID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetPoll stores a poll detail in cache.
func (c *CacheService) SetPoll(ctx context.Context, pollID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, pollKey(pollID), b, PollCacheTTL).Err()
}

// InvalidatePoll removes a poll from cache (called after votes and edits).
func (c *CacheService) InvalidatePoll(ctx context.Context, pollID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, pollKey(pollID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func pollKey(pollID string) string {
	return fmt.Sprintf("poll:%s", pollID)
}
