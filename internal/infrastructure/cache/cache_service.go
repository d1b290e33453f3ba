package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CacheService implements the cache-first pattern: the local LRU is checked
// before Redis, and Redis hits are promoted into the local layer. Redis is
// optional; with a nil client the service degrades to local-only caching.
type CacheService struct {
	redis  *RedisClient
	local  *LocalCache
	logger *zap.Logger
}

// NewCacheService creates a new two-layer cache service
func NewCacheService(redis *RedisClient, localMaxSize int, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redis,
		local:  NewLocalCache(localMaxSize),
		logger: logger.Named("cache"),
	}
}

// Get retrieves a value, local layer first
func (c *CacheService) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.local.Get(key); ok {
		return data, nil
	}

	if c.redis == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.redis.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Promote into the local layer with a short TTL so a Redis-side
	// delete propagates within a minute.
	c.local.Set(key, data, time.Minute)
	return data, nil
}

// Set stores a value in both layers
func (c *CacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c.local.Set(key, value, ttl)

	if c.redis == nil {
		return nil
	}
	if err := c.redis.Set(ctx, key, value, ttl); err != nil {
		c.logger.Warn("redis set failed, entry kept local only",
			zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a key from both layers
func (c *CacheService) Delete(ctx context.Context, key string) error {
	c.local.Delete(key)
	if c.redis == nil {
		return nil
	}
	return c.redis.Delete(ctx, key)
}
