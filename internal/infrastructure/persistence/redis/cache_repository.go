// Package redis adapts the two-layer cache service to the outbound
// cache repository port
package redis

import (
	"context"
	"time"

	"github.com/enduraplan/v2/internal/infrastructure/cache"
	"github.com/enduraplan/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// CacheRepository implements the cache repository interface using the
// cache-first service
type CacheRepository struct {
	cacheService *cache.CacheService
	logger       *zap.Logger
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(cacheService *cache.CacheService, logger *zap.Logger) outbound.CacheRepository {
	return &CacheRepository{
		cacheService: cacheService,
		logger:       logger,
	}
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.cacheService.Get(ctx, key)
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.cacheService.Set(ctx, key, value, ttl); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.cacheService.Delete(ctx, key); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
