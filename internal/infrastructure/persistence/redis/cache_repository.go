// Package redis provides the Redis-backed cache repository
package redis

import (
	"context"
	"time"

	"github.com/ayurplan/engine/internal/infrastructure/cache"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// CacheRepository implements the cache repository interface on Redis
type CacheRepository struct {
	client *cache.RedisClient
}

// NewCacheRepository creates a new Redis cache repository
func NewCacheRepository(client *cache.RedisClient) outbound.CacheRepository {
	return &CacheRepository{client: client}
}

// Get retrieves a value; a missing key yields outbound.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key)
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl)
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	return r.client.Delete(ctx, key)
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MGet retrieves multiple values efficiently
func (r *CacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	return r.client.MGet(ctx, keys)
}

// MSet stores multiple values efficiently
func (r *CacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	return r.client.MSet(ctx, items, ttl)
}
