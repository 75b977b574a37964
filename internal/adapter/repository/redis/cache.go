package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProjectionCache implements usecase.SearchCache using Redis. It holds the
// public account projections served by the search endpoint.
type ProjectionCache struct {
	client *redis.Client
	prefix string
}

// NewProjectionCache creates a new ProjectionCache.
func NewProjectionCache(client *redis.Client) *ProjectionCache {
	return &ProjectionCache{
		client: client,
		prefix: "search:",
	}
}

// Get retrieves a cached value. A miss is not an error.
func (c *ProjectionCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return val, true, nil
}

// Set stores a value with TTL.
func (c *ProjectionCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
