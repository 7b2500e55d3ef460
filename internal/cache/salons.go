// Package cache holds the read-through Redis cache in front of the
// active-salon scan used by proximity search. Every Redis failure
// degrades to the underlying source; the cache can make nearby queries
// cheaper, never break them.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/saloonhq/saloon-backend/internal/models"
)

const salonsKey = "salons:active"

type SalonSource interface {
	ListActiveSalons(ctx context.Context) ([]models.Salon, error)
}

type SalonCache struct {
	source SalonSource
	client *redis.Client
	ttl    time.Duration
}

// NewSalonCache wraps source. A nil client disables caching entirely.
func NewSalonCache(source SalonSource, client *redis.Client, ttl time.Duration) *SalonCache {
	return &SalonCache{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

func (c *SalonCache) ListActiveSalons(ctx context.Context) ([]models.Salon, error) {
	if c.client == nil {
		return c.source.ListActiveSalons(ctx)
	}

	if raw, err := c.client.Get(ctx, salonsKey).Result(); err == nil {
		var salons []models.Salon
		if err := json.Unmarshal([]byte(raw), &salons); err == nil {
			return salons, nil
		}
	}

	salons, err := c.source.ListActiveSalons(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(salons); err == nil {
		c.client.Set(ctx, salonsKey, b, c.ttl)
	}

	return salons, nil
}

// Invalidate drops the cached list after a salon mutation.
func (c *SalonCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, salonsKey)
}

// NewRedisClient connects to Redis, or returns nil when no address is
// configured or the server is unreachable.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil
	}
	return client
}
