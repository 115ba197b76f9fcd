package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "mvg:"

type Cache struct {
	Cache *cache.Cache[string]
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(ttl))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

// Remember returns the cached value stored under key, or computes it and caches
// the result. Errors from compute are returned and never cached. A nil cache
// always computes.
func Remember[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return compute(ctx)
	}

	key = keyPrefix + key

	if cached, err := c.Cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			log.Debug().Str("key", key).Msg("Cache hit")
			return value, nil
		}

		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode value for cache")
		return value, nil
	}

	if err := c.Cache.Set(ctx, key, string(encoded)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store value in cache")
	}

	return value, nil
}
