package redis_client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/mvg/pkg/config"
)

var Client *redis.Client

// ConnectRetries is how often the initial ping is retried before giving up
var ConnectRetries uint64 = 5

func Connect(ctx context.Context, redisConfig config.RedisConfig) error {
	options := &redis.Options{
		Addr: redisConfig.Address,
		DB:   redisConfig.Database,
	}
	if redisConfig.Password != "" {
		options.Password = redisConfig.Password
	}

	client := redis.NewClient(options)

	ping := func() error {
		return client.Ping(ctx).Err()
	}
	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), ConnectRetries), ctx)

	err := backoff.RetryNotify(ping, retry, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", redisConfig.Address).Dur("wait", wait).Msg("Redis not reachable, retrying")
	})
	if err != nil {
		client.Close()
		return err
	}

	log.Info().Str("address", redisConfig.Address).Int("database", redisConfig.Database).Msg("Connected to Redis")
	Client = client

	return nil
}
