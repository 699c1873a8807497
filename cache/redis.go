// Package cache manages the optional Redis connection used for rate limiting.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Connect opens a Redis client for the given address. Returns nil when Redis
// is unreachable; callers treat a nil client as "no limiter available".
func Connect(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, continuing without it")
		return nil
	}
	log.Info().Str("addr", addr).Msg("redis connected")
	return client
}

// Close releases the client if one was established.
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing redis")
	}
}
