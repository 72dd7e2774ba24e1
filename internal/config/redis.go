package config

// Redis backs the optional response cache for the read-heavy dashboard
// endpoints. Connection parameters come from the environment; when the
// server cannot be reached at startup the constructor returns nil and the
// cache middleware degrades to a pass-through.

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables:
//
//	REDIS_ADDR     – host:port (default "localhost:6379")
//	REDIS_PASSWORD – optional password
//	REDIS_DB       – database number (default 0)
//
// The returned client is nil when the server does not answer a ping.
func NewRedisClient() *redis.Client {
	addr := getenv("REDIS_ADDR", "localhost:6379")
	dbNum := 0
	if n, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil {
		dbNum = n
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getenv("REDIS_PASSWORD", ""),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
