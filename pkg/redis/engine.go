package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/openshelf/bookstore-api/pkg/global"
)

var client *redis.Client

// Client returns the shared Redis client, creating it on first use.
func Client() *redis.Client {
	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     global.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
			Password: global.GetEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
			Protocol: 2,
		})
	}
	return client
}
