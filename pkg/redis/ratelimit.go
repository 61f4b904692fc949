package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/openshelf/bookstore-api/pkg/global"
)

// RateLimiter is a fixed-window counter backed by Redis. Each client gets
// a counter keyed by window start; the first hit in a window sets the TTL.
type RateLimiter struct {
	MaxRequests int
	Window      time.Duration
}

func NewRateLimiterFromEnv() *RateLimiter {
	// Allow divides by the window in seconds, so it must never be zero.
	seconds := global.GetEnvIntOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	if seconds < 1 {
		seconds = 1
	}
	return &RateLimiter{
		MaxRequests: global.GetEnvIntOrDefault("RATE_LIMIT_MAX_REQUESTS", 100),
		Window:      time.Duration(seconds) * time.Second,
	}
}

// Allow reports whether clientKey may make another request in the current
// window. Redis errors fail open so a cache outage does not take the API down.
func (rl *RateLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	window := time.Now().Unix() / int64(rl.Window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", clientKey, window)

	c := Client()
	count, err := c.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		c.Expire(ctx, key, rl.Window)
	}

	return count <= int64(rl.MaxRequests), nil
}
