package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiterFromEnvDefaults(t *testing.T) {
	rl := NewRateLimiterFromEnv()

	assert.Equal(t, 100, rl.MaxRequests)
	assert.Equal(t, 60*time.Second, rl.Window)
}

func TestNewRateLimiterFromEnvReadsEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "10")

	rl := NewRateLimiterFromEnv()

	assert.Equal(t, 5, rl.MaxRequests)
	assert.Equal(t, 10*time.Second, rl.Window)
}

func TestNewRateLimiterFromEnvClampsZeroWindow(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "0")

	rl := NewRateLimiterFromEnv()

	assert.Equal(t, time.Second, rl.Window)
}

func TestNewRateLimiterFromEnvClampsNegativeWindow(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "-30")

	rl := NewRateLimiterFromEnv()

	assert.Equal(t, time.Second, rl.Window)
}
