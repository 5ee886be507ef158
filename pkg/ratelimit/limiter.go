package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Logger interface {
	Error(msg string, args ...any)
}

// RateLimiter decides whether the caller identified by key is over its budget.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(ctx context.Context, key string) (bool, error)
	Close() error
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Redis    *redis.Client // nil selects the in-memory limiter
	Logger   Logger
}

// NewRateLimiter picks the Redis sliding window when a client is configured and
// the per-process token bucket otherwise.
func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	requests, window := normalize(config.Requests, config.Window)
	if config.Redis != nil {
		return NewRedisRateLimiter(config.Redis, requests, window, config.Logger)
	}
	return NewInMemoryRateLimiter(requests, window)
}

func normalize(requests int, window time.Duration) (int, time.Duration) {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return requests, window
}
