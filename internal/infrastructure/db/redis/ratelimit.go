package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "interviewsim:ratelimit:"

// RateLimiter implements a fixed-window counter in Redis, used to slow down
// credential guessing against the admin login endpoint. Redis failures fail
// open: availability of login beats strictness of the limit.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    zerolog.Logger
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, limit: limit, window: window, log: log}
}

// Allow reports whether the caller identified by key may proceed within the
// current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := keyPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.log.Warn().Err(err).Msg("rate limiter incr failed, allowing request")
		return true
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			rl.log.Warn().Err(err).Msg("rate limiter expire failed")
		}
	}
	return int(count) <= rl.limit
}

// Reset clears the window for a key. Used by tests and operational tooling.
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	if err := rl.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("rate limiter reset: %w", err)
	}
	return nil
}
