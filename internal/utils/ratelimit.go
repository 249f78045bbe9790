package utils

import (
	"context" // Context for Redis operations
	"strings" // Key normalization
	"time"    // Window durations

	"github.com/redis/go-redis/v9" // Redis client
)

// LoginLimiter throttles repeated failed logins for one username
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error) // False once the failure budget is spent
	Fail(ctx context.Context, username string) error          // Record a failed attempt
	Reset(ctx context.Context, username string) error         // Clear the counter after a success
}

// RedisLoginLimiter keeps failed-login counters in Redis with a sliding TTL
type RedisLoginLimiter struct {
	rdb         *redis.Client // Redis client
	maxAttempts int64         // Failures allowed per window
	window      time.Duration // Counter lifetime
}

// NewRedisLoginLimiter creates a limiter allowing maxAttempts failures per window
func NewRedisLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{rdb: rdb, maxAttempts: int64(maxAttempts), window: window}
}

func loginKey(username string) string {
	return "login:failures:" + strings.ToLower(strings.TrimSpace(username))
}

// Allow reports whether another attempt is permitted
func (l *RedisLoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	n, err := l.rdb.Get(ctx, loginKey(username)).Int64()
	if err == redis.Nil {
		return true, nil // No failures recorded
	} else if err != nil {
		return false, err // Other Redis error
	}
	return n < l.maxAttempts, nil
}

// Fail increments the failure counter and refreshes its TTL
func (l *RedisLoginLimiter) Fail(ctx context.Context, username string) error {
	key := loginKey(username)
	pipe := l.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset deletes the failure counter
func (l *RedisLoginLimiter) Reset(ctx context.Context, username string) error {
	return l.rdb.Del(ctx, loginKey(username)).Err()
}
