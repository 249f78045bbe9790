package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginKey_Normalizes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "login:failures:alice", loginKey("  Alice "))
	assert.Equal(t, loginKey("BOB"), loginKey("bob"))
}

func TestRedisLoginLimiter_SurfacesConnectionErrors(t *testing.T) {
	t.Parallel()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1", // Nothing listens here
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLoginLimiter(rdb, 3, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	allowed, err := l.Allow(ctx, "alice")
	require.Error(t, err)
	assert.False(t, allowed)
	assert.Error(t, l.Fail(ctx, "alice"))
	assert.Error(t, l.Reset(ctx, "alice"))
}

func newMiniredisLimiter(t *testing.T, maxAttempts int, window time.Duration) (*RedisLoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLoginLimiter(rdb, maxAttempts, window), mr
}

func TestRedisLoginLimiter_DeniesAfterMaxFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, mr := newMiniredisLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
		require.NoError(t, l.Fail(ctx, "alice"))
	}

	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, allowed)

	// The counter key is case and whitespace insensitive
	allowed, err = l.Allow(ctx, "  ALICE ")
	require.NoError(t, err)
	assert.False(t, allowed)

	got, err := mr.Get(loginKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	// Other usernames keep their own budget
	allowed, err = l.Allow(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLoginLimiter_WindowExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, mr := newMiniredisLimiter(t, 2, time.Minute)

	require.NoError(t, l.Fail(ctx, "alice"))
	assert.Equal(t, time.Minute, mr.TTL(loginKey("alice")))

	// Each failure refreshes the window
	mr.FastForward(30 * time.Second)
	require.NoError(t, l.Fail(ctx, "alice"))
	assert.Equal(t, time.Minute, mr.TTL(loginKey("alice")))

	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists(loginKey("alice")))
	allowed, err = l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLoginLimiter_ResetClearsCounter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, mr := newMiniredisLimiter(t, 1, time.Minute)

	require.NoError(t, l.Fail(ctx, "Alice"))
	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, l.Reset(ctx, "ALICE"))
	assert.False(t, mr.Exists(loginKey("alice")))
	allowed, err = l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, allowed)
}
