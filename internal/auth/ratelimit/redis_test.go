package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T, window time.Duration, max int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLimiter(client, window, max), mr
}

func TestRedisLimiterSlidingWindow(t *testing.T) {
	l, _ := newTestRedisLimiter(t, time.Hour, 5)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		current = base.Add(time.Duration(i) * time.Second)
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	current = base.Add(5 * time.Second)
	allowed, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)

	current = base.Add(3601 * time.Second)
	allowed, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterPerClientIsolation(t *testing.T) {
	l, _ := newTestRedisLimiter(t, time.Hour, 1)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = l.Allow(ctx, "2.2.2.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterDeniedAttemptNotRecorded(t *testing.T) {
	l, _ := newTestRedisLimiter(t, time.Hour, 2)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	current = base.Add(30 * time.Minute)
	allowed, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)

	current = base.Add(time.Hour + time.Second)
	allowed, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterUnavailable(t *testing.T) {
	l, mr := newTestRedisLimiter(t, time.Hour, 5)
	mr.Close()

	allowed, err := l.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, allowed)
}
