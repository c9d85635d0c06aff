package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "signup_attempts:"

// Prune, count and conditionally record in one atomic script.
// KEYS[1] attempt log, ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] max,
// ARGV[4] member for the new attempt.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", key, 0, now - window)
if redis.call("ZCARD", key) >= max then
	return 0
end
redis.call("ZADD", key, now, ARGV[4])
redis.call("PEXPIRE", key, window)
return 1
`)

// RedisLimiter is the shared-store variant of the sliding window, for
// deployments with more than one process behind the same address space of
// clients. Each client's attempt log lives in a sorted set scored by
// timestamp.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	now := l.now()
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + clientID},
		now.UnixMilli(), l.window.Milliseconds(), l.max, member,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit for %s: %w", clientID, err)
	}

	return res == 1, nil
}
