package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares a fixed window counter between service instances.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow sends INCR together with EXPIRE NX on every hit, so a key that lost
// its TTL gets one back on the next request instead of blocking forever.
// EXPIRE NX needs Redis 7.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.prefix + ":" + key

	seconds := int64(r.window / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	resps := r.client.DoMulti(ctx,
		r.client.B().Incr().Key(redisKey).Build(),
		r.client.B().Expire().Key(redisKey).Seconds(seconds).Nx().Build(),
	)

	count, err := resps[0].AsInt64()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if err := resps[1].Error(); err != nil {
		return false, fmt.Errorf("rate limit expire: %w", err)
	}

	return count <= int64(r.limit), nil
}
