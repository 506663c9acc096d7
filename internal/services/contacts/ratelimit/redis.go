package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window Limiter shared by every replica using the same
// Redis server.
type Redis struct {
	client redis.UniversalClient
	rule   Rule
	prefix string
}

// NewRedis returns a Redis limiter applying rule to keys under prefix.
func NewRedis(client redis.UniversalClient, rule Rule, prefix string) *Redis {
	return &Redis{client: client, rule: rule.normalized(), prefix: prefix}
}

// Allow counts a hit for key in the current window.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	if r == nil || r.client == nil {
		return Decision{Allowed: true}, nil
	}
	key = r.prefix + key

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, key, r.rule.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("redis pexpire: %w", err)
		}
	}
	if count <= int64(r.rule.Times) {
		return Decision{Allowed: true}, nil
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis pttl: %w", err)
	}
	if ttl < 0 {
		// A key without expiry would block forever; restart its window.
		if err := r.client.PExpire(ctx, key, r.rule.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("redis pexpire: %w", err)
		}
		ttl = r.rule.Window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

var _ Limiter = (*Redis)(nil)

// retryAfterSeconds rounds d up to whole seconds for the Retry-After header.
func retryAfterSeconds(d time.Duration) int {
	seconds := int((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}
