package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// Redis is a UserCache backed by a Redis server.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps client. Keys are stored as prefix+email.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get returns the cached account for email, if present.
func (r *Redis) Get(ctx context.Context, email string) (user.User, bool, error) {
	if r == nil || r.client == nil {
		return user.User{}, false, nil
	}
	data, err := r.client.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("redis get: %w", err)
	}
	u, err := decodeUser(data)
	if err != nil {
		return user.User{}, false, err
	}
	return u, true, nil
}

// Set caches u for ttl.
func (r *Redis) Set(ctx context.Context, u user.User, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(u.Email), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete evicts the cached account for email.
func (r *Redis) Delete(ctx context.Context, email string) error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.key(email)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) key(email string) string {
	return r.prefix + normalizeKey(email)
}
