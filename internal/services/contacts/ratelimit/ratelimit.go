// Package ratelimit throttles requests per client and route.
package ratelimit

import (
	"context"
	"time"
)

// DefaultTimes and DefaultWindow allow one request per twenty seconds.
const (
	DefaultTimes  = 1
	DefaultWindow = 20 * time.Second
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter admits or rejects a hit for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Rule bounds a key to Times hits per Window.
type Rule struct {
	Times  int
	Window time.Duration
}

func (r Rule) normalized() Rule {
	if r.Times <= 0 {
		r.Times = DefaultTimes
	}
	if r.Window <= 0 {
		r.Window = DefaultWindow
	}
	return r
}
