package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is a per-process Limiter built from token buckets.
type Memory struct {
	mu      sync.Mutex
	rule    Rule
	buckets map[string]*bucket
	now     func() time.Time
	sweepAt time.Time
}

// NewMemory returns a Memory limiter applying rule.
func NewMemory(rule Rule) *Memory {
	return &Memory{
		rule:    rule.normalized(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes one token for key.
func (m *Memory) Allow(ctx context.Context, key string) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	b, ok := m.buckets[key]
	if !ok {
		every := rate.Every(m.rule.Window / time.Duration(m.rule.Times))
		b = &bucket{limiter: rate.NewLimiter(every, m.rule.Times)}
		m.buckets[key] = b
	}
	b.lastSeen = now

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Decision{Allowed: false, RetryAfter: m.rule.Window}, nil
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}, nil
	}
	reservation.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}, nil
}

// sweep drops buckets idle for a full window; they would be full again.
func (m *Memory) sweep(now time.Time) {
	if now.Before(m.sweepAt) {
		return
	}
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) >= m.rule.Window {
			delete(m.buckets, key)
		}
	}
	m.sweepAt = now.Add(m.rule.Window)
}

var _ Limiter = (*Memory)(nil)
