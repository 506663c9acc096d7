package cache

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process UserCache used when no Redis address is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the cached account for email unless it expired.
func (m *Memory) Get(ctx context.Context, email string) (user.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, false, err
	}
	key := normalizeKey(email)

	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return user.User{}, false, nil
	}
	u, err := decodeUser(e.data)
	if err != nil {
		return user.User{}, false, err
	}
	return u, true, nil
}

// Set caches u for ttl. A non-positive ttl removes the entry.
func (m *Memory) Set(ctx context.Context, u user.User, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := normalizeKey(u.Email)
	if ttl <= 0 {
		return m.Delete(ctx, key)
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete evicts the cached account for email.
func (m *Memory) Delete(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, normalizeKey(email))
	m.mu.Unlock()
	return nil
}
