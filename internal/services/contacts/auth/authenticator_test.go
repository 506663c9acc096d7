package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

type fakeUserStore struct {
	storage.UserStore
	users map[string]user.User
	reads int
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.reads++
	u, ok := f.users[email]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

type fakeCache struct {
	users map[string]user.User
	ttl   time.Duration
	err   error
}

func (f *fakeCache) Get(_ context.Context, email string) (user.User, bool, error) {
	if f.err != nil {
		return user.User{}, false, f.err
	}
	u, ok := f.users[email]
	return u, ok, nil
}

func (f *fakeCache) Set(_ context.Context, u user.User, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.users == nil {
		f.users = map[string]user.User{}
	}
	f.users[u.Email] = u
	f.ttl = ttl
	return nil
}

func TestCurrentUserPopulatesCache(t *testing.T) {
	tokens := newTestTokens(t, fixedClock(time.Now()))
	store := &fakeUserStore{users: map[string]user.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com"},
	}}
	cache := &fakeCache{}
	authn := NewAuthenticator(tokens, store, cache, 0)

	access, err := tokens.AccessToken("alice@example.com")
	require.NoError(t, err)

	u, err := authn.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, DefaultUserCacheTTL, cache.ttl)

	_, err = authn.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, 1, store.reads, "second lookup should hit cache")
}

func TestCurrentUserFallsBackWhenCacheFails(t *testing.T) {
	tokens := newTestTokens(t, fixedClock(time.Now()))
	store := &fakeUserStore{users: map[string]user.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com"},
	}}
	authn := NewAuthenticator(tokens, store, &fakeCache{err: errors.New("down")}, time.Minute)

	access, err := tokens.AccessToken("alice@example.com")
	require.NoError(t, err)

	u, err := authn.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
}

func TestCurrentUserRejects(t *testing.T) {
	tokens := newTestTokens(t, fixedClock(time.Now()))
	store := &fakeUserStore{users: map[string]user.User{}}
	authn := NewAuthenticator(tokens, store, nil, 0)

	refresh, err := tokens.RefreshToken("alice@example.com")
	require.NoError(t, err)
	_, err = authn.CurrentUser(context.Background(), refresh)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	access, err := tokens.AccessToken("ghost@example.com")
	require.NoError(t, err)
	_, err = authn.CurrentUser(context.Background(), access)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, "Could not validate credentials", err.Error())
}
