package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/timeouts"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// DefaultUserCacheTTL bounds how long a resolved account is served from cache.
const DefaultUserCacheTTL = 30 * time.Minute

// UserCache stores resolved accounts keyed by email.
type UserCache interface {
	Get(ctx context.Context, email string) (user.User, bool, error)
	Set(ctx context.Context, u user.User, ttl time.Duration) error
}

// Authenticator resolves bearer tokens to accounts.
type Authenticator struct {
	tokens *Tokens
	users  storage.UserStore
	cache  UserCache
	ttl    time.Duration
}

// NewAuthenticator builds an Authenticator. cache may be nil; ttl falls back
// to DefaultUserCacheTTL.
func NewAuthenticator(tokens *Tokens, users storage.UserStore, cache UserCache, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &Authenticator{tokens: tokens, users: users, cache: cache, ttl: ttl}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser validates an access token and returns its account. Every
// failure reads as ErrInvalidCredentials.
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (user.User, error) {
	if a == nil || a.tokens == nil || a.users == nil {
		return user.User{}, errors.New("authenticator is not configured")
	}
	email, err := a.tokens.ParseAccessToken(token)
	if err != nil {
		return user.User{}, apperrors.Wrap(ErrInvalidCredentials.Code, ErrInvalidCredentials.Message, err)
	}

	if cached, ok := a.cached(ctx, email); ok {
		return cached, nil
	}

	u, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}
	a.store(ctx, u)
	return u, nil
}

func (a *Authenticator) cached(ctx context.Context, email string) (user.User, bool) {
	if a.cache == nil {
		return user.User{}, false
	}
	cacheCtx, cancel := context.WithTimeout(ctx, timeouts.Cache)
	defer cancel()
	u, ok, err := a.cache.Get(cacheCtx, email)
	if err != nil {
		log.Printf("user cache get %s: %v", email, err)
		return user.User{}, false
	}
	return u, ok
}

func (a *Authenticator) store(ctx context.Context, u user.User) {
	if a.cache == nil {
		return
	}
	cacheCtx, cancel := context.WithTimeout(ctx, timeouts.Cache)
	defer cancel()
	if err := a.cache.Set(cacheCtx, u, a.ttl); err != nil {
		log.Printf("user cache set %s: %v", u.Email, err)
	}
}
