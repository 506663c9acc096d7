package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/contactbook/internal/platform/httpx"
	"github.com/louisbranch/contactbook/internal/services/contacts/auth"
	"github.com/louisbranch/contactbook/internal/services/contacts/avatar"
	"github.com/louisbranch/contactbook/internal/services/contacts/cache"
	"github.com/louisbranch/contactbook/internal/services/contacts/ratelimit"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
)

// DefaultAvatarCacheTTL bounds how long the account refreshed after an avatar
// change stays cached.
const DefaultAvatarCacheTTL = 5 * time.Minute

// Confirmer queues account verification emails.
type Confirmer interface {
	SendConfirmation(ctx context.Context, email string, username string, baseURL string) error
}

// Options wires the API to its collaborators. Store and Tokens are required;
// a nil Limiter disables throttling and a nil Avatars answers 501.
type Options struct {
	Store          storage.Store
	Tokens         *auth.Tokens
	Cache          cache.UserCache
	UserCacheTTL   time.Duration
	AvatarCacheTTL time.Duration
	Limiter        ratelimit.Limiter
	Confirmer      Confirmer
	Avatars        avatar.Uploader
	Now            func() time.Time
}

type handler struct {
	store     storage.Store
	tokens    *auth.Tokens
	authn     *auth.Authenticator
	cache     cache.UserCache
	avatarTTL time.Duration
	confirmer Confirmer
	avatars   avatar.Uploader
	now       func() time.Time
}

// NewHandler builds the HTTP handler serving every API route.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("tokens are required")
	}
	h := &handler{
		store:     opts.Store,
		tokens:    opts.Tokens,
		cache:     opts.Cache,
		avatarTTL: opts.AvatarCacheTTL,
		confirmer: opts.Confirmer,
		avatars:   opts.Avatars,
		now:       opts.Now,
	}
	if h.avatarTTL <= 0 {
		h.avatarTTL = DefaultAvatarCacheTTL
	}
	if h.now == nil {
		h.now = time.Now
	}
	h.authn = auth.NewAuthenticator(opts.Tokens, opts.Store, opts.Cache, opts.UserCacheTTL)

	mux := http.NewServeMux()
	h.registerRoutes(mux, ratelimit.Middleware(opts.Limiter))

	return httpx.Chain(mux,
		corsMiddleware(),
		otelMiddleware(),
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.ClientIP(),
	), nil
}

func (h *handler) registerRoutes(mux *http.ServeMux, limit httpx.Middleware) {
	protected := func(fn func(http.ResponseWriter, *http.Request)) http.Handler {
		return httpx.Chain(http.HandlerFunc(fn), limit, h.requireUser)
	}

	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /api/healthchecker", h.handleHealth)

	mux.HandleFunc("POST /api/auth/signup", h.handleSignup)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("GET /api/auth/refresh_token", h.handleRefreshToken)
	mux.HandleFunc("GET /api/auth/confirmed_email/{token}", h.handleConfirmEmail)
	mux.HandleFunc("POST /api/auth/request_email", h.handleRequestEmail)

	for _, prefix := range []string{"/api/contacts", "/api/contacts/{$}"} {
		mux.Handle("GET "+prefix, protected(h.handleListContacts))
		mux.Handle("POST "+prefix, protected(h.handleCreateContact))
	}
	mux.Handle("GET /api/contacts/birthdays", protected(h.handleUpcomingBirthdays))
	mux.Handle("GET /api/contacts/{contact_id}", protected(h.handleGetContact))
	mux.Handle("PUT /api/contacts/{contact_id}", protected(h.handleUpdateContact))
	mux.Handle("DELETE /api/contacts/{contact_id}", protected(h.handleDeleteContact))

	mux.Handle("GET /api/users/me", protected(h.handleMe))
	mux.Handle("PATCH /api/users/avatar", protected(h.handleUpdateAvatar))
}

func corsMiddleware() httpx.Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler
}

func otelMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "contactbook.http",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}
