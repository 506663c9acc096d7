package ratelimit

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/contactbook/internal/platform/requestctx"
)

const tooManyRequests = "Too Many Requests"

// Middleware rejects requests once limiter blocks the caller's key for the
// matched route. Limiter failures let the request through.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := RequestKey(r)
			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Printf("rate limit %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": tooManyRequests})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestKey identifies the caller and route of r.
func RequestKey(r *http.Request) string {
	ip := requestctx.ClientIPFromContext(r.Context())
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
	}
	route := r.Pattern
	if route == "" {
		route = r.Method + " " + r.URL.Path
	}
	return ip + ":" + normalizeRoute(route)
}

// normalizeRoute folds "/x", "/x/" and "/x/{$}" into one bucket.
func normalizeRoute(route string) string {
	route = strings.TrimSuffix(route, "{$}")
	if trimmed := strings.TrimSuffix(route, "/"); !strings.HasSuffix(trimmed, " ") && trimmed != "" {
		route = trimmed
	}
	return route
}
