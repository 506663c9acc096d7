// Package httpx provides JSON response helpers and middleware shared by the
// contacts HTTP API.
package httpx

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/id"
	"github.com/louisbranch/contactbook/internal/platform/requestctx"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

var requestIDCounter atomic.Uint64

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

func newRequestID() string {
	if value, err := id.NewID(); err == nil {
		return "cb-" + value
	}
	return fmt.Sprintf("cb-%d-%d", time.Now().UnixNano(), requestIDCounter.Add(1))
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = newRequestID()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP stores the caller's address in the request context. The
// connection address is used; forwarding headers are not trusted.
func ClientIP() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithClientIP(r.Context(), ip)))
		})
	}
}

// RecoverPanic converts panics into HTTP 500 responses.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if recovered == http.ErrAbortHandler {
						panic(recovered)
					}
					log.Printf(
						"panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
						r.Method,
						r.URL.Path,
						r.Header.Get(RequestIDHeader),
						recovered,
						strings.TrimSpace(string(debug.Stack())),
					)
					_ = WriteDetail(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteJSON writes a JSON response with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteDetail writes an error body with the given status.
func WriteDetail(w http.ResponseWriter, status int, detail string) error {
	return WriteJSON(w, status, ErrorBody{Detail: detail})
}

// WriteError maps err to its HTTP status and writes its client-safe message.
// Errors without a domain code are logged and reported as 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	domainErr, ok := apperrors.As(err)
	if !ok {
		logFailure(r, err)
		_ = WriteDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	status := domainErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logFailure(r, err)
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	_ = WriteDetail(w, status, domainErr.Message)
}

func logFailure(r *http.Request, err error) {
	if userID := requestctx.UserIDFromContext(r.Context()); userID != 0 {
		log.Printf("request failed method=%s path=%s user=%d: %v", r.Method, r.URL.Path, userID, err)
		return
	}
	log.Printf("request failed method=%s path=%s: %v", r.Method, r.URL.Path, err)
}
