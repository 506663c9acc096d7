// Package requestctx carries per-request identity values through context.
package requestctx

import "context"

// userIDContextKey is the context key for authenticated user identity.
type userIDContextKey struct{}

// clientIPContextKey is the context key for the resolved client address.
type clientIPContextKey struct{}

// WithUserID stores a user identifier in context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext returns the user identifier stored in context, or zero.
func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	value, _ := ctx.Value(userIDContextKey{}).(int64)
	return value
}

// WithClientIP stores the client address used for rate limiting and logs.
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// ClientIPFromContext returns the client address stored in context.
func ClientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(clientIPContextKey{}).(string)
	return value
}
