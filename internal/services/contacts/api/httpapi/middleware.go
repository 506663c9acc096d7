package httpapi

import (
	"context"
	"net/http"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/httpx"
	"github.com/louisbranch/contactbook/internal/platform/requestctx"
	"github.com/louisbranch/contactbook/internal/services/contacts/auth"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

var errNotAuthenticated = apperrors.New(apperrors.CodeUnauthenticated, "Not authenticated")

type currentUserKey struct{}

// requireUser resolves the bearer token and rejects anonymous requests.
func (h *handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			httpx.WriteError(w, r, errNotAuthenticated)
			return
		}
		u, err := h.authn.CurrentUser(r.Context(), token)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		ctx := requestctx.WithUserID(r.Context(), u.ID)
		ctx = context.WithValue(ctx, currentUserKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the account resolved by requireUser.
func currentUser(r *http.Request) user.User {
	u, _ := r.Context().Value(currentUserKey{}).(user.User)
	return u
}
