package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/httpx"
	"github.com/louisbranch/contactbook/internal/services/contacts/auth"
	"github.com/louisbranch/contactbook/internal/services/contacts/avatar"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

const (
	msgEmailConfirmed        = "Email confirmed"
	msgEmailAlreadyConfirmed = "Your email is already confirmed"
	msgCheckEmail            = "Check your email for confirmation."
	tokenTypeBearer          = "bearer"
)

var (
	errAccountExists       = apperrors.New(apperrors.CodeAlreadyExists, "Account already exists")
	errInvalidEmail        = apperrors.New(apperrors.CodeUnauthenticated, "Invalid email")
	errEmailNotConfirmed   = apperrors.New(apperrors.CodeEmailNotVerified, "Email not confirmed")
	errInvalidPassword     = apperrors.New(apperrors.CodeUnauthenticated, "Invalid password")
	errInvalidRefreshToken = apperrors.New(apperrors.CodeUnauthenticated, "Invalid refresh token")
	errVerification        = apperrors.New(apperrors.CodeVerificationMismatch, "Verification error")
	errLoginFields         = apperrors.New(apperrors.CodeInvalidArgument, "username and password are required")
)

func (h *handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input, err := user.NormalizeSignup(user.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	if _, err := h.store.GetUserByEmail(ctx, input.Email); err == nil {
		httpx.WriteError(w, r, errAccountExists)
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		httpx.WriteError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	created, err := h.store.CreateUser(ctx, user.NewUser(input, hash, avatar.Gravatar(input.Email), h.now))
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			err = errAccountExists
		}
		httpx.WriteError(w, r, err)
		return
	}

	h.sendConfirmation(ctx, created, baseURL(r))
	_ = httpx.WriteJSON(w, http.StatusCreated, newUserResponse(created))
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(errInvalidBody.Code, errInvalidBody.Message, err))
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		httpx.WriteError(w, r, errLoginFields)
		return
	}

	ctx := r.Context()
	u, err := h.store.GetUserByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = errInvalidEmail
		}
		httpx.WriteError(w, r, err)
		return
	}
	if !u.Confirmed {
		httpx.WriteError(w, r, errEmailNotConfirmed)
		return
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		httpx.WriteError(w, r, errInvalidPassword)
		return
	}

	resp, err := h.issueTokens(ctx, u.Email)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		httpx.WriteError(w, r, errNotAuthenticated)
		return
	}
	email, err := h.tokens.ParseRefreshToken(token)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = errInvalidRefreshToken
		}
		httpx.WriteError(w, r, err)
		return
	}
	if u.RefreshToken != token {
		// A replayed or stale token revokes the session.
		if err := h.store.UpdateRefreshToken(ctx, u.Email, ""); err != nil {
			log.Printf("revoke refresh token for %s: %v", u.Email, err)
		}
		httpx.WriteError(w, r, errInvalidRefreshToken)
		return
	}

	resp, err := h.issueTokens(ctx, u.Email)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.ParseEmailToken(r.PathValue("token"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = errVerification
		}
		httpx.WriteError(w, r, err)
		return
	}
	if u.Confirmed {
		_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgEmailAlreadyConfirmed})
		return
	}
	if err := h.store.ConfirmEmail(ctx, email); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.evictUser(ctx, email)
	_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgEmailConfirmed})
}

func (h *handler) handleRequestEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	email, err := user.NormalizeEmail(req.Email)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil && u.Confirmed:
		_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgEmailAlreadyConfirmed})
		return
	case err == nil:
		h.sendConfirmation(ctx, u, baseURL(r))
	case !errors.Is(err, storage.ErrNotFound):
		httpx.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msgCheckEmail})
}

// issueTokens mints a token pair and stores the refresh token.
func (h *handler) issueTokens(ctx context.Context, email string) (TokenResponse, error) {
	access, err := h.tokens.AccessToken(email)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := h.tokens.RefreshToken(email)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := h.store.UpdateRefreshToken(ctx, email, refresh); err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: tokenTypeBearer}, nil
}

func (h *handler) sendConfirmation(ctx context.Context, u user.User, base string) {
	if h.confirmer == nil {
		log.Printf("mail is not configured, skipping confirmation for %s", u.Email)
		return
	}
	if err := h.confirmer.SendConfirmation(ctx, u.Email, u.Username, base); err != nil {
		log.Printf("queue confirmation for %s: %v", u.Email, err)
	}
}

func (h *handler) evictUser(ctx context.Context, email string) {
	h.cacheUser(ctx, email, func(ctx context.Context) error {
		return h.cache.Delete(ctx, email)
	})
}
