package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/httpx"
	"github.com/louisbranch/contactbook/internal/platform/timeouts"
)

// MaxAvatarBytes caps avatar uploads.
const MaxAvatarBytes = 5 << 20

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 64 << 10

var (
	errAvatarDisabled = apperrors.New(apperrors.CodeNotImplemented, "Avatar upload is not configured")
	errAvatarMissing  = apperrors.New(apperrors.CodeInvalidArgument, "file is required")
	errAvatarTooLarge = apperrors.New(apperrors.CodeInvalidArgument, "file must be at most 5 MiB")
)

func (h *handler) handleMe(w http.ResponseWriter, r *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, newUserResponse(currentUser(r)))
}

func (h *handler) handleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	if h.avatars == nil {
		httpx.WriteError(w, r, errAvatarDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarBytes+multipartOverhead)
	if err := r.ParseMultipartForm(MaxAvatarBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.WriteError(w, r, errAvatarTooLarge)
			return
		}
		httpx.WriteError(w, r, apperrors.Wrap(errAvatarMissing.Code, errAvatarMissing.Message, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(errAvatarMissing.Code, errAvatarMissing.Message, err))
		return
	}
	defer file.Close()
	if header.Size > MaxAvatarBytes {
		httpx.WriteError(w, r, errAvatarTooLarge)
		return
	}

	current := currentUser(r)
	uploadCtx, cancel := context.WithTimeout(r.Context(), timeouts.AvatarUpload)
	defer cancel()
	url, err := h.avatars.Upload(uploadCtx, current.Email, file)
	if err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeUnavailable, "Avatar upload failed", err))
		return
	}

	updated, err := h.store.UpdateAvatar(r.Context(), current.Email, url)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.cacheUser(r.Context(), updated.Email, func(ctx context.Context) error {
		return h.cache.Set(ctx, updated, h.avatarTTL)
	})
	_ = httpx.WriteJSON(w, http.StatusOK, newUserResponse(updated))
}

func (h *handler) cacheUser(ctx context.Context, email string, op func(context.Context) error) {
	if h.cache == nil {
		return
	}
	cacheCtx, cancel := context.WithTimeout(ctx, timeouts.Cache)
	defer cancel()
	if err := op(cacheCtx); err != nil {
		log.Printf("user cache update %s: %v", email, err)
	}
}
