// Package cache keeps resolved accounts close to the request path so bearer
// token checks avoid a database round trip.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// UserCache stores accounts keyed by login email.
type UserCache interface {
	Get(ctx context.Context, email string) (user.User, bool, error)
	Set(ctx context.Context, u user.User, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}

// entry is the cached wire form of an account.
type entry struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Avatar       string    `json:"avatar"`
	RefreshToken string    `json:"refresh_token"`
	Role         string    `json:"role"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func encodeUser(u user.User) ([]byte, error) {
	data, err := json.Marshal(entry{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		RefreshToken: u.RefreshToken,
		Role:         string(u.Role),
		Confirmed:    u.Confirmed,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	return data, nil
}

func decodeUser(data []byte) (user.User, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return user.User{}, fmt.Errorf("decode user: %w", err)
	}
	return user.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Avatar:       e.Avatar,
		RefreshToken: e.RefreshToken,
		Role:         user.ParseRole(e.Role),
		Confirmed:    e.Confirmed,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}

func normalizeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
