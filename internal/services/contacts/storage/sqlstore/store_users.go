package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

const userColumns = `id, username, email, password, avatar, refresh_token, role, confirmed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		u         user.User
		role      string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.RefreshToken,
		&role,
		&u.Confirmed,
		&createdAt,
		&updatedAt,
	); err != nil {
		return user.User{}, err
	}
	u.Role = user.ParseRole(role)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// CreateUser inserts an account and returns it with its assigned ID.
func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	if strings.TrimSpace(u.Email) == "" {
		return user.User{}, fmt.Errorf("email is required")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if u.Role == "" {
		u.Role = user.RoleUser
	}

	row := s.sqlDB.QueryRowContext(ctx, s.rebind(`
INSERT INTO users (username, email, password, avatar, refresh_token, role, confirmed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Avatar,
		u.RefreshToken,
		string(u.Role),
		u.Confirmed,
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, storage.ErrAlreadyExists
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	u.CreatedAt = fromMillis(toMillis(u.CreatedAt))
	u.UpdatedAt = fromMillis(toMillis(u.UpdatedAt))
	return u, nil
}

// GetUserByEmail fetches an account by its login email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return user.User{}, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx, s.rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID fetches an account by ID.
func (s *Store) GetUserByID(ctx context.Context, userID int64) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, s.rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), userID)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// UpdateRefreshToken replaces the stored refresh token. An empty token
// revokes the session.
func (s *Store) UpdateRefreshToken(ctx context.Context, email string, token string) error {
	return s.updateUserField(ctx, email, "refresh_token", token)
}

// ConfirmEmail marks the account's email as verified.
func (s *Store) ConfirmEmail(ctx context.Context, email string) error {
	return s.updateUserField(ctx, email, "confirmed", true)
}

// UpdateAvatar stores a new avatar URL and returns the updated account.
func (s *Store) UpdateAvatar(ctx context.Context, email string, url string) (user.User, error) {
	if err := s.updateUserField(ctx, email, "avatar", url); err != nil {
		return user.User{}, err
	}
	return s.GetUserByEmail(ctx, email)
}

// updateUserField sets one whitelisted column; column is never caller input.
func (s *Store) updateUserField(ctx context.Context, email string, column string, value any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	result, err := s.sqlDB.ExecContext(ctx,
		s.rebind(`UPDATE users SET `+column+` = ?, updated_at = ? WHERE email = ?`),
		value, toMillis(s.now()), email,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
