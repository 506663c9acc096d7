package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/contactbook/internal/services/contacts/contact"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

const contactSelect = `
SELECT c.id, c.user_id, c.first_name, c.last_name, c.email, c.phone_number, c.birthday,
       c.additional_data, c.created_at, c.updated_at,
       u.id, u.username, u.email, u.password, u.avatar, u.refresh_token, u.role, u.confirmed,
       u.created_at, u.updated_at
FROM contacts c
JOIN users u ON u.id = c.user_id`

func scanContact(row rowScanner) (contact.Contact, error) {
	var (
		c                    contact.Contact
		owner                user.User
		role                 string
		createdAt, updatedAt int64
		ownerCreated         int64
		ownerUpdated         int64
	)
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PhoneNumber,
		&c.Birthday,
		&c.AdditionalData,
		&createdAt,
		&updatedAt,
		&owner.ID,
		&owner.Username,
		&owner.Email,
		&owner.PasswordHash,
		&owner.Avatar,
		&owner.RefreshToken,
		&role,
		&owner.Confirmed,
		&ownerCreated,
		&ownerUpdated,
	); err != nil {
		return contact.Contact{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	owner.Role = user.ParseRole(role)
	owner.CreatedAt = fromMillis(ownerCreated)
	owner.UpdatedAt = fromMillis(ownerUpdated)
	c.Owner = &owner
	return c, nil
}

func (s *Store) queryContacts(ctx context.Context, query string, args ...any) ([]contact.Contact, error) {
	rows, err := s.sqlDB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]contact.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CreateContact inserts a contact for userID. The input must already be
// normalized.
func (s *Store) CreateContact(ctx context.Context, userID int64, input contact.Input) (contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return contact.Contact{}, err
	}
	now := toMillis(s.now())

	var id int64
	err := s.sqlDB.QueryRowContext(ctx, s.rebind(`
INSERT INTO contacts (user_id, first_name, last_name, email, phone_number, birthday, additional_data, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		userID,
		input.FirstName,
		input.LastName,
		input.Email,
		input.PhoneNumber,
		input.Birthday,
		input.AdditionalData,
		now,
		now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return contact.Contact{}, storage.ErrAlreadyExists
		}
		return contact.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return s.GetContact(ctx, userID, id)
}

// GetContact fetches one contact owned by userID.
func (s *Store) GetContact(ctx context.Context, userID int64, contactID int64) (contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return contact.Contact{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, s.rebind(contactSelect+` WHERE c.id = ? AND c.user_id = ?`), contactID, userID)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.Contact{}, storage.ErrNotFound
		}
		return contact.Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// ListContacts returns one page of userID's contacts in insertion order.
func (s *Store) ListContacts(ctx context.Context, userID int64, limit int, offset int) ([]contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}
	contacts, err := s.queryContacts(ctx, contactSelect+` WHERE c.user_id = ? ORDER BY c.id LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// ListAllContacts returns every contact owned by userID.
func (s *Store) ListAllContacts(ctx context.Context, userID int64) ([]contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	contacts, err := s.queryContacts(ctx, contactSelect+` WHERE c.user_id = ? ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact overwrites the writable fields of a contact owned by userID.
func (s *Store) UpdateContact(ctx context.Context, userID int64, contactID int64, input contact.Input) (contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return contact.Contact{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx, s.rebind(`
UPDATE contacts
SET first_name = ?, last_name = ?, email = ?, phone_number = ?, birthday = ?, additional_data = ?, updated_at = ?
WHERE id = ? AND user_id = ?`),
		input.FirstName,
		input.LastName,
		input.Email,
		input.PhoneNumber,
		input.Birthday,
		input.AdditionalData,
		toMillis(s.now()),
		contactID,
		userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return contact.Contact{}, storage.ErrAlreadyExists
		}
		return contact.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return contact.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	if affected == 0 {
		return contact.Contact{}, storage.ErrNotFound
	}
	return s.GetContact(ctx, userID, contactID)
}

// DeleteContact removes a contact owned by userID and returns its last state.
func (s *Store) DeleteContact(ctx context.Context, userID int64, contactID int64) (contact.Contact, error) {
	if err := s.ready(ctx); err != nil {
		return contact.Contact{}, err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	c, err := scanContact(tx.QueryRowContext(ctx, s.rebind(contactSelect+` WHERE c.id = ? AND c.user_id = ?`), contactID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.Contact{}, storage.ErrNotFound
		}
		return contact.Contact{}, fmt.Errorf("load contact: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM contacts WHERE id = ? AND user_id = ?`), contactID, userID); err != nil {
		return contact.Contact{}, fmt.Errorf("delete contact: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return contact.Contact{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}
