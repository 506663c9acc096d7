// Package storage defines persistence contracts for accounts and contacts.
//
// Handlers and services depend on these interfaces so the SQL dialect stays
// an implementation detail of sqlstore.
package storage

import (
	"context"

	"github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/services/contacts/contact"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates a unique constraint rejected the write.
var ErrAlreadyExists = errors.New(errors.CodeAlreadyExists, "record already exists")

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	GetUserByID(ctx context.Context, userID int64) (user.User, error)
	UpdateRefreshToken(ctx context.Context, email string, token string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, email string, url string) (user.User, error)
}

// ContactStore persists contacts. Every read and write is scoped to the
// owning user; another owner's contact reads as ErrNotFound.
type ContactStore interface {
	CreateContact(ctx context.Context, userID int64, input contact.Input) (contact.Contact, error)
	GetContact(ctx context.Context, userID int64, contactID int64) (contact.Contact, error)
	ListContacts(ctx context.Context, userID int64, limit int, offset int) ([]contact.Contact, error)
	ListAllContacts(ctx context.Context, userID int64) ([]contact.Contact, error)
	UpdateContact(ctx context.Context, userID int64, contactID int64, input contact.Input) (contact.Contact, error)
	DeleteContact(ctx context.Context, userID int64, contactID int64) (contact.Contact, error)
}

// HealthChecker verifies the backing database answers queries.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Store is the full persistence surface of the contacts service.
type Store interface {
	UserStore
	ContactStore
	HealthChecker
}
