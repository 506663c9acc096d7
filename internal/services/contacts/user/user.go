package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
)

const (
	maxUsernameLength = 50
	maxEmailLength    = 150
	minPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
)

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = apperrors.New(apperrors.CodeUserEmptyUsername, "username is required")
	// ErrUsernameTooLong indicates a username longer than the column allows.
	ErrUsernameTooLong = apperrors.New(apperrors.CodeUserInvalidUsername, "username must be at most 50 characters")
	// ErrInvalidEmail indicates an address that is not a bare RFC 5322 mailbox.
	ErrInvalidEmail = apperrors.New(apperrors.CodeUserInvalidEmail, "value is not a valid email address")
	// ErrWeakPassword indicates a password below the minimum length.
	ErrWeakPassword = apperrors.New(apperrors.CodeUserWeakPassword, "password must be at least 6 characters")
	// ErrPasswordTooLong indicates a password bcrypt cannot hash.
	ErrPasswordTooLong = apperrors.New(apperrors.CodeUserWeakPassword, "password must be at most 72 bytes")
)

// Role grades account privileges.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// ParseRole maps a stored role to a known Role, defaulting to RoleUser.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

// User is an account able to own contacts.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Avatar       string
	RefreshToken string
	Role         Role
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupInput describes an account registration request.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// NormalizeEmail trims and lowercases an address and validates its shape.
func NormalizeEmail(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || len(value) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(value)
	if err != nil || parsed.Address != value || parsed.Name != "" {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndexByte(value, '@')
	if at <= 0 || !strings.Contains(value[at+1:], ".") {
		return "", ErrInvalidEmail
	}
	return value, nil
}

// NormalizeSignup trims and validates registration input. The password is
// returned untouched.
func NormalizeSignup(input SignupInput) (SignupInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return SignupInput{}, ErrEmptyUsername
	}
	if utf8.RuneCountInString(input.Username) > maxUsernameLength {
		return SignupInput{}, ErrUsernameTooLong
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return SignupInput{}, err
	}
	input.Email = email
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return SignupInput{}, ErrWeakPassword
	}
	if len(input.Password) > MaxPasswordBytes {
		return SignupInput{}, ErrPasswordTooLong
	}
	return input, nil
}

// NewUser builds an unconfirmed account with the default role.
func NewUser(input SignupInput, passwordHash string, avatar string, now func() time.Time) User {
	if now == nil {
		now = time.Now
	}
	createdAt := now().UTC()
	return User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		Role:         RoleUser,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}
