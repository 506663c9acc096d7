// Package contact defines address book entries and the rules applied to them.
package contact

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// BirthdayLayout is the canonical stored birthday format.
const BirthdayLayout = "2006-01-02"

// legacyBirthdayLayout is the day-first format accepted on input.
const legacyBirthdayLayout = "02.01.2006"

const (
	maxNameLength  = 100
	maxPhoneLength = 32
	maxNoteLength  = 1000
)

var (
	// ErrInvalidEmail indicates a contact email that is not a bare mailbox.
	ErrInvalidEmail = apperrors.New(apperrors.CodeContactInvalidEmail, "value is not a valid email address")
	// ErrInvalidBirthday indicates a birthday in an unsupported format or in the future.
	ErrInvalidBirthday = apperrors.New(apperrors.CodeContactInvalidBirthday, "birthday must be a past date formatted YYYY-MM-DD or DD.MM.YYYY")
	// ErrInvalidPhone indicates a phone number with unsupported characters.
	ErrInvalidPhone = apperrors.New(apperrors.CodeContactMissingField, "phone_number may only contain digits, spaces, and + - ( )")
)

// Contact is an address book entry owned by one user.
type Contact struct {
	ID             int64
	UserID         int64
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       string
	AdditionalData string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Owner is populated by reads that join the owning account.
	Owner *user.User
}

// Input carries the writable fields of a contact.
type Input struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       string
	AdditionalData string
}

// Normalize trims every field, validates required ones, and canonicalizes
// the email address and birthday. now bounds the birthday to the past.
func Normalize(input Input, now time.Time) (Input, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.AdditionalData = strings.TrimSpace(input.AdditionalData)

	if err := requireField("first_name", input.FirstName, maxNameLength); err != nil {
		return Input{}, err
	}
	if err := requireField("last_name", input.LastName, maxNameLength); err != nil {
		return Input{}, err
	}
	if err := requireField("phone_number", input.PhoneNumber, maxPhoneLength); err != nil {
		return Input{}, err
	}
	if !validPhone(input.PhoneNumber) {
		return Input{}, ErrInvalidPhone
	}
	if utf8.RuneCountInString(input.AdditionalData) > maxNoteLength {
		return Input{}, apperrors.WithMetadata(apperrors.CodeContactMissingField,
			"additional_data must be at most 1000 characters",
			map[string]string{"Field": "additional_data"})
	}

	email, err := user.NormalizeEmail(input.Email)
	if err != nil {
		return Input{}, ErrInvalidEmail
	}
	input.Email = email

	birthday, err := ParseBirthday(input.Birthday)
	if err != nil {
		return Input{}, err
	}
	if birthday.After(now) {
		return Input{}, ErrInvalidBirthday
	}
	input.Birthday = birthday.Format(BirthdayLayout)
	return input, nil
}

// ParseBirthday accepts YYYY-MM-DD or DD.MM.YYYY and returns the date at UTC midnight.
func ParseBirthday(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{BirthdayLayout, legacyBirthdayLayout} {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidBirthday
}

func requireField(field string, value string, maxLength int) error {
	if value == "" {
		return apperrors.WithMetadata(apperrors.CodeContactMissingField,
			field+" is required", map[string]string{"Field": field})
	}
	if utf8.RuneCountInString(value) > maxLength {
		return apperrors.WithMetadata(apperrors.CodeContactMissingField,
			field+" is too long", map[string]string{"Field": field})
	}
	return nil
}

func validPhone(value string) bool {
	digits := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+', r == '-', r == ' ', r == '(', r == ')':
		default:
			return false
		}
	}
	return digits > 0
}
