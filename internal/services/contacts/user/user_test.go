package user

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizeSignup(t *testing.T) {
	got, err := NormalizeSignup(SignupInput{Username: "  alice ", Email: " Alice@Example.COM ", Password: "secret1"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", got.Username)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", got.Email)
	}
	if got.Password != "secret1" {
		t.Fatalf("expected password untouched, got %q", got.Password)
	}
}

func TestNormalizeSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   SignupInput
		wantErr error
	}{
		{name: "empty username", input: SignupInput{Username: "  ", Email: "a@b.co", Password: "secret1"}, wantErr: ErrEmptyUsername},
		{name: "long username", input: SignupInput{Username: string(make([]byte, 51)), Email: "a@b.co", Password: "secret1"}, wantErr: ErrUsernameTooLong},
		{name: "missing at", input: SignupInput{Username: "a", Email: "alice.example.com", Password: "secret1"}, wantErr: ErrInvalidEmail},
		{name: "display name", input: SignupInput{Username: "a", Email: "Alice <a@b.co>", Password: "secret1"}, wantErr: ErrInvalidEmail},
		{name: "no domain dot", input: SignupInput{Username: "a", Email: "a@localhost", Password: "secret1"}, wantErr: ErrInvalidEmail},
		{name: "short password", input: SignupInput{Username: "a", Email: "a@b.co", Password: "12345"}, wantErr: ErrWeakPassword},
		{name: "password over bcrypt limit", input: SignupInput{Username: "a", Email: "a@b.co", Password: strings.Repeat("p", 73)}, wantErr: ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeSignup(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNormalizeSignupAcceptsLongestPassword(t *testing.T) {
	password := strings.Repeat("p", MaxPasswordBytes)
	got, err := NormalizeSignup(SignupInput{Username: "a", Email: "a@b.co", Password: password})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Password != password {
		t.Fatal("expected password untouched")
	}
}

func TestNormalizeSignupCountsPasswordBytes(t *testing.T) {
	// 25 three-byte runes pass the rune minimum but exceed 72 bytes.
	_, err := NormalizeSignup(SignupInput{Username: "a", Email: "a@b.co", Password: strings.Repeat("€", 25)})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestNewUserDefaults(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	created := NewUser(SignupInput{Username: "alice", Email: "alice@example.com"}, "hash", "https://avatar", func() time.Time { return fixed })

	if created.Role != RoleUser {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
	if created.Confirmed {
		t.Fatal("expected new user to be unconfirmed")
	}
	if !created.CreatedAt.Equal(fixed) || created.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC creation time, got %v", created.CreatedAt)
	}
	if created.PasswordHash != "hash" || created.Avatar != "https://avatar" {
		t.Fatalf("unexpected user: %+v", created)
	}
}

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"admin":     RoleAdmin,
		" MODERATOR": RoleModerator,
		"user":      RoleUser,
		"":          RoleUser,
		"root":      RoleUser,
	}
	for input, want := range tests {
		if got := ParseRole(input); got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", input, got, want)
		}
	}
}
