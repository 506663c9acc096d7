package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("expected hashed password")
	}
	if !VerifyPassword("secret123", hash) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("expected mismatch")
	}
	if VerifyPassword("secret123", "not-a-hash") {
		t.Fatal("expected malformed hash to fail")
	}
}

func TestHashPasswordRejectsOverlongPassword(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", 80))
	if !errors.Is(err, user.ErrPasswordTooLong) {
		t.Fatalf("expected %v, got %v", user.ErrPasswordTooLong, err)
	}
}
