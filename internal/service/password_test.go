package service

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("expected bcrypt cost-10 hash, got prefix %q", hash[:7])
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("expected password to verify against its own hash")
	}
}

func TestCheckPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("password-one")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if CheckPassword("password-two", hash) {
		t.Error("different password must not verify")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// A malformed stored hash reads as a plain mismatch, never a panic or a
	// distinguishable failure.
	for _, hash := range []string{"", "not-a-hash", "$2a$10$tooshort"} {
		if CheckPassword("anything", hash) {
			t.Errorf("malformed hash %q must not verify", hash)
		}
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}
