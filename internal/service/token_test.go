package service

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)

	tok, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := tokens.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "user-42" {
		t.Errorf("subject: got %q, want %q", subject, "user-42")
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("test-secret-key", -time.Minute)

	tok, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tokens.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	tok, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid under a different secret, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestTokenEmptySubjectRejected(t *testing.T) {
	tokens := NewTokenService("test-secret-key", time.Hour)

	tok, err := tokens.Issue("")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tokens.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty subject, got %v", err)
	}
}
