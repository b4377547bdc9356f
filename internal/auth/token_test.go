package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)
	userID := "user-123"

	tok, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotUserID, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	// Same secret, already-elapsed TTL.
	expired := &TokenIssuer{secret: []byte("secret"), ttl: -time.Second}
	tok, err := expired.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := issuer.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenIssuer([]byte("wrong-secret"), time.Hour).Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer([]byte("k"), time.Hour).Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
