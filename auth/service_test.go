package auth

import (
	"errors"
	"testing"
	"time"
)

func TestService_MintAndVerify(t *testing.T) {
	svc := NewService(nil, "test-secret")

	token, err := svc.MintToken("user-1", false, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if token == "" {
		t.Fatal("mint token: expected token, got empty string")
	}

	p, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if p.ID != "user-1" {
		t.Fatalf("expected principal id %q, got %q", "user-1", p.ID)
	}
	if p.IsAdmin {
		t.Fatal("expected non-admin principal")
	}
}

func TestService_VerifyAdminClaim(t *testing.T) {
	svc := NewService(nil, "test-secret")

	token, err := svc.MintToken("admin-1", true, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	p, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if !p.IsAdmin {
		t.Fatal("expected admin principal")
	}
}

func TestService_VerifyWrongSecret(t *testing.T) {
	signer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	token, err := signer.MintToken("user-1", false, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyExpired(t *testing.T) {
	svc := NewService(nil, "test-secret")

	token, err := svc.MintToken("user-1", false, -time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestService_VerifyGarbage(t *testing.T) {
	svc := NewService(nil, "test-secret")

	if _, err := svc.VerifyToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
