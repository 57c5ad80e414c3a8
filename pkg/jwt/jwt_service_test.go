package jwt

import (
	"errors"
	"testing"
	"time"

	"foodgram/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("4b7c1f4e-0000-4000-8000-000000000001")
	if err != nil {
		t.Fatalf("GenerateTokenUser: %v", err)
	}

	id, err := svc.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("GetUserIDByToken: %v", err)
	}
	if id != "4b7c1f4e-0000-4000-8000-000000000001" {
		t.Fatalf("user id = %q", id)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)

	token, err := svc.GenerateTokenUser("user")
	if err != nil {
		t.Fatalf("GenerateTokenUser: %v", err)
	}
	if _, err := svc.GetUserIDByToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateTokenUser("user")
	if err != nil {
		t.Fatalf("GenerateTokenUser: %v", err)
	}

	_, err = NewJWTService("two", time.Hour).GetUserIDByToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("token errors must be authentication errors")
	}
}
