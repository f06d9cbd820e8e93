package helpers_test

import (
	"strings"
	"testing"
	"time"

	"blogapi/pkg/helpers"
)

func newManager(t *testing.T) *helpers.JWTManager {
	t.Helper()
	return helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newManager(t)

	tok, exp, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	if !exp.After(time.Now()) {
		t.Fatal("expected future expiry")
	}

	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Fatalf("got uid %q, want user-42", claims.UserID)
	}
}

func TestAccessToken_WrongKeyRejected(t *testing.T) {
	m := newManager(t)
	tok, _, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := helpers.NewJWTManager("different-secret", "refresh-secret", time.Hour, 24*time.Hour)
	if _, err := other.ParseAccessToken(tok); err == nil {
		t.Fatal("token signed with another key must not verify")
	}
}

func TestAccessToken_TamperedPayloadRejected(t *testing.T) {
	m := newManager(t)
	tok, _, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	// flip a character in the payload segment
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.ParseAccessToken(tampered); err == nil {
		t.Fatal("tampered token must not verify")
	}
}

func TestTokenTypesNotInterchangeable(t *testing.T) {
	m := newManager(t)

	access, _, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refresh, _, err := m.GenerateRefreshToken("user-42")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatal("access token must not parse as refresh token")
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Fatal("refresh token must not parse as access token")
	}

	// even with identical secrets the typ claim keeps them apart
	same := helpers.NewJWTManager("one-secret", "one-secret", time.Hour, time.Hour)
	a, _, _ := same.GenerateAccessToken("u")
	if _, err := same.ParseRefreshToken(a); err == nil {
		t.Fatal("typ claim must separate token kinds under a shared secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := helpers.NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatal("expired token must not verify")
	}
}
