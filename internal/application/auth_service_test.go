package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blogapi/internal/application"
	"blogapi/pkg/helpers"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (*application.AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	jwt := helpers.NewJWTManager(testSecret, testSecret+"-refresh", time.Hour, 24*time.Hour)
	svc := application.NewAuthService(users, &fakeAuditRepo{}, jwt, nil, nil, nil, "blogapi-test", false)
	return svc, users
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "al", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected id to be set")
	}
	if u.Username != "al" || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}
	if strings.Contains(u.PasswordHash, "secret") {
		t.Fatal("hash must not contain the raw password")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@x.com", "secret"},
		{"no email", "al", "", "secret"},
		{"no password", "al", "a@x.com", ""},
		{"blank password", "al", "a@x.com", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			var verr *application.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if users.creates != 0 {
		t.Fatalf("expected no store writes, got %d", users.creates)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "al", "a@x.com", "secret"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "other", "a@x.com", "different")
	if !errors.Is(err, application.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if users.creates != 1 {
		t.Fatalf("expected exactly one user record, got %d", users.creates)
	}
}

func TestLogin_SameErrorForBothFailureModes(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "al", "a@x.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, errWrongPw := svc.Login(ctx, "a@x.com", "wrong")
	_, _, errNoUser := svc.Login(ctx, "nobody@x.com", "secret")

	if !errors.Is(errWrongPw, application.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, application.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatal("the two failure modes must be indistinguishable")
	}
}

func TestLogin_TokenResolvesToUser(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "al", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	logged, pair, err := svc.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("login returned user %s, want %s", logged.ID, u.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}
	if !pair.AccessTokenExpiry.After(time.Now()) {
		t.Fatal("access token must carry a future expiry")
	}

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("token resolves to %s, want %s", claims.UserID, u.ID)
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "al", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, pair, err := svc.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	newPair, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if uid != u.ID {
		t.Fatalf("refresh resolved to %s, want %s", uid, u.ID)
	}
	if newPair.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	// An access token must not work as a refresh token.
	if _, _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, application.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _ := newAuthService(t)
	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
