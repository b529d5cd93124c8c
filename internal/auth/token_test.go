package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"portfolio/internal/domain"
)

func newTestService() *TokenService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTokenService("test-secret", "admin", "admin123", logger)
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService()

	token, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity != "admin" {
		t.Errorf("identity = %q, want %q", identity, "admin")
	}
}

func TestVerifyFailures(t *testing.T) {
	svc := newTestService()
	valid, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := newTestService()
	other.secret = []byte("different-secret")
	foreign, err := other.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "not.a.token"},
		{name: "empty token", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "truncated token", token: valid[:len(valid)-5]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("Verify(%q) error = %v, want ErrUnauthorized", tt.token, err)
			}
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService()

	// Issue a token in the past, then verify it at present time
	svc.now = func() time.Time { return time.Now().Add(-TokenValidity - time.Hour) }
	token, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Verify(expired) error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", username: "admin", password: "admin123"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: true},
		{name: "wrong username", username: "root", password: "admin123", wantErr: true},
		{name: "empty credentials", username: "", password: "", wantErr: true},
	}

	svc := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if identity, err := svc.Verify(token); err != nil || identity != tt.username {
				t.Errorf("Verify(login token) = %q, %v", identity, err)
			}
		})
	}
}
