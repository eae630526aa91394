package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kalshield/models"
)

func TestNewSessionManagerRequiresSecret(t *testing.T) {
	manager, err := NewSessionManager("", time.Hour)
	if err == nil {
		t.Fatalf("expected error when secret is empty")
	}
	if manager != nil {
		t.Fatalf("expected nil manager when secret is empty")
	}
}

func TestNewSessionManagerDefaultTTL(t *testing.T) {
	manager, err := NewSessionManager("test-secret", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.TTL() != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", manager.TTL())
	}
	if manager.issuer != "kalshield" {
		t.Fatalf("expected issuer kalshield, got %q", manager.issuer)
	}
}

func TestSessionSignAndParseRoundTrip(t *testing.T) {
	manager, err := NewSessionManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := models.User{ID: "u1", Username: "neo", Email: "neo@example.com", ProfilePicture: "https://img/neo.png", IsAdmin: true}
	token, err := manager.Sign(SessionFromUser(user, "backend-jwt"))
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	got, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := Session{UserID: "u1", Username: "neo", Email: "neo@example.com", ProfilePicture: "https://img/neo.png", IsAdmin: true, BackendToken: "backend-jwt"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSessionWithUserKeepsToken(t *testing.T) {
	s := Session{UserID: "u1", Username: "old", BackendToken: "bt"}
	updated := s.WithUser(models.User{ID: "u1", Username: "new"})
	if updated.Username != "new" || updated.BackendToken != "bt" {
		t.Fatalf("unexpected session %+v", updated)
	}
}

func TestSessionParseRejectsOtherSecret(t *testing.T) {
	signer, _ := NewSessionManager("secret-a", time.Hour)
	verifier, _ := NewSessionManager("secret-b", time.Hour)

	token, err := signer.Sign(Session{UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionParseRejectsExpiredToken(t *testing.T) {
	manager, _ := NewSessionManager("test-secret", time.Hour)

	claims := jwt.MapClaims{
		"sub": "u1",
		"iss": "kalshield",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	_, err = manager.Parse(token)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestSessionParseRequiresSubject(t *testing.T) {
	manager, _ := NewSessionManager("test-secret", time.Hour)

	token, err := manager.Sign(Session{Username: "ghost"})
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}
	if _, err := manager.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
