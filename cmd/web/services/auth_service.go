package services

import (
	"context"
	"fmt"
	"strings"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
)

// AuthService signs visitors in and out against the backend and issues the
// web tier's own session token.
type AuthService struct {
	client   *blogclient.Client
	sessions *auth.SessionManager
}

func NewAuthService(client *blogclient.Client, sessions *auth.SessionManager) *AuthService {
	return &AuthService{client: client, sessions: sessions}
}

// SignIn checks the credentials with the backend and returns a signed
// session token along with the session it carries.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, auth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", auth.Session{}, formError("Please fill all the fields")
	}

	user, backendToken, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return "", auth.Session{}, err
	}

	sess := auth.SessionFromUser(user, backendToken)
	token, err := s.Issue(sess)
	if err != nil {
		return "", auth.Session{}, err
	}
	return token, sess, nil
}

// SignUp registers a new account. The visitor signs in afterwards.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return formError("Please fill out all fields.")
	}
	return s.client.SignUp(ctx, username, email, password)
}

// SignOut tells the backend to drop its cookie. The caller clears the
// session cookie whatever the outcome.
func (s *AuthService) SignOut(ctx context.Context, sess auth.Session) error {
	return s.client.SignOut(ctx, sess.BackendToken)
}

// Issue signs sess into a session token.
func (s *AuthService) Issue(sess auth.Session) (string, error) {
	token, err := s.sessions.Sign(sess)
	if err != nil {
		return "", fmt.Errorf("session sign: %w", err)
	}
	return token, nil
}
