package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kalshield/models"
)

const defaultIssuer = "kalshield"

var ErrInvalidSession = errors.New("invalid_session")

// Session is what the web tier remembers about a signed-in visitor.
// BackendToken is forwarded to the REST backend as its auth cookie.
type Session struct {
	UserID         string
	Username       string
	Email          string
	ProfilePicture string
	IsAdmin        bool
	BackendToken   string
}

// SessionFromUser builds a session from a backend user and its token.
func SessionFromUser(u models.User, backendToken string) Session {
	return Session{
		UserID:         u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		BackendToken:   backendToken,
	}
}

// WithUser refreshes the profile fields after an update, keeping the token.
func (s Session) WithUser(u models.User) Session {
	return SessionFromUser(u, s.BackendToken)
}

// SessionManager signs and verifies session cookies as HS256 JWTs.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSessionManager requires a non-empty secret. A zero ttl means 24 hours.
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		secret: []byte(secret),
		issuer: defaultIssuer,
		ttl:    ttl,
	}, nil
}

// TTL is the lifetime of issued tokens, also used as cookie max-age.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

func (m *SessionManager) Sign(s Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   s.UserID,
		"name":  s.Username,
		"email": s.Email,
		"pic":   s.ProfilePicture,
		"admin": s.IsAdmin,
		"bt":    s.BackendToken,
		"iss":   m.issuer,
		"exp":   time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) Parse(tokenString string) (Session, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidSession
	}

	s := Session{}
	s.UserID, _ = claims["sub"].(string)
	s.Username, _ = claims["name"].(string)
	s.Email, _ = claims["email"].(string)
	s.ProfilePicture, _ = claims["pic"].(string)
	s.IsAdmin, _ = claims["admin"].(bool)
	s.BackendToken, _ = claims["bt"].(string)
	if s.UserID == "" {
		return Session{}, fmt.Errorf("%w: token missing sub claim", ErrInvalidSession)
	}

	return s, nil
}
