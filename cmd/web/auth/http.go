package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
	ErrNoSession     = errors.New("no_session")
)

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// SessionToken returns the session token from cookieName, falling back to a
// Bearer header for API clients. ErrNoSession means neither was sent.
func SessionToken(c *gin.Context, cookieName string) (string, error) {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v, nil
	}
	token, err := ExtractBearerToken(c)
	if errors.Is(err, ErrMissingHeader) {
		return "", ErrNoSession
	}
	return token, err
}

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Name   string
	MaxAge int
	Secure bool
}

// SetSessionCookie writes an httpOnly, SameSite=Lax session cookie.
func SetSessionCookie(c *gin.Context, opts CookieOptions, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, token, opts.MaxAge, "/", "", opts.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, "", -1, "/", "", opts.Secure, true)
}

// AbortWithUnauthorized aborts the request with 401 status and error JSON.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}
