package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
)

const sessionKey = "session"

// LoadSession parses the session cookie (or Bearer token) and stores the
// visitor's session on the context. A cookie that fails to parse is cleared
// and the visitor continues anonymously.
func LoadSession(sessions *auth.SessionManager, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.SessionToken(c, cookie.Name)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				logger.DebugWithFields("session token rejected", logger.Fields{"error": err.Error()})
			}
			c.Next()
			return
		}

		s, err := sessions.Parse(token)
		if err != nil {
			logger.WarnWithFields("invalid session cleared", logger.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			auth.ClearSessionCookie(c, cookie)
			c.Next()
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the visitor's session, if signed in.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

// SetSession replaces the session for the rest of the request.
func SetSession(c *gin.Context, s auth.Session) {
	c.Set(sessionKey, s)
}
