package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
)

// SignInPath is where anonymous visitors are sent from private pages.
const SignInPath = "/sign-in"

// RequireUser redirects anonymous visitors to the sign-in page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			c.Redirect(http.StatusSeeOther, SignInPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin lets admins through. Anonymous visitors go to sign-in,
// signed-in non-admins get forbidden.
func RequireAdmin(forbidden gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, SignInPath)
			c.Abort()
			return
		}
		if !s.IsAdmin {
			logger.WarnWithFields("access denied", logger.Fields{
				"user_id": s.UserID,
				"path":    c.Request.URL.Path,
			})
			forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
