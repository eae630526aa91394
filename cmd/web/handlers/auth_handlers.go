package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
	"kalshield/cmd/web/trace"
)

// SignInPageHandler renders the sign-in form. Signed-in visitors go home.
func SignInPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.CurrentSession(c); ok {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.HTML(http.StatusOK, "sign_in.html", page(c, "Sign In"))
	}
}

// SignInHandler checks the credentials and sets the session cookie.
func SignInHandler(svc *services.AuthService, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		token, sess, err := svc.SignIn(c.Request.Context(), email, c.PostForm("password"))
		if err != nil {
			fields := trace.Fields(c.Request.Context())
			fields["error"] = err.Error()
			logger.WarnWithFields("sign in failed", fields)
			c.HTML(statusFor(err), "sign_in.html", with(page(c, "Sign In"), gin.H{
				"Email": email,
				"Error": services.VisitorMessage(err, msgSomethingWrong),
			}))
			return
		}

		auth.SetSessionCookie(c, cookie, token)
		fields := trace.Fields(c.Request.Context())
		fields["user_id"] = sess.UserID
		logger.InfoWithFields("signed in", fields)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func SignUpPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.CurrentSession(c); ok {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.HTML(http.StatusOK, "sign_up.html", page(c, "Sign Up"))
	}
}

// SignUpHandler registers an account and sends the visitor to sign in.
func SignUpHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		email := c.PostForm("email")
		if err := svc.SignUp(c.Request.Context(), username, email, c.PostForm("password")); err != nil {
			c.HTML(statusFor(err), "sign_up.html", with(page(c, "Sign Up"), gin.H{
				"Username": username,
				"Email":    email,
				"Error":    services.VisitorMessage(err, msgSomethingWrong),
			}))
			return
		}
		c.Redirect(http.StatusSeeOther, "/sign-in")
	}
}

// SignOutHandler clears the session even when the backend call fails.
func SignOutHandler(svc *services.AuthService, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := middleware.CurrentSession(c); ok {
			if err := svc.SignOut(c.Request.Context(), sess); err != nil {
				logFailure(c, "backend sign out failed", err, logger.Fields{"user_id": sess.UserID})
			}
		}
		auth.ClearSessionCookie(c, cookie)
		c.Redirect(http.StatusSeeOther, "/sign-in")
	}
}
