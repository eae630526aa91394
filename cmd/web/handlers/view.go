package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
	"kalshield/cmd/web/trace"
	"kalshield/querystate"
)

const msgSomethingWrong = "Something went wrong"

// page returns the data every page template needs: theme, visitor, header
// search state and the path to come back to after a POST.
func page(c *gin.Context, title string) gin.H {
	var user *auth.Session
	if s, ok := middleware.CurrentSession(c); ok {
		user = &s
	}

	current := ""
	if c.Request.URL.Path == "/search" {
		current = c.Request.URL.RawQuery
	}

	return gin.H{
		"Title":        title,
		"Theme":        middleware.CurrentTheme(c),
		"User":         user,
		"Path":         c.Request.URL.Path,
		"Return":       c.Request.URL.RequestURI(),
		"CurrentQuery": current,
		"HeaderSearch": querystate.ParseParams(current).Get(querystate.KeySearchTerm),
	}
}

// with adds extra keys to a page's data.
func with(h gin.H, extra gin.H) gin.H {
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func renderNotFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "not_found.html", with(page(c, "Page not found"), gin.H{"Message": message}))
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", with(page(c, http.StatusText(status)), gin.H{
		"Status":  status,
		"Message": message,
	}))
}

// Forbidden renders the 403 page for signed-in visitors lacking rights.
func Forbidden() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderError(c, http.StatusForbidden, "You are not allowed to view this page.")
	}
}

// NotFound is the fallback for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderNotFound(c, "")
	}
}

// mustSession is for routes behind RequireUser.
func mustSession(c *gin.Context) auth.Session {
	s, _ := middleware.CurrentSession(c)
	return s
}

// safeReturn accepts only local paths, so a form cannot redirect off-site.
func safeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

// statusFor maps a service error to the status of the re-rendered form.
func statusFor(err error) int {
	var fe *services.FormError
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity
	}
	var apiErr *blogclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

// logFailure records a failed backend call with the request's trace ids.
func logFailure(c *gin.Context, msg string, err error, fields logger.Fields) {
	line := trace.Fields(c.Request.Context())
	for k, v := range fields {
		line[k] = v
	}
	line["error"] = err.Error()
	line["path"] = c.Request.URL.Path
	logger.ErrorWithFields(msg, line)
}
