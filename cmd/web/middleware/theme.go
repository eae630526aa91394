package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ThemeCookie = "theme"
	ThemeDark   = "dark"
	ThemeLight  = "light"

	themeKey    = "theme"
	themeMaxAge = 365 * 24 * 60 * 60
)

// Theme reads the theme cookie. Anything but "light" is dark.
func Theme() gin.HandlerFunc {
	return func(c *gin.Context) {
		theme := ThemeDark
		if v, err := c.Cookie(ThemeCookie); err == nil && v == ThemeLight {
			theme = ThemeLight
		}
		c.Set(themeKey, theme)
		c.Next()
	}
}

// CurrentTheme returns the theme chosen by Theme, dark by default.
func CurrentTheme(c *gin.Context) string {
	if v, ok := c.Get(themeKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ThemeDark
}

// ToggleTheme flips the theme cookie and returns the new theme.
func ToggleTheme(c *gin.Context) string {
	next := ThemeLight
	if CurrentTheme(c) == ThemeLight {
		next = ThemeDark
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ThemeCookie, next, themeMaxAge, "/", "", false, false)
	c.Set(themeKey, next)
	return next
}
