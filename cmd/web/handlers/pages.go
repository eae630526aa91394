package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
)

// Project is an entry of the projects page.
type Project struct {
	Name        string
	URL         string
	Description string
}

// Projects shown on /projects.
var Projects = []Project{
	{Name: "Port Scanner", URL: "https://github.com/kalshield/port-scanner", Description: "A concurrent TCP port scanner with service banners."},
	{Name: "XSS Playground", URL: "https://github.com/kalshield/xss-playground", Description: "A deliberately vulnerable app for practicing reflected and stored XSS."},
	{Name: "Packet Sniffer", URL: "https://github.com/kalshield/packet-sniffer", Description: "Capture and decode traffic on a lab network."},
}

// HomeHandler renders the landing page with the latest posts.
func HomeHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := page(c, "")
		posts, err := svc.Latest(c.Request.Context())
		if err != nil {
			logFailure(c, "home posts failed", err, nil)
			data["Error"] = "Could not load articles"
		}
		data["Posts"] = posts
		c.HTML(http.StatusOK, "home.html", data)
	}
}

func AboutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "about.html", page(c, "About"))
	}
}

func ProjectsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "projects.html", with(page(c, "Projects"), gin.H{"Projects": Projects}))
	}
}

// ToggleThemeHandler flips dark/light and goes back where the visitor was.
func ToggleThemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ToggleTheme(c)
		c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return"), "/"))
	}
}
