package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/dto"
	"kalshield/cmd/web/services"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        string        `xml:"guid"`
	Category    string        `xml:"category,omitempty"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate,omitempty"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int    `xml:"length,attr"`
}

// siteURL is the scheme and host the visitor used, behind a proxy or not.
func siteURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func buildFeed(base string, posts []dto.PostCardDTO) rss {
	ch := rssChannel{
		Title:       "KalShield",
		Link:        base + "/",
		Description: "Articles on ethical hacking, network security and penetration testing",
	}
	for i, p := range posts {
		link := base + "/post/" + p.Slug
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			Category:    p.CategoryLabel,
			Description: p.Excerpt,
		}
		if !p.CreatedAt.IsZero() {
			item.PubDate = p.CreatedAt.UTC().Format(time.RFC1123Z)
			if i == 0 {
				ch.LastBuildDate = item.PubDate
			}
		}
		if p.Image != "" {
			item.Enclosure = &rssEnclosure{URL: p.Image, Type: "image/jpeg"}
		}
		ch.Items = append(ch.Items, item)
	}
	return rss{Version: "2.0", Channel: ch}
}

// FeedHandler serves the latest posts as RSS 2.0.
func FeedHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.Latest(c.Request.Context())
		if err != nil {
			logFailure(c, "feed failed", err, nil)
			c.String(http.StatusBadGateway, "feed unavailable")
			return
		}
		out, err := xml.MarshalIndent(buildFeed(siteURL(c), posts), "", "  ")
		if err != nil {
			c.String(http.StatusInternalServerError, "feed unavailable")
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), out...))
	}
}
