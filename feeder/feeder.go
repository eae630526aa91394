// Package feeder reads the site's RSS feed back, as a reader's feed app would.
package feeder

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

type Item struct {
	Title       string
	Link        string
	Categories  []string
	PublishedAt time.Time
}

// Fetch parses the feed at feedURL with client (http.DefaultClient when nil).
// If limit is greater than 0, it returns only the first limit items.
func Fetch(ctx context.Context, client *http.Client, feedURL string, limit int) ([]Item, error) {
	fp := gofeed.NewParser()
	if client != nil {
		fp.Client = client
	}

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, Item{
			Title:       item.Title,
			Link:        item.Link,
			Categories:  item.Categories,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
