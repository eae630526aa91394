package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"kalshield/cmd/web/httpclient"
	"kalshield/feeder"
)

func newFeedCmd() *cobra.Command {
	var (
		site  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Read a running site's RSS feed back",
		Long: `Fetch /feed.xml from a running KalShield web server and print its items.

Useful to check that the feed parses the way feed readers see it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeed(cmd.Context(), site, limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&site, "site", "http://localhost:8080", "base URL of the web server")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items to print (0 = all)")
	return cmd
}

func runFeed(ctx context.Context, site string, limit int, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	feedURL := strings.TrimSuffix(site, "/") + "/feed.xml"
	items, err := feeder.Fetch(ctx, httpclient.NewDefault(), feedURL, limit)
	if err != nil {
		return fmt.Errorf("read feed %s: %w", feedURL, err)
	}
	for _, it := range items {
		date := ""
		if !it.PublishedAt.IsZero() {
			date = it.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", date, strings.Join(it.Categories, ","), it.Title, it.Link)
	}
	fmt.Fprintf(out, "%d items\n", len(items))
	return nil
}
