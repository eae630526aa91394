package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/cmd/web/services"
	"kalshield/querystate"
)

type searchOptions struct {
	term     string
	sort     string
	category string
	pages    int
}

func newSearchCmd() *cobra.Command {
	opts := searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search articles and print one line per post",
		Long: `Search articles with the same filters as the /search page.

The query is built exactly as the page builds its URL, then "load more" is
followed until the backend runs out of posts or --pages is reached.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := blogclient.New(blogclient.Options{BaseURL: resolveBackend()})
			return runSearch(cmd.Context(), services.NewSearchService(client), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.term, "term", "", "search term")
	cmd.Flags().StringVar(&opts.sort, "sort", querystate.SortDesc, "sort order (desc|asc)")
	cmd.Flags().StringVar(&opts.category, "category", querystate.DefaultCategory, "category filter")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "maximum number of pages to fetch")
	return cmd
}

// searchQuery is the query string the search page would navigate to.
func searchQuery(opts searchOptions) string {
	st := querystate.FormState(opts.term, opts.sort, opts.category)
	return st.Apply(querystate.Params{}).Encode()
}

func runSearch(ctx context.Context, svc *services.SearchService, opts searchOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.pages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	raw := searchQuery(opts)
	page, err := svc.Load(ctx, raw)
	if err != nil {
		return fmt.Errorf("search %q: %w", raw, err)
	}
	results := page.Results
	for i := 1; i < opts.pages && results.ShowMore; i++ {
		if err := svc.ShowMore(ctx, raw, &results); err != nil {
			return fmt.Errorf("load more at %d: %w", results.NextStartIndex(), err)
		}
	}

	if results.Empty() {
		fmt.Fprintln(out, "No Articles Found")
		return nil
	}
	for _, p := range results.Items {
		printCard(out, p)
	}
	fmt.Fprintf(out, "Found %d articles\n", len(results.Items))
	return nil
}

func printCard(out io.Writer, p dto.PostCardDTO) {
	fmt.Fprintf(out, "%s\t%s\t%s\t/post/%s\n", p.CreatedAt.Format("2006-01-02"), p.CategoryLabel, p.Title, p.Slug)
}
