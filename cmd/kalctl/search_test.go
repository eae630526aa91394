package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/services"
	"kalshield/models"
)

// backend serves total posts in pages of nine and records every query it saw.
func backend(t *testing.T, total int, queries *[]string) *services.SearchService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*queries = append(*queries, r.URL.RawQuery)
		start, _ := strconv.Atoi(r.URL.Query().Get("startIndex"))
		posts := []models.Post{}
		for i := start; i < total && i < start+9; i++ {
			posts = append(posts, models.Post{
				ID:       fmt.Sprintf("p%d", i),
				Title:    fmt.Sprintf("Post %d", i),
				Slug:     fmt.Sprintf("post-%d", i),
				Category: "web-security",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": posts})
	}))
	t.Cleanup(srv.Close)
	return services.NewSearchService(blogclient.New(blogclient.Options{BaseURL: srv.URL}))
}

func TestSearchQueryMatchesPageURL(t *testing.T) {
	got := searchQuery(searchOptions{term: "xss", sort: "asc", category: "web-security"})
	assert.Equal(t, "searchTerm=xss&sort=asc&category=web-security", got)

	got = searchQuery(searchOptions{})
	assert.Equal(t, "searchTerm=&sort=desc&category=uncategorized", got)
}

func TestRunSearchFollowsShowMore(t *testing.T) {
	var queries []string
	svc := backend(t, 20, &queries)
	var out bytes.Buffer

	err := runSearch(context.Background(), svc, searchOptions{term: "xss", sort: "desc", category: "web-security", pages: 5}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 21)
	assert.Contains(t, lines[0], "Post 0")
	assert.Contains(t, lines[0], "Web Security")
	assert.Contains(t, lines[19], "/post/post-19")
	assert.Equal(t, "Found 20 articles", lines[20])

	require.Len(t, queries, 3)
	assert.NotContains(t, queries[0], "startIndex")
	assert.Contains(t, queries[1], "startIndex=9")
	assert.Contains(t, queries[2], "startIndex=18")
}

func TestRunSearchStopsAtPageLimit(t *testing.T) {
	var queries []string
	svc := backend(t, 100, &queries)
	var out bytes.Buffer

	require.NoError(t, runSearch(context.Background(), svc, searchOptions{pages: 2}, &out))
	assert.Len(t, queries, 2)
	assert.Contains(t, out.String(), "Found 18 articles")
}

func TestRunSearchEmpty(t *testing.T) {
	var queries []string
	svc := backend(t, 0, &queries)
	var out bytes.Buffer

	require.NoError(t, runSearch(context.Background(), svc, searchOptions{pages: 3}, &out))
	assert.Equal(t, "No Articles Found\n", out.String())
	assert.Len(t, queries, 1)
}

func TestRunSearchRejectsZeroPages(t *testing.T) {
	var out bytes.Buffer
	err := runSearch(context.Background(), nil, searchOptions{pages: 0}, &out)
	assert.Error(t, err)
}
