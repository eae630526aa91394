package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed.xml", r.URL.Path)
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>KalShield</title>`+
			`<item><title>Nmap basics</title><link>http://x/post/nmap</link><category>Security Tools</category></item>`+
			`</channel></rss>`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, runFeed(context.Background(), srv.URL+"/", 0, &out))
	assert.Contains(t, out.String(), "Security Tools\tNmap basics\thttp://x/post/nmap")
	assert.Contains(t, out.String(), "1 items")
}
