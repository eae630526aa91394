package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/trace"
)

const maxBodyLog = 1024

// Config holds settings shared by outbound HTTP clients.
type Config struct {
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Query is anything that encodes to a raw query string. Both url.Values and
// querystate.Params satisfy it; the latter keeps the visitor's parameter order.
type Query interface {
	Encode() string
}

// loggingRoundTripper logs every outbound call and propagates
// X-Request-Id / X-Span-Id from the inbound request.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.Inject(req)

	query := ""
	if req.URL != nil {
		query = req.URL.RawQuery
	}
	// read the body once for the log line, then put it back for the transport
	var bodySnippet string
	if req.Body != nil && req.Body != http.NoBody {
		if bodyBytes, err := io.ReadAll(req.Body); err == nil {
			bodySnippet = snippet(req.URL.Path, bodyBytes)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	fields := logger.Fields{
		"method":     req.Method,
		"url":        req.URL.Redacted(),
		"query":      query,
		"duration":   duration.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if bodySnippet != "" {
		fields["body"] = bodySnippet
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	logger.DebugWithFields("httpclient request success", fields)
	return resp, nil
}

// snippet trims a request body for logging. Credentials never reach the log.
func snippet(p string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if strings.HasPrefix(p, "/api/auth/") || strings.HasPrefix(p, "/api/user/update/") {
		return "[redacted]"
	}
	if len(body) > maxBodyLog {
		return string(body[:maxBodyLog])
	}
	return string(body)
}

// BaseClient binds an http.Client to a base URL and builds requests against it.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewBaseClient creates a BaseClient with the default logging http.Client.
func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		HTTPClient: NewDefault(),
		BaseURL:    baseURL,
	}
}

// NewBaseClientWithClient uses httpClient, or the default client when nil.
func NewBaseClientWithClient(httpClient *http.Client, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
	}
}

// NewRequest builds a request for relPath under the base URL.
// relPath must not carry a query string; pass it through query instead, since
// path.Join would mangle it.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query Query, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, base.String(), body)
}

// Do runs req with the underlying client.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New creates an http.Client from cfg. A zero Timeout means 10 seconds.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

// NewDefault creates a client with the default settings.
func NewDefault() *http.Client {
	return New(Config{})
}
