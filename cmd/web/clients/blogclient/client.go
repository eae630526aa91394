package blogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kalshield/cmd/web/httpclient"
)

// Client is a thin client for the blog REST backend (posts, comments, users, auth).
//
// - It holds no visitor state. Calls that need the visitor's identity take the
//   backend token explicitly and forward it as the backend's auth cookie.
// - Responses are decoded into kalshield/models types.
//
// baseURL example: http://localhost:3000
type Client struct {
	base        *httpclient.BaseClient
	tokenCookie string
}

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Op         string
	StatusCode int
	// Message is the backend's "message" field, or a trimmed body.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blog-api %s: status=%d message=%s", e.Op, e.StatusCode, e.Message)
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

// MessageOf returns the backend message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Options configures New.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	TokenCookie string
}

func New(opts Options) *Client {
	tokenCookie := opts.TokenCookie
	if tokenCookie == "" {
		tokenCookie = "access_token"
	}
	return &Client{
		base:        httpclient.NewBaseClientWithClient(opts.HTTPClient, opts.BaseURL),
		tokenCookie: tokenCookie,
	}
}

// request describes one backend call.
type request struct {
	op     string
	method string
	path   string
	query  httpclient.Query
	body   any
	token  string
}

func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, r.method, r.path, r.query, body)
	if err != nil {
		return nil, err
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.AddCookie(&http.Cookie{Name: c.tokenCookie, Value: r.token})
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blog-api %s: %w", r.op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(r.op, resp)
	}
	return resp, nil
}

// call sends r and decodes a JSON answer into out (skipped when out is nil).
func (c *Client) call(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("blog-api %s: decode: %w", r.op, err)
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Op: op, StatusCode: resp.StatusCode, Message: msg}
}
