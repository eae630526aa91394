// Package trace ties the log lines of one page view together: the inbound
// request is span 0 and every call to the blog backend made while serving it
// takes the next span number under the same request id.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"kalshield/cmd/internal/logger"
)

// Headers shared with visitors' proxies and the blog backend.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"
)

const maxRequestIDLen = 64

type ctxKey struct{}

type requestTrace struct {
	id  string
	seq atomic.Int64
}

// NewRequestID returns 32 random hex chars.
func NewRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}

// AcceptRequestID keeps an inbound id only if it is short and made of
// letters, digits, '.', '_' or '-'. Anything else gets a fresh id, so a
// visitor cannot smuggle text into the logs.
func AcceptRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLen {
		return NewRequestID()
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return NewRequestID()
		}
	}
	return id
}

// Start attaches requestID to ctx at span 0.
func Start(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, &requestTrace{id: requestID})
}

func from(ctx context.Context) *requestTrace {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(ctxKey{}).(*requestTrace)
	return t
}

// RequestID returns the request id of ctx, or "".
func RequestID(ctx context.Context) string {
	if t := from(ctx); t != nil {
		return t.id
	}
	return ""
}

// SpanID returns the last span handed out, "0" before any backend call.
func SpanID(ctx context.Context) string {
	t := from(ctx)
	if t == nil {
		return "0"
	}
	return strconv.FormatInt(t.seq.Load(), 10)
}

// Inject stamps an outbound backend request with the request id and the next
// span. Untraced requests keep an X-Request-Id already set on req, or get a
// new one, and are span 1.
func Inject(req *http.Request) (requestID, spanID string) {
	if t := from(req.Context()); t != nil {
		requestID, spanID = t.id, strconv.FormatInt(t.seq.Add(1), 10)
	} else {
		requestID, spanID = req.Header.Get(HeaderRequestID), "1"
		if requestID == "" {
			requestID = NewRequestID()
		}
	}
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderSpanID, spanID)
	return requestID, spanID
}

// Fields returns request_id and span_id of ctx for a log line.
func Fields(ctx context.Context) logger.Fields {
	return logger.Fields{
		"request_id": RequestID(ctx),
		"span_id":    SpanID(ctx),
	}
}
