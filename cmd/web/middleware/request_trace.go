package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/trace"
)

const maxBodyLog = 1024

// Form fields that never reach the request log.
var redactedFields = []string{"password"}

// RequestTrace makes sure every inbound request has a request id and a span
// id, stores them on the context and response headers, and logs the request
// once it completes.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := trace.AcceptRequestID(req.Header.Get(trace.HeaderRequestID))

		// inbound log line is span 0, backend calls count up from 1
		c.Request = req.WithContext(trace.Start(req.Context(), requestID))
		req = c.Request
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderSpanID, trace.SpanID(req.Context()))

		bodySnippet := readBodySnippet(c)

		c.Next()

		fields := trace.Fields(req.Context())
		fields["method"] = req.Method
		fields["path"] = req.URL.Path
		fields["query"] = req.URL.RawQuery
		fields["status"] = c.Writer.Status()
		fields["duration"] = time.Since(start).String()
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.InfoWithFields("completed request", fields)
	}
}

// readBodySnippet reads a url-encoded form body for the log and restores it.
// Multipart uploads are skipped.
func readBodySnippet(c *gin.Context) string {
	req := c.Request
	if req.Body == nil || req.ContentLength == 0 || req.Method != http.MethodPost {
		return ""
	}
	if !strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return ""
	}
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return redactForm(bodyBytes)
}

func redactForm(body []byte) string {
	pairs := strings.Split(string(body), "&")
	for i, p := range pairs {
		key, _, _ := strings.Cut(p, "=")
		for _, f := range redactedFields {
			if key == f {
				pairs[i] = key + "=[redacted]"
			}
		}
	}
	out := strings.Join(pairs, "&")
	if len(out) > maxBodyLog {
		out = out[:maxBodyLog]
	}
	return out
}
