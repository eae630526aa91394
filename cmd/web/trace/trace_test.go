package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func backendRequest(ctx context.Context) *http.Request {
	return httptest.NewRequest(http.MethodGet, "http://blog-api/api/post/getposts", nil).WithContext(ctx)
}

func TestInjectCountsBackendCallsPerPageView(t *testing.T) {
	ctx := Start(context.Background(), "req-1")
	assert.Equal(t, "0", SpanID(ctx))

	first := backendRequest(ctx)
	id, span := Inject(first)
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "1", span)
	assert.Equal(t, "req-1", first.Header.Get(HeaderRequestID))
	assert.Equal(t, "1", first.Header.Get(HeaderSpanID))

	_, span = Inject(backendRequest(ctx))
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", SpanID(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestInjectConcurrentFanOut(t *testing.T) {
	ctx := Start(context.Background(), "req-2")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Inject(backendRequest(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, "50", SpanID(ctx))
}

func TestInjectWithoutTrace(t *testing.T) {
	req := backendRequest(context.Background())
	id, span := Inject(req)
	assert.Len(t, id, 32)
	assert.Equal(t, "1", span)

	req = backendRequest(context.Background())
	req.Header.Set(HeaderRequestID, "from-cli")
	id, _ = Inject(req)
	assert.Equal(t, "from-cli", id)

	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "0", SpanID(context.Background()))
}

func TestAcceptRequestID(t *testing.T) {
	assert.Equal(t, "a1B2-c3_d4.e5", AcceptRequestID("a1B2-c3_d4.e5"))

	for _, bad := range []string{"", "x\ny", `"}{"level":"ERROR"`, "käse", strings.Repeat("a", 65)} {
		got := AcceptRequestID(bad)
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 32)
	}
}

func TestFields(t *testing.T) {
	ctx := Start(context.Background(), "req-3")
	Inject(backendRequest(ctx))

	f := Fields(ctx)
	assert.Equal(t, "req-3", f["request_id"])
	assert.Equal(t, "1", f["span_id"])
}
