package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestLimiter(burst int) *RateLimiter {
	cfg := RateLimiterConfig{
		Rate:            rate.Limit(1.0 / 60.0), // no meaningful refill during a test
		Burst:           burst,
		CleanupInterval: time.Hour,
	}
	return NewRateLimiter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(rl *RateLimiter, remoteAddr string) *httptest.ResponseRecorder {
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rec := serve(rl, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := serve(rl, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiterKeysByClientIP(t *testing.T) {
	rl := newTestLimiter(1)
	defer rl.Stop()

	require.Equal(t, http.StatusOK, serve(rl, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(rl, "10.0.0.1:9999").Code,
		"same IP on a different port shares the bucket")

	assert.Equal(t, http.StatusOK, serve(rl, "10.0.0.2:1234").Code,
		"a different IP gets its own bucket")
	assert.Equal(t, 2, rl.LimiterCount())
}

func TestRateLimiterCleanupDropsIdleClients(t *testing.T) {
	rl := newTestLimiter(1)
	defer rl.Stop()

	serve(rl, "10.0.0.1:1234")
	require.Equal(t, 1, rl.LimiterCount())

	rl.mu.Lock()
	for _, cl := range rl.limiters {
		cl.lastAccess = time.Now().Add(-3 * rl.config.CleanupInterval)
	}
	rl.mu.Unlock()

	rl.cleanup()
	assert.Equal(t, 0, rl.LimiterCount())
}
