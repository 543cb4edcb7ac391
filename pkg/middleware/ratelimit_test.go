package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Shutdown()

	handler := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/subscriptions/sub_1/pause", nil)
		req.RemoteAddr = "10.0.0.1:5000" // port varies per connection in practice
		if i == 2 {
			req.RemoteAddr = "10.0.0.1:6000"
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Shutdown()

	handler := rl.Middleware(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_CleanupDropsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	defer rl.Shutdown()

	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")

	assert.Equal(t, 0, rl.cleanup(time.Now()))
	assert.Equal(t, 2, rl.cleanup(time.Now().Add(2*rl.cleanupInterval)))

	rl.Shutdown()
}
