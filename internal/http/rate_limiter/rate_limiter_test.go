package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_BurstThenThrottle(t *testing.T) {
	CleanupAllVisitors()
	t.Cleanup(CleanupAllVisitors)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var codes []int
	for range 4 {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{204, 204, 204, 429}, codes)

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "198.51.100.1:1234"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusNoContent, rr.Code, "limits are per IP")
}

func TestCleanupIdle(t *testing.T) {
	CleanupAllVisitors()
	t.Cleanup(CleanupAllVisitors)

	GetVisitor("a")
	GetVisitor("b")
	mu.Lock()
	visitors["a"].lastSeen = time.Now().Add(-10 * time.Minute)
	mu.Unlock()

	assert.Equal(t, 1, cleanupIdle(time.Now()))
	mu.Lock()
	_, stillThere := visitors["b"]
	mu.Unlock()
	assert.True(t, stillThere)
}
