package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wageconv.org/explorer/internal/models"
)

func limited(t *testing.T, ratePerSecond int) (*RateLimitMiddleware, http.Handler) {
	t.Helper()
	rl := NewRateLimitMiddleware(ratePerSecond, time.Second)
	t.Cleanup(rl.Stop)
	return rl, rl.Handler(okHandler())
}

func doRequest(handler http.Handler, target, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	_, handler := limited(t, 3)

	for i := 0; i < 3; i++ {
		w := doRequest(handler, "/api/countries.json?key=test-api-key", "")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	w := doRequest(handler, "/api/countries.json?key=test-api-key", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitMiddleware_PerClientLimiting(t *testing.T) {
	_, handler := limited(t, 1)

	assert.Equal(t, http.StatusOK, doRequest(handler, "/?key=one", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "/?key=one", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "/?key=two", "").Code, "other keys have their own budget")

	assert.Equal(t, http.StatusOK, doRequest(handler, "/", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "/", "10.0.0.1:5001").Code, "keyless clients are grouped by host")
	assert.Equal(t, http.StatusOK, doRequest(handler, "/", "10.0.0.2:5000").Code)
}

func TestRateLimitMiddleware_ExemptPaths(t *testing.T) {
	_, handler := limited(t, 1)

	assert.Equal(t, http.StatusOK, doRequest(handler, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "/", "").Code)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "/healthz", "").Code)
		assert.Equal(t, http.StatusOK, doRequest(handler, "/metrics", "").Code)
	}
}

func TestRateLimitMiddleware_NonPositiveRateDisablesLimiting(t *testing.T) {
	for _, ratePerSecond := range []int{0, -1} {
		rl, handler := limited(t, ratePerSecond)
		assert.False(t, rl.Enabled())

		for i := 0; i < 50; i++ {
			require.Equal(t, http.StatusOK, doRequest(handler, "/", "").Code, "rate %d request %d", ratePerSecond, i+1)
		}
	}
}

func TestRateLimitMiddleware_Stop(t *testing.T) {
	rl := NewRateLimitMiddleware(5, time.Second)
	assert.True(t, rl.Enabled())

	rl.Stop()
	assert.NotPanics(t, rl.Stop, "stopping twice is safe")

	select {
	case <-rl.done:
	default:
		t.Fatal("cleanup goroutine was not signalled to exit")
	}
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	rl := NewRateLimitMiddleware(2, 100*time.Millisecond)
	t.Cleanup(rl.Stop)
	handler := rl.Handler(okHandler())

	doRequest(handler, "/?key=refill", "")
	doRequest(handler, "/?key=refill", "")
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "/?key=refill", "").Code)

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(handler, "/?key=refill", "").Code)
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	_, handler := limited(t, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if doRequest(handler, "/?key=concurrent", "").Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, allowed, 10)
	assert.Less(t, allowed, 30)
}

func TestRateLimitMiddleware_RateLimitedResponseFormat(t *testing.T) {
	_, handler := limited(t, 1)
	doRequest(handler, "/?key=format", "")
	w := doRequest(handler, "/?key=format", "")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusTooManyRequests, response.Code)
	assert.Contains(t, response.Text, "Rate limit exceeded")
}

func TestRateLimitMiddleware_SweepDropsIdleLimiters(t *testing.T) {
	rl, handler := limited(t, 2)
	doRequest(handler, "/?key=busy", "")
	rl.getLimiter("key:idle")

	rl.sweep()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.Contains(t, rl.limiters, "key:busy")
	assert.NotContains(t, rl.limiters, "key:idle")
}
