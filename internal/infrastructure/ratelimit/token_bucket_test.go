package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/infrastructure/config"
)

func TestTokenBucket_ConsumesUntilEmpty(t *testing.T) {
	bucket := NewTokenBucket(3, 1)

	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	bucket := NewTokenBucket(1, 100)

	require.True(t, bucket.Allow())
	require.False(t, bucket.Allow())

	time.Sleep(25 * time.Millisecond)
	assert.True(t, bucket.Allow())
}

func TestTokenBucket_RefillCapsAtCapacity(t *testing.T) {
	bucket := NewTokenBucket(2, 1000)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, bucket.Tokens())
}

func TestCollection_IsolatesClients(t *testing.T) {
	collection := NewCollection(1, 1)

	assert.True(t, collection.Allow("client-a"))
	assert.False(t, collection.Allow("client-a"))
	assert.True(t, collection.Allow("client-b"))
	assert.Equal(t, 2, collection.Size())
}

func TestCollection_ConcurrentClients(t *testing.T) {
	collection := NewCollection(100, 1)

	allowed := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if collection.Allow("shared-client") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, collection.Size())
	// 200 attempts against a capacity of 100 with negligible refill.
	assert.LessOrEqual(t, allowed, 101)
	assert.GreaterOrEqual(t, allowed, 100)
}

func newTestMiddleware(capacity, refill int, enabled bool) *Middleware {
	return NewMiddleware(config.RateLimitConfig{
		Enabled:    enabled,
		Capacity:   capacity,
		RefillRate: refill,
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_AllowsWithinLimit(t *testing.T) {
	handler := newTestMiddleware(2, 1, true).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/price", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_RejectsOverLimit(t *testing.T) {
	handler := newTestMiddleware(1, 1, true).Handler(okHandler())

	for i, wantCode := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/price", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, wantCode, rec.Code, "request %d", i)
	}
}

func TestMiddleware_SkipsHealthEndpoints(t *testing.T) {
	handler := newTestMiddleware(1, 1, true).Handler(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMiddleware_DisabledPassesEverything(t *testing.T) {
	handler := newTestMiddleware(1, 1, false).Handler(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/price", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientID_PrefersForwardedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*http.Request)
		want   string
	}{
		{
			name: "x-forwarded-for single ip",
			setup: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.7")
			},
			want: "203.0.113.7",
		},
		{
			name: "x-forwarded-for chain takes first",
			setup: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			},
			want: "203.0.113.7",
		},
		{
			name: "x-real-ip",
			setup: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "198.51.100.2")
			},
			want: "198.51.100.2",
		},
		{
			name:  "remote addr without port",
			setup: func(r *http.Request) {},
			want:  "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:5000"
			tt.setup(req)
			assert.Equal(t, tt.want, clientID(req))
		})
	}
}
