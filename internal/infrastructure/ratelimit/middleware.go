package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
)

// Middleware applies per-client token bucket rate limiting to inbound HTTP
// requests. Health and metrics endpoints are exempt.
type Middleware struct {
	limiter   *Collection
	skipPaths map[string]bool
	enabled   bool
}

// NewMiddleware creates the middleware from configuration.
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	var limiter *Collection
	if cfg.Enabled {
		limiter = NewCollection(cfg.Capacity, cfg.RefillRate)
	}

	return &Middleware{
		limiter: limiter,
		skipPaths: map[string]bool{
			"/health":  true,
			"/ready":   true,
			"/metrics": true,
		},
		enabled: cfg.Enabled,
	}
}

// Handler returns the HTTP middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled || m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		clientID := clientID(r)
		allowed := m.limiter.Allow(clientID)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Warn(r.Context(), "Rate limit exceeded", logging.Fields{
				"client_id": clientID,
				"path":      r.URL.Path,
				"method":    r.Method,
			})
			writeRateLimitError(w)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(m.limiter.Tokens(clientID)))
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller for bucket selection, preferring proxy
// headers over the raw remote address.
func clientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	remoteAddr := r.RemoteAddr
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}
	return remoteAddr
}

func writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   "RATE_LIMIT_EXCEEDED",
		"message": "Rate limit exceeded. Please slow down your requests.",
		"code":    http.StatusTooManyRequests,
	})
}
