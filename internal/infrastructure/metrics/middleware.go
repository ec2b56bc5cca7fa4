package metrics

import (
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := &responseWriterMetrics{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		normalizedPath := normalizePath(r.URL.Path)
		next.ServeHTTP(wrapped, r)

		RecordHTTPRequest(r.Method, normalizedPath, wrapped.statusCode, time.Since(startTime).Seconds())
	})
}

// responseWriterMetrics wraps http.ResponseWriter to capture the status code.
type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses URL paths to a fixed label set to keep metric
// cardinality bounded.
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	path = strings.TrimSuffix(path, "/")

	switch {
	case path == "/health":
		return "/health"
	case path == "/ready":
		return "/ready"
	case path == "/metrics":
		return "/metrics"
	case strings.HasPrefix(path, "/api/v1/prices/batch"):
		return "/api/v1/prices/batch"
	case strings.HasPrefix(path, "/api/v1/price"):
		return "/api/v1/price"
	case strings.HasPrefix(path, "/api/v1/cache"):
		return "/api/v1/cache"
	case strings.HasPrefix(path, "/api/v1/rates"):
		return "/api/v1/rates"
	case strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	default:
		return "/unknown"
	}
}
