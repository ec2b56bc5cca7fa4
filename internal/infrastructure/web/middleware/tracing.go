package middleware

import (
	"net/http"
	"time"

	"skin-price-service/internal/infrastructure/logging"
)

// responseWriter captures the status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestTracingMiddleware assigns every request a unique ID, carries it in
// the context and the X-Request-ID response header, and logs request start
// and completion.
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := logging.GenerateRequestID()

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w}

		logging.Debug(ctx, "HTTP request started", logging.Fields{
			"http_method": r.Method,
			"http_path":   r.URL.Path,
			"remote_ip":   remoteIP(r),
			"user_agent":  r.Header.Get("User-Agent"),
		})

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		duration := time.Since(startTime)
		logging.HTTPRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, logging.Fields{
			"remote_ip":        remoteIP(r),
			"response_size":    wrapped.written,
			"response_time_ms": float64(duration.Nanoseconds()) / 1e6,
		})
	})
}

// remoteIP extracts the client IP, preferring proxy headers.
func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
