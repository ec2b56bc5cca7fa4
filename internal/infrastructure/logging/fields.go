package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// LogLevel represents the supported log levels.
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Standard field names shared across the service.
const (
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldDuration  = "duration_ms"

	FieldItem     = "item"
	FieldWear     = "wear"
	FieldCurrency = "currency"
	FieldPrice    = "price"
	FieldSource   = "source"

	FieldCacheKey = "cache_key"
	FieldCacheHit = "cache_hit"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	startTimeKey contextKey = "start_time"
)

// WithRequestID stores a request ID in the context, generating one when the
// given ID is empty.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithStartTime stores the request start time in the context so log entries
// can report elapsed time.
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey, startTime)
}

// GetRequestID returns the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetStartTime returns the request start time from the context, or the zero
// time when none was recorded.
func GetStartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// GenerateRequestID creates a unique request ID: req_<unixmicro>_<random>.
func GenerateRequestID() string {
	timestamp := time.Now().UnixMicro()

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("req_%d", timestamp)
	}
	return fmt.Sprintf("req_%d_%s", timestamp, hex.EncodeToString(randomBytes))
}

// getErrorType maps an error to a coarse classification for log filtering.
func getErrorType(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%T", err)
}
