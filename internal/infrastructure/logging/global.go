package logging

import (
	"context"
	"sync"
)

// Global logger used by the package-level convenience functions. Components
// log through these instead of threading a logger through every constructor.
var (
	globalLogger *StructuredLogger
	globalMu     sync.RWMutex
)

func init() {
	globalLogger, _ = NewStructuredLogger(DefaultConfig())
}

// SetGlobalLogger replaces the process-wide logger.
func SetGlobalLogger(logger *StructuredLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide logger.
func GetGlobalLogger() *StructuredLogger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogLevel adjusts the level of the process-wide logger.
func SetGlobalLogLevel(level LogLevel) {
	GetGlobalLogger().SetLevel(level)
}

// Debug logs a debug message using the global logger.
func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

// Info logs an info message using the global logger.
func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

// Warn logs a warning message using the global logger.
func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

// Error logs an error message using the global logger.
func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

// WarnWithError logs a warning with error details using the global logger.
func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

// ErrorWithError logs an error with details using the global logger.
func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

// CacheOperation logs a cache hit or miss in a uniform shape.
func CacheOperation(ctx context.Context, operation, key string, hit bool, fields Fields) {
	if fields == nil {
		fields = make(Fields)
	}
	fields["cache_operation"] = operation
	fields[FieldCacheKey] = key
	fields[FieldCacheHit] = hit

	if hit {
		Debug(ctx, "Cache hit", fields)
	} else {
		Debug(ctx, "Cache miss", fields)
	}
}

// ExternalRequest logs the completion of an external API call.
func ExternalRequest(ctx context.Context, service, endpoint string, statusCode int, durationMs float64, fields Fields) {
	if fields == nil {
		fields = make(Fields)
	}
	fields["external_service"] = service
	fields["external_endpoint"] = endpoint
	fields["external_status_code"] = statusCode
	fields["external_duration_ms"] = durationMs

	if statusCode >= 400 {
		Warn(ctx, "External request completed with error status", fields)
	} else {
		Debug(ctx, "External request completed", fields)
	}
}

// HTTPRequest logs the completion of an inbound HTTP request.
func HTTPRequest(ctx context.Context, method, path string, statusCode int, fields Fields) {
	if fields == nil {
		fields = make(Fields)
	}
	fields["http_method"] = method
	fields["http_path"] = path
	fields["http_status_code"] = statusCode

	switch {
	case statusCode >= 500:
		Error(ctx, "HTTP request failed", fields)
	case statusCode >= 400:
		Warn(ctx, "HTTP request rejected", fields)
	default:
		Info(ctx, "HTTP request completed", fields)
	}
}
