package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

// StructuredLogger writes leveled, structured log entries in JSON or text.
type StructuredLogger struct {
	config *LoggerConfig
	logger *log.Logger
}

// LogEntry is the serialized form of one log line.
type LogEntry struct {
	Timestamp   string   `json:"timestamp"`
	Level       LogLevel `json:"level"`
	Message     string   `json:"message"`
	RequestID   string   `json:"request_id,omitempty"`
	Service     string   `json:"service"`
	Version     string   `json:"version,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Fields      Fields   `json:"fields,omitempty"`
}

// NewStructuredLogger creates a logger from the given configuration.
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	return &StructuredLogger{
		config: config,
		logger: log.New(config.Output, "", 0),
	}, nil
}

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

func (sl *StructuredLogger) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[sl.config.Level]
}

func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	if !sl.shouldLog(level) {
		return
	}

	entry := &LogEntry{
		Timestamp:   time.Now().Format(time.RFC3339),
		Level:       level,
		Message:     message,
		RequestID:   GetRequestID(ctx),
		Service:     sl.config.Service,
		Version:     sl.config.Version,
		Environment: sl.config.Environment,
		Fields:      fields,
	}

	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		if entry.Fields == nil {
			entry.Fields = make(Fields)
		}
		entry.Fields[FieldDuration] = float64(time.Since(startTime).Nanoseconds()) / 1e6
	}

	switch sl.config.Format {
	case FormatText:
		sl.logger.Println(sl.formatText(entry))
	default:
		sl.logger.Println(sl.formatJSON(entry))
	}
}

func (sl *StructuredLogger) formatJSON(entry *LogEntry) string {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		// Plain fallback if marshaling the entry itself fails
		return fmt.Sprintf("[%s] %s - %s", entry.Level, entry.RequestID, entry.Message)
	}
	return string(jsonData)
}

func (sl *StructuredLogger) formatText(entry *LogEntry) string {
	parts := []string{entry.Timestamp, fmt.Sprintf("[%s]", entry.Level)}
	if entry.RequestID != "" {
		parts = append(parts, fmt.Sprintf("req:%s", entry.RequestID))
	}
	parts = append(parts, entry.Message)

	result := strings.Join(parts, " ")
	if len(entry.Fields) > 0 {
		if fieldsJSON, err := json.Marshal(entry.Fields); err == nil {
			result += fmt.Sprintf(" fields=%s", string(fieldsJSON))
		}
	}
	return result
}

// Debug logs a debug message.
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message.
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message.
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message.
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

// WarnWithError logs a warning enriched with error details.
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, enrichWithError(fields, err))
}

// ErrorWithError logs an error message enriched with error details.
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, enrichWithError(fields, err))
}

// SetLevel changes the minimum logged level.
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.config.Level = level
}

// GetLevel returns the current minimum logged level.
func (sl *StructuredLogger) GetLevel() LogLevel {
	return sl.config.Level
}

func enrichWithError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	if fields == nil {
		fields = make(Fields)
	}
	fields[FieldError] = err.Error()
	fields[FieldErrorType] = getErrorType(err)
	return fields
}
