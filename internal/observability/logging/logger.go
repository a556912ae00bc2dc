// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Supported output formats for New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// New creates a logger writing to w in the given format ("json" or "text").
// Unknown formats fall back to text.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		// Add source code location when debugging
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// WithOperation returns a logger tagged with the operation name and a fresh
// operation ID, so every entry of one load or save can be correlated.
// If ctx already carries an operation ID, it is reused.
func WithOperation(ctx context.Context, logger *slog.Logger, operation string) *slog.Logger {
	opID, ok := ctx.Value(operationIDContextKey).(string)
	if !ok || opID == "" {
		opID = uuid.New().String()
	}
	return logger.With(
		slog.String("operation", operation),
		slog.String("operation_id", opID),
	)
}

// ContextWithOperationID stores an operation ID for WithOperation to reuse.
func ContextWithOperationID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, operationIDContextKey, opID)
}

// WithFields returns a new logger with additional structured fields.
// Fields are provided as key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
// This enables passing loggers through the application via context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const (
	loggerContextKey      contextKey = "logger"
	operationIDContextKey contextKey = "operation_id"
)
