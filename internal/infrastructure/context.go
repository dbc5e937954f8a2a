package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

// RunIDContextKey is the key for storing the run ID in context
const RunIDContextKey contextKey = "run_id"

// NewRunID creates a new unique run ID using UUID v4
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID adds a run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetRunID retrieves the run ID from context
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDContextKey).(string); ok {
		return runID
	}
	return ""
}

// EnsureRunID ensures the context has a run ID, generating one if needed
func EnsureRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) == "" {
		return WithRunID(ctx, NewRunID())
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
