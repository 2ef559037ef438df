package logging

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithNodeID creates a child logger with a node_id field
func WithNodeID(ctx context.Context, id int64) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("node_id", strconv.FormatInt(id, 10)).Logger()
	return WithContext(ctx, childLogger)
}

// WithCommand creates a child logger with a command field
func WithCommand(ctx context.Context, command string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("command", command).Logger()
	return WithContext(ctx, childLogger)
}
