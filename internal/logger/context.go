package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithFields stores base, extended with fields, in the context.
// A nil base extends the logger already in ctx.
func WithFields(ctx context.Context, base *zap.Logger, fields ...zap.Field) context.Context {
	if base == nil {
		base = FromContext(ctx)
	}
	return ContextWithLogger(ctx, base.With(fields...))
}

// FromContext extracts a logger from the context, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
