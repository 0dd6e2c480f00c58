package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceIDKey struct{}

// InjectTraceID attaches a fresh trace id to ctx and to the zerolog logger
// carried by it.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	return WithTraceID(ctx, id)
}

// WithTraceID is InjectTraceID with a caller supplied id, for requests that
// arrive with one.
func WithTraceID(ctx context.Context, id string) context.Context {
	logger := log.With().Str("traceId", id).Logger()
	ctx = context.WithValue(ctx, traceIDKey{}, id)
	return logger.WithContext(ctx)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}
