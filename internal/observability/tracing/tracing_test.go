package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectTraceID(t *testing.T) {
	ctx := InjectTraceID(context.Background())
	id := TraceID(ctx)
	require.NotEmpty(t, id)

	other := InjectTraceID(context.Background())
	assert.NotEqual(t, id, TraceID(other))
}

func TestWithTraceID_Logger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTraceID(context.Background(), "abc")

	logger := zerolog.Ctx(ctx).Output(&buf)
	logger.Info().Msg("hello")

	assert.Equal(t, "abc", TraceID(ctx))
	assert.Contains(t, buf.String(), `"traceId":"abc"`)
}

func TestTraceID_Missing(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}
