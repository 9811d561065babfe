package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Init(ctx, Options{}))
	assert.False(t, Enabled())

	got, span := Start(ctx, "noop")
	span.End()
	assert.Equal(t, ctx, got)

	_, _, ok := IDs(got)
	assert.False(t, ok)
	assert.NoError(t, Shutdown(ctx))
}

func TestSpansAreExported(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, Init(ctx, Options{Enabled: true, Writer: &buf, Version: "test"}))
	assert.True(t, Enabled())

	spanCtx, span := Start(ctx, "stats.overview", attribute.Int("trades", 3))
	traceID, spanID, ok := IDs(spanCtx)
	span.End()

	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)

	require.NoError(t, Shutdown(ctx))
	assert.False(t, Enabled())
	assert.Contains(t, buf.String(), "stats.overview")
	assert.Contains(t, buf.String(), traceID)
}
