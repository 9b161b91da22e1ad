package observability

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracingExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig()
	cfg.Writer = &buf

	shutdown, err := InitTracing(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	_, span := StartSpan(ctx, "test", "configure", attribute.String("alias", "neo"))
	EndSpan(span, nil)

	_, failed := StartSpan(ctx, "test", "verify")
	EndSpan(failed, stderrors.New("unreachable"))

	require.NoError(t, shutdown(ctx))

	out := buf.String()
	assert.Contains(t, out, `"Name":"configure"`)
	assert.Contains(t, out, `"Name":"verify"`)
	assert.Contains(t, out, "unreachable")
	assert.Contains(t, out, "spider")
}

func TestInitTracingNeverSample(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig()
	cfg.Writer = &buf
	cfg.SamplingRate = 0

	shutdown, err := InitTracing(cfg)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "test", "dropped")
	assert.False(t, span.SpanContext().IsSampled())
	EndSpan(span, nil)

	require.NoError(t, shutdown(context.Background()))
	assert.NotContains(t, buf.String(), "dropped")
}
