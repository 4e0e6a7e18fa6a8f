package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// withRecorder installs a recording tracer provider as the global
// provider for the duration of the test.
func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func spanAttrMap(s sdktrace.ReadOnlySpan) map[string]string {
	out := make(map[string]string)
	for _, kv := range s.Attributes() {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestStartToolSpan(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := StartToolSpan(context.Background(), "drive_search",
		attribute.String(SpanAttrReadOnly, "true"))
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))
	EndSpan(span, nil)

	ended := rec.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "tool.drive_search", got.Name())
	assert.Equal(t, trace.SpanKindServer, got.SpanKind())
	assert.Equal(t, codes.Ok, got.Status().Code)

	attrs := spanAttrMap(got)
	assert.Equal(t, "drive_search", attrs[SpanAttrTool])
	assert.Equal(t, "true", attrs[SpanAttrReadOnly])
}

func TestStartGoogleAPISpan(t *testing.T) {
	rec := withRecorder(t)

	_, span := StartGoogleAPISpan(context.Background(), "sheets", "get")
	EndSpan(span, errors.New("quota exceeded"))

	ended := rec.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "google.sheets.get", got.Name())
	assert.Equal(t, trace.SpanKindClient, got.SpanKind())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "quota exceeded", got.Status().Description)

	attrs := spanAttrMap(got)
	assert.Equal(t, "sheets", attrs[SpanAttrService])
	assert.Equal(t, "get", attrs[SpanAttrOperation])

	require.Len(t, got.Events(), 1, "EndSpan with an error records it")
	assert.Equal(t, "exception", got.Events()[0].Name)
}

func TestSetSpanErrorAndSuccess(t *testing.T) {
	rec := withRecorder(t)

	_, span := StartToolSpan(context.Background(), "docs_get")
	SetSpanError(span, nil)
	SetSpanSuccess(span)
	span.End()

	_, span = StartToolSpan(context.Background(), "docs_get")
	SetSpanError(span, errors.New("not found"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}

func TestTraceIDsWithoutSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
