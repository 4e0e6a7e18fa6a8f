package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName scopes every span this package creates.
const TracerName = "github.com/workspacekit/workspace-mcp"

// Span attribute keys.
const (
	SpanAttrTool         = "mcp.tool"
	SpanAttrStatus       = "mcp.status"
	SpanAttrResourceID   = "mcp.resource_id"
	SpanAttrResourceType = "mcp.resource_type"
	SpanAttrReadOnly     = "mcp.read_only"
	SpanAttrService      = "google.service"
	SpanAttrOperation    = "google.operation"
)

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartToolSpan opens the server-side span for one tool invocation,
// named "tool.<name>". The caller must end it.
func StartToolSpan(ctx context.Context, tool string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{attribute.String(SpanAttrTool, tool)}, attrs...)
	return tracer().Start(ctx, "tool."+tool,
		trace.WithAttributes(spanAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartGoogleAPISpan opens the client-side span for one upstream REST
// call, named "google.<service>.<operation>".
func StartGoogleAPISpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		attribute.String(SpanAttrService, service),
		attribute.String(SpanAttrOperation, operation),
	}, attrs...)
	return tracer().Start(ctx, "google."+service+"."+operation,
		trace.WithAttributes(spanAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan closes a span with a status derived from err.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// SetSpanError records err and flags the span without ending it.
func SetSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess marks the span OK without ending it.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the hex trace ID of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// GetSpanID returns the hex span ID of the span in ctx, or "".
func GetSpanID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.SpanID().String()
	}
	return ""
}
