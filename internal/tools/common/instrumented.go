package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

// ToolHandlerFunc is the mcp-go handler signature every tool in this
// server implements.
type ToolHandlerFunc = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with a tracing span, tool
// metrics, audit logging, and panic recovery. The handler runs unwrapped
// when the server context carries no metrics and no audit logger.
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return instrumented(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithService additionally labels the invocation
// with the Workspace service and operation behind the tool, so the
// Google API operation metrics see it too.
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "drive", "list", sc, handler))
func InstrumentedToolHandlerWithService(toolName, serviceName, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return instrumented(toolName, serviceName, operation, sc, handler)
}

func instrumented(toolName, serviceName, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		var spanAttrs []attribute.KeyValue
		if serviceName != "" {
			spanAttrs = append(spanAttrs,
				attribute.String(instrumentation.SpanAttrService, serviceName),
				attribute.String(instrumentation.SpanAttrOperation, operation),
			)
		}
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, spanAttrs...)

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).WithSpanContext(ctx)
		if serviceName != "" {
			invocation.WithService(serviceName, operation)
		}
		resource := GetResourceFromArgs(request.GetArguments())
		if resource != "" {
			invocation.WithResource(resource)
		}

		record := func(failure error, resultIsError bool) {
			duration := time.Since(start)
			if failure == nil && resultIsError {
				failure = errors.New("tool returned an error result")
			}
			invocation.Complete(failure == nil, failure)
			instrumentation.EndSpan(span, failure)

			status := invocation.Status()
			if metrics != nil {
				metrics.RecordToolInvocationWithResource(ctx, toolName, status, resource, duration)
				if serviceName != "" {
					metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, status, duration)
				}
			}
			if auditLogger != nil {
				auditLogger.LogToolInvocation(invocation)
			}
		}

		// A panicking handler must not take down the whole transport;
		// surface it as a tool error instead.
		defer func() {
			if r := recover(); r != nil {
				span.AddEvent("panic", trace.WithAttributes(
					attribute.String("panic.value", fmt.Sprint(r)),
				))
				err = fmt.Errorf("tool %s panicked: %v", toolName, r)
				result = nil
				record(err, true)
			}
		}()

		result, err = handler(ctx, request)
		record(err, result != nil && result.IsError)
		return result, err
	}
}
