package instrumentation

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric label keys.
const (
	attrTool      = "tool"
	attrService   = "service"
	attrOperation = "operation"
	attrStatus    = "status"
	attrResult    = "result"
	attrResource  = "resource"
	attrMethod    = "method"
	attrPath      = "path"
)

// Metrics records the server's operational metrics. The zero value is a
// valid no-op recorder; every method tolerates uninitialized instruments
// so disabled instrumentation costs nothing at call sites.
type Metrics struct {
	toolCalls   metric.Int64Counter
	toolLatency metric.Float64Histogram

	apiCalls   metric.Int64Counter
	apiLatency metric.Float64Histogram

	authEvents    metric.Int64Counter
	refreshEvents metric.Int64Counter

	httpRequests metric.Int64Counter
	httpLatency  metric.Float64Histogram
	inFlight     metric.Int64UpDownCounter

	detailedLabels bool
}

// Latency buckets. Tool and Google API calls share the remote-call
// buckets; the HTTP histogram resolves the sub-10ms local path.
var (
	remoteCallBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
	httpBuckets       = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0}
)

// NewMetrics creates the instrument set on the given meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	// Collect instrument-creation errors through a scratch error so the
	// declarations stay a readable block.
	var err error
	instrument := func(create func() error) {
		if err == nil {
			err = create()
		}
	}

	instrument(func() (e error) {
		m.toolCalls, e = meter.Int64Counter("mcp_tool_invocations_total",
			metric.WithDescription("MCP tool invocations by tool and status"),
			metric.WithUnit("{invocation}"))
		return
	})
	instrument(func() (e error) {
		m.toolLatency, e = meter.Float64Histogram("mcp_tool_duration_seconds",
			metric.WithDescription("MCP tool execution duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(remoteCallBuckets...))
		return
	})
	instrument(func() (e error) {
		m.apiCalls, e = meter.Int64Counter("google_api_operations_total",
			metric.WithDescription("Google API operations by service, operation and status"),
			metric.WithUnit("{operation}"))
		return
	})
	instrument(func() (e error) {
		m.apiLatency, e = meter.Float64Histogram("google_api_operation_duration_seconds",
			metric.WithDescription("Google API operation duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(remoteCallBuckets...))
		return
	})
	instrument(func() (e error) {
		m.authEvents, e = meter.Int64Counter("oauth_auth_total",
			metric.WithDescription("OAuth authorization-code exchanges by result"),
			metric.WithUnit("{attempt}"))
		return
	})
	instrument(func() (e error) {
		m.refreshEvents, e = meter.Int64Counter("oauth_token_refresh_total",
			metric.WithDescription("OAuth token refresh events by result"),
			metric.WithUnit("{attempt}"))
		return
	})
	instrument(func() (e error) {
		m.httpRequests, e = meter.Int64Counter("http_requests_total",
			metric.WithDescription("HTTP requests by method, path and status"),
			metric.WithUnit("{request}"))
		return
	})
	instrument(func() (e error) {
		m.httpLatency, e = meter.Float64Histogram("http_request_duration_seconds",
			metric.WithDescription("HTTP request duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(httpBuckets...))
		return
	})
	instrument(func() (e error) {
		m.inFlight, e = meter.Int64UpDownCounter("active_sessions",
			metric.WithDescription("MCP requests currently being served"),
			metric.WithUnit("{session}"))
		return
	})

	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordToolInvocation records a tool call without a resource label.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, elapsed time.Duration) {
	m.RecordToolInvocationWithResource(ctx, tool, status, "", elapsed)
}

// RecordToolInvocationWithResource records a tool call. The resource
// label is only attached when DetailedLabels is on; it is unbounded.
func (m *Metrics) RecordToolInvocationWithResource(ctx context.Context, tool, status, resource string, elapsed time.Duration) {
	if m.toolCalls == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && resource != "" {
		attrs = append(attrs, attribute.String(attrResource, resource))
	}

	m.toolCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolLatency.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGoogleAPIOperation records one upstream REST call.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, elapsed time.Duration) {
	if m.apiCalls == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)

	m.apiCalls.Add(ctx, 1, attrs)
	m.apiLatency.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordOAuthAuth records an authorization-code exchange attempt.
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.authEvents == nil {
		return
	}
	m.authEvents.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records a token refresh event.
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.refreshEvents == nil {
		return
	}
	m.refreshEvents.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordHTTPRequest records one request against the HTTP transport.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, elapsed time.Duration) {
	if m.httpRequests == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)

	m.httpRequests.Add(ctx, 1, attrs)
	m.httpLatency.Record(ctx, elapsed.Seconds(), attrs)
}

// IncrementActiveSessions marks a request as in flight.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.inFlight == nil {
		return
	}
	m.inFlight.Add(ctx, 1)
}

// DecrementActiveSessions marks a request as finished.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.inFlight == nil {
		return
	}
	m.inFlight.Add(ctx, -1)
}
