package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	cfg := &googleauth.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenPath:    filepath.Join(t.TempDir(), "token.json"),
	}
	auth := googleauth.NewAuthenticator(context.Background(), cfg)

	sc, err := server.NewServerContext(context.Background(), auth)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc
}

// withMetrics attaches a Metrics backed by a manual reader so the test
// can inspect the datapoints the wrapper produced.
func withMetrics(t *testing.T, sc *server.ServerContext) *sdkmetric.ManualReader {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := instrumentation.NewMetrics(provider.Meter("test"), false)
	require.NoError(t, err)
	sc.SetMetrics(metrics)
	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterTotal(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestInstrumentedToolHandlerPassthrough(t *testing.T) {
	// No metrics and no audit logger: the wrapper must step aside.
	sc := newTestServerContext(t)

	called := false
	wrapped := InstrumentedToolHandler("drive_search", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, called)
}

func TestInstrumentedToolHandlerRecordsSuccess(t *testing.T) {
	sc := newTestServerContext(t)
	reader := withMetrics(t, sc)

	wrapped := InstrumentedToolHandler("drive_search", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	_, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	metrics := collectMetrics(t, reader)
	invocations, ok := metrics["mcp_tool_invocations_total"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counterTotal(t, invocations))

	_, hasLatency := metrics["mcp_tool_duration_seconds"]
	assert.True(t, hasLatency)
}

func TestInstrumentedToolHandlerRecordsError(t *testing.T) {
	sc := newTestServerContext(t)
	reader := withMetrics(t, sc)

	wantErr := errors.New("backend unavailable")
	wrapped := InstrumentedToolHandler("drive_search", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := wrapped(context.Background(), mcp.CallToolRequest{})
	assert.ErrorIs(t, err, wantErr)

	metrics := collectMetrics(t, reader)
	assert.Equal(t, int64(1), counterTotal(t, metrics["mcp_tool_invocations_total"]))
}

func TestInstrumentedToolHandlerErrorResultAudited(t *testing.T) {
	// A handler returning an error *result* (not a Go error) still counts
	// as a failed invocation in the audit stream.
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	wrapped := InstrumentedToolHandler("docs_get", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("document not found"), nil
	})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	assert.Contains(t, buf.String(), "tool_failed")
}

func TestInstrumentedToolHandlerWithServiceRecordsAPIOperation(t *testing.T) {
	sc := newTestServerContext(t)
	reader := withMetrics(t, sc)

	wrapped := InstrumentedToolHandlerWithService("sheets_read_range",
		instrumentation.ServiceSheets, instrumentation.OperationGet, sc,
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		})

	_, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	metrics := collectMetrics(t, reader)
	assert.Equal(t, int64(1), counterTotal(t, metrics["mcp_tool_invocations_total"]))

	apiOps, ok := metrics["google_api_operations_total"]
	require.True(t, ok, "service-labelled handler must record API operation metrics")
	assert.Equal(t, int64(1), counterTotal(t, apiOps))
}

func TestInstrumentedToolHandlerRecoversPanic(t *testing.T) {
	sc := newTestServerContext(t)
	reader := withMetrics(t, sc)

	var buf bytes.Buffer
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	wrapped := InstrumentedToolHandler("tasks_move_task", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("index out of range")
	})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, strings.Contains(err.Error(), "panicked"))
	assert.True(t, strings.Contains(err.Error(), "index out of range"))

	metrics := collectMetrics(t, reader)
	assert.Equal(t, int64(1), counterTotal(t, metrics["mcp_tool_invocations_total"]))
	assert.Contains(t, buf.String(), "tool_failed")
}
