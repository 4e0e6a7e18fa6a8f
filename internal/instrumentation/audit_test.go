package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a JSON slog logger and the buffer it writes to,
// so tests can decode the exact audit line emitted.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestToolInvocationLifecycle(t *testing.T) {
	ti := NewToolInvocation("calendar_create_event").
		WithService(ServiceCalendar, OperationCreate).
		WithResource("primary")

	assert.False(t, ti.StartTime.IsZero())
	assert.Zero(t, ti.Duration)

	ti.CompleteSuccess()
	assert.True(t, ti.Success)
	assert.Empty(t, ti.Error)
	assert.Equal(t, StatusSuccess, ti.Status())

	failed := NewToolInvocation("calendar_delete_event").
		Complete(false, errors.New("event not found"))
	assert.False(t, failed.Success)
	assert.Equal(t, "event not found", failed.Error)
	assert.Equal(t, StatusError, failed.Status())
}

func TestToolInvocationWithSpanContext(t *testing.T) {
	withRecorder(t)

	ctx, span := StartToolSpan(context.Background(), "drive_get_file")
	defer span.End()

	ti := NewToolInvocation("drive_get_file").WithSpanContext(ctx)
	assert.Equal(t, GetTraceID(ctx), ti.TraceID)
	assert.Equal(t, GetSpanID(ctx), ti.SpanID)

	// No span in the context leaves the IDs empty.
	bare := NewToolInvocation("drive_get_file").WithSpanContext(context.Background())
	assert.Empty(t, bare.TraceID)
	assert.Empty(t, bare.SpanID)
}

func TestLogToolInvocationSuccess(t *testing.T) {
	logger, buf := captureLogger()
	al := NewAuditLogger(logger)

	ti := NewToolInvocation("sheets_read_range").
		WithService(ServiceSheets, OperationGet).
		WithResource("spreadsheet-abc123").
		CompleteSuccess()
	al.LogToolInvocation(ti)

	entry := decodeLine(t, buf)
	assert.Equal(t, "tool_executed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "sheets_read_range", entry["tool"])
	assert.Equal(t, ServiceSheets, entry["service"])
	assert.Equal(t, OperationGet, entry["operation"])
	assert.Equal(t, true, entry["success"])

	// Redaction is on by default: an opaque spreadsheet ID never
	// reaches the log.
	_, present := entry["resource"]
	assert.False(t, present)
}

func TestLogToolInvocationFailure(t *testing.T) {
	logger, buf := captureLogger()
	al := NewAuditLogger(logger)

	ti := NewToolInvocation("tasks_delete_task").
		WithService(ServiceTasks, OperationDelete).
		CompleteWithError(errors.New("task list not found"))
	al.LogToolInvocation(ti)

	entry := decodeLine(t, buf)
	assert.Equal(t, "tool_failed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, false, entry["success"])
	assert.Equal(t, "task list not found", entry["error"])
}

func TestAuditResourceRedaction(t *testing.T) {
	tests := []struct {
		name       string
		resource   string
		includePII bool
		want       string // "" means the attribute is absent
	}{
		{"email redacted to domain", "alice@example.com", false, "example.com"},
		{"email kept with pii", "alice@example.com", true, "alice@example.com"},
		{"opaque id dropped", "1FAIpQLSd-file-id", false, ""},
		{"opaque id kept with pii", "1FAIpQLSd-file-id", true, "1FAIpQLSd-file-id"},
		{"empty resource absent", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := captureLogger()
			al := NewAuditLoggerWithConfig(logger, AuditConfig{
				Enabled:    true,
				IncludePII: tt.includePII,
			})

			al.LogToolInvocation(NewToolInvocation("contacts_get").
				WithResource(tt.resource).
				CompleteSuccess())

			entry := decodeLine(t, buf)
			got, present := entry["resource"]
			if tt.want == "" {
				assert.False(t, present)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAuditLoggerDisabled(t *testing.T) {
	logger, buf := captureLogger()
	al := NewAuditLoggerWithConfig(logger, AuditConfig{Enabled: false})

	al.LogToolInvocation(NewToolInvocation("drive_search").CompleteSuccess())
	assert.Zero(t, buf.Len())

	al.SetEnabled(true)
	al.LogToolInvocation(NewToolInvocation("drive_search").CompleteSuccess())
	assert.NotZero(t, buf.Len())
}

func TestAuditLoggerSetIncludePII(t *testing.T) {
	logger, buf := captureLogger()
	al := NewAuditLogger(logger)
	al.SetIncludePII(true)

	al.LogToolInvocation(NewToolInvocation("contacts_search").
		WithResource("bob@corp.example").
		CompleteSuccess())

	entry := decodeLine(t, buf)
	assert.Equal(t, "bob@corp.example", entry["resource"])
}

func TestAuditLoggerNilLoggerFallsBack(t *testing.T) {
	al := NewAuditLogger(nil)
	require.NotNil(t, al)
	// Must not panic.
	al.LogToolInvocation(NewToolInvocation("drive_search").CompleteSuccess())
}

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "example.com"},
		{"no-at-sign", "unknown"},
		{"trailing@", "unknown"},
		{"two@at@signs", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractUserDomain(tt.email), "email %q", tt.email)
	}
}

func TestToolInvocationDuration(t *testing.T) {
	ti := NewToolInvocation("slides_get")
	ti.StartTime = time.Now().Add(-50 * time.Millisecond)
	ti.CompleteSuccess()
	assert.GreaterOrEqual(t, ti.Duration, 50*time.Millisecond)
}
