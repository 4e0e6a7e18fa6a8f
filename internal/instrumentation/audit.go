package instrumentation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/workspacekit/workspace-mcp/internal/logging"
)

// ToolInvocation is the audit record for one tool call.
//
// Resource may carry PII: contact and attendee identifiers are email
// addresses. The audit logger decides per its AuditConfig whether the
// raw value or a domain-reduced form reaches the log.
type ToolInvocation struct {
	Tool string

	// ServiceName and Operation locate the upstream call: one of the
	// seven Workspace surfaces and a bounded operation label.
	ServiceName string
	Operation   string

	// Resource is the target named in the request, when there is one:
	// a file ID, calendar ID, spreadsheet ID, or contact email.
	Resource string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts the audit record; call one of the Complete
// methods when the handler returns.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{Tool: tool, StartTime: time.Now()}
}

// WithService sets the upstream service and operation labels.
func (ti *ToolInvocation) WithService(service, operation string) *ToolInvocation {
	ti.ServiceName = service
	ti.Operation = operation
	return ti
}

// WithResource sets the targeted resource identifier.
func (ti *ToolInvocation) WithResource(resource string) *ToolInvocation {
	ti.Resource = resource
	return ti
}

// WithSpanContext copies the trace identifiers from the span in ctx.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ti
}

// Complete stamps the duration and outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess marks the invocation successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError marks the invocation failed with err.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns the metric status label for this invocation.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// attrs renders the record as slog attributes. With includePII the raw
// resource is logged; otherwise emails shrink to their domain and other
// identifiers are left out entirely, keeping the stream safe to ship to
// general log storage.
func (ti *ToolInvocation) attrs(includePII bool) []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if resource := redactResource(ti.Resource, includePII); resource != "" {
		attrs = append(attrs, slog.String(logging.KeyResource, resource))
	}
	if ti.ServiceName != "" {
		attrs = append(attrs, logging.Service(ti.ServiceName))
	}
	if ti.Operation != "" {
		attrs = append(attrs, logging.Operation(ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String(logging.KeyTraceID, ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String(logging.KeySpanID, ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	return attrs
}

// redactResource applies the PII policy to a resource identifier.
func redactResource(resource string, includePII bool) string {
	if includePII || resource == "" {
		return resource
	}
	if strings.Contains(resource, "@") {
		return ExtractUserDomain(resource)
	}
	// Opaque identifiers (file IDs, calendar IDs) are dropped from the
	// redacted stream; they are unbounded and meaningless without the
	// account behind them.
	return ""
}

// ExtractUserDomain reduces an email address to its domain, the
// low-cardinality form used in redacted logs. Anything that does not
// look like an email becomes "unknown".
func ExtractUserDomain(email string) string {
	at := strings.Split(email, "@")
	if len(at) == 2 && at[1] != "" {
		return at[1]
	}
	return "unknown"
}

// AuditLogger writes the tool-invocation audit trail through slog.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger returns an enabled logger with PII redaction on.
// A nil logger falls back to slog.Default.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return NewAuditLoggerWithConfig(logger, AuditConfig{Enabled: true})
}

// NewAuditLoggerWithConfig returns a logger honoring cfg.
func NewAuditLoggerWithConfig(logger *slog.Logger, cfg AuditConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: cfg.IncludePII,
		enabled:    cfg.Enabled,
	}
}

// SetIncludePII toggles raw resource identifiers in the audit stream.
func (al *AuditLogger) SetIncludePII(include bool) {
	al.includePII = include
}

// SetEnabled toggles the audit stream.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogToolInvocation writes one audit line: Info for successes, Warn for
// failures, with the attribute set chosen by the PII policy.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	attrs := ti.attrs(al.includePII)
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}
