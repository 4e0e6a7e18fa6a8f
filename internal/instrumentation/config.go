package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names accepted by the METRICS_EXPORTER and TRACING_EXPORTER
// environment variables.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Status label values shared by metrics and audit entries.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OAuth event results.
const (
	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
)

// The seven Workspace surfaces, as they appear in the service metric label
// and in span names.
const (
	ServiceDrive    = "drive"
	ServiceDocs     = "docs"
	ServiceSlides   = "slides"
	ServiceSheets   = "sheets"
	ServiceCalendar = "calendar"
	ServiceContacts = "contacts"
	ServiceTasks    = "tasks"
)

// Operation label values. Tool registrations pick from this list so the
// operation axis stays bounded.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSearch = "search"
	OperationExport = "export"
	OperationMove   = "move"
)

// Config controls the OpenTelemetry setup for the server.
type Config struct {
	// ServiceName labels all telemetry; default "workspace-mcp".
	ServiceName string

	// ServiceVersion is stamped onto the resource; set from the build
	// version by the serve command.
	ServiceVersion string

	// InstanceID identifies this process. Defaults to the hostname.
	InstanceID string

	// Enabled turns the whole subsystem on or off. When false the
	// provider hands out no-op recorders and nothing is exported.
	Enabled bool

	// MetricsExporter is one of prometheus, otlp, stdout.
	MetricsExporter string

	// TracingExporter is one of otlp, stdout, none.
	TracingExporter string

	// OTLPEndpoint is the collector address ("host:4318", no scheme).
	// Required whenever either exporter is set to otlp.
	OTLPEndpoint string

	// OTLPInsecure disables TLS on the OTLP export path. Local
	// collectors only; telemetry can carry resource identifiers.
	OTLPInsecure bool

	// SampleRatio is the parent-based trace sampling ratio, 0 to 1.
	SampleRatio float64

	// DetailedLabels adds the resource identifier (file ID, calendar ID)
	// as a metric label. Off by default: the label is unbounded and will
	// blow up a Prometheus backend on a busy server.
	DetailedLabels bool

	// Audit configures the tool-invocation audit trail.
	Audit AuditConfig
}

// AuditConfig controls the audit log written for every tool call.
type AuditConfig struct {
	Enabled bool

	// IncludePII logs raw resource identifiers (which can be contact or
	// attendee email addresses). When false, emails are reduced to their
	// domain and other identifiers are dropped from the audit line.
	IncludePII bool
}

// DefaultConfig reads the instrumentation environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:     envString("OTEL_SERVICE_NAME", "workspace-mcp"),
		ServiceVersion:  "unknown",
		InstanceID:      envString("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:         envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter: envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter: envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:    envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio:     envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:  envBool("METRICS_DETAILED_LABELS", false),
		Audit: AuditConfig{
			Enabled:    envBool("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBool("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate rejects configurations the provider cannot honor.
func (c Config) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be in [0, 1], got %g", c.SampleRatio)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP metrics exporter needs OTEL_EXPORTER_OTLP_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown metrics exporter %q (prometheus, otlp, stdout)", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP tracing exporter needs OTEL_EXPORTER_OTLP_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown tracing exporter %q (otlp, stdout, none)", c.TracingExporter)
	}

	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
