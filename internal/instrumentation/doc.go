// Package instrumentation wires OpenTelemetry metrics, tracing, and an
// audit log into the workspace-mcp server.
//
// One Provider owns the meter and tracer providers; its Metrics recorder
// is injected into the server context and reached by every instrumented
// tool handler. Metric families:
//
//   - mcp_tool_invocations_total / mcp_tool_duration_seconds, by tool and
//     status (plus the resource identifier when METRICS_DETAILED_LABELS
//     is set)
//   - google_api_operations_total / google_api_operation_duration_seconds,
//     by Workspace service and operation
//   - oauth_auth_total / oauth_token_refresh_total, by result
//   - http_requests_total / http_request_duration_seconds and
//     active_sessions, for the streamable HTTP transport
//
// Spans are "tool.<name>" around each handler and
// "google.<service>.<operation>" around upstream calls.
//
// Configuration comes from the environment: INSTRUMENTATION_ENABLED,
// METRICS_EXPORTER (prometheus, otlp, stdout), TRACING_EXPORTER (otlp,
// stdout, none), OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_TRACES_SAMPLER_ARG,
// OTEL_SERVICE_NAME, and the AUDIT_LOGGING_* switches. See DefaultConfig.
package instrumentation
