// Package server provides the MCP server context, health checks, and the
// Prometheus metrics server for the workspace-mcp application.
//
// # Key Components
//
// ServerContext manages the Google API service clients with lazy
// initialization and caching. A single credential manager backs all seven
// Workspace services (Drive, Docs, Slides, Sheets, Calendar, Contacts,
// Tasks), so clients are created on first use and reused for the lifetime
// of the server.
//
// HTTPServer carries the MCP protocol over the streamable HTTP transport
// at /mcp. HealthChecker exposes Kubernetes-style liveness and readiness
// probes next to it; the probes report not-ready while tools are still
// being registered and while the server is shutting down.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated
// from the MCP traffic.
package server
