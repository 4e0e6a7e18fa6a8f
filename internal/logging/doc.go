// Package logging defines the slog attribute vocabulary for workspace-mcp.
//
// All diagnostics go to stderr so stdout stays reserved for the stdio
// transport. The helpers here keep attribute names identical across the
// credential manager, the instrumentation package, and the CLI, and make
// sure token material never reaches a log line:
//
//	slog.Warn("failed to persist refreshed token",
//	    logging.Err(err),
//	    logging.Path(store.Path()))
package logging
