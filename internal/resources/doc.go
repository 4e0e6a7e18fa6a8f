// Package resources provides MCP resources for exposing server-side state.
// Resources are read-only data sources that MCP clients can fetch, as opposed
// to tools, which perform operations.
//
// The package currently exposes workspace://auth/status, a JSON snapshot of
// the shared OAuth credential state served from the local token cache.
package resources
