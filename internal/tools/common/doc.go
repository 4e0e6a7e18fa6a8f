// Package common holds the pieces every tool package needs: argument
// extraction from MCP requests, the instrumented handler wrapper, and
// account resource helpers.
package common
