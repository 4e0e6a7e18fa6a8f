// Package cmd is the cobra CLI for workspace-mcp. Subcommands: serve
// (the default when none is given), auth and auth status for the OAuth
// bootstrap, version, and generate-docs for the tool reference.
package cmd
