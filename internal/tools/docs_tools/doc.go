// Package docs_tools registers the MCP tools for Google Docs: document
// creation, content retrieval as Markdown, plain text, or raw JSON,
// text edits (append, insert, replace), and listing via Drive search.
// Multi-tab documents are fetched whole, not just the legacy body.
package docs_tools
