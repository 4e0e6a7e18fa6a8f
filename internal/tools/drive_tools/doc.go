// Package drive_tools registers the MCP tools for Google Drive: file
// upload, listing and search, metadata retrieval, download and export,
// update, copy, delete, folder creation, move/rename, and permission
// management (share, list, remove).
//
// Binary content crosses the MCP boundary base64-encoded; handlers
// accept an isBase64 flag on upload and return base64 for downloads of
// non-text files. Write tools are withheld in read-only mode, and all
// handlers share one cached OAuth token.
package drive_tools
