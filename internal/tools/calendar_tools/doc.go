// Package calendar_tools registers the MCP tools for Google Calendar:
// event listing and retrieval, creation (including natural-language
// quick add), updates, deletion, invitation responses, calendar list
// access, and free/busy scheduling queries. Write tools are withheld in
// read-only mode.
package calendar_tools
