// Package contacts_tools provides MCP tools for Google Contacts via the People API.
//
// This package registers tools that allow AI assistants to:
//   - List and search the user's saved contacts
//   - Read, create, update, and delete individual contacts
//   - List "Other contacts" (interacted-with but unsaved people)
//   - Search the Workspace domain directory
//
// Contact updates follow the People API read-modify-write contract: the
// current contact is fetched for its etag before the update is sent, so
// concurrent modifications are rejected by the API rather than silently
// overwritten.
package contacts_tools
