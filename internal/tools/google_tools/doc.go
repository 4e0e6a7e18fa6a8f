// Package google_tools registers the OAuth bootstrap tools:
// google_get_auth_url hands the agent an authorization URL, and
// google_save_auth_code exchanges the code the user brings back for a
// token covering Drive, Docs, Slides, Sheets, Calendar, Contacts, and
// Tasks. The token is cached on disk and refreshed automatically, so
// this flow runs once per account.
package google_tools
