// Package googleauth manages the OAuth2 credentials used to reach the
// Google Workspace APIs.
//
// The OAuth client is configured from the environment (GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET); tokens are cached in a JSON file so they survive
// restarts. The Authenticator hands out one shared token source per
// process, and every token the source mints is persisted back through the
// Store so a refreshed access token is never lost on shutdown.
package googleauth
