// Package contacts provides a client for the Google People API.
//
// This package wraps the People API (people/v1) and provides functionality for:
//   - Listing and searching the user's saved contacts
//   - Creating, updating, and deleting contacts
//   - Listing "other contacts" collected from past interactions
//   - Searching the Workspace domain directory
//
// Contacts are addressed by People API resource names ("people/c123");
// bare IDs are accepted and normalized. Updates are optimistic: the API
// requires the contact's current etag, so update operations fetch the
// contact first and fail if it changed concurrently.
//
// The client uses the shared credential manager from the googleauth package.
package contacts
