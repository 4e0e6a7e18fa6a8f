// Package sheets provides a client for interacting with the Google Sheets API.
//
// This package wraps the Sheets API (sheets/v4) and provides functionality for:
//   - Creating spreadsheets and managing sheet tabs
//   - Reading and writing cell values using A1 notation
//   - Appending rows to existing tables
//   - Clearing ranges while preserving formatting
//
// Ranges use A1 notation, optionally prefixed with a sheet title
// (e.g. "Sheet1!A1:D10"). Structural changes (adding and deleting sheet
// tabs) go through the spreadsheets.batchUpdate endpoint; value reads and
// writes use the dedicated values endpoints.
//
// The client uses the shared credential manager from the googleauth package.
package sheets
