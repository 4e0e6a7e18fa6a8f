// Package drive wraps the Google Drive v3 API with a client covering
// uploads, listing and search, downloads and exports, copy/move/delete,
// folder creation, and permission management.
//
// Google-native documents (Docs, Sheets, Slides) have no binary body;
// DownloadFile rejects them and ExportFile converts them to a concrete
// MIME type instead. Credentials come from the shared googleauth
// manager, scoped to full Drive access.
package drive
