// Package docs wraps the Google Docs API. It creates documents, applies
// text edits (append, insert at index, find-and-replace) through batch
// updates, fetches documents with every tab included, and converts
// document bodies to Markdown or plain text.
//
// Listing documents goes through a Drive query scoped to the Docs MIME
// type, since the Docs API itself has no list endpoint.
package docs
