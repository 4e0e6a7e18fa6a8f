// Package slides provides a client for interacting with the Google Slides API.
//
// This package wraps the Slides API (slides/v1) and provides functionality for:
//   - Creating presentations and adding slides from predefined layouts
//   - Inspecting slides and their page elements
//   - Placing text boxes at arbitrary positions (measured in points)
//   - Replacing text across a whole presentation, e.g. template placeholders
//
// All structural edits go through the presentations.batchUpdate endpoint.
// Slides and page elements are addressed by their object IDs, which
// GetPresentation and GetSlide expose.
//
// The client uses the shared credential manager from the googleauth package.
package slides
