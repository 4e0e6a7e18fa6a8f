// Package slides_tools provides MCP tools for interacting with Google Slides.
//
// This package registers tools that allow AI assistants to:
//   - Create presentations and add slides from predefined layouts
//   - Inspect presentations, slides, and their page elements
//   - Add text boxes with positioned content
//   - Replace text across all slides of a presentation
//   - Delete slides
//
// Positions and dimensions are expressed in points (PT), matching the
// Slides API unit for absolute placement.
package slides_tools
