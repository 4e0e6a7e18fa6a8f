// Package sheets_tools provides MCP tools for interacting with Google Sheets.
//
// This package registers tools that allow AI assistants to:
//   - Create spreadsheets with one or more named sheets
//   - Inspect spreadsheet metadata, sheets, and dimensions
//   - Read, write, append, and clear cell ranges in A1 notation
//   - Add and delete sheets within an existing spreadsheet
//
// Cell values travel as JSON arrays of arrays in the valuesJson argument,
// one inner array per row. Writes honor the Sheets valueInputOption, so
// formulas like '=SUM(A1:A10)' are parsed under the default USER_ENTERED
// mode and stored verbatim under RAW.
package sheets_tools
