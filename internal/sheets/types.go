package sheets

import (
	sheets "google.golang.org/api/sheets/v4"
)

// SpreadsheetInfo represents a Google Sheets spreadsheet with its sheet tabs
type SpreadsheetInfo struct {
	ID       string
	Title    string
	URL      string
	Locale   string
	TimeZone string
	Sheets   []SheetInfo
}

// SheetInfo represents a single sheet (tab) within a spreadsheet
type SheetInfo struct {
	ID          int64
	Title       string
	Index       int64
	RowCount    int64
	ColumnCount int64
}

// RangeData holds the values read from a range in A1 notation
type RangeData struct {
	Range          string
	MajorDimension string
	Values         [][]interface{}
}

// WriteResult summarizes the outcome of a values update or append
type WriteResult struct {
	UpdatedRange   string
	UpdatedRows    int64
	UpdatedColumns int64
	UpdatedCells   int64
}

// toSpreadsheetInfo converts a Sheets API spreadsheet to our SpreadsheetInfo type
func toSpreadsheetInfo(ss *sheets.Spreadsheet) SpreadsheetInfo {
	if ss == nil {
		return SpreadsheetInfo{}
	}

	result := SpreadsheetInfo{
		ID:  ss.SpreadsheetId,
		URL: ss.SpreadsheetUrl,
	}

	if ss.Properties != nil {
		result.Title = ss.Properties.Title
		result.Locale = ss.Properties.Locale
		result.TimeZone = ss.Properties.TimeZone
	}

	for _, sheet := range ss.Sheets {
		if sheet.Properties == nil {
			continue
		}
		result.Sheets = append(result.Sheets, toSheetInfo(sheet.Properties))
	}

	return result
}

// toSheetInfo converts Sheets API sheet properties to our SheetInfo type
func toSheetInfo(props *sheets.SheetProperties) SheetInfo {
	if props == nil {
		return SheetInfo{}
	}

	result := SheetInfo{
		ID:    props.SheetId,
		Title: props.Title,
		Index: props.Index,
	}

	if props.GridProperties != nil {
		result.RowCount = props.GridProperties.RowCount
		result.ColumnCount = props.GridProperties.ColumnCount
	}

	return result
}

// toWriteResult converts a values update response to our WriteResult type
func toWriteResult(resp *sheets.UpdateValuesResponse) WriteResult {
	if resp == nil {
		return WriteResult{}
	}

	return WriteResult{
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}
}
