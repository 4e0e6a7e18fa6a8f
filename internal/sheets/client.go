package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// ValidValueInputOptions are the accepted values for how written cell data
// is interpreted. USER_ENTERED parses values as if typed into the UI
// (formulas, dates, numbers); RAW stores them verbatim.
var ValidValueInputOptions = []string{"USER_ENTERED", "RAW"}

// Client wraps the Google Sheets service
type Client struct {
	svc *sheets.Service
}

// NewClient creates a new Sheets client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		svc: svc,
	}, nil
}

// CreateSpreadsheet creates a new spreadsheet. Additional sheet tabs are
// created when sheetTitles is non-empty; otherwise the API creates a
// single default sheet.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetTitles []string) (*SpreadsheetInfo, error) {
	ss := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}

	for _, sheetTitle := range sheetTitles {
		ss.Sheets = append(ss.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				Title: sheetTitle,
			},
		})
	}

	created, err := c.svc.Spreadsheets.Create(ss).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	info := toSpreadsheetInfo(created)
	return &info, nil
}

// GetSpreadsheet retrieves spreadsheet metadata including its sheet tabs.
// Cell data is not included; use ReadRange for values.
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	info := toSpreadsheetInfo(ss)
	return &info, nil
}

// ReadRange reads cell values from a range in A1 notation
// (e.g. "Sheet1!A1:D10")
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (*RangeData, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range: %w", err)
	}

	return &RangeData{
		Range:          resp.Range,
		MajorDimension: resp.MajorDimension,
		Values:         resp.Values,
	}, nil
}

// WriteRange writes cell values to a range in A1 notation, overwriting
// existing data. valueInputOption defaults to USER_ENTERED when empty.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}, valueInputOption string) (*WriteResult, error) {
	vio, err := normalizeValueInputOption(valueInputOption)
	if err != nil {
		return nil, err
	}

	vr := &sheets.ValueRange{
		Values: values,
	}

	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption(vio).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to write range: %w", err)
	}

	result := toWriteResult(resp)
	return &result, nil
}

// AppendRows appends rows after the last row of the table that contains
// the given range. valueInputOption defaults to USER_ENTERED when empty.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}, valueInputOption string) (*WriteResult, error) {
	vio, err := normalizeValueInputOption(valueInputOption)
	if err != nil {
		return nil, err
	}

	vr := &sheets.ValueRange{
		Values: values,
	}

	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, vr).
		ValueInputOption(vio).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append rows: %w", err)
	}

	result := toWriteResult(resp.Updates)
	return &result, nil
}

// ClearRange clears cell values in a range, leaving formatting intact.
// Returns the range that was actually cleared.
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, clearRange string) (string, error) {
	resp, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear range: %w", err)
	}

	return resp.ClearedRange, nil
}

// AddSheet adds a new sheet tab to an existing spreadsheet. Row and
// column counts of zero leave the API defaults in place.
func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string, rowCount, columnCount int64) (*SheetInfo, error) {
	props := &sheets.SheetProperties{
		Title: title,
	}
	if rowCount > 0 || columnCount > 0 {
		props.GridProperties = &sheets.GridProperties{
			RowCount:    rowCount,
			ColumnCount: columnCount,
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: props,
				},
			},
		},
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return nil, fmt.Errorf("add sheet returned no sheet properties")
	}

	info := toSheetInfo(resp.Replies[0].AddSheet.Properties)
	return &info, nil
}

// DeleteSheet removes a sheet tab from a spreadsheet by its numeric sheet
// ID (not its title; see GetSpreadsheet for IDs)
func (c *Client) DeleteSheet(ctx context.Context, spreadsheetID string, sheetID int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteSheet: &sheets.DeleteSheetRequest{
					SheetId: sheetID,
				},
			},
		},
	}

	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}

	return nil
}

func normalizeValueInputOption(option string) (string, error) {
	if option == "" {
		return "USER_ENTERED", nil
	}
	for _, valid := range ValidValueInputOptions {
		if option == valid {
			return option, nil
		}
	}
	return "", fmt.Errorf("invalid value input option %q, must be one of: USER_ENTERED, RAW", option)
}
