package sheets

import (
	"testing"

	sheets "google.golang.org/api/sheets/v4"
)

func TestToSpreadsheetInfo(t *testing.T) {
	// Nil spreadsheet converts to the zero value
	info := toSpreadsheetInfo(nil)
	if info.ID != "" {
		t.Errorf("Expected empty ID for nil spreadsheet, got %s", info.ID)
	}

	ss := &sheets.Spreadsheet{
		SpreadsheetId:  "ss-123",
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/ss-123/edit",
		Properties: &sheets.SpreadsheetProperties{
			Title:    "Quarterly Budget",
			Locale:   "en_US",
			TimeZone: "Europe/Berlin",
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					Title:   "Summary",
					Index:   0,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
			{
				Properties: &sheets.SheetProperties{
					SheetId: 987654,
					Title:   "Raw Data",
					Index:   1,
				},
			},
		},
	}

	info = toSpreadsheetInfo(ss)

	if info.ID != "ss-123" {
		t.Errorf("Expected ID ss-123, got %s", info.ID)
	}
	if info.Title != "Quarterly Budget" {
		t.Errorf("Expected title 'Quarterly Budget', got %s", info.Title)
	}
	if info.URL != "https://docs.google.com/spreadsheets/d/ss-123/edit" {
		t.Errorf("Expected spreadsheet URL, got %s", info.URL)
	}
	if info.TimeZone != "Europe/Berlin" {
		t.Errorf("Expected time zone Europe/Berlin, got %s", info.TimeZone)
	}

	if len(info.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(info.Sheets))
	}
	if info.Sheets[0].Title != "Summary" {
		t.Errorf("Expected first sheet 'Summary', got %s", info.Sheets[0].Title)
	}
	if info.Sheets[0].RowCount != 1000 {
		t.Errorf("Expected 1000 rows, got %d", info.Sheets[0].RowCount)
	}
	if info.Sheets[1].ID != 987654 {
		t.Errorf("Expected second sheet ID 987654, got %d", info.Sheets[1].ID)
	}
	if info.Sheets[1].RowCount != 0 {
		t.Errorf("Expected 0 rows without grid properties, got %d", info.Sheets[1].RowCount)
	}
}

func TestToSpreadsheetInfo_SkipsSheetsWithoutProperties(t *testing.T) {
	ss := &sheets.Spreadsheet{
		SpreadsheetId: "ss-456",
		Sheets: []*sheets.Sheet{
			{},
			{
				Properties: &sheets.SheetProperties{
					SheetId: 1,
					Title:   "Only Sheet",
				},
			},
		},
	}

	info := toSpreadsheetInfo(ss)

	if len(info.Sheets) != 1 {
		t.Fatalf("Expected 1 sheet, got %d", len(info.Sheets))
	}
	if info.Sheets[0].Title != "Only Sheet" {
		t.Errorf("Expected 'Only Sheet', got %s", info.Sheets[0].Title)
	}
}

func TestToSheetInfo_Nil(t *testing.T) {
	info := toSheetInfo(nil)
	if info.Title != "" {
		t.Errorf("Expected empty title for nil properties, got %s", info.Title)
	}
}

func TestToWriteResult(t *testing.T) {
	// Nil response converts to the zero value
	result := toWriteResult(nil)
	if result.UpdatedCells != 0 {
		t.Errorf("Expected 0 updated cells for nil response, got %d", result.UpdatedCells)
	}

	resp := &sheets.UpdateValuesResponse{
		UpdatedRange:   "Sheet1!A1:B2",
		UpdatedRows:    2,
		UpdatedColumns: 2,
		UpdatedCells:   4,
	}

	result = toWriteResult(resp)

	if result.UpdatedRange != "Sheet1!A1:B2" {
		t.Errorf("Expected range Sheet1!A1:B2, got %s", result.UpdatedRange)
	}
	if result.UpdatedRows != 2 {
		t.Errorf("Expected 2 updated rows, got %d", result.UpdatedRows)
	}
	if result.UpdatedCells != 4 {
		t.Errorf("Expected 4 updated cells, got %d", result.UpdatedCells)
	}
}

func TestNormalizeValueInputOption(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "empty defaults to USER_ENTERED",
			input: "",
			want:  "USER_ENTERED",
		},
		{
			name:  "explicit USER_ENTERED",
			input: "USER_ENTERED",
			want:  "USER_ENTERED",
		},
		{
			name:  "explicit RAW",
			input: "RAW",
			want:  "RAW",
		},
		{
			name:    "lowercase raw rejected",
			input:   "raw",
			wantErr: true,
		},
		{
			name:    "unknown option rejected",
			input:   "FORMULA",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeValueInputOption(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeValueInputOption(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeValueInputOption(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("normalizeValueInputOption(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
