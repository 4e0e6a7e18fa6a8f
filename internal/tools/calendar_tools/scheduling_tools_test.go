package calendar_tools

import (
	"testing"
	"time"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
)

func TestFormatFreeBusy(t *testing.T) {
	infos := []calendar.FreeBusyInfo{
		{
			Calendar: "jane@example.com",
			Busy: []calendar.TimeRange{
				{
					Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
					End:   time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
				},
				{
					Start: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
					End:   time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
				},
			},
		},
		{
			Calendar: "bob@example.com",
		},
		{
			Calendar: "unknown@example.com",
			Errors:   []string{"notFound"},
		},
	}

	want := "Free/Busy information for 3 calendar(s):\n\n" +
		"Calendar: jane@example.com\n" +
		"  Busy periods: 2\n" +
		"  1. 2025-03-10 09:00 to 2025-03-10 10:30\n" +
		"  2. 2025-03-10 14:00 to 2025-03-10 15:00\n" +
		"\n" +
		"Calendar: bob@example.com\n" +
		"  Status: FREE for entire range\n" +
		"\n" +
		"Calendar: unknown@example.com\n" +
		"  Errors: notFound\n" +
		"  Status: FREE for entire range\n" +
		"\n"

	if got := formatFreeBusy(infos); got != want {
		t.Errorf("formatFreeBusy() = %v, want %v", got, want)
	}
}

func TestHandleCheckAvailability_TimeValidation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:    "valid RFC3339",
			value:   "2025-03-10T09:00:00Z",
			wantErr: false,
		},
		{
			name:    "valid with offset",
			value:   "2025-03-10T09:00:00+02:00",
			wantErr: false,
		},
		{
			name:    "date only",
			value:   "2025-03-10",
			wantErr: true,
		},
		{
			name:    "garbage",
			value:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := time.Parse(time.RFC3339, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("time.Parse(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
