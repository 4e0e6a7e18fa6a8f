package calendar_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
)

func TestFormatEventList(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	events := []calendar.EventSummary{
		{
			ID:       "evt-1",
			Summary:  "Sprint planning",
			Location: "Room 4",
			Start:    start,
			End:      end,
			Attendees: []calendar.AttendeeInfo{
				{Email: "alice@example.com"},
				{Email: "bob@example.com"},
			},
		},
		{
			ID:       "evt-2",
			Summary:  "Focus time",
			Start:    start.Add(24 * time.Hour),
			End:      end.Add(24 * time.Hour),
			MeetLink: "https://meet.google.com/abc-defg-hij",
		},
	}

	want := "Found 2 events:\n\n" +
		"1. Sprint planning\n" +
		"   ID: evt-1\n" +
		"   Start: 2025-03-10T09:00:00Z\n" +
		"   End: 2025-03-10T10:00:00Z\n" +
		"   Location: Room 4\n" +
		"   Attendees: 2\n" +
		"\n" +
		"2. Focus time\n" +
		"   ID: evt-2\n" +
		"   Start: 2025-03-11T09:00:00Z\n" +
		"   End: 2025-03-11T10:00:00Z\n" +
		"   Meet: https://meet.google.com/abc-defg-hij\n" +
		"\n"

	if got := formatEventList(events); got != want {
		t.Errorf("formatEventList() = %v, want %v", got, want)
	}
}

func TestFormatEventList_Empty(t *testing.T) {
	want := "Found 0 events:\n\n"
	if got := formatEventList(nil); got != want {
		t.Errorf("formatEventList(nil) = %v, want %v", got, want)
	}
}

func TestFormatEventDetails(t *testing.T) {
	event := &calendar.EventSummary{
		ID:          "evt-1",
		Summary:     "Quarterly review",
		Description: "Slides in the shared drive",
		Location:    "HQ",
		Start:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
		Creator:     "carol@example.com",
		Organizer:   "carol@example.com",
		Status:      "confirmed",
		MeetLink:    "https://meet.google.com/abc-defg-hij",
		Attendees: []calendar.AttendeeInfo{
			{Email: "alice@example.com", DisplayName: "Alice", ResponseStatus: "accepted"},
			{Email: "bob@example.com", ResponseStatus: "needsAction", Optional: true},
		},
	}

	want := "Event: Quarterly review\n" +
		"ID: evt-1\n" +
		"Start: 2025-03-10T09:00:00Z\n" +
		"End: 2025-03-10T10:30:00Z\n" +
		"Status: confirmed\n" +
		"Description: Slides in the shared drive\n" +
		"Location: HQ\n" +
		"Creator: carol@example.com\n" +
		"Organizer: carol@example.com\n" +
		"Google Meet: https://meet.google.com/abc-defg-hij\n" +
		"\nAttendees (2):\n" +
		"  - alice@example.com (accepted) - Alice\n" +
		"  - bob@example.com (needsAction) [optional]\n"

	if got := formatEventDetails(event); got != want {
		t.Errorf("formatEventDetails() = %v, want %v", got, want)
	}
}

func TestFormatEventDetails_Minimal(t *testing.T) {
	event := &calendar.EventSummary{
		ID:      "evt-2",
		Summary: "Focus time",
		Start:   time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC),
		Status:  "confirmed",
	}

	want := "Event: Focus time\n" +
		"ID: evt-2\n" +
		"Start: 2025-03-11T09:00:00Z\n" +
		"End: 2025-03-11T10:00:00Z\n" +
		"Status: confirmed\n"

	if got := formatEventDetails(event); got != want {
		t.Errorf("formatEventDetails() = %v, want %v", got, want)
	}
}

func TestFormatEventWriteResult(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		verb  string
		event *calendar.EventSummary
		want  string
	}{
		{
			name: "created with meet link",
			verb: "created",
			event: &calendar.EventSummary{
				ID:       "evt-9",
				Summary:  "Standup",
				Start:    start,
				End:      end,
				MeetLink: "https://meet.google.com/abc-defg-hij",
			},
			want: "Successfully created event: Standup\n" +
				"ID: evt-9\n" +
				"Start: 2025-03-10T09:00:00Z\n" +
				"End: 2025-03-10T09:30:00Z\n" +
				"Google Meet: https://meet.google.com/abc-defg-hij\n",
		},
		{
			name: "updated without meet link",
			verb: "updated",
			event: &calendar.EventSummary{
				ID:      "evt-9",
				Summary: "Standup",
				Start:   start,
				End:     end,
			},
			want: "Successfully updated event: Standup\n" +
				"ID: evt-9\n" +
				"Start: 2025-03-10T09:00:00Z\n" +
				"End: 2025-03-10T09:30:00Z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEventWriteResult(tt.verb, tt.event); got != tt.want {
				t.Errorf("formatEventWriteResult(%q) = %v, want %v", tt.verb, got, tt.want)
			}
		})
	}
}

func TestHandleRespondToEvent_ResponseValidation(t *testing.T) {
	tests := []struct {
		name     string
		response string
		valid    bool
	}{
		{
			name:     "accepted",
			response: "accepted",
			valid:    true,
		},
		{
			name:     "declined",
			response: "declined",
			valid:    true,
		},
		{
			name:     "tentative",
			response: "tentative",
			valid:    true,
		},
		{
			name:     "needsAction",
			response: "needsAction",
			valid:    true,
		},
		{
			name:     "invalid response",
			response: "maybe",
			valid:    false,
		},
		{
			name:     "empty response",
			response: "",
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isValid := false
			for _, v := range calendar.ValidResponseStatuses {
				if tt.response == v {
					isValid = true
					break
				}
			}

			if isValid != tt.valid {
				t.Errorf("response validation result = %v, want %v", isValid, tt.valid)
			}
		})
	}
}

func TestHandleGetEvent_MissingEventID(t *testing.T) {
	sc := newTestServerContext(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "calendar_get_event",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handleGetEvent(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleGetEvent() error = %v, want nil", err)
	}
	if result == nil {
		t.Fatal("handleGetEvent() result is nil")
	}
	if !result.IsError {
		t.Error("handleGetEvent() without eventId should return an error result")
	}
}

func TestHandleGetEvent_NoCredentials(t *testing.T) {
	sc := newTestServerContext(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "calendar_get_event",
			Arguments: map[string]interface{}{
				"eventId": "evt-1",
			},
		},
	}

	result, err := handleGetEvent(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleGetEvent() error = %v, want nil", err)
	}
	if result == nil {
		t.Fatal("handleGetEvent() result is nil")
	}
	if !result.IsError {
		t.Error("handleGetEvent() without stored credentials should return an error result")
	}
	if len(result.Content) == 0 {
		t.Error("handleGetEvent() error result should carry guidance content")
	}
}
