package calendar_tools

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// calendarIDDesc documents the calendarId argument shared by every
// event tool.
const calendarIDDesc = "Calendar ID (default: 'primary' for the primary calendar)"

// RegisterEventTools registers event-related tools with the MCP server.
// Write tools (create, quick-add, update, delete, respond) are skipped
// in read-only mode.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(
		mcp.NewTool("calendar_list_events",
			mcp.WithDescription("List/search calendar events within a time range"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("timeMin",
				mcp.Required(),
				mcp.Description("Start time for the range (RFC3339 format, e.g., '2025-01-01T00:00:00Z')"),
			),
			mcp.WithString("timeMax",
				mcp.Required(),
				mcp.Description("End time for the range (RFC3339 format, e.g., '2025-01-31T23:59:59Z')"),
			),
			mcp.WithString("query", mcp.Description("Optional search query to filter events")),
		),
		common.InstrumentedToolHandlerWithService("calendar_list_events", "calendar", "list", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListEvents(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_get_event",
			mcp.WithDescription("Get details of a specific calendar event"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("eventId",
				mcp.Required(),
				mcp.Description("The ID of the event to retrieve"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_get_event", "calendar", "get", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetEvent(ctx, request, sc)
			}))

	if readOnly {
		return nil
	}

	s.AddTool(
		mcp.NewTool("calendar_create_event",
			mcp.WithDescription("Create a new calendar event (supports recurring, out-of-office, and Google Meet)"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("summary",
				mcp.Required(),
				mcp.Description("Event title/summary"),
			),
			mcp.WithString("description", mcp.Description("Event description")),
			mcp.WithString("location", mcp.Description("Event location")),
			mcp.WithString("start",
				mcp.Required(),
				mcp.Description("Start time (RFC3339 format, e.g., '2025-01-15T14:00:00Z')"),
			),
			mcp.WithString("end",
				mcp.Required(),
				mcp.Description("End time (RFC3339 format, e.g., '2025-01-15T15:00:00Z')"),
			),
			mcp.WithString("timeZone", mcp.Description("Time zone (e.g., 'America/New_York'). Defaults to UTC.")),
			mcp.WithString("attendees", mcp.Description("Comma-separated list of attendee email addresses")),
			mcp.WithString("recurrence", mcp.Description("Recurrence rule (e.g., 'RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR')")),
			mcp.WithString("eventType", mcp.Description("Event type: 'default', 'outOfOffice', 'focusTime', 'workingLocation'")),
			mcp.WithBoolean("allDay", mcp.Description("Create as all-day event (ignores time portion of start/end)")),
			mcp.WithBoolean("addGoogleMeet", mcp.Description("Automatically add a Google Meet link to the event")),
			mcp.WithBoolean("guestsCanModify", mcp.Description("Allow guests to modify the event")),
			mcp.WithBoolean("guestsCanInviteOthers", mcp.Description("Allow guests to invite others")),
			mcp.WithBoolean("guestsCanSeeOtherGuests", mcp.Description("Allow guests to see other guests")),
		),
		common.InstrumentedToolHandlerWithService("calendar_create_event", "calendar", "create", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateEvent(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_quick_add",
			mcp.WithDescription("Create a calendar event from natural language text (e.g., 'Lunch with Anna tomorrow at noon')"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Natural language description of the event"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_quick_add", "calendar", "create", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleQuickAdd(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_update_event",
			mcp.WithDescription("Update an existing calendar event"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("eventId",
				mcp.Required(),
				mcp.Description("The ID of the event to update"),
			),
			mcp.WithString("summary", mcp.Description("New event title/summary")),
			mcp.WithString("description", mcp.Description("New event description")),
			mcp.WithString("location", mcp.Description("New event location")),
			mcp.WithString("start", mcp.Description("New start time (RFC3339 format)")),
			mcp.WithString("end", mcp.Description("New end time (RFC3339 format)")),
			mcp.WithString("timeZone", mcp.Description("Time zone (e.g., 'America/New_York')")),
			mcp.WithString("attendees", mcp.Description("New comma-separated list of attendee email addresses")),
			mcp.WithString("eventType", mcp.Description("New event type: 'default', 'outOfOffice', 'focusTime', 'workingLocation'")),
			mcp.WithBoolean("allDay", mcp.Description("Update to be an all-day event (ignores time portion of start/end)")),
			mcp.WithBoolean("guestsCanModify", mcp.Description("Allow guests to modify the event")),
			mcp.WithBoolean("guestsCanInviteOthers", mcp.Description("Allow guests to invite others")),
			mcp.WithBoolean("guestsCanSeeOtherGuests", mcp.Description("Allow guests to see other guests")),
		),
		common.InstrumentedToolHandlerWithService("calendar_update_event", "calendar", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateEvent(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_delete_event",
			mcp.WithDescription("Delete a calendar event"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("eventId",
				mcp.Required(),
				mcp.Description("The ID of the event to delete"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_delete_event", "calendar", "delete", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteEvent(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_respond_to_event",
			mcp.WithDescription("Respond to a calendar event invitation as the authenticated user"),
			mcp.WithString("calendarId", mcp.Description(calendarIDDesc)),
			mcp.WithString("eventId",
				mcp.Required(),
				mcp.Description("The ID of the event to respond to"),
			),
			mcp.WithString("response",
				mcp.Required(),
				mcp.Description("The response: 'accepted', 'declined', 'tentative', or 'needsAction'"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_respond_to_event", "calendar", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleRespondToEvent(ctx, request, sc)
			}))

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := common.StringArg(args, "calendarId", "primary")

	timeMin, err := common.RequiredTimeArg(args, "timeMin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeMax, err := common.RequiredTimeArg(args, "timeMax")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(ctx, calendarID, timeMin, timeMax, common.StringArg(args, "query", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventList(events)), nil
}

// formatEventList renders events as a numbered summary, one per entry
func formatEventList(events []calendar.EventSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d events:\n\n", len(events))
	for i, event := range events {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, event.Summary)
		fmt.Fprintf(&sb, "   ID: %s\n", event.ID)
		fmt.Fprintf(&sb, "   Start: %s\n", event.Start.Format(time.RFC3339))
		fmt.Fprintf(&sb, "   End: %s\n", event.End.Format(time.RFC3339))
		if event.Location != "" {
			fmt.Fprintf(&sb, "   Location: %s\n", event.Location)
		}
		if event.MeetLink != "" {
			fmt.Fprintf(&sb, "   Meet: %s\n", event.MeetLink)
		}
		if len(event.Attendees) > 0 {
			fmt.Fprintf(&sb, "   Attendees: %d\n", len(event.Attendees))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.GetEvent(ctx, common.StringArg(args, "calendarId", "primary"), eventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventDetails(event)), nil
}

// formatEventDetails renders the full view of a single event
func formatEventDetails(event *calendar.EventSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Event: %s\n", event.Summary)
	fmt.Fprintf(&sb, "ID: %s\n", event.ID)
	fmt.Fprintf(&sb, "Start: %s\n", event.Start.Format(time.RFC3339))
	fmt.Fprintf(&sb, "End: %s\n", event.End.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Status: %s\n", event.Status)

	optional := []struct{ label, value string }{
		{"Description", event.Description},
		{"Location", event.Location},
		{"Creator", event.Creator},
		{"Organizer", event.Organizer},
		{"Google Meet", event.MeetLink},
	}
	for _, f := range optional {
		if f.value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", f.label, f.value)
		}
	}

	if len(event.Attendees) > 0 {
		fmt.Fprintf(&sb, "\nAttendees (%d):\n", len(event.Attendees))
		for _, att := range event.Attendees {
			fmt.Fprintf(&sb, "  - %s (%s)", att.Email, att.ResponseStatus)
			if att.DisplayName != "" {
				fmt.Fprintf(&sb, " - %s", att.DisplayName)
			}
			if att.Optional {
				sb.WriteString(" [optional]")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// eventInputFromArgs assembles the optional event fields shared by the
// create and update handlers.
func eventInputFromArgs(args map[string]interface{}) calendar.EventInput {
	return calendar.EventInput{
		Summary:                  common.StringArg(args, "summary", ""),
		Description:              common.StringArg(args, "description", ""),
		Location:                 common.StringArg(args, "location", ""),
		TimeZone:                 common.StringArg(args, "timeZone", ""),
		EventType:                common.StringArg(args, "eventType", ""),
		Attendees:                common.ListArg(args, "attendees"),
		AllDay:                   common.BoolArg(args, "allDay"),
		GuestsCanModify:          common.BoolArg(args, "guestsCanModify"),
		GuestsCanInviteOthers:    common.BoolArg(args, "guestsCanInviteOthers"),
		GuestsCanSeeOtherGuests:  common.BoolArg(args, "guestsCanSeeOtherGuests"),
		UseDefaultConferenceData: common.BoolArg(args, "addGoogleMeet"),
	}
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	if _, err := common.RequiredStringArg(args, "summary"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := eventInputFromArgs(args)

	var err error
	if input.Start, err = common.RequiredTimeArg(args, "start"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input.End, err = common.RequiredTimeArg(args, "end"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if rule := common.StringArg(args, "recurrence", ""); rule != "" {
		input.Recurrence = []string{rule}
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.CreateEvent(ctx, common.StringArg(args, "calendarId", "primary"), input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventWriteResult("created", event)), nil
}

// formatEventWriteResult renders the confirmation shown after an event has
// been created or updated
func formatEventWriteResult(verb string, event *calendar.EventSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Successfully %s event: %s\n", verb, event.Summary)
	fmt.Fprintf(&sb, "ID: %s\n", event.ID)
	fmt.Fprintf(&sb, "Start: %s\n", event.Start.Format(time.RFC3339))
	fmt.Fprintf(&sb, "End: %s\n", event.End.Format(time.RFC3339))
	if event.MeetLink != "" {
		fmt.Fprintf(&sb, "Google Meet: %s\n", event.MeetLink)
	}
	return sb.String()
}

func handleQuickAdd(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	text, err := common.RequiredStringArg(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.QuickAdd(ctx, common.StringArg(args, "calendarId", "primary"), text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to quick-add event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventWriteResult("created", event)), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := eventInputFromArgs(args)

	if start, present, err := common.TimeArg(args, "start"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if present {
		input.Start = start
	}
	if end, present, err := common.TimeArg(args, "end"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if present {
		input.End = end
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.UpdateEvent(ctx, common.StringArg(args, "calendarId", "primary"), eventID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventWriteResult("updated", event)), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteEvent(ctx, common.StringArg(args, "calendarId", "primary"), eventID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted event %s", eventID)), nil
}

func handleRespondToEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, err := common.RequiredStringArg(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	response, err := common.RequiredStringArg(args, "response")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !slices.Contains(calendar.ValidResponseStatuses, response) {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid response %q, must be one of: %s",
			response, strings.Join(calendar.ValidResponseStatuses, ", "))), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.RespondToEvent(ctx, common.StringArg(args, "calendarId", "primary"), eventID, response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to respond to event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Responded %q to event: %s (%s)", response, event.Summary, event.ID)), nil
}
