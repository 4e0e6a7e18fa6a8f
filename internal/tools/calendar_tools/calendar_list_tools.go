package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// RegisterCalendarListTools registers calendar list tools with the MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddTool(
		mcp.NewTool("calendar_list_calendars",
			mcp.WithDescription("List all calendars accessible to the user"),
		),
		common.InstrumentedToolHandlerWithService("calendar_list_calendars", "calendar", "list", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListCalendars(ctx, request, sc)
			}))

	s.AddTool(
		mcp.NewTool("calendar_get_calendar",
			mcp.WithDescription("Get information about a specific calendar"),
			mcp.WithString("calendarId",
				mcp.Required(),
				mcp.Description("Calendar ID (use 'primary' for primary calendar)"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_get_calendar", "calendar", "get", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetCalendar(ctx, request, sc)
			}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
	}

	return mcp.NewToolResultText(formatCalendarList(calendars)), nil
}

func handleGetCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredStringArg(request.GetArguments(), "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cal, err := client.GetCalendar(ctx, calendarID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get calendar: %v", err)), nil
	}

	return mcp.NewToolResultText(formatCalendarDetails(cal)), nil
}

// formatCalendarList renders calendars as a numbered summary, one per entry
func formatCalendarList(calendars []calendar.CalendarInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d calendar(s):\n\n", len(calendars))
	for i, cal := range calendars {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, cal.Summary)
		fmt.Fprintf(&sb, "   ID: %s\n", cal.ID)
		fmt.Fprintf(&sb, "   Access Role: %s\n", cal.AccessRole)
		if cal.Primary {
			sb.WriteString("   [PRIMARY]\n")
		}
		if cal.Description != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", cal.Description)
		}
		if cal.TimeZone != "" {
			fmt.Fprintf(&sb, "   Time Zone: %s\n", cal.TimeZone)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatCalendarDetails renders the full view of a single calendar
func formatCalendarDetails(cal *calendar.CalendarInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Calendar: %s\n", cal.Summary)
	fmt.Fprintf(&sb, "ID: %s\n", cal.ID)
	fmt.Fprintf(&sb, "Access Role: %s\n", cal.AccessRole)
	if cal.Primary {
		sb.WriteString("Type: PRIMARY\n")
	}
	if cal.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", cal.Description)
	}
	if cal.TimeZone != "" {
		fmt.Fprintf(&sb, "Time Zone: %s\n", cal.TimeZone)
	}
	return sb.String()
}
