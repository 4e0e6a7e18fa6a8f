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

// RegisterSchedulingTools registers scheduling and availability tools with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddTool(
		mcp.NewTool("calendar_check_availability",
			mcp.WithDescription("Check availability for one or more calendars/attendees in a time range"),
			mcp.WithString("timeMin",
				mcp.Required(),
				mcp.Description("Start time for the range (RFC3339 format, e.g., '2025-01-01T00:00:00Z')"),
			),
			mcp.WithString("timeMax",
				mcp.Required(),
				mcp.Description("End time for the range (RFC3339 format, e.g., '2025-01-31T23:59:59Z')"),
			),
			mcp.WithString("calendars",
				mcp.Required(),
				mcp.Description("Comma-separated list of calendar IDs or email addresses to check"),
			),
		),
		common.InstrumentedToolHandlerWithService("calendar_check_availability", "calendar", "list", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCheckAvailability(ctx, request, sc)
			}))

	return nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	timeMin, err := common.RequiredTimeArg(args, "timeMin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeMax, err := common.RequiredTimeArg(args, "timeMax")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendars := common.ListArg(args, "calendars")
	if len(calendars) == 0 {
		return mcp.NewToolResultError("calendars is required"), nil
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	freeBusyInfos, err := client.QueryFreeBusy(ctx, timeMin, timeMax, calendars)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query free/busy: %v", err)), nil
	}

	return mcp.NewToolResultText(formatFreeBusy(freeBusyInfos)), nil
}

// formatFreeBusy renders the busy intervals (or FREE status) per queried calendar
func formatFreeBusy(infos []calendar.FreeBusyInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Free/Busy information for %d calendar(s):\n\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&sb, "Calendar: %s\n", info.Calendar)

		if len(info.Errors) > 0 {
			fmt.Fprintf(&sb, "  Errors: %s\n", strings.Join(info.Errors, ", "))
		}

		if len(info.Busy) == 0 {
			sb.WriteString("  Status: FREE for entire range\n")
		} else {
			fmt.Fprintf(&sb, "  Busy periods: %d\n", len(info.Busy))
			for i, busy := range info.Busy {
				fmt.Fprintf(&sb, "  %d. %s to %s\n", i+1,
					busy.Start.Format("2006-01-02 15:04"),
					busy.End.Format("2006-01-02 15:04"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
