package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

// getCalendarClient returns the cached Calendar client, mapping a missing
// token to the authorization walkthrough so agents can recover on their own.
func getCalendarClient(sc *server.ServerContext) (*calendar.Client, error) {
	client, err := sc.CalendarClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}
	return client, nil
}

// RegisterCalendarTools wires up the event, calendar list, and scheduling
// tool groups.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}
	if err := RegisterSchedulingTools(s, sc); err != nil {
		return fmt.Errorf("failed to register scheduling tools: %w", err)
	}
	return nil
}
