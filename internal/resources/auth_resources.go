package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/server"
)

// authStatusURI identifies the credential state resource.
const authStatusURI = "workspace://auth/status"

// RegisterAuthResources registers resources describing the credential state.
// Reads are served from the local token cache and never hit Google.
func RegisterAuthResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	authStatusResource := mcp.NewResource(
		authStatusURI,
		"Google Workspace Authentication Status",
		mcp.WithResourceDescription("Credential state for the shared Google Workspace OAuth token"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(authStatusResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAuthStatus(ctx, request, sc)
	})

	return nil
}

// handleAuthStatus returns the credential state as a JSON document
func handleAuthStatus(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	status := sc.Authenticator().Status()

	statusData := map[string]interface{}{
		"tokenPath":       status.TokenPath,
		"hasCredentials":  status.HasCredentials,
		"hasRefreshToken": status.HasRefreshToken,
	}

	if status.HasCredentials {
		statusData["authenticated"] = true
		if !status.Expiry.IsZero() {
			statusData["expiry"] = status.Expiry.Format(time.RFC3339)
			statusData["expired"] = time.Now().After(status.Expiry)
		}
	} else {
		statusData["authenticated"] = false
		statusData["hint"] = "Use the google_get_auth_url tool to begin authorization."
	}

	jsonData, err := json.MarshalIndent(statusData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth status: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
