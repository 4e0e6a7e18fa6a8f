package drive_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/drive"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

// getDriveClient retrieves the shared Drive client, turning a missing
// token into the authorization instructions
func getDriveClient(sc *server.ServerContext) (*drive.Client, error) {
	client, err := sc.DriveClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	return client, nil
}

// RegisterDriveTools wires up the file, folder, and sharing tool groups.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerFileTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register file tools: %w", err)
	}
	if err := registerFolderTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register folder tools: %w", err)
	}
	if err := registerShareTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register share tools: %w", err)
	}
	return nil
}
