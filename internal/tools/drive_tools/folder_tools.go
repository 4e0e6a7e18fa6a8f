package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/drive"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// registerFolderTools registers folder management tools. Both are write
// operations, so read-only mode registers nothing.
func registerFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a new folder in Google Drive"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the folder"),
		),
		mcp.WithString("parentFolders",
			mcp.Description("Comma-separated list of parent folder IDs (default: root of My Drive)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_create_folder", "drive", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			name, err := common.RequiredStringArg(args, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			folderInfo, err := client.CreateFolder(ctx, name, common.ListArg(args, "parentFolders"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
			}

			result, _ := json.MarshalIndent(folderInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move a file between folders in Google Drive, optionally renaming it"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to move"),
		),
		mcp.WithString("addParents",
			mcp.Description("Comma-separated list of destination folder IDs. Current parents are removed automatically unless removeParents is given."),
		),
		mcp.WithString("removeParents",
			mcp.Description("Comma-separated list of folder IDs to remove as parents"),
		),
		mcp.WithString("newName",
			mcp.Description("A new name for the file (leave empty to keep current name)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_move_file", "drive", "move", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			fileID, err := common.RequiredStringArg(args, "fileId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			options := &drive.MoveOptions{
				AddParents:    common.ListArg(args, "addParents"),
				RemoveParents: common.ListArg(args, "removeParents"),
				NewName:       common.StringArg(args, "newName", ""),
			}
			if len(options.AddParents) == 0 && len(options.RemoveParents) == 0 && options.NewName == "" {
				return mcp.NewToolResultError("At least one of addParents, removeParents, or newName must be specified"), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fileInfo, err := client.MoveFile(ctx, fileID, options)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to move file: %v", err)), nil
			}

			result, _ := json.MarshalIndent(fileInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("File moved successfully:\n%s", string(result))), nil
		}))

	return nil
}
