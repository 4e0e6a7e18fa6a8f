package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/drive"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// Permission types and roles the Drive API accepts.
var (
	validShareTypes = []string{"user", "group", "domain", "anyone"}
	validShareRoles = []string{"reader", "commenter", "writer", "fileOrganizer", "organizer", "owner"}
)

// shareOptionsFromArgs validates the grant arguments of drive_share_file.
// The returned message is non-empty when validation fails.
func shareOptionsFromArgs(args map[string]interface{}) (*drive.ShareOptions, string) {
	shareType, err := common.RequiredStringArg(args, "type")
	if err != nil {
		return nil, err.Error()
	}
	if !slices.Contains(validShareTypes, shareType) {
		return nil, fmt.Sprintf("Invalid type %q, must be one of: user, group, domain, anyone", shareType)
	}

	role, err := common.RequiredStringArg(args, "role")
	if err != nil {
		return nil, err.Error()
	}
	if !slices.Contains(validShareRoles, role) {
		return nil, fmt.Sprintf("Invalid role %q, must be one of: reader, commenter, writer, fileOrganizer, organizer, owner", role)
	}

	options := &drive.ShareOptions{
		Type:                  shareType,
		Role:                  role,
		EmailAddress:          common.StringArg(args, "emailAddress", ""),
		Domain:                common.StringArg(args, "domain", ""),
		SendNotificationEmail: common.BoolArg(args, "sendNotificationEmail"),
		EmailMessage:          common.StringArg(args, "emailMessage", ""),
	}

	if (shareType == "user" || shareType == "group") && options.EmailAddress == "" {
		return nil, fmt.Sprintf("emailAddress is required for type %q", shareType)
	}
	if shareType == "domain" && options.Domain == "" {
		return nil, "domain is required for type \"domain\""
	}

	return options, ""
}

// registerShareTools registers permission management tools
func registerShareTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if !readOnly {
		s.AddTool(mcp.NewTool("drive_share_file",
			mcp.WithDescription("Share a file or folder in Google Drive by granting a permission"),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file or folder to share"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("The grantee type: 'user', 'group', 'domain', or 'anyone'"),
			),
			mcp.WithString("role",
				mcp.Required(),
				mcp.Description("The role to grant: 'reader', 'commenter', 'writer', 'fileOrganizer', 'organizer', or 'owner'"),
			),
			mcp.WithString("emailAddress",
				mcp.Description("Email address of the user or group (required for type 'user' or 'group')"),
			),
			mcp.WithString("domain",
				mcp.Description("Domain name (required for type 'domain')"),
			),
			mcp.WithBoolean("sendNotificationEmail",
				mcp.Description("Whether to send a notification email to the grantee (default: false)"),
			),
			mcp.WithString("emailMessage",
				mcp.Description("Custom message to include in the notification email"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_share_file", "drive", "share", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				fileID, err := common.RequiredStringArg(args, "fileId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				options, msg := shareOptionsFromArgs(args)
				if msg != "" {
					return mcp.NewToolResultError(msg), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				permission, err := client.ShareFile(ctx, fileID, options)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to share file: %v", err)), nil
				}

				result, _ := json.MarshalIndent(permission, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("File shared successfully:\n%s", string(result))), nil
			}))

		s.AddTool(mcp.NewTool("drive_remove_permission",
			mcp.WithDescription("Remove a permission from a file or folder in Google Drive"),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file or folder"),
			),
			mcp.WithString("permissionId",
				mcp.Required(),
				mcp.Description("The ID of the permission to remove (use drive_list_permissions to find it)"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_remove_permission", "drive", "unshare", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				fileID, err := common.RequiredStringArg(args, "fileId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				permissionID, err := common.RequiredStringArg(args, "permissionId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.RemovePermission(ctx, fileID, permissionID); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to remove permission: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Permission %s removed from file %s", permissionID, fileID)), nil
			}))
	}

	s.AddTool(mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List all permissions on a file or folder in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file or folder"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_list_permissions", "drive", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			fileID, err := common.RequiredStringArg(request.GetArguments(), "fileId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			permissions, err := client.ListPermissions(ctx, fileID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list permissions: %v", err)), nil
			}

			result, _ := json.MarshalIndent(permissions, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	return nil
}
