package drive_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/drive"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// contentReader turns the content argument into a reader, decoding it
// first when the isBase64 flag is set. Returns nil when no content was
// supplied.
func contentReader(args map[string]interface{}) (io.Reader, error) {
	contentStr := common.StringArg(args, "content", "")
	if contentStr == "" {
		return nil, nil
	}
	if !common.BoolArg(args, "isBase64") {
		return strings.NewReader(contentStr), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(contentStr)
	if err != nil {
		return nil, fmt.Errorf("Failed to decode base64 content: %v", err)
	}
	return strings.NewReader(string(decoded)), nil
}

// contentResult renders downloaded or exported bytes for the MCP client,
// base64-encoding on request.
func contentResult(label string, content []byte, asBase64 bool) *mcp.CallToolResult {
	if asBase64 {
		return mcp.NewToolResultText(fmt.Sprintf("%s (base64, %d bytes):\n%s",
			label, len(content), base64.StdEncoding.EncodeToString(content)))
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (text, %d bytes):\n%s", label, len(content), string(content)))
}

// registerFileTools registers file management tools
func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if !readOnly {
		s.AddTool(mcp.NewTool("drive_upload_file",
			mcp.WithDescription("Upload a file to Google Drive"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The name of the file"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The file content (base64-encoded for binary files, or plain text)"),
			),
			mcp.WithString("mimeType",
				mcp.Description("The MIME type of the file (e.g., 'application/pdf', 'text/plain', 'image/png')"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of parent folder IDs where the file should be placed"),
			),
			mcp.WithString("description",
				mcp.Description("A short description of the file"),
			),
			mcp.WithBoolean("isBase64",
				mcp.Description("Whether the content is base64-encoded (default: false for plain text)"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_upload_file", "drive", "upload", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				name, err := common.RequiredStringArg(args, "name")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				content, err := contentReader(args)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				if content == nil {
					return mcp.NewToolResultError("content is required"), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				fileInfo, err := client.UploadFile(ctx, name, content, &drive.UploadOptions{
					MimeType:      common.StringArg(args, "mimeType", ""),
					Description:   common.StringArg(args, "description", ""),
					ParentFolders: common.ListArg(args, "parentFolders"),
				})
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to upload file: %v", err)), nil
				}

				result, _ := json.MarshalIndent(fileInfo, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("File uploaded successfully:\n%s", string(result))), nil
			}))
	}

	s.AddTool(mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files in Google Drive with optional filtering"),
		mcp.WithString("query",
			mcp.Description("Query for filtering files using Google Drive's query language (e.g., \"name contains 'report'\", \"mimeType='application/pdf'\")"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of files to return (default: 100, max: 1000)"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order (e.g., 'folder,modifiedTime desc,name')"),
		),
		mcp.WithBoolean("includeTrashed",
			mcp.Description("Include trashed files in results (default: false)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token for retrieving the next page of results"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_list_files", "drive", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			files, nextPageToken, err := client.ListFiles(ctx, &drive.ListOptions{
				Query:          common.StringArg(args, "query", ""),
				MaxResults:     common.IntArg(args, "maxResults", 100),
				OrderBy:        common.StringArg(args, "orderBy", ""),
				IncludeTrashed: common.BoolArg(args, "includeTrashed"),
				PageToken:      common.StringArg(args, "pageToken", ""),
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
			}

			result, _ := json.MarshalIndent(map[string]interface{}{
				"files":         files,
				"nextPageToken": nextPageToken,
			}, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get metadata for a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to retrieve"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_get_file", "drive", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			fileID, err := common.RequiredStringArg(request.GetArguments(), "fileId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fileInfo, err := client.GetFile(ctx, fileID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get file: %v", err)), nil
			}

			result, _ := json.MarshalIndent(fileInfo, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("drive_download_file",
		mcp.WithDescription("Download the content of a file from Google Drive. Google Workspace files (Docs, Sheets, Slides) must be exported with drive_export_file instead."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to download"),
		),
		mcp.WithBoolean("asBase64",
			mcp.Description("Return content as base64-encoded string (default: false for text)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_download_file", "drive", "download", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			fileID, err := common.RequiredStringArg(args, "fileId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			reader, err := client.DownloadFile(ctx, fileID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to download file: %v", err)), nil
			}
			defer reader.Close()

			content, err := io.ReadAll(reader)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read content: %v", err)), nil
			}

			return contentResult("File content", content, common.BoolArg(args, "asBase64")), nil
		}))

	s.AddTool(mcp.NewTool("drive_export_file",
		mcp.WithDescription("Export a Google Workspace file (Doc, Sheet, Slides) to a standard format such as PDF or plain text"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the Google Workspace file to export"),
		),
		mcp.WithString("mimeType",
			mcp.Required(),
			mcp.Description("Target MIME type (e.g., 'application/pdf', 'text/plain', 'text/csv')"),
		),
		mcp.WithBoolean("asBase64",
			mcp.Description("Return content as base64-encoded string (default: false for text formats)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"drive_export_file", "drive", "export", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			fileID, err := common.RequiredStringArg(args, "fileId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			mimeType, err := common.RequiredStringArg(args, "mimeType")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getDriveClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			reader, err := client.ExportFile(ctx, fileID, mimeType)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to export file: %v", err)), nil
			}
			defer reader.Close()

			content, err := io.ReadAll(reader)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read content: %v", err)), nil
			}

			if asBase64 := common.BoolArg(args, "asBase64"); asBase64 {
				return contentResult("Exported content", content, true), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Exported content (%s, %d bytes):\n%s", mimeType, len(content), string(content))), nil
		}))

	if !readOnly {
		s.AddTool(mcp.NewTool("drive_update_file",
			mcp.WithDescription("Update a file's metadata or replace its content in Google Drive"),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to update"),
			),
			mcp.WithString("newName",
				mcp.Description("The new name for the file (leave empty to keep current name)"),
			),
			mcp.WithString("description",
				mcp.Description("A new description for the file"),
			),
			mcp.WithString("content",
				mcp.Description("Replacement file content (base64-encoded for binary files, or plain text)"),
			),
			mcp.WithString("mimeType",
				mcp.Description("The MIME type of the replacement content"),
			),
			mcp.WithBoolean("isBase64",
				mcp.Description("Whether the content is base64-encoded (default: false)"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_update_file", "drive", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				fileID, err := common.RequiredStringArg(args, "fileId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				content, err := contentReader(args)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				options := &drive.UpdateOptions{
					NewName:     common.StringArg(args, "newName", ""),
					Description: common.StringArg(args, "description", ""),
					MimeType:    common.StringArg(args, "mimeType", ""),
					Content:     content,
				}
				if options.NewName == "" && options.Description == "" && options.Content == nil {
					return mcp.NewToolResultError("At least one of newName, description, or content must be specified"), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				fileInfo, err := client.UpdateFile(ctx, fileID, options)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to update file: %v", err)), nil
				}

				result, _ := json.MarshalIndent(fileInfo, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("File updated successfully:\n%s", string(result))), nil
			}))

		s.AddTool(mcp.NewTool("drive_copy_file",
			mcp.WithDescription("Create a copy of a file in Google Drive"),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to copy"),
			),
			mcp.WithString("newName",
				mcp.Description("The name for the copy (default: 'Copy of <name>')"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of parent folder IDs for the copy"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_copy_file", "drive", "copy", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				fileID, err := common.RequiredStringArg(args, "fileId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				fileInfo, err := client.CopyFile(ctx, fileID, &drive.CopyOptions{
					NewName:       common.StringArg(args, "newName", ""),
					ParentFolders: common.ListArg(args, "parentFolders"),
				})
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to copy file: %v", err)), nil
				}

				result, _ := json.MarshalIndent(fileInfo, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("File copied successfully:\n%s", string(result))), nil
			}))

		s.AddTool(mcp.NewTool("drive_delete_file",
			mcp.WithDescription("Permanently delete a file from Google Drive"),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to delete"),
			),
		), common.InstrumentedToolHandlerWithService(
			"drive_delete_file", "drive", "delete", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				fileID, err := common.RequiredStringArg(request.GetArguments(), "fileId")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				client, err := getDriveClient(sc)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteFile(ctx, fileID); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete file: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("File %s deleted successfully", fileID)), nil
			}))
	}

	return nil
}
