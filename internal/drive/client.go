package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	// DocumentMimeType is the MIME type for Google Docs documents
	DocumentMimeType = "application/vnd.google-apps.document"

	// googleAppsMimePrefix marks Google-native files that have no binary
	// content and must be exported instead of downloaded
	googleAppsMimePrefix = "application/vnd.google-apps"
)

// Field selections requested from the API. Asking for exactly what the
// converters read keeps responses small on large listings.
const (
	fileFields     = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed"
	fileInfoFields = fileFields + ", trashedTime"
	permFields     = "id, type, role, emailAddress, domain, displayName"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
}

// NewClient creates a new Google Drive client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: svc}, nil
}

// UploadFile uploads a file to Google Drive
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, options *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{Name: name}
	if options != nil {
		file.Parents = options.ParentFolders
		file.Description = options.Description
		file.MimeType = options.MimeType
		if options.ModifiedTime != nil {
			file.ModifiedTime = options.ModifiedTime.Format(time.RFC3339)
		}
	}

	created, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(file.MimeType)).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return convertToFileInfo(created), nil
}

// ListFiles lists files in Google Drive with optional filtering
func (c *Client) ListFiles(ctx context.Context, options *ListOptions) ([]*FileInfo, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Fields(googleapi.Field("nextPageToken, files(" + fileInfoFields + ")"))

	var userQuery string
	var includeTrashed bool
	if options != nil {
		userQuery = options.Query
		includeTrashed = options.IncludeTrashed

		if options.MaxResults > 0 {
			call = call.PageSize(int64(options.MaxResults))
		}
		if options.OrderBy != "" {
			call = call.OrderBy(options.OrderBy)
		}
		if options.PageToken != "" {
			call = call.PageToken(options.PageToken)
		}
		if options.Spaces != "" {
			call = call.Spaces(options.Spaces)
		}
	}

	if query := buildListFilesQuery(userQuery, includeTrashed); query != "" {
		call = call.Q(query)
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(fileList.Files))
	for i, f := range fileList.Files {
		files[i] = convertToFileInfo(f)
	}

	return files, fileList.NextPageToken, nil
}

// buildListFilesQuery combines the user query with the trashed filter.
// The user query is parenthesized so its operator precedence survives the
// appended condition.
func buildListFilesQuery(userQuery string, includeTrashed bool) string {
	if includeTrashed {
		return userQuery
	}
	if userQuery == "" {
		return "trashed=false"
	}
	return fmt.Sprintf("(%s) and trashed=false", userQuery)
}

// GetFile retrieves metadata for a specific file
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return convertToFileInfo(file), nil
}

// DownloadFile downloads the content of a file.
// Google-native files (Docs, Sheets, Slides) carry no binary content and
// are rejected with a hint to use ExportFile instead.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	meta, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("mimeType").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	if strings.HasPrefix(meta.MimeType, googleAppsMimePrefix) {
		return nil, fmt.Errorf("file %s is a Google Workspace document (%s) with no downloadable content; use drive_export_file to convert it to a concrete format", fileID, meta.MimeType)
	}

	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}

	return resp.Body, nil
}

// ExportFile exports a Google-native file to the requested MIME type
func (c *Client) ExportFile(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if mimeType == "" {
		return nil, fmt.Errorf("mimeType is required")
	}

	resp, err := c.service.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export file %s as %s: %w", fileID, mimeType, err)
	}

	return resp.Body, nil
}

// UpdateFile updates file metadata and optionally replaces its content
func (c *Client) UpdateFile(ctx context.Context, fileID string, options *UpdateOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("update options are required")
	}

	update := &drive.File{
		Name:        options.NewName,
		Description: options.Description,
		MimeType:    options.MimeType,
	}

	call := c.service.Files.Update(fileID, update).
		Context(ctx).
		Fields(fileFields)
	if options.Content != nil {
		call = call.Media(options.Content, googleapi.ContentType(options.MimeType))
	}

	updated, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update file %s: %w", fileID, err)
	}

	return convertToFileInfo(updated), nil
}

// CopyFile creates a copy of a file, optionally renaming it or placing the
// copy in different parent folders
func (c *Client) CopyFile(ctx context.Context, fileID string, options *CopyOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file := &drive.File{}
	if options != nil {
		file.Name = options.NewName
		file.Parents = options.ParentFolders
	}

	copied, err := c.service.Files.Copy(fileID, file).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}

	return convertToFileInfo(copied), nil
}

// DeleteFile deletes a file from Google Drive
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}

	return nil
}

// CreateFolder creates a new folder in Google Drive
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	folder := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parentFolders,
	}

	created, err := c.service.Files.Create(folder).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return convertToFileInfo(created), nil
}

// MoveFile moves or renames a file. When new parents are given without
// explicit parents to remove, the file's current parents are fetched and
// removed, so the update is a move rather than a multi-parent add (which the
// Drive API no longer allows).
func (c *Client) MoveFile(ctx context.Context, fileID string, options *MoveOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("move options are required")
	}

	removeParents := options.RemoveParents
	if len(options.AddParents) > 0 && len(removeParents) == 0 {
		current, err := c.service.Files.Get(fileID).
			Context(ctx).
			Fields("parents").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get current parents of file %s: %w", fileID, err)
		}
		removeParents = current.Parents
	}

	call := c.service.Files.Update(fileID, &drive.File{Name: options.NewName}).
		Context(ctx).
		Fields(fileFields)
	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(removeParents) > 0 {
		call = call.RemoveParents(strings.Join(removeParents, ","))
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file: %w", err)
	}

	return convertToFileInfo(moved), nil
}

// ShareFile creates a permission on a file to share it
func (c *Client) ShareFile(ctx context.Context, fileID string, options *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	permission := &drive.Permission{
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
		Domain:       options.Domain,
	}

	call := c.service.Permissions.Create(fileID, permission).
		Context(ctx).
		Fields(permFields)
	if options.SendNotificationEmail {
		call = call.SendNotificationEmail(true)
		if options.EmailMessage != "" {
			call = call.EmailMessage(options.EmailMessage)
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file: %w", err)
	}

	return convertToPermission(created), nil
}

// RemovePermission removes a permission from a file
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}

	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove permission: %w", err)
	}

	return nil
}

// ListPermissions lists all permissions for a file
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields(googleapi.Field("permissions(" + permFields + ")")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	permissions := make([]*Permission, len(permList.Permissions))
	for i, p := range permList.Permissions {
		permissions[i] = convertToPermission(p)
	}

	return permissions, nil
}

// convertToFileInfo flattens a Drive API file into the shape the tool
// layer formats.
func convertToFileInfo(f *drive.File) *FileInfo {
	info := &FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
		CreatedTime:    parseRFC3339(f.CreatedTime),
		ModifiedTime:   parseRFC3339(f.ModifiedTime),
	}

	if f.TrashedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.TrashedTime); err == nil {
			info.TrashedTime = &t
		}
	}

	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
			PhotoLink:    owner.PhotoLink,
		})
	}
	for _, perm := range f.Permissions {
		info.Permissions = append(info.Permissions, *convertToPermission(perm))
	}

	return info
}

// parseRFC3339 parses an API timestamp, tolerating absent or malformed
// values as the zero time.
func parseRFC3339(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}
