package drive

import (
	"io"
	"time"
)

// FileInfo is the flattened metadata returned for a Drive file or folder.
// Zero timestamps mean the API did not report a value.
type FileInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`

	// Size in bytes; folders and Google-native files report zero.
	Size int64 `json:"size,omitempty"`

	CreatedTime  time.Time `json:"createdTime"`
	ModifiedTime time.Time `json:"modifiedTime"`

	// WebViewLink opens the file in the relevant Google editor or viewer.
	WebViewLink string `json:"webViewLink,omitempty"`

	// WebContentLink downloads the raw content; absent for folders.
	WebContentLink string `json:"webContentLink,omitempty"`

	Parents []string `json:"parents,omitempty"`
	Owners  []User   `json:"owners,omitempty"`
	Shared  bool     `json:"shared"`

	Permissions []Permission `json:"permissions,omitempty"`

	// TrashedTime is set only when the file is in the trash.
	TrashedTime *time.Time `json:"trashedTime,omitempty"`
	Trashed     bool       `json:"trashed"`
}

// User identifies a Drive principal such as an owner.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	PhotoLink    string `json:"photoLink,omitempty"`
}

// Permission is a single access grant on a file.
type Permission struct {
	ID string `json:"id"`

	// Type of grantee: user, group, domain, or anyone.
	Type string `json:"type"`

	// Role granted: owner, organizer, fileOrganizer, writer, commenter,
	// or reader.
	Role string `json:"role"`

	// EmailAddress is set for user and group grants.
	EmailAddress string `json:"emailAddress,omitempty"`

	// Domain is set for domain grants.
	Domain string `json:"domain,omitempty"`

	DisplayName string `json:"displayName,omitempty"`
}

// ListOptions filters and pages a file listing.
type ListOptions struct {
	// Query in Drive's query language, e.g. "name contains 'report'",
	// "mimeType='application/pdf'", "'me' in owners".
	// See https://developers.google.com/drive/api/guides/search-files
	Query string

	// MaxResults caps the page size (API maximum 1000).
	MaxResults int

	// OrderBy sorts the results, e.g. "folder,modifiedTime desc,name".
	OrderBy string

	// PageToken resumes a previous listing.
	PageToken string

	// IncludeTrashed keeps trashed files in the results.
	IncludeTrashed bool

	// Spaces is a comma-separated list of drive, appDataFolder, photos.
	Spaces string
}

// UploadOptions control where and how a new file is created.
type UploadOptions struct {
	ParentFolders []string
	Description   string

	// MimeType of the content; Drive detects it when empty.
	MimeType string

	// ModifiedTime overrides the server-assigned modification time.
	ModifiedTime *time.Time
}

// MoveOptions control a move or rename. An empty NewName keeps the
// current name.
type MoveOptions struct {
	NewName       string
	AddParents    []string
	RemoveParents []string
}

// CopyOptions control a copy. An empty NewName yields "Copy of <name>".
type CopyOptions struct {
	NewName       string
	ParentFolders []string
}

// UpdateOptions control a metadata update. Content, when non-nil,
// replaces the file body.
type UpdateOptions struct {
	NewName     string
	Description string

	// MimeType of the replacement content.
	MimeType string

	Content io.Reader
}

// ShareOptions describe a permission grant to create.
type ShareOptions struct {
	// Type of grantee: "user", "group", "domain", or "anyone".
	Type string

	// Role to grant: "owner", "organizer", "fileOrganizer", "writer",
	// "commenter", or "reader".
	Role string

	// EmailAddress is required for user and group grants.
	EmailAddress string

	// Domain is required for domain grants.
	Domain string

	SendNotificationEmail bool

	// EmailMessage is included in the notification email when set.
	EmailMessage string
}
