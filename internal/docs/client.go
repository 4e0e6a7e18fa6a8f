package docs

import (
	"context"
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// documentMimeType identifies Google Docs files in Drive queries
const documentMimeType = "application/vnd.google-apps.document"

// Client wraps the Google Docs API service. A Drive service rides along for
// listing documents, which the Docs API itself cannot do.
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service
}

// NewClient creates a new Google Docs client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		docsService:  docsService,
		driveService: driveService,
	}, nil
}

// CreateDocument creates a new Google Doc with the given title.
// When content is non-empty it is inserted as the document body in a
// follow-up batch update, since the create call only accepts a title.
func (c *Client) CreateDocument(ctx context.Context, title, content string) (*docs.Document, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	doc, err := c.docsService.Documents.Create(&docs.Document{Title: title}).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if content != "" {
		_, err = c.docsService.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
			Requests: []*docs.Request{
				{
					InsertText: &docs.InsertTextRequest{
						Text: content,
						Location: &docs.Location{
							Index: 1,
						},
					},
				},
			},
		}).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to insert initial content into document %s: %w", doc.DocumentId, err)
		}
	}

	return doc, nil
}

// GetDocument retrieves a Google Doc's content by document ID
// This method automatically fetches all tabs to support documents with multiple tabs (introduced Oct 2024)
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	// Use includeTabsContent=true to fetch all tabs in documents that have them
	// This returns document.tabs populated for multi-tab docs, or document.body for legacy docs
	doc, err := c.docsService.Documents.Get(documentID).
		Context(ctx).
		IncludeTabsContent(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	return doc, nil
}

// GetDocumentAsMarkdown converts a Google Doc to Markdown format
func (c *Client) GetDocumentAsMarkdown(ctx context.Context, documentID string) (string, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	return DocumentToMarkdown(doc)
}

// GetDocumentAsPlainText extracts plain text from a Google Doc
func (c *Client) GetDocumentAsPlainText(ctx context.Context, documentID string) (string, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	return DocumentToPlainText(doc)
}

// AppendText appends text to the end of a document.
// The end-of-segment location spares us from fetching the document to learn
// its final index.
func (c *Client) AppendText(ctx context.Context, documentID, text string) error {
	if documentID == "" {
		return fmt.Errorf("documentID is required")
	}
	if text == "" {
		return fmt.Errorf("text is required")
	}

	_, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Text:                 text,
					EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append text to document %s: %w", documentID, err)
	}

	return nil
}

// InsertText inserts text at a specific index in the document body.
// Index 1 is the start of the body; index 0 is reserved by the API for the
// section break and is rejected.
func (c *Client) InsertText(ctx context.Context, documentID, text string, index int64) error {
	if documentID == "" {
		return fmt.Errorf("documentID is required")
	}
	if text == "" {
		return fmt.Errorf("text is required")
	}
	if index < 1 {
		return fmt.Errorf("index must be at least 1")
	}

	_, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Text: text,
					Location: &docs.Location{
						Index: index,
					},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to insert text into document %s: %w", documentID, err)
	}

	return nil
}

// ReplaceText replaces every occurrence of a string in the document and
// returns the number of occurrences changed
func (c *Client) ReplaceText(ctx context.Context, documentID, findText, replaceText string, matchCase bool) (int64, error) {
	if documentID == "" {
		return 0, fmt.Errorf("documentID is required")
	}
	if findText == "" {
		return 0, fmt.Errorf("findText is required")
	}

	resp, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				ReplaceAllText: &docs.ReplaceAllTextRequest{
					ContainsText: &docs.SubstringMatchCriteria{
						Text:      findText,
						MatchCase: matchCase,
					},
					ReplaceText: replaceText,
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to replace text in document %s: %w", documentID, err)
	}

	var occurrences int64
	for _, reply := range resp.Replies {
		if reply.ReplaceAllText != nil {
			occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}

	return occurrences, nil
}

// ListDocuments lists Google Docs files via a Drive query scoped to the
// Docs MIME type, optionally filtered by name
func (c *Client) ListDocuments(ctx context.Context, nameFilter string, maxResults int) ([]*DocumentMetadata, error) {
	query := fmt.Sprintf("mimeType='%s' and trashed=false", documentMimeType)
	if nameFilter != "" {
		escaped := strings.ReplaceAll(nameFilter, `'`, `\'`)
		query = fmt.Sprintf("name contains '%s' and %s", escaped, query)
	}

	call := c.driveService.Files.List().
		Context(ctx).
		Q(query).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, mimeType, createdTime, modifiedTime, size, webViewLink, owners)")

	if maxResults > 0 {
		call = call.PageSize(int64(maxResults))
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	documents := make([]*DocumentMetadata, len(fileList.Files))
	for i, file := range fileList.Files {
		documents[i] = convertToDocumentMetadata(file)
	}

	return documents, nil
}

// convertToDocumentMetadata converts a Drive API File to our DocumentMetadata type
func convertToDocumentMetadata(file *drive.File) *DocumentMetadata {
	metadata := &DocumentMetadata{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Size:         file.Size,
		WebViewLink:  file.WebViewLink,
	}

	for _, owner := range file.Owners {
		metadata.Owners = append(metadata.Owners, Owner{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	return metadata
}
