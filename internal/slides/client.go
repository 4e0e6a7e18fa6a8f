package slides

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// ValidLayouts are the predefined slide layouts accepted by AddSlide.
var ValidLayouts = []string{
	"BLANK",
	"CAPTION_ONLY",
	"TITLE",
	"TITLE_AND_BODY",
	"TITLE_AND_TWO_COLUMNS",
	"TITLE_ONLY",
	"SECTION_HEADER",
	"SECTION_TITLE_AND_DESCRIPTION",
	"ONE_COLUMN_TEXT",
	"MAIN_POINT",
	"BIG_NUMBER",
}

// Client wraps the Google Slides service
type Client struct {
	svc *slides.Service
}

// NewClient creates a new Slides client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := slides.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}

	return &Client{
		svc: svc,
	}, nil
}

// CreatePresentation creates a new presentation with the given title.
// The API creates an initial title slide automatically.
func (c *Client) CreatePresentation(ctx context.Context, title string) (*PresentationInfo, error) {
	created, err := c.svc.Presentations.Create(&slides.Presentation{
		Title: title,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	info := toPresentationInfo(created)
	return &info, nil
}

// GetPresentation retrieves presentation metadata and its slide list
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*PresentationInfo, error) {
	p, err := c.svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}

	info := toPresentationInfo(p)
	return &info, nil
}

// GetSlide retrieves a single slide with its page elements and their text
func (c *Client) GetSlide(ctx context.Context, presentationID, slideID string) (*SlideDetail, error) {
	page, err := c.svc.Presentations.Pages.Get(presentationID, slideID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}

	detail := toSlideDetail(page)
	return &detail, nil
}

// AddSlide appends a new slide using a predefined layout. An empty layout
// defaults to BLANK. Returns the object ID of the created slide.
func (c *Client) AddSlide(ctx context.Context, presentationID, layout string) (string, error) {
	if layout == "" {
		layout = "BLANK"
	}
	if !isValidLayout(layout) {
		return "", fmt.Errorf("invalid layout %q, must be one of: %v", layout, ValidLayouts)
	}

	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				CreateSlide: &slides.CreateSlideRequest{
					SlideLayoutReference: &slides.LayoutReference{
						PredefinedLayout: layout,
					},
				},
			},
		},
	}

	resp, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to add slide: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].CreateSlide == nil {
		return "", fmt.Errorf("add slide returned no object ID")
	}

	return resp.Replies[0].CreateSlide.ObjectId, nil
}

// AddTextBox places a text box on a slide and fills it with text.
// Position and size are in points; zero width and height fall back to a
// 300x50pt box. Returns the object ID of the created shape.
func (c *Client) AddTextBox(ctx context.Context, presentationID, slideID, text string, x, y, width, height float64) (string, error) {
	if width <= 0 {
		width = 300
	}
	if height <= 0 {
		height = 50
	}

	// Object IDs must be unique within the presentation
	objectID := fmt.Sprintf("textbox-%d", time.Now().UnixNano())

	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				CreateShape: &slides.CreateShapeRequest{
					ObjectId:  objectID,
					ShapeType: "TEXT_BOX",
					ElementProperties: &slides.PageElementProperties{
						PageObjectId: slideID,
						Size: &slides.Size{
							Width:  &slides.Dimension{Magnitude: width, Unit: "PT"},
							Height: &slides.Dimension{Magnitude: height, Unit: "PT"},
						},
						Transform: &slides.AffineTransform{
							ScaleX:     1,
							ScaleY:     1,
							TranslateX: x,
							TranslateY: y,
							Unit:       "PT",
						},
					},
				},
			},
			{
				InsertText: &slides.InsertTextRequest{
					ObjectId:       objectID,
					Text:           text,
					InsertionIndex: 0,
				},
			},
		},
	}

	_, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to add text box: %w", err)
	}

	return objectID, nil
}

// ReplaceText replaces all occurrences of a string across the whole
// presentation. Returns the number of occurrences changed.
func (c *Client) ReplaceText(ctx context.Context, presentationID, findText, replaceText string, matchCase bool) (int64, error) {
	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				ReplaceAllText: &slides.ReplaceAllTextRequest{
					ContainsText: &slides.SubstringMatchCriteria{
						Text:      findText,
						MatchCase: matchCase,
					},
					ReplaceText: replaceText,
				},
			},
		},
	}

	resp, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to replace text: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].ReplaceAllText == nil {
		return 0, nil
	}

	return resp.Replies[0].ReplaceAllText.OccurrencesChanged, nil
}

// DeleteSlide removes a slide from a presentation by its object ID
func (c *Client) DeleteSlide(ctx context.Context, presentationID, slideID string) error {
	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				DeleteObject: &slides.DeleteObjectRequest{
					ObjectId: slideID,
				},
			},
		},
	}

	_, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete slide: %w", err)
	}

	return nil
}

func isValidLayout(layout string) bool {
	for _, valid := range ValidLayouts {
		if layout == valid {
			return true
		}
	}
	return false
}
