package slides

import (
	"fmt"
	"strings"

	slides "google.golang.org/api/slides/v1"
)

// PresentationInfo represents a Google Slides presentation with its slides
type PresentationInfo struct {
	ID         string
	Title      string
	URL        string
	RevisionID string
	Slides     []SlideInfo
}

// SlideInfo represents a single slide within a presentation
type SlideInfo struct {
	ID    string
	Index int
}

// SlideDetail represents a slide with its page elements resolved
type SlideDetail struct {
	ID       string
	Elements []ElementInfo
}

// ElementInfo represents a page element on a slide. Text is only set for
// shapes that contain text (title placeholders, text boxes).
type ElementInfo struct {
	ID   string
	Type string
	Text string
}

// presentationURL builds the canonical editor URL for a presentation
func presentationURL(presentationID string) string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit", presentationID)
}

// toPresentationInfo converts a Slides API presentation to our PresentationInfo type
func toPresentationInfo(p *slides.Presentation) PresentationInfo {
	if p == nil {
		return PresentationInfo{}
	}

	result := PresentationInfo{
		ID:         p.PresentationId,
		Title:      p.Title,
		URL:        presentationURL(p.PresentationId),
		RevisionID: p.RevisionId,
	}

	for i, page := range p.Slides {
		result.Slides = append(result.Slides, SlideInfo{
			ID:    page.ObjectId,
			Index: i,
		})
	}

	return result
}

// toSlideDetail converts a Slides API page to our SlideDetail type
func toSlideDetail(page *slides.Page) SlideDetail {
	if page == nil {
		return SlideDetail{}
	}

	result := SlideDetail{
		ID: page.ObjectId,
	}

	for _, element := range page.PageElements {
		info := ElementInfo{
			ID: element.ObjectId,
		}

		switch {
		case element.Shape != nil:
			info.Type = element.Shape.ShapeType
			info.Text = extractShapeText(element.Shape)
		case element.Image != nil:
			info.Type = "IMAGE"
		case element.Table != nil:
			info.Type = "TABLE"
		case element.Video != nil:
			info.Type = "VIDEO"
		case element.Line != nil:
			info.Type = "LINE"
		default:
			info.Type = "UNKNOWN"
		}

		result.Elements = append(result.Elements, info)
	}

	return result
}

// extractShapeText concatenates the text runs of a shape
func extractShapeText(shape *slides.Shape) string {
	if shape == nil || shape.Text == nil {
		return ""
	}

	var sb strings.Builder
	for _, element := range shape.Text.TextElements {
		if element.TextRun != nil {
			sb.WriteString(element.TextRun.Content)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
