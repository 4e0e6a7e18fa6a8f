package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// Glyph types that number their items. Anything else in the list metadata
// renders as a dash bullet.
var orderedGlyphs = map[string]bool{
	"DECIMAL":      true,
	"ZERO_DECIMAL": true,
	"ALPHA":        true,
	"UPPER_ALPHA":  true,
	"ROMAN":        true,
	"UPPER_ROMAN":  true,
}

// DocumentToMarkdown renders a Google Doc as Markdown. Tabbed documents
// flatten to one heading per tab; legacy single-body documents render as one
// section under the title.
func DocumentToMarkdown(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	w := &markdownWriter{
		lists:   doc.Lists,
		objects: doc.InlineObjects,
		ordinal: make(map[string]int64),
	}
	if doc.Title != "" {
		fmt.Fprintf(&w.buf, "# %s\n\n", doc.Title)
	}

	if len(doc.Tabs) > 0 {
		w.tabs(doc.Tabs, 2)
	} else if doc.Body != nil {
		w.body(doc.Body.Content)
	}
	w.closeList()

	return w.buf.String(), nil
}

// markdownWriter walks the document tree and accumulates Markdown. It carries
// the document-level metadata needed to resolve list glyphs and inline
// images, which structural elements reference only by ID.
type markdownWriter struct {
	buf     strings.Builder
	lists   map[string]docs.List
	objects map[string]docs.InlineObject
	ordinal map[string]int64
	inList  bool
}

func (w *markdownWriter) tabs(tabs []*docs.Tab, level int) {
	if level > 6 {
		level = 6
	}
	for i, tab := range tabs {
		w.closeList()
		title := fmt.Sprintf("Tab %d", i+1)
		if tab.TabProperties != nil && tab.TabProperties.Title != "" {
			title = tab.TabProperties.Title
		}
		fmt.Fprintf(&w.buf, "%s %s\n\n", strings.Repeat("#", level), title)

		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			w.body(tab.DocumentTab.Body.Content)
		}
		if len(tab.ChildTabs) > 0 {
			w.tabs(tab.ChildTabs, level+1)
		}
	}
}

func (w *markdownWriter) body(content []*docs.StructuralElement) {
	for _, el := range content {
		switch {
		case el.Paragraph != nil:
			w.paragraph(el.Paragraph)
		case el.Table != nil:
			w.closeList()
			w.table(el.Table)
		}
		// Section breaks and tables of contents carry no renderable text.
	}
}

func (w *markdownWriter) paragraph(p *docs.Paragraph) {
	if p == nil || len(p.Elements) == 0 {
		return
	}

	text := w.inline(p.Elements)
	if strings.TrimSpace(text) == "" && p.Bullet == nil {
		return
	}

	if p.Bullet != nil {
		w.inList = true
		w.buf.WriteString(w.listPrefix(p.Bullet))
		w.buf.WriteString(text)
		w.buf.WriteString("\n")
		return
	}

	w.closeList()
	if depth := headingDepth(p.ParagraphStyle); depth > 0 {
		w.buf.WriteString(strings.Repeat("#", depth))
		w.buf.WriteString(" ")
	}
	w.buf.WriteString(text)
	w.buf.WriteString("\n\n")
}

// closeList terminates an open list with a blank line so the following block
// does not merge into it.
func (w *markdownWriter) closeList() {
	if w.inList {
		w.buf.WriteString("\n")
		w.inList = false
	}
}

// headingDepth maps HEADING_1 through HEADING_6 to a Markdown heading level.
// Body text and unnamed styles return 0.
func headingDepth(style *docs.ParagraphStyle) int {
	if style == nil {
		return 0
	}
	const prefix = "HEADING_"
	name := style.NamedStyleType
	if !strings.HasPrefix(name, prefix) || len(name) != len(prefix)+1 {
		return 0
	}
	depth := int(name[len(prefix)] - '0')
	if depth < 1 || depth > 6 {
		return 0
	}
	return depth
}

// listPrefix derives the indent and marker for a bulleted paragraph. Ordered
// lists count their items per list and nesting level.
func (w *markdownWriter) listPrefix(b *docs.Bullet) string {
	indent := strings.Repeat("  ", int(b.NestingLevel))
	if w.isOrdered(b) {
		key := fmt.Sprintf("%s/%d", b.ListId, b.NestingLevel)
		w.ordinal[key]++
		return fmt.Sprintf("%s%d. ", indent, w.ordinal[key])
	}
	return indent + "- "
}

func (w *markdownWriter) isOrdered(b *docs.Bullet) bool {
	list, ok := w.lists[b.ListId]
	if !ok || list.ListProperties == nil {
		return false
	}
	levels := list.ListProperties.NestingLevels
	idx := int(b.NestingLevel)
	if idx >= len(levels) || levels[idx] == nil {
		return false
	}
	return orderedGlyphs[levels[idx].GlyphType]
}

func (w *markdownWriter) inline(elements []*docs.ParagraphElement) string {
	var sb strings.Builder
	for _, el := range elements {
		switch {
		case el.TextRun != nil:
			sb.WriteString(styledText(el.TextRun))
		case el.InlineObjectElement != nil:
			sb.WriteString(w.inlineObject(el.InlineObjectElement))
		case el.Person != nil && el.Person.PersonProperties != nil:
			if name := el.Person.PersonProperties.Name; name != "" {
				sb.WriteString("@" + name)
			} else {
				sb.WriteString("@" + el.Person.PersonProperties.Email)
			}
		case el.RichLink != nil && el.RichLink.RichLinkProperties != nil:
			props := el.RichLink.RichLinkProperties
			fmt.Fprintf(&sb, "[%s](%s)", props.Title, props.Uri)
		case el.HorizontalRule != nil:
			sb.WriteString("---")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// styledText wraps a text run's content in Markdown markers. The API
// terminates each paragraph inside its final run, so trailing newlines are
// stripped here and block spacing is left to the caller.
func styledText(run *docs.TextRun) string {
	content := strings.TrimRight(run.Content, "\n")
	if content == "" {
		return ""
	}
	style := run.TextStyle
	if style == nil {
		return content
	}

	if style.Link != nil && style.Link.Url != "" {
		label := strings.TrimSpace(content)
		if label == "" {
			label = style.Link.Url
		}
		return fmt.Sprintf("[%s](%s)", label, style.Link.Url)
	}

	if isCodeFont(style.WeightedFontFamily) {
		return "`" + strings.TrimSpace(content) + "`"
	}

	var marks []string
	if style.Strikethrough {
		marks = append(marks, "~~")
	}
	if style.Bold {
		marks = append(marks, "**")
	}
	if style.Italic {
		marks = append(marks, "*")
	}
	for i := len(marks) - 1; i >= 0; i-- {
		content = marks[i] + content + marks[i]
	}
	return content
}

// isCodeFont treats fixed-width font families as inline code.
func isCodeFont(font *docs.WeightedFontFamily) bool {
	if font == nil {
		return false
	}
	family := font.FontFamily
	return strings.Contains(family, "Courier") ||
		strings.Contains(family, "Mono") ||
		family == "Consolas"
}

// inlineObject resolves an embedded object reference to a Markdown image.
// Objects the document does not describe render as a bare placeholder.
func (w *markdownWriter) inlineObject(el *docs.InlineObjectElement) string {
	obj, ok := w.objects[el.InlineObjectId]
	if !ok || obj.InlineObjectProperties == nil || obj.InlineObjectProperties.EmbeddedObject == nil {
		return "[embedded object]"
	}
	embedded := obj.InlineObjectProperties.EmbeddedObject
	alt := embedded.Title
	if alt == "" {
		alt = "image"
	}
	if embedded.ImageProperties != nil && embedded.ImageProperties.ContentUri != "" {
		return fmt.Sprintf("![%s](%s)", alt, embedded.ImageProperties.ContentUri)
	}
	return fmt.Sprintf("[%s]", alt)
}

func (w *markdownWriter) table(t *docs.Table) {
	if t == nil || len(t.TableRows) == 0 {
		return
	}
	for i, row := range t.TableRows {
		cells := make([]string, len(row.TableCells))
		for j, cell := range row.TableCells {
			cells[j] = w.cellText(cell)
		}
		fmt.Fprintf(&w.buf, "| %s |\n", strings.Join(cells, " | "))
		if i == 0 {
			seps := make([]string, len(row.TableCells))
			for j := range seps {
				seps[j] = "---"
			}
			fmt.Fprintf(&w.buf, "| %s |\n", strings.Join(seps, " | "))
		}
	}
	w.buf.WriteString("\n")
}

// cellText flattens a cell to a single line, escaping pipes so cell content
// cannot break the row.
func (w *markdownWriter) cellText(cell *docs.TableCell) string {
	var parts []string
	for _, el := range cell.Content {
		if el.Paragraph == nil {
			continue
		}
		if text := w.inline(el.Paragraph.Elements); text != "" {
			parts = append(parts, text)
		}
	}
	joined := strings.Join(parts, " ")
	joined = strings.ReplaceAll(joined, "\n", " ")
	return strings.ReplaceAll(joined, "|", "\\|")
}

// DocumentToPlainText extracts the raw text of a Google Doc, dropping all
// style information. Tab titles become banner lines so multi-tab documents
// stay navigable as text.
func DocumentToPlainText(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var w textWriter
	if doc.Title != "" {
		w.buf.WriteString(doc.Title)
		w.buf.WriteString("\n\n")
	}
	if len(doc.Tabs) > 0 {
		w.tabs(doc.Tabs, 0)
	} else if doc.Body != nil {
		w.body(doc.Body.Content)
	}
	return w.buf.String(), nil
}

type textWriter struct {
	buf strings.Builder
}

func (w *textWriter) tabs(tabs []*docs.Tab, depth int) {
	for i, tab := range tabs {
		title := fmt.Sprintf("Tab %d", i+1)
		if tab.TabProperties != nil && tab.TabProperties.Title != "" {
			title = tab.TabProperties.Title
		}
		if depth == 0 {
			fmt.Fprintf(&w.buf, "=== %s ===\n\n", title)
		} else {
			fmt.Fprintf(&w.buf, "--- %s ---\n\n", title)
		}
		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			w.body(tab.DocumentTab.Body.Content)
		}
		if len(tab.ChildTabs) > 0 {
			w.tabs(tab.ChildTabs, depth+1)
		}
		w.buf.WriteString("\n")
	}
}

func (w *textWriter) body(content []*docs.StructuralElement) {
	for _, el := range content {
		switch {
		case el.Paragraph != nil:
			w.paragraph(el.Paragraph)
		case el.Table != nil:
			w.table(el.Table)
		}
	}
}

func (w *textWriter) paragraph(p *docs.Paragraph) {
	for _, el := range p.Elements {
		switch {
		case el.TextRun != nil:
			w.buf.WriteString(el.TextRun.Content)
		case el.Person != nil && el.Person.PersonProperties != nil:
			if name := el.Person.PersonProperties.Name; name != "" {
				w.buf.WriteString(name)
			} else {
				w.buf.WriteString(el.Person.PersonProperties.Email)
			}
		case el.RichLink != nil && el.RichLink.RichLinkProperties != nil:
			w.buf.WriteString(el.RichLink.RichLinkProperties.Title)
		}
	}
}

func (w *textWriter) table(t *docs.Table) {
	for _, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			var inner textWriter
			inner.body(cell.Content)
			cells = append(cells, strings.TrimSpace(inner.buf.String()))
		}
		w.buf.WriteString(strings.Join(cells, " | "))
		w.buf.WriteString("\n")
	}
}
