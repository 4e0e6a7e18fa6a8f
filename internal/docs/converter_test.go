package docs

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func textParagraph(content string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: content}},
			},
		},
	}
}

func headingParagraph(style, content string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: style},
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: content}},
			},
		},
	}
}

func bulletParagraph(listID string, level int64, content string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Bullet: &docs.Bullet{ListId: listID, NestingLevel: level},
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: content}},
			},
		},
	}
}

func tableCell(content string) *docs.TableCell {
	return &docs.TableCell{
		Content: []*docs.StructuralElement{textParagraph(content)},
	}
}

func TestDocumentToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		doc      *docs.Document
		expected string
		wantErr  bool
	}{
		{
			name:    "nil document",
			doc:     nil,
			wantErr: true,
		},
		{
			name: "simple document",
			doc: &docs.Document{
				Title: "Quarterly Notes",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Review went well.\n"),
				}},
			},
			expected: "# Quarterly Notes\n\nReview went well.\n\n",
		},
		{
			name: "untitled document",
			doc: &docs.Document{
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Untitled content.\n"),
				}},
			},
			expected: "Untitled content.\n\n",
		},
		{
			name: "headings",
			doc: &docs.Document{
				Title: "Playbook",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					headingParagraph("HEADING_1", "Setup\n"),
					headingParagraph("HEADING_2", "Requirements\n"),
					textParagraph("Install the tools.\n"),
				}},
			},
			expected: "# Playbook\n\n# Setup\n\n## Requirements\n\nInstall the tools.\n\n",
		},
		{
			name: "styled runs",
			doc: &docs.Document{
				Title: "Formatting",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "Ship "}},
						{TextRun: &docs.TextRun{Content: "now", TextStyle: &docs.TextStyle{Bold: true}}},
						{TextRun: &docs.TextRun{Content: " or "}},
						{TextRun: &docs.TextRun{Content: "later", TextStyle: &docs.TextStyle{Italic: true}}},
						{TextRun: &docs.TextRun{Content: ", not "}},
						{TextRun: &docs.TextRun{Content: "never", TextStyle: &docs.TextStyle{Bold: true, Italic: true}}},
						{TextRun: &docs.TextRun{Content: ".\n"}},
					}}},
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "cancelled\n", TextStyle: &docs.TextStyle{Strikethrough: true}}},
					}}},
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "make deploy\n", TextStyle: &docs.TextStyle{
							WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: "Roboto Mono"},
						}}},
					}}},
				}},
			},
			expected: "# Formatting\n\nShip **now** or *later*, not ***never***.\n\n~~cancelled~~\n\n`make deploy`\n\n",
		},
		{
			name: "link",
			doc: &docs.Document{
				Title: "Links",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "status page", TextStyle: &docs.TextStyle{
							Link: &docs.Link{Url: "https://status.example.com"},
						}}},
						{TextRun: &docs.TextRun{Content: "\n"}},
					}}},
				}},
			},
			expected: "# Links\n\n[status page](https://status.example.com)\n\n",
		},
		{
			name: "section break carries no content",
			doc: &docs.Document{
				Title: "Sections",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					{SectionBreak: &docs.SectionBreak{}},
					textParagraph("After the break.\n"),
				}},
			},
			expected: "# Sections\n\nAfter the break.\n\n",
		},
		{
			name: "horizontal rule",
			doc: &docs.Document{
				Title: "Divided",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Above.\n"),
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{HorizontalRule: &docs.HorizontalRule{}},
					}}},
					textParagraph("Below.\n"),
				}},
			},
			expected: "# Divided\n\nAbove.\n\n---\n\nBelow.\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DocumentToMarkdown(tt.doc)

			if tt.wantErr {
				if err == nil {
					t.Errorf("DocumentToMarkdown() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("DocumentToMarkdown() unexpected error: %v", err)
				return
			}

			if result != tt.expected {
				t.Errorf("DocumentToMarkdown() =\n%q\nwant:\n%q", result, tt.expected)
			}
		})
	}
}

func TestMarkdownLists(t *testing.T) {
	tests := []struct {
		name     string
		doc      *docs.Document
		expected string
	}{
		{
			name: "bullets without list metadata",
			doc: &docs.Document{
				Title: "Tasks",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					bulletParagraph("kix.abc", 0, "First\n"),
					bulletParagraph("kix.abc", 0, "Second\n"),
				}},
			},
			expected: "# Tasks\n\n- First\n- Second\n\n",
		},
		{
			name: "ordered list with nesting",
			doc: &docs.Document{
				Title: "Runbook",
				Lists: map[string]docs.List{
					"kix.steps": {ListProperties: &docs.ListProperties{
						NestingLevels: []*docs.NestingLevel{
							{GlyphType: "DECIMAL"},
							{GlyphType: "DECIMAL"},
						},
					}},
				},
				Body: &docs.Body{Content: []*docs.StructuralElement{
					bulletParagraph("kix.steps", 0, "Prepare\n"),
					bulletParagraph("kix.steps", 0, "Execute\n"),
					bulletParagraph("kix.steps", 1, "Verify output\n"),
					textParagraph("Done.\n"),
				}},
			},
			expected: "# Runbook\n\n1. Prepare\n2. Execute\n  1. Verify output\n\nDone.\n\n",
		},
		{
			name: "glyph symbol stays a bullet",
			doc: &docs.Document{
				Title: "Bullets",
				Lists: map[string]docs.List{
					"kix.dots": {ListProperties: &docs.ListProperties{
						NestingLevels: []*docs.NestingLevel{
							{GlyphSymbol: "●"},
						},
					}},
				},
				Body: &docs.Body{Content: []*docs.StructuralElement{
					bulletParagraph("kix.dots", 0, "Alpha\n"),
				}},
			},
			expected: "# Bullets\n\n- Alpha\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DocumentToMarkdown(tt.doc)
			if err != nil {
				t.Fatalf("DocumentToMarkdown() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("DocumentToMarkdown() =\n%q\nwant:\n%q", result, tt.expected)
			}
		})
	}
}

func TestMarkdownTable(t *testing.T) {
	doc := &docs.Document{
		Title: "Inventory",
		Body: &docs.Body{Content: []*docs.StructuralElement{
			{Table: &docs.Table{TableRows: []*docs.TableRow{
				{TableCells: []*docs.TableCell{tableCell("Part\n"), tableCell("Qty\n")}},
				{TableCells: []*docs.TableCell{tableCell("Widget|A\n"), tableCell("4\n")}},
			}}},
		}},
	}

	expected := "# Inventory\n\n| Part | Qty |\n| --- | --- |\n| Widget\\|A | 4 |\n\n"

	result, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("DocumentToMarkdown() =\n%q\nwant:\n%q", result, expected)
	}
}

func TestMarkdownInlineObjects(t *testing.T) {
	doc := &docs.Document{
		Title: "Assets",
		InlineObjects: map[string]docs.InlineObject{
			"obj1": {InlineObjectProperties: &docs.InlineObjectProperties{
				EmbeddedObject: &docs.EmbeddedObject{
					Title: "architecture",
					ImageProperties: &docs.ImageProperties{
						ContentUri: "https://lh3.example.com/img1",
					},
				},
			}},
		},
		Body: &docs.Body{Content: []*docs.StructuralElement{
			{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
				{InlineObjectElement: &docs.InlineObjectElement{InlineObjectId: "obj1"}},
				{TextRun: &docs.TextRun{Content: "\n"}},
			}}},
			{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
				{InlineObjectElement: &docs.InlineObjectElement{InlineObjectId: "missing"}},
				{TextRun: &docs.TextRun{Content: "\n"}},
			}}},
			{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: "Ping "}},
				{Person: &docs.Person{PersonProperties: &docs.PersonProperties{
					Name:  "Dana Smith",
					Email: "dana@example.com",
				}}},
				{TextRun: &docs.TextRun{Content: " about "}},
				{RichLink: &docs.RichLink{RichLinkProperties: &docs.RichLinkProperties{
					Title: "Q3 Deck",
					Uri:   "https://docs.google.com/presentation/d/abc",
				}}},
				{TextRun: &docs.TextRun{Content: "\n"}},
			}}},
		}},
	}

	expected := "# Assets\n\n" +
		"![architecture](https://lh3.example.com/img1)\n\n" +
		"[embedded object]\n\n" +
		"Ping @Dana Smith about [Q3 Deck](https://docs.google.com/presentation/d/abc)\n\n"

	result, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("DocumentToMarkdown() =\n%q\nwant:\n%q", result, expected)
	}
}

func TestMarkdownTabs(t *testing.T) {
	doc := &docs.Document{
		Title: "Handbook",
		Tabs: []*docs.Tab{
			{
				TabProperties: &docs.TabProperties{Title: "Intro"},
				DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Welcome.\n"),
				}}},
			},
			{
				TabProperties: &docs.TabProperties{Title: "Policies"},
				DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Be kind.\n"),
				}}},
				ChildTabs: []*docs.Tab{
					{
						TabProperties: &docs.TabProperties{Title: "Travel"},
						DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
							textParagraph("Book early.\n"),
						}}},
					},
				},
			},
			{
				DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Loose ends.\n"),
				}}},
			},
		},
	}

	expected := "# Handbook\n\n" +
		"## Intro\n\nWelcome.\n\n" +
		"## Policies\n\nBe kind.\n\n" +
		"### Travel\n\nBook early.\n\n" +
		"## Tab 3\n\nLoose ends.\n\n"

	result, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("DocumentToMarkdown() =\n%q\nwant:\n%q", result, expected)
	}
}

func TestDocumentToPlainText(t *testing.T) {
	tests := []struct {
		name     string
		doc      *docs.Document
		expected string
		wantErr  bool
	}{
		{
			name:    "nil document",
			doc:     nil,
			wantErr: true,
		},
		{
			name: "simple document",
			doc: &docs.Document{
				Title: "Test Document",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("This is plain text.\n"),
				}},
			},
			expected: "Test Document\n\nThis is plain text.\n",
		},
		{
			name: "multiple paragraphs",
			doc: &docs.Document{
				Title: "Multi Paragraph",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("First paragraph.\n"),
					textParagraph("Second paragraph.\n"),
				}},
			},
			expected: "Multi Paragraph\n\nFirst paragraph.\nSecond paragraph.\n",
		},
		{
			name: "styling is stripped",
			doc: &docs.Document{
				Title: "Formatted",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "Bold text", TextStyle: &docs.TextStyle{Bold: true}}},
					}}},
				}},
			},
			expected: "Formatted\n\nBold text",
		},
		{
			name: "smart chips render as names",
			doc: &docs.Document{
				Title: "Contacts",
				Body: &docs.Body{Content: []*docs.StructuralElement{
					{Paragraph: &docs.Paragraph{Elements: []*docs.ParagraphElement{
						{TextRun: &docs.TextRun{Content: "Ping "}},
						{Person: &docs.Person{PersonProperties: &docs.PersonProperties{
							Name: "Dana Smith",
						}}},
						{TextRun: &docs.TextRun{Content: " about "}},
						{RichLink: &docs.RichLink{RichLinkProperties: &docs.RichLinkProperties{
							Title: "Q3 Deck",
						}}},
						{TextRun: &docs.TextRun{Content: "\n"}},
					}}},
				}},
			},
			expected: "Contacts\n\nPing Dana Smith about Q3 Deck\n",
		},
		{
			name: "untitled document",
			doc: &docs.Document{
				Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Just text.\n"),
				}},
			},
			expected: "Just text.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DocumentToPlainText(tt.doc)

			if tt.wantErr {
				if err == nil {
					t.Errorf("DocumentToPlainText() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("DocumentToPlainText() unexpected error: %v", err)
				return
			}

			if result != tt.expected {
				t.Errorf("DocumentToPlainText() =\n%q\nwant:\n%q", result, tt.expected)
			}
		})
	}
}

func TestPlainTextTable(t *testing.T) {
	doc := &docs.Document{
		Title: "Inventory",
		Body: &docs.Body{Content: []*docs.StructuralElement{
			{Table: &docs.Table{TableRows: []*docs.TableRow{
				{TableCells: []*docs.TableCell{tableCell("Part\n"), tableCell("Qty\n")}},
				{TableCells: []*docs.TableCell{tableCell("Widget\n"), tableCell("4\n")}},
			}}},
		}},
	}

	expected := "Inventory\n\nPart | Qty\nWidget | 4\n"

	result, err := DocumentToPlainText(doc)
	if err != nil {
		t.Fatalf("DocumentToPlainText() unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("DocumentToPlainText() =\n%q\nwant:\n%q", result, expected)
	}
}

func TestPlainTextTabs(t *testing.T) {
	doc := &docs.Document{
		Title: "Handbook",
		Tabs: []*docs.Tab{
			{
				TabProperties: &docs.TabProperties{Title: "Intro"},
				DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Welcome.\n"),
				}}},
			},
			{
				TabProperties: &docs.TabProperties{Title: "Policies"},
				DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
					textParagraph("Be kind.\n"),
				}}},
			},
		},
	}

	expected := "Handbook\n\n=== Intro ===\n\nWelcome.\n\n=== Policies ===\n\nBe kind.\n\n"

	result, err := DocumentToPlainText(doc)
	if err != nil {
		t.Fatalf("DocumentToPlainText() unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("DocumentToPlainText() =\n%q\nwant:\n%q", result, expected)
	}
}
