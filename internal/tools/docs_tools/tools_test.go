package docs_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

// Validation runs before any Docs client is built, so these paths are
// exercised without a server context.
func TestHandleGetDocumentRejectsBadArguments(t *testing.T) {
	t.Run("missing documentId", func(t *testing.T) {
		result, err := handleGetDocument(context.Background(),
			callRequest("docs_get_document", map[string]interface{}{}), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "documentId is required", resultText(t, result))
	})

	t.Run("unknown format", func(t *testing.T) {
		result, err := handleGetDocument(context.Background(),
			callRequest("docs_get_document", map[string]interface{}{
				"documentId": "doc-1",
				"format":     "html",
			}), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Invalid format 'html'")
	})

	t.Run("format comparison is case sensitive", func(t *testing.T) {
		result, err := handleGetDocument(context.Background(),
			callRequest("docs_get_document", map[string]interface{}{
				"documentId": "doc-1",
				"format":     "Markdown",
			}), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleInsertTextRejectsBadIndex(t *testing.T) {
	base := map[string]interface{}{
		"documentId": "doc-1",
		"text":       "hello",
	}

	t.Run("missing index", func(t *testing.T) {
		result, err := handleInsertText(context.Background(),
			callRequest("docs_insert_text", base), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "index is required", resultText(t, result))
	})

	for _, bad := range []float64{0, -5} {
		args := map[string]interface{}{"documentId": "doc-1", "text": "hello", "index": bad}
		result, err := handleInsertText(context.Background(),
			callRequest("docs_insert_text", args), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "index must be at least 1", resultText(t, result))
	}

	t.Run("string index", func(t *testing.T) {
		args := map[string]interface{}{"documentId": "doc-1", "text": "hello", "index": "1"}
		result, err := handleInsertText(context.Background(),
			callRequest("docs_insert_text", args), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleCreateDocumentRequiresTitle(t *testing.T) {
	for _, args := range []map[string]interface{}{
		{},
		{"title": ""},
		{"title": 7},
	} {
		result, err := handleCreateDocument(context.Background(),
			callRequest("docs_create_document", args), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "title is required", resultText(t, result))
	}
}

func TestDocumentFormats(t *testing.T) {
	assert.Equal(t, "markdown", documentFormats[0])
	assert.ElementsMatch(t, []string{"markdown", "text", "json"}, documentFormats)
}
