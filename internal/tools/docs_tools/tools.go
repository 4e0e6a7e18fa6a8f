package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/docs"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// documentFormats are the render formats docs_get_document accepts. The
// first entry is the default.
var documentFormats = []string{"markdown", "text", "json"}

// getDocsClient returns the cached Docs client, mapping a missing token to
// the authorization walkthrough so agents can recover on their own.
func getDocsClient(sc *server.ServerContext) (*docs.Client, error) {
	client, err := sc.DocsClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Docs client: %w", err)
	}
	return client, nil
}

// RegisterDocsTools registers all Google Docs-related tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get Google Docs content by document ID"),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the Google Doc")),
		mcp.WithString("format", mcp.Description("Output format: 'markdown' (default), 'text', or 'json'")),
	), common.InstrumentedToolHandlerWithService(
		"docs_get_document", "docs", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	s.AddTool(mcp.NewTool("docs_list_documents",
		mcp.WithDescription("List Google Docs, optionally filtered by name"),
		mcp.WithString("nameFilter", mcp.Description("Filter documents whose name contains this string")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of documents to return (default: 50)")),
	), common.InstrumentedToolHandlerWithService(
		"docs_list_documents", "docs", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDocuments(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create a new Google Doc"),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new document")),
		mcp.WithString("content", mcp.Description("Initial text content for the document body")),
	), common.InstrumentedToolHandlerWithService(
		"docs_create_document", "docs", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDocument(ctx, request, sc)
		}))

	s.AddTool(mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of a Google Doc"),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the Google Doc")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to append")),
	), common.InstrumentedToolHandlerWithService(
		"docs_append_text", "docs", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendText(ctx, request, sc)
		}))

	s.AddTool(mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text at a specific index in a Google Doc. Index 1 is the start of the body."),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the Google Doc")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to insert")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("The index at which to insert the text (must be at least 1)")),
	), common.InstrumentedToolHandlerWithService(
		"docs_insert_text", "docs", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertText(ctx, request, sc)
		}))

	s.AddTool(mcp.NewTool("docs_replace_text",
		mcp.WithDescription("Replace all occurrences of a string in a Google Doc"),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the Google Doc")),
		mcp.WithString("findText", mcp.Required(), mcp.Description("The text to search for")),
		mcp.WithString("replaceText", mcp.Description("The replacement text (empty string deletes occurrences)")),
		mcp.WithBoolean("matchCase", mcp.Description("Whether the search is case-sensitive (default: false)")),
	), common.InstrumentedToolHandlerWithService(
		"docs_replace_text", "docs", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceText(ctx, request, sc)
		}))

	return nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredStringArg(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := common.StringArg(args, "format", documentFormats[0])
	if !slices.Contains(documentFormats, format) {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'markdown', 'text', or 'json'", format)), nil
	}

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format {
	case "markdown":
		content, err := docsClient.GetDocumentAsMarkdown(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Document content (Markdown, %d bytes):\n%s", len(content), content)), nil

	case "text":
		content, err := docsClient.GetDocumentAsPlainText(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Document content (plain text, %d bytes):\n%s", len(content), content)), nil

	default: // json
		doc, err := docsClient.GetDocument(ctx, documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		jsonBytes, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize document: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Document content (JSON, %d bytes):\n%s", len(jsonBytes), string(jsonBytes))), nil
	}
}

func handleListDocuments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	documents, err := docsClient.ListDocuments(ctx,
		common.StringArg(args, "nameFilter", ""), common.IntArg(args, "maxResults", 50))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list documents: %v", err)), nil
	}

	if len(documents) == 0 {
		return mcp.NewToolResultText("No documents found."), nil
	}

	jsonBytes, err := json.MarshalIndent(documents, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize documents: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d document(s):\n%s", len(documents), string(jsonBytes))), nil
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, err := common.RequiredStringArg(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := docsClient.CreateDocument(ctx, title, common.StringArg(args, "content", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document created successfully:\nID: %s\nTitle: %s\nURL: https://docs.google.com/document/d/%s/edit",
		doc.DocumentId, doc.Title, doc.DocumentId)), nil
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredStringArg(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := common.RequiredStringArg(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := docsClient.AppendText(ctx, documentID, text); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Appended %d characters to document %s", len(text), documentID)), nil
}

func handleInsertText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredStringArg(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := common.RequiredStringArg(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	indexVal, ok := args["index"].(float64)
	if !ok {
		return mcp.NewToolResultError("index is required"), nil
	}
	index := int64(indexVal)
	if index < 1 {
		return mcp.NewToolResultError("index must be at least 1"), nil
	}

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := docsClient.InsertText(ctx, documentID, text, index); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Inserted %d characters at index %d in document %s", len(text), index, documentID)), nil
}

func handleReplaceText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredStringArg(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	findText, err := common.RequiredStringArg(args, "findText")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docsClient, err := getDocsClient(sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	occurrences, err := docsClient.ReplaceText(ctx, documentID, findText,
		common.StringArg(args, "replaceText", ""), common.BoolArg(args, "matchCase"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Replaced %d occurrence(s) of %q in document %s", occurrences, findText, documentID)), nil
}
