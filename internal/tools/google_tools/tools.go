package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// RegisterGoogleTools registers the OAuth bootstrap tools. These are always
// available, even in read-only mode, since nothing else works without a
// token.
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddTool(mcp.NewTool("google_get_auth_url",
		mcp.WithDescription("Get the OAuth URL to authorize access to Google Workspace services (Drive, Docs, Slides, Sheets, Calendar, Contacts, Tasks)"),
	), common.InstrumentedToolHandler("google_get_auth_url", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAuthURL(ctx, request, sc)
		}))

	s.AddTool(mcp.NewTool("google_save_auth_code",
		mcp.WithDescription("Save the OAuth authorization code to complete Google Workspace authentication"),
		mcp.WithString("authCode",
			mcp.Required(),
			mcp.Description("The authorization code from Google OAuth"),
		),
	), common.InstrumentedToolHandler("google_save_auth_code", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSaveAuthCode(ctx, request, sc)
		}))

	return nil
}

func handleGetAuthURL(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	result := fmt.Sprintf(`To authorize access to Google Workspace services:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to the requested services
4. Copy the authorization code

5. Call the google_save_auth_code tool with the code to complete authentication`,
		sc.Authenticator().AuthCodeURL())

	return mcp.NewToolResultText(result), nil
}

func handleSaveAuthCode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	authCode, err := common.RequiredStringArg(request.GetArguments(), "authCode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	exchangeErr := sc.Authenticator().Exchange(ctx, authCode)
	if metrics := sc.Metrics(); metrics != nil {
		result := instrumentation.OAuthResultSuccess
		if exchangeErr != nil {
			result = instrumentation.OAuthResultFailure
		}
		metrics.RecordOAuthAuth(ctx, result)
	}
	if exchangeErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save authorization code: %v", exchangeErr)), nil
	}

	return mcp.NewToolResultText("✅ Authorization successful! Google Workspace token saved. You can now use all Drive, Docs, Slides, Sheets, Calendar, Contacts, and Tasks tools."), nil
}
