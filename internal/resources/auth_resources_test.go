package resources

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	cfg := &googleauth.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenPath:    filepath.Join(t.TempDir(), "token.json"),
	}
	auth := googleauth.NewAuthenticator(context.Background(), cfg)

	sc, err := server.NewServerContext(context.Background(), auth)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc
}

func TestRegisterAuthResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithResourceCapabilities(false, false))
	sc := newTestServerContext(t)

	if err := RegisterAuthResources(s, sc); err != nil {
		t.Errorf("RegisterAuthResources() = %v, want nil", err)
	}
}

func TestHandleAuthStatus_NoToken(t *testing.T) {
	sc := newTestServerContext(t)

	request := mcp.ReadResourceRequest{}
	request.Params.URI = authStatusURI

	contents, err := handleAuthStatus(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleAuthStatus() unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}
	if text.URI != authStatusURI {
		t.Errorf("URI = %v, want %v", text.URI, authStatusURI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %v, want application/json", text.MIMEType)
	}

	var status map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &status); err != nil {
		t.Fatalf("failed to unmarshal status JSON: %v", err)
	}

	if authenticated, _ := status["authenticated"].(bool); authenticated {
		t.Error("authenticated = true, want false with no token cached")
	}
	if _, ok := status["hint"]; !ok {
		t.Error("expected a hint when unauthenticated")
	}
	if _, ok := status["tokenPath"]; !ok {
		t.Error("expected tokenPath in status")
	}
}
