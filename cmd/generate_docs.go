package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
	"github.com/workspacekit/workspace-mcp/internal/server"
)

// toolCategories maps tool-name prefixes to documentation sections, in
// the order the sections appear in the generated reference.
var toolCategories = []struct {
	prefix string
	title  string
}{
	{"google", "Authorization Tools"},
	{"drive", "Google Drive Tools"},
	{"docs", "Google Docs Tools"},
	{"slides", "Google Slides Tools"},
	{"sheets", "Google Sheets Tools"},
	{"calendar", "Google Calendar Tools"},
	{"contacts", "Google Contacts Tools"},
	{"tasks", "Google Tasks Tools"},
}

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all available MCP tools.
This command introspects the registered tools and outputs their documentation
in markdown format, ensuring the documentation is always accurate and in sync
with the actual tool implementations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// Doc generation never talks to Google, so a throwaway config is enough.
	// The token path is never written because no client is ever constructed.
	ctx := context.Background()
	authenticator := googleauth.NewAuthenticator(ctx, &googleauth.Config{
		ClientID:     "docgen",
		ClientSecret: "docgen",
		TokenPath:    filepath.Join(os.TempDir(), "workspace-mcp-docgen", "token.json"),
	})

	serverContext, err := server.NewServerContext(ctx, authenticator)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv := mcpserver.NewMCPServer("workspace-mcp", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register with write operations enabled so every tool is documented
	if err := registerAllTools(mcpSrv, serverContext, false); err != nil {
		return err
	}

	tools := make([]mcp.Tool, 0, len(mcpSrv.ListTools()))
	for _, st := range mcpSrv.ListTools() {
		tools = append(tools, st.Tool)
	}

	markdown := renderToolReference(tools)

	if outputFile == "" {
		fmt.Print(markdown)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	return nil
}

// renderToolReference produces the full markdown reference: header,
// table of contents, read-only note, then one section per category with
// its tools sorted by name.
func renderToolReference(tools []mcp.Tool) string {
	byTitle := make(map[string][]mcp.Tool)
	for _, tool := range tools {
		byTitle[categoryTitle(tool.Name)] = append(byTitle[categoryTitle(tool.Name)], tool)
	}

	var sb strings.Builder
	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document provides a complete reference of all tools available when running workspace-mcp as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	sb.WriteString("## Table of Contents\n\n")
	for _, cat := range toolCategories {
		if len(byTitle[cat.title]) == 0 {
			continue
		}
		anchor := strings.ToLower(strings.ReplaceAll(cat.title, " ", "-"))
		fmt.Fprintf(&sb, "- [%s](#%s)\n", cat.title, anchor)
	}
	sb.WriteString("\n")

	sb.WriteString("## Read-Only Mode\n\n")
	sb.WriteString("By default the server registers only read operations. Tools that create,\n")
	sb.WriteString("modify, or delete data are available only when the server is started with\n")
	sb.WriteString("the `--yolo` flag.\n\n")

	for _, cat := range toolCategories {
		sectionTools := byTitle[cat.title]
		if len(sectionTools) == 0 {
			continue
		}
		slices.SortFunc(sectionTools, func(a, b mcp.Tool) int {
			return strings.Compare(a.Name, b.Name)
		})

		fmt.Fprintf(&sb, "## %s\n\n", cat.title)
		for _, tool := range sectionTools {
			sb.WriteString(renderTool(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func categoryTitle(toolName string) string {
	prefix, _, _ := strings.Cut(toolName, "_")
	for _, cat := range toolCategories {
		if cat.prefix == prefix {
			return cat.title
		}
	}
	return "Other"
}

// renderTool documents one tool: name, description, and its arguments
// with type and required/optional marking.
func renderTool(tool mcp.Tool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### %s\n\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", tool.Description)
	}

	if len(tool.InputSchema.Properties) == 0 {
		return sb.String()
	}
	sb.WriteString("**Arguments:**\n")

	names := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		propMap, ok := tool.InputSchema.Properties[name].(map[string]interface{})
		if !ok {
			continue
		}

		requiredStr := "optional"
		if slices.Contains(tool.InputSchema.Required, name) {
			requiredStr = "required"
		}

		fmt.Fprintf(&sb, "- `%s` (%s): ", name, requiredStr)
		if desc, ok := propMap["description"].(string); ok {
			sb.WriteString(desc)
		} else if t, ok := propMap["type"].(string); ok {
			fmt.Fprintf(&sb, "%s parameter", t)
		} else {
			sb.WriteString("any parameter")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
