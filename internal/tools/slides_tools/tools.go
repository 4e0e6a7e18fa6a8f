package slides_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/slides"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// getSlidesClient returns the cached Slides client, mapping a missing token
// to the authorization walkthrough so agents can recover on their own.
func getSlidesClient(sc *server.ServerContext) (*slides.Client, error) {
	client, err := sc.SlidesClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Slides client: %w", err)
	}
	return client, nil
}

// floatArg reads a numeric argument as float64, returning zero when absent.
// Zero geometry values tell the Slides client to use its own defaults.
func floatArg(args map[string]interface{}, key string) float64 {
	v, _ := args[key].(float64)
	return v
}

// RegisterSlidesTools registers all Google Slides-related tools with the MCP server
func RegisterSlidesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("slides_get_presentation",
		mcp.WithDescription("Get metadata for a Google Slides presentation, including its slides"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
	), common.InstrumentedToolHandlerWithService(
		"slides_get_presentation", "slides", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			presentationID, err := common.RequiredStringArg(request.GetArguments(), "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.GetPresentation(ctx, presentationID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get presentation: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("slides_get_slide",
		mcp.WithDescription("Get the elements of a single slide, including any text content"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("The object ID of the slide (use slides_get_presentation to find it)")),
	), common.InstrumentedToolHandlerWithService(
		"slides_get_slide", "slides", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			presentationID, err := common.RequiredStringArg(args, "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			slideID, err := common.RequiredStringArg(args, "slideId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			detail, err := client.GetSlide(ctx, presentationID, slideID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get slide: %v", err)), nil
			}

			result, _ := json.MarshalIndent(detail, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("slides_create_presentation",
		mcp.WithDescription("Create a new Google Slides presentation"),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new presentation")),
	), common.InstrumentedToolHandlerWithService(
		"slides_create_presentation", "slides", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := common.RequiredStringArg(request.GetArguments(), "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.CreatePresentation(ctx, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create presentation: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Presentation created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("slides_add_slide",
		mcp.WithDescription("Add a new slide to a presentation using a predefined layout"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("layout", mcp.Description(fmt.Sprintf("Predefined layout for the slide (default: BLANK). One of: %s", strings.Join(slides.ValidLayouts, ", ")))),
	), common.InstrumentedToolHandlerWithService(
		"slides_add_slide", "slides", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			presentationID, err := common.RequiredStringArg(args, "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			slideID, err := client.AddSlide(ctx, presentationID, common.StringArg(args, "layout", ""))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add slide: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Slide added successfully with ID: %s", slideID)), nil
		}))

	s.AddTool(mcp.NewTool("slides_add_text_box",
		mcp.WithDescription("Add a text box with content to a slide"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("The object ID of the slide")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text content for the text box")),
		mcp.WithNumber("x", mcp.Description("Horizontal position in points from the top-left corner (default: 0)")),
		mcp.WithNumber("y", mcp.Description("Vertical position in points from the top-left corner (default: 0)")),
		mcp.WithNumber("width", mcp.Description("Width of the text box in points (default: 300)")),
		mcp.WithNumber("height", mcp.Description("Height of the text box in points (default: 50)")),
	), common.InstrumentedToolHandlerWithService(
		"slides_add_text_box", "slides", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			presentationID, err := common.RequiredStringArg(args, "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			slideID, err := common.RequiredStringArg(args, "slideId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			text, err := common.RequiredStringArg(args, "text")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			objectID, err := client.AddTextBox(ctx, presentationID, slideID, text,
				floatArg(args, "x"), floatArg(args, "y"), floatArg(args, "width"), floatArg(args, "height"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add text box: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Text box added successfully with ID: %s", objectID)), nil
		}))

	s.AddTool(mcp.NewTool("slides_replace_text",
		mcp.WithDescription("Replace all occurrences of a string across all slides of a presentation"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("findText", mcp.Required(), mcp.Description("The text to search for")),
		mcp.WithString("replaceText", mcp.Description("The replacement text (empty string deletes occurrences)")),
		mcp.WithBoolean("matchCase", mcp.Description("Whether the search is case-sensitive (default: false)")),
	), common.InstrumentedToolHandlerWithService(
		"slides_replace_text", "slides", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			presentationID, err := common.RequiredStringArg(args, "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			findText, err := common.RequiredStringArg(args, "findText")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			occurrences, err := client.ReplaceText(ctx, presentationID, findText,
				common.StringArg(args, "replaceText", ""), common.BoolArg(args, "matchCase"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Replaced %d occurrence(s) of %q in presentation %s", occurrences, findText, presentationID)), nil
		}))

	s.AddTool(mcp.NewTool("slides_delete_slide",
		mcp.WithDescription("Delete a slide from a presentation"),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("The object ID of the slide to delete")),
	), common.InstrumentedToolHandlerWithService(
		"slides_delete_slide", "slides", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			presentationID, err := common.RequiredStringArg(args, "presentationId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			slideID, err := common.RequiredStringArg(args, "slideId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSlidesClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteSlide(ctx, presentationID, slideID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete slide: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Slide %s deleted from presentation %s", slideID, presentationID)), nil
		}))

	return nil
}
