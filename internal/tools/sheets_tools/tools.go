package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/sheets"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// getSheetsClient returns the cached Sheets client, mapping a missing token
// to the authorization walkthrough so agents can recover on their own.
func getSheetsClient(sc *server.ServerContext) (*sheets.Client, error) {
	client, err := sc.SheetsClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}
	return client, nil
}

// parseValuesJSON decodes the values_json tool argument, a JSON array of
// arrays where each inner array is one row
func parseValuesJSON(raw string) ([][]interface{}, error) {
	var values [][]interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("valuesJson must be a JSON array of arrays (e.g. [[\"a\",1],[\"b\",2]]): %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("valuesJson must contain at least one row")
	}
	return values, nil
}

// rangeValuesArgs pulls the spreadsheetId/range/valuesJson triple shared by
// the write and append tools. A non-nil result is an error to hand back.
func rangeValuesArgs(args map[string]interface{}) (spreadsheetID, rangeA1 string, values [][]interface{}, errResult *mcp.CallToolResult) {
	spreadsheetID, err := common.RequiredStringArg(args, "spreadsheetId")
	if err != nil {
		return "", "", nil, mcp.NewToolResultError(err.Error())
	}
	rangeA1, err = common.RequiredStringArg(args, "range")
	if err != nil {
		return "", "", nil, mcp.NewToolResultError(err.Error())
	}
	raw, err := common.RequiredStringArg(args, "valuesJson")
	if err != nil {
		return "", "", nil, mcp.NewToolResultError(err.Error())
	}
	values, err = parseValuesJSON(raw)
	if err != nil {
		return "", "", nil, mcp.NewToolResultError(err.Error())
	}
	return spreadsheetID, rangeA1, values, nil
}

// RegisterSheetsTools registers all Google Sheets-related tools with the MCP server
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("sheets_get_spreadsheet",
		mcp.WithDescription("Get metadata for a Google Spreadsheet, including its sheets and their dimensions"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_get_spreadsheet", "sheets", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			spreadsheetID, err := common.RequiredStringArg(request.GetArguments(), "spreadsheetId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.GetSpreadsheet(ctx, spreadsheetID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get spreadsheet: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("sheets_read_range",
		mcp.WithDescription("Read cell values from a range in a Google Spreadsheet"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("The A1 notation range to read (e.g., 'Sheet1!A1:D10')")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_read_range", "sheets", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, err := common.RequiredStringArg(args, "spreadsheetId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rangeA1, err := common.RequiredStringArg(args, "range")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			data, err := client.ReadRange(ctx, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read range: %v", err)), nil
			}
			if len(data.Values) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf("Range %s is empty.", data.Range)), nil
			}

			result, _ := json.MarshalIndent(data, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a new Google Spreadsheet"),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new spreadsheet")),
		mcp.WithString("sheetTitles", mcp.Description("Comma-separated list of sheet titles to create (default: a single 'Sheet1')")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_create_spreadsheet", "sheets", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			title, err := common.RequiredStringArg(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.CreateSpreadsheet(ctx, title, common.ListArg(args, "sheetTitles"))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Spreadsheet created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("sheets_write_range",
		mcp.WithDescription("Write cell values to a range in a Google Spreadsheet, overwriting existing values"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("The A1 notation range to write (e.g., 'Sheet1!A1:D10')")),
		mcp.WithString("valuesJson", mcp.Required(), mcp.Description("JSON array of arrays with the values to write, one inner array per row (e.g., '[[\"Name\",\"Age\"],[\"Alice\",30]]')")),
		mcp.WithString("valueInputOption", mcp.Description("How input is interpreted: 'USER_ENTERED' (default, parses formulas and numbers) or 'RAW'")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_write_range", "sheets", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, rangeA1, values, errResult := rangeValuesArgs(args)
			if errResult != nil {
				return errResult, nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := client.WriteRange(ctx, spreadsheetID, rangeA1, values, common.StringArg(args, "valueInputOption", ""))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to write range: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Updated %d cells in range %s (%d rows, %d columns)",
				result.UpdatedCells, result.UpdatedRange, result.UpdatedRows, result.UpdatedColumns)), nil
		}))

	s.AddTool(mcp.NewTool("sheets_append_rows",
		mcp.WithDescription("Append rows after the last row of a table in a Google Spreadsheet"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("The A1 notation range locating the table to append to (e.g., 'Sheet1!A1')")),
		mcp.WithString("valuesJson", mcp.Required(), mcp.Description("JSON array of arrays with the rows to append (e.g., '[[\"Bob\",25]]')")),
		mcp.WithString("valueInputOption", mcp.Description("How input is interpreted: 'USER_ENTERED' (default) or 'RAW'")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_append_rows", "sheets", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, rangeA1, values, errResult := rangeValuesArgs(args)
			if errResult != nil {
				return errResult, nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := client.AppendRows(ctx, spreadsheetID, rangeA1, values, common.StringArg(args, "valueInputOption", ""))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to append rows: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Appended %d rows (%d cells) at range %s",
				result.UpdatedRows, result.UpdatedCells, result.UpdatedRange)), nil
		}))

	s.AddTool(mcp.NewTool("sheets_clear_range",
		mcp.WithDescription("Clear cell values from a range in a Google Spreadsheet. Formatting is kept."),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("The A1 notation range to clear (e.g., 'Sheet1!A1:D10')")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_clear_range", "sheets", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, err := common.RequiredStringArg(args, "spreadsheetId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rangeA1, err := common.RequiredStringArg(args, "range")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			clearedRange, err := client.ClearRange(ctx, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to clear range: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Cleared range %s", clearedRange)), nil
		}))

	s.AddTool(mcp.NewTool("sheets_add_sheet",
		mcp.WithDescription("Add a new sheet (tab) to an existing Google Spreadsheet"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new sheet")),
		mcp.WithNumber("rowCount", mcp.Description("Number of rows in the new sheet (default: 1000)")),
		mcp.WithNumber("columnCount", mcp.Description("Number of columns in the new sheet (default: 26)")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_add_sheet", "sheets", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, err := common.RequiredStringArg(args, "spreadsheetId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			title, err := common.RequiredStringArg(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			// Zero dimensions tell the Sheets client to use its own defaults.
			rowCount := int64(common.IntArg(args, "rowCount", 0))
			columnCount := int64(common.IntArg(args, "columnCount", 0))

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sheetInfo, err := client.AddSheet(ctx, spreadsheetID, title, rowCount, columnCount)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add sheet: %v", err)), nil
			}

			result, _ := json.MarshalIndent(sheetInfo, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Sheet added successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("sheets_delete_sheet",
		mcp.WithDescription("Delete a sheet (tab) from a Google Spreadsheet"),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithNumber("sheetId", mcp.Required(), mcp.Description("The numeric ID of the sheet to delete (use sheets_get_spreadsheet to find it)")),
	), common.InstrumentedToolHandlerWithService(
		"sheets_delete_sheet", "sheets", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			spreadsheetID, err := common.RequiredStringArg(args, "spreadsheetId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			// Sheet ID 0 is the first tab, so absence is the only failure mode.
			sheetIDVal, ok := args["sheetId"].(float64)
			if !ok {
				return mcp.NewToolResultError("sheetId is required"), nil
			}

			client, err := getSheetsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteSheet(ctx, spreadsheetID, int64(sheetIDVal)); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete sheet: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Sheet %d deleted from spreadsheet %s", int64(sheetIDVal), spreadsheetID)), nil
		}))

	return nil
}
