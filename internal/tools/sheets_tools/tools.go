package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/sheets"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getSheetsClient retrieves or creates a sheets client for the specified account
func getSheetsClient(ctx context.Context, account string, sc *server.ServerContext) (*sheets.Client, error) {
	client := sc.SheetsClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !sheets.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = sheets.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Sheets client for account %s: %w", account, err)
		}
		sc.SetSheetsClientForAccount(account, client)
	}
	return client, nil
}

// argInt reads a numeric argument. JSON numbers arrive as float64;
// non-integral values are rejected rather than truncated.
func argInt(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseValuesJSON decodes a JSON 2D array of cell values
func parseValuesJSON(s string) ([][]any, error) {
	var values [][]any
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, fmt.Errorf("values must be a JSON 2D array, e.g. [[\"a\",1],[\"b\",2]]: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values must contain at least one row")
	}
	return values, nil
}

// splitRanges splits a comma-separated list of A1 range expressions
func splitRanges(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formatValueGrid renders a value grid as tab-separated rows
func formatValueGrid(values [][]any) string {
	var sb strings.Builder
	for _, row := range values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%v", cell)
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RegisterSheetsTools registers all Sheets-related tools with the MCP server
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerSpreadsheetTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register spreadsheet tools: %w", err)
	}
	if err := registerValueTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register value tools: %w", err)
	}
	if err := registerFormattingTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register formatting tools: %w", err)
	}
	if err := registerStructureTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register structure tools: %w", err)
	}
	if err := registerCommentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register comment tools: %w", err)
	}
	return nil
}

// registerSpreadsheetTools registers document-level tools
func registerSpreadsheetTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List spreadsheets tool
	listTool := mcp.NewTool("sheets_list_spreadsheets",
		mcp.WithDescription("List spreadsheets the user has access to, most recently modified first"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of spreadsheets to return (default: 25)"),
		),
	)

	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		maxResults, _ := argInt(args, "maxResults")
		files, err := client.ListSpreadsheets(ctx, maxResults)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list spreadsheets: %v", err)), nil
		}
		if len(files) == 0 {
			return mcp.NewToolResultText("No spreadsheets found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d spreadsheets:\n", len(files)))
		for _, f := range files {
			sb.WriteString(fmt.Sprintf("- %s (ID: %s, modified: %s)\n", f.Name, f.ID, f.ModifiedTime))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get spreadsheet info tool
	infoTool := mcp.NewTool("sheets_get_spreadsheet_info",
		mcp.WithDescription("Get a spreadsheet's title, sheets, dimensions, and conditional-format rule counts"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
	)

	s.AddTool(infoTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.GetSpreadsheetInfo(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get spreadsheet info: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Spreadsheet: %s\nID: %s\nURL: %s\nSheets (%d):\n",
			info.Title, info.ID, info.URL, len(info.Sheets)))
		for _, sheet := range info.Sheets {
			sb.WriteString(fmt.Sprintf("- %s (id %d, %dx%d", sheet.Title, sheet.ID, sheet.RowCount, sheet.ColumnCount))
			if sheet.RuleCount > 0 {
				sb.WriteString(fmt.Sprintf(", %d conditional formatting rules", sheet.RuleCount))
			}
			sb.WriteString(")\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if !readOnly {
		// Create spreadsheet tool
		createTool := mcp.NewTool("sheets_create_spreadsheet",
			mcp.WithDescription("Create a new spreadsheet with optional initial sheet names"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The title of the new spreadsheet"),
			),
			mcp.WithString("sheetNames",
				mcp.Description("Comma-separated names for the initial sheets (default: a single 'Sheet1')"),
			),
		)

		s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := common.GetAccountFromArgs(ctx, args)

			title, ok := args["title"].(string)
			if !ok || title == "" {
				return mcp.NewToolResultError("title is required"), nil
			}

			client, err := getSheetsClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var sheetNames []string
			if namesStr, ok := args["sheetNames"].(string); ok && namesStr != "" {
				sheetNames = splitRanges(namesStr)
			}

			info, err := client.CreateSpreadsheet(ctx, title, sheetNames)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Successfully created spreadsheet '%s'\nID: %s\nURL: %s",
				info.Title, info.ID, info.URL)), nil
		})

		// Create sheet tool
		createSheetTool := mcp.NewTool("sheets_create_sheet",
			mcp.WithDescription("Add a new sheet (tab) to an existing spreadsheet"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("spreadsheetId",
				mcp.Required(),
				mcp.Description("The ID of the spreadsheet"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The title of the new sheet"),
			),
		)

		s.AddTool(createSheetTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			account := common.GetAccountFromArgs(ctx, args)

			spreadsheetID, ok := args["spreadsheetId"].(string)
			if !ok || spreadsheetID == "" {
				return mcp.NewToolResultError("spreadsheetId is required"), nil
			}
			title, ok := args["title"].(string)
			if !ok || title == "" {
				return mcp.NewToolResultError("title is required"), nil
			}

			client, err := getSheetsClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sheetID, err := client.CreateSheet(ctx, spreadsheetID, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create sheet: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Successfully created sheet '%s' (id %d)", title, sheetID)), nil
		})
	}

	return nil
}

// registerValueTools registers cell value read/write tools
func registerValueTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Read values tool
	readTool := mcp.NewTool("sheets_read_values",
		mcp.WithDescription("Read cell values from a range in A1 notation (e.g. 'Sheet1!A1:C10')"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range to read, e.g. 'Sheet1!A1:C10'"),
		),
	)

	s.AddTool(readTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		rangeA1, ok := args["range"].(string)
		if !ok || rangeA1 == "" {
			return mcp.NewToolResultError("range is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vr, err := client.ReadValues(ctx, spreadsheetID, rangeA1)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read values: %v", err)), nil
		}
		if len(vr.Values) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Range '%s' is empty.", vr.Range)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully read %d rows from range '%s':\n%s",
			len(vr.Values), vr.Range, formatValueGrid(vr.Values))), nil
	})

	// Batch get values tool
	batchGetTool := mcp.NewTool("sheets_batch_get_values",
		mcp.WithDescription("Read cell values from multiple ranges in one call"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("ranges",
			mcp.Required(),
			mcp.Description("Comma-separated A1 ranges, e.g. 'Sheet1!A1:B5,Sheet2!C1:C10'"),
		),
	)

	s.AddTool(batchGetTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		rangesStr, ok := args["ranges"].(string)
		if !ok || rangesStr == "" {
			return mcp.NewToolResultError("ranges is required"), nil
		}
		ranges := splitRanges(rangesStr)
		if len(ranges) == 0 {
			return mcp.NewToolResultError("ranges must contain at least one range"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		valueRanges, err := client.BatchGetValues(ctx, spreadsheetID, ranges)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to batch get values: %v", err)), nil
		}

		var sb strings.Builder
		for _, vr := range valueRanges {
			sb.WriteString(fmt.Sprintf("Range '%s' (%d rows):\n%s\n", vr.Range, len(vr.Values), formatValueGrid(vr.Values)))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Modify values tool
	modifyTool := mcp.NewTool("sheets_modify_values",
		mcp.WithDescription("Write cell values to a range, or clear the range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range to write or clear"),
		),
		mcp.WithString("values",
			mcp.Description("JSON 2D array of values to write, e.g. [[\"a\",1],[\"b\",2]]. Omit when clearing."),
		),
		mcp.WithBoolean("clear",
			mcp.Description("Clear the range instead of writing values"),
		),
	)

	s.AddTool(modifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		rangeA1, ok := args["range"].(string)
		if !ok || rangeA1 == "" {
			return mcp.NewToolResultError("range is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if clear, _ := args["clear"].(bool); clear {
			clearedRange, err := client.ClearValues(ctx, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to clear values: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Successfully cleared range '%s'", clearedRange)), nil
		}

		valuesStr, ok := args["values"].(string)
		if !ok || valuesStr == "" {
			return mcp.NewToolResultError("values is required unless clear is true"), nil
		}
		values, err := parseValuesJSON(valuesStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updated, err := client.UpdateValues(ctx, spreadsheetID, rangeA1, values)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update values: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated %d cells in range '%s'", updated, rangeA1)), nil
	})

	// Append rows tool
	appendTool := mcp.NewTool("sheets_append_rows",
		mcp.WithDescription("Append rows after the last row of data in a range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range that locates the table to append to, e.g. 'Sheet1!A:C'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON 2D array of rows to append"),
		),
	)

	s.AddTool(appendTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		rangeA1, ok := args["range"].(string)
		if !ok || rangeA1 == "" {
			return mcp.NewToolResultError("range is required"), nil
		}
		valuesStr, ok := args["values"].(string)
		if !ok || valuesStr == "" {
			return mcp.NewToolResultError("values is required"), nil
		}
		values, err := parseValuesJSON(valuesStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updatedRange, updatedCells, err := client.AppendRows(ctx, spreadsheetID, rangeA1, values)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to append rows: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully appended %d rows (%d cells) at range '%s'",
			len(values), updatedCells, updatedRange)), nil
	})

	// Batch update values tool
	batchUpdateTool := mcp.NewTool("sheets_batch_update_values",
		mcp.WithDescription("Write cell values to multiple ranges in one call"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description(`JSON array of {"range": "...", "values": [[...]]} objects`),
		),
	)

	s.AddTool(batchUpdateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		dataStr, ok := args["data"].(string)
		if !ok || dataStr == "" {
			return mcp.NewToolResultError("data is required"), nil
		}

		var data []struct {
			Range  string  `json:"range"`
			Values [][]any `json:"values"`
		}
		if err := json.Unmarshal([]byte(dataStr), &data); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("data must be a JSON array of range/values objects: %v", err)), nil
		}
		if len(data) == 0 {
			return mcp.NewToolResultError("data must contain at least one entry"), nil
		}

		var rangeValues []sheets.RangeValues
		for _, d := range data {
			if d.Range == "" || len(d.Values) == 0 {
				return mcp.NewToolResultError("each data entry needs a range and values"), nil
			}
			rangeValues = append(rangeValues, sheets.RangeValues{Range: d.Range, Values: d.Values})
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updated, err := client.BatchUpdateValues(ctx, spreadsheetID, rangeValues)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to batch update values: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated %d cells across %d ranges", updated, len(rangeValues))), nil
	})

	return nil
}
