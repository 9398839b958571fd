package sheets_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/sheets"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// parseOffsets parses a comma-separated list of zero-based column offsets
func parseOffsets(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var n int64
		if _, err := fmt.Sscanf(part, "%d", &n); err != nil || n < 0 {
			return nil, fmt.Errorf("invalid column offset %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// resolveRange fetches the document's sheets and resolves a single A1
// range against them
func resolveRange(ctx context.Context, client *sheets.Client, spreadsheetID, rangeA1 string) (sheets.GridRange, error) {
	sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
	if err != nil {
		return sheets.GridRange{}, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	return sheets.ParseRange(rangeA1, sheets.SheetInfos(sheetRules))
}

// registerStructureTools registers named range, data validation,
// protection, chart, and pivot table tools
func registerStructureTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List named ranges tool (read-only, always available)
	listNamedTool := mcp.NewTool("sheets_list_named_ranges",
		mcp.WithDescription("List the named ranges of a spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
	)

	s.AddTool(listNamedTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		namedRanges, err := client.ListNamedRanges(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list named ranges: %v", err)), nil
		}
		if len(namedRanges) == 0 {
			return mcp.NewToolResultText("No named ranges found."), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		titles := sheets.SheetTitlesByID(sheetRules)

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Named ranges (%d):\n", len(namedRanges)))
		for _, nr := range namedRanges {
			sb.WriteString(fmt.Sprintf("- %s: %s (id %s)\n", nr.Name,
				sheets.FormatGridRange(nr.Range, -1, titles), nr.ID))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Create named range tool
	createNamedTool := mcp.NewTool("sheets_create_named_range",
		mcp.WithDescription("Register a name for a range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name to register"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range the name refers to"),
		),
	)

	s.AddTool(createNamedTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		rangeA1, ok := args["range"].(string)
		if !ok || rangeA1 == "" {
			return mcp.NewToolResultError("range is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		gridRange, err := resolveRange(ctx, client, spreadsheetID, rangeA1)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		id, err := client.CreateNamedRange(ctx, spreadsheetID, name, gridRange)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create named range: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created named range '%s' (id %s)", name, id)), nil
	})

	// Update named range tool
	updateNamedTool := mcp.NewTool("sheets_update_named_range",
		mcp.WithDescription("Rename a named range and/or move it to a new range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("namedRangeId",
			mcp.Required(),
			mcp.Description("The ID of the named range to update"),
		),
		mcp.WithString("name",
			mcp.Description("The new name"),
		),
		mcp.WithString("range",
			mcp.Description("The new A1 range"),
		),
	)

	s.AddTool(updateNamedTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		namedRangeID, ok := args["namedRangeId"].(string)
		if !ok || namedRangeID == "" {
			return mcp.NewToolResultError("namedRangeId is required"), nil
		}
		newName, _ := args["name"].(string)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var gridRange *sheets.GridRange
		if rangeA1, ok := args["range"].(string); ok && rangeA1 != "" {
			gr, err := resolveRange(ctx, client, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			gridRange = &gr
		}

		if err := client.UpdateNamedRange(ctx, spreadsheetID, namedRangeID, newName, gridRange); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update named range: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated named range %s", namedRangeID)), nil
	})

	// Delete named range tool
	deleteNamedTool := mcp.NewTool("sheets_delete_named_range",
		mcp.WithDescription("Remove a named range. Cell contents are not affected."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("namedRangeId",
			mcp.Required(),
			mcp.Description("The ID of the named range to delete"),
		),
	)

	s.AddTool(deleteNamedTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		namedRangeID, ok := args["namedRangeId"].(string)
		if !ok || namedRangeID == "" {
			return mcp.NewToolResultError("namedRangeId is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteNamedRange(ctx, spreadsheetID, namedRangeID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete named range: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted named range %s", namedRangeID)), nil
	})

	// Add data validation tool
	validationTool := mcp.NewTool("sheets_add_data_validation",
		mcp.WithDescription("Apply a data validation rule to a range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range to validate"),
		),
		mcp.WithString("conditionType",
			mcp.Required(),
			mcp.Description("Condition type, e.g. ONE_OF_LIST, NUMBER_BETWEEN, CUSTOM_FORMULA"),
		),
		mcp.WithString("values",
			mcp.Description("Condition values as a JSON array or single scalar"),
		),
		mcp.WithString("inputMessage",
			mcp.Description("Help message shown when the cell is selected"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Reject invalid input instead of only warning"),
		),
		mcp.WithBoolean("showDropdown",
			mcp.Description("Show a dropdown for list conditions"),
		),
	)

	s.AddTool(validationTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		conditionType, ok := args["conditionType"].(string)
		if !ok || conditionType == "" {
			return mcp.NewToolResultError("conditionType is required"), nil
		}

		values, err := sheets.ParseConditionValues(args["values"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		gridRange, err := resolveRange(ctx, client, spreadsheetID, rangeA1)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		strict, _ := args["strict"].(bool)
		showDropdown, _ := args["showDropdown"].(bool)
		inputMessage, _ := args["inputMessage"].(string)

		opts := sheets.DataValidationOptions{
			ConditionType: strings.ToUpper(conditionType),
			Values:        values,
			InputMessage:  inputMessage,
			Strict:        strict,
			ShowDropdown:  showDropdown,
		}
		if err := client.AddDataValidation(ctx, spreadsheetID, gridRange, opts); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add data validation: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully added %s data validation to range '%s'",
			opts.ConditionType, rangeA1)), nil
	})

	// Set protected range tool
	protectTool := mcp.NewTool("sheets_set_protected_range",
		mcp.WithDescription("Protect a range from edits, optionally limited to specific editors"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range to protect"),
		),
		mcp.WithString("description",
			mcp.Description("Description shown in the protected ranges list"),
		),
		mcp.WithBoolean("warningOnly",
			mcp.Description("Show a warning on edit instead of blocking it"),
		),
		mcp.WithString("editors",
			mcp.Description("Comma-separated emails allowed to edit. Ignored when warningOnly is set."),
		),
	)

	s.AddTool(protectTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		gridRange, err := resolveRange(ctx, client, spreadsheetID, rangeA1)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		warningOnly, _ := args["warningOnly"].(bool)
		description, _ := args["description"].(string)
		var editors []string
		if editorsStr, ok := args["editors"].(string); ok && editorsStr != "" {
			editors = splitRanges(editorsStr)
		}

		id, err := client.SetProtectedRange(ctx, spreadsheetID, gridRange, sheets.ProtectedRangeOptions{
			Description: description,
			WarningOnly: warningOnly,
			Editors:     editors,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to protect range: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully protected range '%s' (id %d)", rangeA1, id)), nil
	})

	// Create chart tool
	chartTool := mcp.NewTool("sheets_create_chart",
		mcp.WithDescription("Create a basic chart over a data range. The first column is the domain, remaining columns are series."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("chartType",
			mcp.Required(),
			mcp.Description("Chart type: COLUMN, BAR, LINE, AREA, PIE, or SCATTER"),
		),
		mcp.WithString("dataRange",
			mcp.Required(),
			mcp.Description("The A1 range containing the chart data"),
		),
		mcp.WithString("anchorCell",
			mcp.Required(),
			mcp.Description("The cell the chart's top-left corner is anchored at, e.g. 'E2'"),
		),
		mcp.WithString("title",
			mcp.Description("The chart title"),
		),
	)

	s.AddTool(chartTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		chartType, ok := args["chartType"].(string)
		if !ok || chartType == "" {
			return mcp.NewToolResultError("chartType is required"), nil
		}
		dataRangeA1, ok := args["dataRange"].(string)
		if !ok || dataRangeA1 == "" {
			return mcp.NewToolResultError("dataRange is required"), nil
		}
		anchorA1, ok := args["anchorCell"].(string)
		if !ok || anchorA1 == "" {
			return mcp.NewToolResultError("anchorCell is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		infos := sheets.SheetInfos(sheetRules)
		dataRange, err := sheets.ParseRange(dataRangeA1, infos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		anchorCell, err := sheets.ParseRange(anchorA1, infos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		title, _ := args["title"].(string)
		chartID, err := client.CreateChart(ctx, spreadsheetID, sheets.ChartOptions{
			Title:      title,
			ChartType:  strings.ToUpper(chartType),
			DataRange:  dataRange,
			AnchorCell: anchorCell,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create chart: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created %s chart (id %d) over range '%s'",
			strings.ToUpper(chartType), chartID, dataRangeA1)), nil
	})

	// Update chart tool
	updateChartTool := mcp.NewTool("sheets_update_chart",
		mcp.WithDescription("Update an existing chart's title and/or type. Fields not provided keep their current value."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithNumber("chartId",
			mcp.Required(),
			mcp.Description("The ID of the chart to update, as reported when the chart was created"),
		),
		mcp.WithString("title",
			mcp.Description("The new chart title"),
		),
		mcp.WithString("chartType",
			mcp.Description("The new chart type: COLUMN, BAR, LINE, AREA, PIE, or SCATTER"),
		),
	)

	s.AddTool(updateChartTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		chartID, ok := argInt(args, "chartId")
		if !ok {
			return mcp.NewToolResultError("chartId is required"), nil
		}
		title, _ := args["title"].(string)
		chartType, _ := args["chartType"].(string)
		if title == "" && chartType == "" {
			return mcp.NewToolResultError("at least one of title or chartType is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.UpdateChart(ctx, spreadsheetID, chartID, title, strings.ToUpper(chartType)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update chart: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated chart %d", chartID)), nil
	})

	// Create pivot table tool
	pivotTool := mcp.NewTool("sheets_create_pivot_table",
		mcp.WithDescription("Create a pivot table from a source range, anchored at a target cell"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sourceRange",
			mcp.Required(),
			mcp.Description("The A1 range containing the source data, including headers"),
		),
		mcp.WithString("targetCell",
			mcp.Required(),
			mcp.Description("The cell the pivot table is written at, e.g. 'Sheet2!A1'"),
		),
		mcp.WithString("rowOffsets",
			mcp.Required(),
			mcp.Description("Comma-separated zero-based source column offsets used as row groups"),
		),
		mcp.WithString("colOffsets",
			mcp.Description("Comma-separated zero-based source column offsets used as column groups"),
		),
		mcp.WithNumber("valueOffset",
			mcp.Required(),
			mcp.Description("Zero-based source column offset aggregated as the value"),
		),
		mcp.WithString("function",
			mcp.Description("Aggregation function: SUM, COUNT, AVERAGE, MAX, MIN (default: SUM)"),
		),
	)

	s.AddTool(pivotTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		sourceA1, ok := args["sourceRange"].(string)
		if !ok || sourceA1 == "" {
			return mcp.NewToolResultError("sourceRange is required"), nil
		}
		targetA1, ok := args["targetCell"].(string)
		if !ok || targetA1 == "" {
			return mcp.NewToolResultError("targetCell is required"), nil
		}
		rowOffsetsStr, ok := args["rowOffsets"].(string)
		if !ok || rowOffsetsStr == "" {
			return mcp.NewToolResultError("rowOffsets is required"), nil
		}
		valueOffset, ok := argInt(args, "valueOffset")
		if !ok {
			return mcp.NewToolResultError("valueOffset is required"), nil
		}

		rowOffsets, err := parseOffsets(rowOffsetsStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var colOffsets []int64
		if colStr, ok := args["colOffsets"].(string); ok && colStr != "" {
			if colOffsets, err = parseOffsets(colStr); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		function, _ := args["function"].(string)
		if function == "" {
			function = "SUM"
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		infos := sheets.SheetInfos(sheetRules)
		sourceRange, err := sheets.ParseRange(sourceA1, infos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		targetCell, err := sheets.ParseRange(targetA1, infos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		err = client.CreatePivotTable(ctx, spreadsheetID, sheets.PivotTableOptions{
			SourceRange: sourceRange,
			TargetCell:  targetCell,
			RowOffsets:  rowOffsets,
			ColOffsets:  colOffsets,
			ValueOffset: valueOffset,
			Function:    strings.ToUpper(function),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create pivot table: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created pivot table at '%s' from source '%s'",
			targetA1, sourceA1)), nil
	})

	return nil
}
