package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/sheets"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// parseRangeList resolves a comma-separated list of A1 range expressions
// against the sheets of a document
func parseRangeList(rangesStr string, infos []sheets.SheetInfo) ([]sheets.GridRange, error) {
	exprs := splitRanges(rangesStr)
	if len(exprs) == 0 {
		return nil, fmt.Errorf("ranges must contain at least one A1 range")
	}
	var out []sheets.GridRange
	for _, expr := range exprs {
		gr, err := sheets.ParseRange(expr, infos)
		if err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, nil
}

// rangeScopeInfos returns the sheet list used to resolve A1 ranges. When a
// sheet title is given it becomes the default for unqualified ranges, so it
// is moved to the front of the lookup list.
func rangeScopeInfos(sheetRules []sheets.SheetRules, sheetTitle string) ([]sheets.SheetInfo, error) {
	infos := sheets.SheetInfos(sheetRules)
	if sheetTitle == "" {
		return infos, nil
	}
	def, err := sheets.SelectSheet(sheetRules, sheetTitle)
	if err != nil {
		return nil, err
	}
	ordered := []sheets.SheetInfo{def.SheetInfo}
	for _, info := range infos {
		if info.ID != def.ID {
			ordered = append(ordered, info)
		}
	}
	return ordered, nil
}

// parseOptionalColor parses an optional hex color argument
func parseOptionalColor(args map[string]interface{}, key string) (*sheets.Color, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return nil, nil
	}
	color, err := sheets.ParseHexColor(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return color, nil
}

// ruleStateText re-reads the document and renders the sheet's rule list
// so every mutation echoes the resulting state
func ruleStateText(ctx context.Context, client *sheets.Client, spreadsheetID, sheetTitle string) string {
	sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
	if err != nil {
		return fmt.Sprintf("(could not re-read rule state: %v)", err)
	}
	target, err := sheets.SelectSheet(sheetRules, sheetTitle)
	if err != nil {
		return fmt.Sprintf("(could not re-read rule state: %v)", err)
	}
	return sheets.FormatRules(target.SheetInfo, target.Rules, sheets.SheetTitlesByID(sheetRules))
}

// registerFormattingTools registers cell formatting and conditional
// formatting tools
func registerFormattingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	// Format range tool
	formatTool := mcp.NewTool("sheets_format_range",
		mcp.WithDescription("Apply cell formatting (colors, bold, italic, font size, number format) to a range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1 range to format, e.g. 'Sheet1!A1:C10'"),
		),
		mcp.WithString("backgroundColor",
			mcp.Description("Background color as hex, e.g. '#FF0000'"),
		),
		mcp.WithString("textColor",
			mcp.Description("Text color as hex, e.g. '#000000'"),
		),
		mcp.WithBoolean("bold",
			mcp.Description("Set bold text"),
		),
		mcp.WithBoolean("italic",
			mcp.Description("Set italic text"),
		),
		mcp.WithNumber("fontSize",
			mcp.Description("Font size in points"),
		),
		mcp.WithString("numberFormat",
			mcp.Description("Number format type: NUMBER, NUMBER_WITH_GROUPING, CURRENCY, PERCENT, SCIENTIFIC, DATE, TIME, DATE_TIME, TEXT"),
		),
		mcp.WithString("numberPattern",
			mcp.Description("Custom number format pattern, e.g. '#,##0.00'"),
		),
	)

	s.AddTool(formatTool, common.InstrumentedToolHandlerWithService("sheets_format_range", "sheets", "write", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		gridRange, err := sheets.ParseRange(rangeA1, sheets.SheetInfos(sheetRules))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opts := sheets.CellFormatOptions{}
		if opts.Background, err = parseOptionalColor(args, "backgroundColor"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if opts.TextColor, err = parseOptionalColor(args, "textColor"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if bold, ok := args["bold"].(bool); ok {
			opts.Bold = &bold
		}
		if italic, ok := args["italic"].(bool); ok {
			opts.Italic = &italic
		}
		if size, ok := argInt(args, "fontSize"); ok {
			opts.FontSize = &size
		}
		opts.NumberFormat, _ = args["numberFormat"].(string)
		opts.NumberPattern, _ = args["numberPattern"].(string)

		if err := client.FormatRange(ctx, spreadsheetID, gridRange, opts); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to format range: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully formatted range '%s'", rangeA1)), nil
	}))

	registerConditionalFormattingTools(s, sc)
	return nil
}

// registerConditionalFormattingTools registers the conditional formatting
// rule tools. Every mutation validates against a fresh read of the rule
// list and echoes the resulting state.
func registerConditionalFormattingTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Add conditional formatting tool
	addTool := mcp.NewTool("sheets_add_conditional_formatting",
		mcp.WithDescription("Add a conditional formatting rule. Provide conditionType plus colors for a boolean rule, or gradientPoints for a color-scale rule."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Description("Default sheet for unqualified ranges (default: first sheet). Lookup is case-sensitive."),
		),
		mcp.WithString("ranges",
			mcp.Required(),
			mcp.Description("Comma-separated A1 ranges the rule applies to, e.g. 'A1:B10,D:D'. The rule is stored on the sheet the first range points at."),
		),
		mcp.WithString("conditionType",
			mcp.Description("Boolean condition type, e.g. NUMBER_GREATER, TEXT_CONTAINS, CUSTOM_FORMULA"),
		),
		mcp.WithString("values",
			mcp.Description("Condition values as a JSON array or a single scalar, e.g. '[100]' or 'needle'"),
		),
		mcp.WithString("backgroundColor",
			mcp.Description("Background color applied when the condition matches, as hex"),
		),
		mcp.WithString("textColor",
			mcp.Description("Text color applied when the condition matches, as hex"),
		),
		mcp.WithString("gradientPoints",
			mcp.Description(`Gradient points as a JSON array of {"color","type","value"} objects; types MIN, MAX, NUMBER, PERCENT, PERCENTILE`),
		),
		mcp.WithNumber("index",
			mcp.Description("Zero-based position to insert the rule at (default: append)"),
		),
	)

	s.AddTool(addTool, common.InstrumentedToolHandlerWithService("sheets_add_conditional_formatting", "sheets", "write", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		sheetTitle, _ := args["sheet"].(string)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		infos, err := rangeScopeInfos(sheetRules, sheetTitle)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		gridRanges, err := parseRangeList(rangesStr, infos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// The rule is stored on the sheet its ranges point at; a
		// qualified range can override the sheet argument.
		target, err := sheets.SelectSheetByID(sheetRules, gridRanges[0].SheetID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var rule sheets.ConditionalFormatRule
		if gradientStr, ok := args["gradientPoints"].(string); ok && gradientStr != "" {
			points, err := sheets.ParseGradientPoints(gradientStr)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rule, err = sheets.BuildGradientRule(gridRanges, points)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		} else {
			conditionType, _ := args["conditionType"].(string)
			if conditionType == "" {
				return mcp.NewToolResultError("conditionType is required unless gradientPoints is provided"), nil
			}
			values, err := sheets.ParseConditionValues(args["values"])
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			background, err := parseOptionalColor(args, "backgroundColor")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			textColor, err := parseOptionalColor(args, "textColor")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rule, err = sheets.BuildBooleanRule(gridRanges, conditionType, values, background, textColor)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		index := int64(len(target.Rules))
		var apiIndex *int64
		if _, present := args["index"]; present {
			idx, ok := argInt(args, "index")
			if !ok {
				return mcp.NewToolResultError("index must be an integer"), nil
			}
			index = idx
			apiIndex = &index
		}
		// Validate the insert position against the fresh rule list
		// before touching the remote document. Without an explicit
		// index the request omits it and the API appends.
		if _, err := sheets.InsertRuleAt(target.Rules, rule, int(index)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.AddConditionalFormatRule(ctx, spreadsheetID, rule, apiIndex); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add conditional formatting rule: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully added conditional formatting rule at index %d.\n\n%s",
			index, ruleStateText(ctx, client, spreadsheetID, target.Title))), nil
	}))

	// Update conditional formatting tool
	updateTool := mcp.NewTool("sheets_update_conditional_formatting",
		mcp.WithDescription("Update the conditional formatting rule at an index. Omitted fields keep their current value; supplying gradientPoints or a new conditionType switches the rule kind and replaces it."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Description("Sheet title the rule is stored on (default: first sheet)"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based index of the rule to update"),
		),
		mcp.WithString("ranges",
			mcp.Description("New comma-separated A1 ranges for the rule"),
		),
		mcp.WithString("conditionType",
			mcp.Description("New boolean condition type"),
		),
		mcp.WithString("values",
			mcp.Description("New condition values as a JSON array or single scalar"),
		),
		mcp.WithString("backgroundColor",
			mcp.Description("New background color as hex"),
		),
		mcp.WithString("textColor",
			mcp.Description("New text color as hex"),
		),
		mcp.WithString("gradientPoints",
			mcp.Description("New gradient points as a JSON array; replaces the rule with a color-scale rule"),
		),
	)

	s.AddTool(updateTool, common.InstrumentedToolHandlerWithService("sheets_update_conditional_formatting", "sheets", "write", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		index, ok := argInt(args, "index")
		if !ok {
			return mcp.NewToolResultError("index is required"), nil
		}
		sheetTitle, _ := args["sheet"].(string)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		target, err := sheets.SelectSheet(sheetRules, sheetTitle)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		upd := sheets.RuleUpdate{}
		if rangesStr, ok := args["ranges"].(string); ok && rangesStr != "" {
			if upd.Ranges, err = parseRangeList(rangesStr, sheets.SheetInfos(sheetRules)); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		upd.ConditionType, _ = args["conditionType"].(string)
		if _, present := args["values"]; present {
			if upd.Values, err = sheets.ParseConditionValues(args["values"]); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			upd.ValuesSet = true
		}
		if upd.Background, err = parseOptionalColor(args, "backgroundColor"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if upd.TextColor, err = parseOptionalColor(args, "textColor"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if gradientStr, ok := args["gradientPoints"].(string); ok && gradientStr != "" {
			if upd.GradientPoints, err = sheets.ParseGradientPoints(gradientStr); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		_, merged, err := sheets.UpdateRuleAt(target.Rules, int(index), upd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.UpdateConditionalFormatRule(ctx, spreadsheetID, target.ID, index, merged); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update conditional formatting rule: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated conditional formatting rule at index %d.\n\n%s",
			index, ruleStateText(ctx, client, spreadsheetID, target.Title))), nil
	}))

	// Delete conditional formatting tool
	deleteTool := mcp.NewTool("sheets_delete_conditional_formatting",
		mcp.WithDescription("Delete the conditional formatting rule at an index"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Description("Sheet title the rule is stored on (default: first sheet)"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based index of the rule to delete"),
		),
	)

	s.AddTool(deleteTool, common.InstrumentedToolHandlerWithService("sheets_delete_conditional_formatting", "sheets", "write", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		index, ok := argInt(args, "index")
		if !ok {
			return mcp.NewToolResultError("index is required"), nil
		}
		sheetTitle, _ := args["sheet"].(string)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sheetRules, err := client.SheetsWithRules(ctx, spreadsheetID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read spreadsheet: %v", err)), nil
		}
		target, err := sheets.SelectSheet(sheetRules, sheetTitle)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Validate the index against the fresh rule list before
		// touching the remote document.
		if _, _, err := sheets.DeleteRuleAt(target.Rules, int(index)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteConditionalFormatRule(ctx, spreadsheetID, target.ID, index); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete conditional formatting rule: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted conditional formatting rule at index %d.\n\n%s",
			index, ruleStateText(ctx, client, spreadsheetID, target.Title))), nil
	}))
}
