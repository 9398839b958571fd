package sheets

import (
	"context"
	"fmt"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Sheets service. Drive is used only to list
// spreadsheet files.
type Client struct {
	svc     *sheetsapi.Service
	drive   *drive.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Sheets client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w. Please authenticate with Google through your MCP client", account, err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		svc:     svc,
		drive:   driveSvc,
		account: account,
	}, nil
}

// SpreadsheetFile is a spreadsheet as listed from Drive.
type SpreadsheetFile struct {
	ID           string
	Name         string
	ModifiedTime string
	WebViewLink  string
}

// ListSpreadsheets lists spreadsheet files the user has access to,
// most recently modified first.
func (c *Client) ListSpreadsheets(ctx context.Context, maxResults int64) ([]SpreadsheetFile, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	result, err := c.drive.Files.List().
		Q("mimeType='application/vnd.google-apps.spreadsheet'").
		PageSize(maxResults).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,modifiedTime,webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list spreadsheets: %w", err)
	}

	var files []SpreadsheetFile
	for _, f := range result.Files {
		files = append(files, SpreadsheetFile{
			ID:           f.Id,
			Name:         f.Name,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return files, nil
}

// SpreadsheetInfo summarizes a spreadsheet document and its sheets.
type SpreadsheetInfo struct {
	ID     string
	Title  string
	URL    string
	Sheets []SheetSummary
}

// SheetSummary describes one sheet within a spreadsheet.
type SheetSummary struct {
	SheetInfo
	Index       int64
	RowCount    int64
	ColumnCount int64
	RuleCount   int
}

// GetSpreadsheetInfo fetches document metadata including per-sheet
// dimensions and conditional-format rule counts.
func (c *Client) GetSpreadsheetInfo(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	doc, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId,spreadsheetUrl,properties(title),sheets(properties(sheetId,title,index,gridProperties(rowCount,columnCount)),conditionalFormats)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	info := &SpreadsheetInfo{
		ID:  doc.SpreadsheetId,
		URL: doc.SpreadsheetUrl,
	}
	if doc.Properties != nil {
		info.Title = doc.Properties.Title
	}
	for _, s := range doc.Sheets {
		summary := SheetSummary{RuleCount: len(s.ConditionalFormats)}
		if p := s.Properties; p != nil {
			summary.ID = p.SheetId
			summary.Title = p.Title
			summary.Index = p.Index
			if p.GridProperties != nil {
				summary.RowCount = p.GridProperties.RowCount
				summary.ColumnCount = p.GridProperties.ColumnCount
			}
		}
		info.Sheets = append(info.Sheets, summary)
	}
	return info, nil
}

// SheetsWithRules fetches the sheet list with each sheet's current
// ordered conditional-format rule list. Mutating operations call this
// immediately before computing the new state; no caching happens in
// between, so the engine always works against a fresh read.
func (c *Client) SheetsWithRules(ctx context.Context, spreadsheetID string) ([]SheetRules, error) {
	doc, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(sheetId,title),conditionalFormats)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	var out []SheetRules
	for _, s := range doc.Sheets {
		sr := SheetRules{}
		if s.Properties != nil {
			sr.ID = s.Properties.SheetId
			sr.Title = s.Properties.Title
		}
		for _, r := range s.ConditionalFormats {
			sr.Rules = append(sr.Rules, fromAPIRule(r))
		}
		out = append(out, sr)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return out, nil
}

// SheetInfos projects a SheetRules list down to sheet identities for
// range resolution.
func SheetInfos(sheets []SheetRules) []SheetInfo {
	out := make([]SheetInfo, len(sheets))
	for i, s := range sheets {
		out[i] = s.SheetInfo
	}
	return out
}

// SheetTitlesByID builds the id→title lookup used by the formatter for
// cross-sheet ranges.
func SheetTitlesByID(sheets []SheetRules) map[int64]string {
	out := make(map[int64]string, len(sheets))
	for _, s := range sheets {
		out[s.ID] = s.Title
	}
	return out
}

// SelectSheet picks the sheet with the given title, or the first sheet
// in document order when title is empty.
func SelectSheet(sheets []SheetRules, title string) (*SheetRules, error) {
	if len(sheets) == 0 {
		return nil, validationErrorf("spreadsheet has no sheets")
	}
	if title == "" {
		return &sheets[0], nil
	}
	for i := range sheets {
		if sheets[i].Title == title {
			return &sheets[i], nil
		}
	}
	return nil, validationErrorf("sheet %q not found", title)
}

// SelectSheetByID picks the sheet with the given sheet ID.
func SelectSheetByID(sheets []SheetRules, id int64) (*SheetRules, error) {
	for i := range sheets {
		if sheets[i].ID == id {
			return &sheets[i], nil
		}
	}
	return nil, validationErrorf("sheet with id %d not found", id)
}

// ReadValues reads cell values for an A1 range.
func (c *Client) ReadValues(ctx context.Context, spreadsheetID, rangeA1 string) (*sheetsapi.ValueRange, error) {
	result, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeA1, err)
	}
	return result, nil
}

// UpdateValues writes a 2D array of values to an A1 range using
// USER_ENTERED input interpretation. Returns the number of updated cells.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) (int64, error) {
	body := &sheetsapi.ValueRange{Values: values}
	result, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rangeA1, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to update range %s: %w", rangeA1, err)
	}
	return result.UpdatedCells, nil
}

// ClearValues clears all values in an A1 range. Returns the cleared
// range as reported by the API.
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, rangeA1 string) (string, error) {
	result, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, rangeA1, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear range %s: %w", rangeA1, err)
	}
	return result.ClearedRange, nil
}

// AppendRows appends rows after the last row with data in the given
// range's table. Returns the range the rows were written to.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) (string, int64, error) {
	body := &sheetsapi.ValueRange{Values: values}
	result, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rangeA1, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", 0, fmt.Errorf("failed to append to range %s: %w", rangeA1, err)
	}
	if result.Updates == nil {
		return rangeA1, 0, nil
	}
	return result.Updates.UpdatedRange, result.Updates.UpdatedCells, nil
}

// BatchGetValues reads multiple A1 ranges in one call.
func (c *Client) BatchGetValues(ctx context.Context, spreadsheetID string, ranges []string) ([]*sheetsapi.ValueRange, error) {
	result, err := c.svc.Spreadsheets.Values.BatchGet(spreadsheetID).
		Ranges(ranges...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch read ranges: %w", err)
	}
	return result.ValueRanges, nil
}

// RangeValues pairs an A1 range with the values to write there.
type RangeValues struct {
	Range  string
	Values [][]any
}

// BatchUpdateValues writes multiple ranges in one call. Returns the
// total number of updated cells.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []RangeValues) (int64, error) {
	body := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
	}
	for _, d := range data {
		body.Data = append(body.Data, &sheetsapi.ValueRange{
			Range:  d.Range,
			Values: d.Values,
		})
	}
	result, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, body).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to batch update values: %w", err)
	}
	return result.TotalUpdatedCells, nil
}

// CreateSpreadsheet creates a new spreadsheet with the given title and
// optional sheet names.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetNames []string) (*SpreadsheetInfo, error) {
	doc := &sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetNames {
		doc.Sheets = append(doc.Sheets, &sheetsapi.Sheet{
			Properties: &sheetsapi.SheetProperties{Title: name},
		})
	}
	created, err := c.svc.Spreadsheets.Create(doc).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	info := &SpreadsheetInfo{
		ID:  created.SpreadsheetId,
		URL: created.SpreadsheetUrl,
	}
	if created.Properties != nil {
		info.Title = created.Properties.Title
	}
	for _, s := range created.Sheets {
		if s.Properties != nil {
			info.Sheets = append(info.Sheets, SheetSummary{
				SheetInfo: SheetInfo{ID: s.Properties.SheetId, Title: s.Properties.Title},
				Index:     s.Properties.Index,
			})
		}
	}
	return info, nil
}

// CreateSheet adds a new sheet (tab) to an existing spreadsheet.
// Returns the new sheet's id.
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, title string) (int64, error) {
	resp, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		AddSheet: &sheetsapi.AddSheetRequest{
			Properties: &sheetsapi.SheetProperties{Title: title},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet %q: %w", title, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		return resp.Replies[0].AddSheet.Properties.SheetId, nil
	}
	return 0, nil
}

// CellFormatOptions carries the formatting applied by FormatRange. Nil
// colors leave that aspect unchanged; an empty NumberFormat leaves the
// number format unchanged.
type CellFormatOptions struct {
	Background    *Color
	TextColor     *Color
	Bold          *bool
	Italic        *bool
	FontSize      *int64
	NumberFormat  string
	NumberPattern string
}

// FormatRange applies cell formatting to a resolved grid range via a
// repeatCell request.
func (c *Client) FormatRange(ctx context.Context, spreadsheetID string, gridRange GridRange, opts CellFormatOptions) error {
	format := &sheetsapi.CellFormat{}
	var fields []string

	if opts.Background != nil {
		format.BackgroundColor = toAPIColor(opts.Background)
		fields = append(fields, "userEnteredFormat.backgroundColor")
	}
	textFormat := &sheetsapi.TextFormat{}
	textTouched := false
	if opts.TextColor != nil {
		textFormat.ForegroundColor = toAPIColor(opts.TextColor)
		fields = append(fields, "userEnteredFormat.textFormat.foregroundColor")
		textTouched = true
	}
	if opts.Bold != nil {
		textFormat.Bold = *opts.Bold
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Bold")
		fields = append(fields, "userEnteredFormat.textFormat.bold")
		textTouched = true
	}
	if opts.Italic != nil {
		textFormat.Italic = *opts.Italic
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Italic")
		fields = append(fields, "userEnteredFormat.textFormat.italic")
		textTouched = true
	}
	if opts.FontSize != nil {
		textFormat.FontSize = *opts.FontSize
		fields = append(fields, "userEnteredFormat.textFormat.fontSize")
		textTouched = true
	}
	if textTouched {
		format.TextFormat = textFormat
	}
	if opts.NumberFormat != "" {
		if !NumberFormatTypes[opts.NumberFormat] {
			return validationErrorf("number_format must be one of NUMBER, NUMBER_WITH_GROUPING, CURRENCY, PERCENT, SCIENTIFIC, DATE, TIME, DATE_TIME, TEXT")
		}
		nf := &sheetsapi.NumberFormat{Type: opts.NumberFormat}
		if opts.NumberFormat == "NUMBER_WITH_GROUPING" {
			nf.Type = "NUMBER"
			nf.Pattern = "#,##0.00"
		}
		if opts.NumberPattern != "" {
			nf.Pattern = opts.NumberPattern
		}
		format.NumberFormat = nf
		fields = append(fields, "userEnteredFormat.numberFormat")
	}
	if len(fields) == 0 {
		return validationErrorf("no formatting specified")
	}

	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		RepeatCell: &sheetsapi.RepeatCellRequest{
			Range:  toAPIGridRange(gridRange),
			Cell:   &sheetsapi.CellData{UserEnteredFormat: format},
			Fields: strings.Join(fields, ","),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to format range: %w", err)
	}
	return nil
}

// AddConditionalFormatRule inserts a rule at the given index on the
// remote document. A nil index appends.
func (c *Client) AddConditionalFormatRule(ctx context.Context, spreadsheetID string, rule ConditionalFormatRule, index *int64) error {
	req := &sheetsapi.AddConditionalFormatRuleRequest{
		Rule: toAPIRule(rule),
	}
	if index != nil {
		req.Index = *index
		req.ForceSendFields = []string{"Index"}
	}
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{AddConditionalFormatRule: req})
	if err != nil {
		return fmt.Errorf("failed to add conditional format rule: %w", err)
	}
	return nil
}

// UpdateConditionalFormatRule replaces the rule at the given index on
// the sheet identified by sheetID.
func (c *Client) UpdateConditionalFormatRule(ctx context.Context, spreadsheetID string, sheetID int64, index int64, rule ConditionalFormatRule) error {
	req := &sheetsapi.UpdateConditionalFormatRuleRequest{
		SheetId:         sheetID,
		Index:           index,
		Rule:            toAPIRule(rule),
		ForceSendFields: []string{"SheetId", "Index"},
	}
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{UpdateConditionalFormatRule: req})
	if err != nil {
		return fmt.Errorf("failed to update conditional format rule: %w", err)
	}
	return nil
}

// DeleteConditionalFormatRule removes the rule at the given index on
// the sheet identified by sheetID.
func (c *Client) DeleteConditionalFormatRule(ctx context.Context, spreadsheetID string, sheetID int64, index int64) error {
	req := &sheetsapi.DeleteConditionalFormatRuleRequest{
		SheetId:         sheetID,
		Index:           index,
		ForceSendFields: []string{"SheetId", "Index"},
	}
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{DeleteConditionalFormatRule: req})
	if err != nil {
		return fmt.Errorf("failed to delete conditional format rule: %w", err)
	}
	return nil
}

// NamedRangeInfo describes a named range in a spreadsheet.
type NamedRangeInfo struct {
	ID    string
	Name  string
	Range GridRange
}

// ListNamedRanges lists the named ranges of a spreadsheet.
func (c *Client) ListNamedRanges(ctx context.Context, spreadsheetID string) ([]NamedRangeInfo, error) {
	doc, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("namedRanges").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get named ranges: %w", err)
	}
	var out []NamedRangeInfo
	for _, nr := range doc.NamedRanges {
		out = append(out, NamedRangeInfo{
			ID:    nr.NamedRangeId,
			Name:  nr.Name,
			Range: fromAPIGridRange(nr.Range),
		})
	}
	return out, nil
}

// CreateNamedRange registers a name for a resolved grid range. Returns
// the new named range id.
func (c *Client) CreateNamedRange(ctx context.Context, spreadsheetID, name string, gridRange GridRange) (string, error) {
	resp, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		AddNamedRange: &sheetsapi.AddNamedRangeRequest{
			NamedRange: &sheetsapi.NamedRange{
				Name:  name,
				Range: toAPIGridRange(gridRange),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create named range %q: %w", name, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddNamedRange != nil && resp.Replies[0].AddNamedRange.NamedRange != nil {
		return resp.Replies[0].AddNamedRange.NamedRange.NamedRangeId, nil
	}
	return "", nil
}

// UpdateNamedRange renames a named range and/or moves it to a new grid
// range.
func (c *Client) UpdateNamedRange(ctx context.Context, spreadsheetID, namedRangeID, newName string, gridRange *GridRange) error {
	nr := &sheetsapi.NamedRange{NamedRangeId: namedRangeID}
	var fields []string
	if newName != "" {
		nr.Name = newName
		fields = append(fields, "name")
	}
	if gridRange != nil {
		nr.Range = toAPIGridRange(*gridRange)
		fields = append(fields, "range")
	}
	if len(fields) == 0 {
		return validationErrorf("no changes specified for named range")
	}
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		UpdateNamedRange: &sheetsapi.UpdateNamedRangeRequest{
			NamedRange: nr,
			Fields:     strings.Join(fields, ","),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update named range: %w", err)
	}
	return nil
}

// DeleteNamedRange removes a named range by id. Cell contents are not
// affected.
func (c *Client) DeleteNamedRange(ctx context.Context, spreadsheetID, namedRangeID string) error {
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		DeleteNamedRange: &sheetsapi.DeleteNamedRangeRequest{
			NamedRangeId: namedRangeID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete named range: %w", err)
	}
	return nil
}

// DataValidationOptions configures a setDataValidation request.
type DataValidationOptions struct {
	ConditionType string
	Values        []string
	InputMessage  string
	Strict        bool
	ShowDropdown  bool
}

// AddDataValidation applies a data validation rule to a resolved grid
// range.
func (c *Client) AddDataValidation(ctx context.Context, spreadsheetID string, gridRange GridRange, opts DataValidationOptions) error {
	condType := opts.ConditionType
	if !ConditionTypes[condType] {
		return validationErrorf("condition_type must be one of %s", strings.Join(ConditionTypeList(), ", "))
	}
	cond := &sheetsapi.BooleanCondition{Type: condType}
	for _, v := range opts.Values {
		cond.Values = append(cond.Values, &sheetsapi.ConditionValue{UserEnteredValue: v})
	}
	rule := &sheetsapi.DataValidationRule{
		Condition:    cond,
		InputMessage: opts.InputMessage,
		Strict:       opts.Strict,
		ShowCustomUi: opts.ShowDropdown,
	}
	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		SetDataValidation: &sheetsapi.SetDataValidationRequest{
			Range: toAPIGridRange(gridRange),
			Rule:  rule,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set data validation: %w", err)
	}
	return nil
}

// ProtectedRangeOptions configures an addProtectedRange request.
type ProtectedRangeOptions struct {
	Description string
	WarningOnly bool
	Editors     []string
}

// SetProtectedRange protects a resolved grid range. Returns the new
// protected range id.
func (c *Client) SetProtectedRange(ctx context.Context, spreadsheetID string, gridRange GridRange, opts ProtectedRangeOptions) (int64, error) {
	pr := &sheetsapi.ProtectedRange{
		Range:       toAPIGridRange(gridRange),
		Description: opts.Description,
		WarningOnly: opts.WarningOnly,
	}
	if len(opts.Editors) > 0 && !opts.WarningOnly {
		pr.Editors = &sheetsapi.Editors{Users: opts.Editors}
	}
	resp, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		AddProtectedRange: &sheetsapi.AddProtectedRangeRequest{ProtectedRange: pr},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add protected range: %w", err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddProtectedRange != nil && resp.Replies[0].AddProtectedRange.ProtectedRange != nil {
		return resp.Replies[0].AddProtectedRange.ProtectedRange.ProtectedRangeId, nil
	}
	return 0, nil
}

// ChartOptions configures a createChart request. The chart is anchored
// at AnchorCell on the data's sheet.
type ChartOptions struct {
	Title      string
	ChartType  string // e.g. COLUMN, BAR, LINE, AREA, PIE, SCATTER
	DataRange  GridRange
	AnchorCell GridRange
}

// CreateChart adds a basic chart over the given data range. The first
// column is used as the domain, remaining columns as series. Returns
// the new chart id.
func (c *Client) CreateChart(ctx context.Context, spreadsheetID string, opts ChartOptions) (int64, error) {
	domain := opts.DataRange
	if domain.StartColumnIndex != nil {
		domain.EndColumnIndex = int64Ptr(*domain.StartColumnIndex + 1)
	}

	var series []*sheetsapi.BasicChartSeries
	if opts.DataRange.StartColumnIndex != nil && opts.DataRange.EndColumnIndex != nil {
		for col := *opts.DataRange.StartColumnIndex + 1; col < *opts.DataRange.EndColumnIndex; col++ {
			sr := opts.DataRange
			sr.StartColumnIndex = int64Ptr(col)
			sr.EndColumnIndex = int64Ptr(col + 1)
			series = append(series, &sheetsapi.BasicChartSeries{
				Series: &sheetsapi.ChartData{
					SourceRange: &sheetsapi.ChartSourceRange{
						Sources: []*sheetsapi.GridRange{toAPIGridRange(sr)},
					},
				},
				TargetAxis: "LEFT_AXIS",
			})
		}
	}

	chartSpec := &sheetsapi.ChartSpec{
		Title: opts.Title,
		BasicChart: &sheetsapi.BasicChartSpec{
			ChartType:      opts.ChartType,
			LegendPosition: "BOTTOM_LEGEND",
			HeaderCount:    1,
			Domains: []*sheetsapi.BasicChartDomain{{
				Domain: &sheetsapi.ChartData{
					SourceRange: &sheetsapi.ChartSourceRange{
						Sources: []*sheetsapi.GridRange{toAPIGridRange(domain)},
					},
				},
			}},
			Series: series,
		},
	}
	if opts.ChartType == "PIE" {
		chartSpec.BasicChart = nil
		chartSpec.PieChart = &sheetsapi.PieChartSpec{
			LegendPosition: "BOTTOM_LEGEND",
			Domain: &sheetsapi.ChartData{
				SourceRange: &sheetsapi.ChartSourceRange{
					Sources: []*sheetsapi.GridRange{toAPIGridRange(domain)},
				},
			},
		}
		if len(series) > 0 {
			chartSpec.PieChart.Series = series[0].Series
		}
	}

	anchor := &sheetsapi.GridCoordinate{
		SheetId:         opts.AnchorCell.SheetID,
		ForceSendFields: []string{"SheetId"},
	}
	if opts.AnchorCell.StartRowIndex != nil {
		anchor.RowIndex = *opts.AnchorCell.StartRowIndex
		anchor.ForceSendFields = append(anchor.ForceSendFields, "RowIndex")
	}
	if opts.AnchorCell.StartColumnIndex != nil {
		anchor.ColumnIndex = *opts.AnchorCell.StartColumnIndex
		anchor.ForceSendFields = append(anchor.ForceSendFields, "ColumnIndex")
	}

	resp, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		AddChart: &sheetsapi.AddChartRequest{
			Chart: &sheetsapi.EmbeddedChart{
				Spec: chartSpec,
				Position: &sheetsapi.EmbeddedObjectPosition{
					OverlayPosition: &sheetsapi.OverlayPosition{
						AnchorCell: anchor,
					},
				},
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create chart: %w", err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddChart != nil && resp.Replies[0].AddChart.Chart != nil {
		return resp.Replies[0].AddChart.Chart.ChartId, nil
	}
	return 0, nil
}

// UpdateChart updates a chart's title and/or type via updateChartSpec.
// Only the supplied fields are sent; at least one must be set.
func (c *Client) UpdateChart(ctx context.Context, spreadsheetID string, chartID int64, newTitle, newChartType string) error {
	if newTitle == "" && newChartType == "" {
		return validationErrorf("at least one of newTitle or newChartType must be provided")
	}

	spec := &sheetsapi.ChartSpec{}
	if newTitle != "" {
		spec.Title = newTitle
	}
	if newChartType != "" {
		spec.BasicChart = &sheetsapi.BasicChartSpec{ChartType: newChartType}
	}

	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		UpdateChartSpec: &sheetsapi.UpdateChartSpecRequest{
			ChartId: chartID,
			Spec:    spec,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update chart: %w", err)
	}
	return nil
}

// PivotTableOptions configures a pivot table written to TargetCell.
type PivotTableOptions struct {
	SourceRange GridRange
	TargetCell  GridRange
	RowOffsets  []int64 // column offsets within the source used as row groups
	ColOffsets  []int64 // column offsets used as column groups
	ValueOffset int64   // column offset aggregated as the value
	Function    string  // SUM, COUNT, AVERAGE, MAX, MIN
}

// CreatePivotTable writes a pivot table anchored at the target cell via
// an updateCells request.
func (c *Client) CreatePivotTable(ctx context.Context, spreadsheetID string, opts PivotTableOptions) error {
	pivot := &sheetsapi.PivotTable{
		Source: toAPIGridRange(opts.SourceRange),
	}
	for _, off := range opts.RowOffsets {
		pivot.Rows = append(pivot.Rows, &sheetsapi.PivotGroup{
			SourceColumnOffset: off,
			ShowTotals:         true,
			SortOrder:          "ASCENDING",
			ForceSendFields:    []string{"SourceColumnOffset"},
		})
	}
	for _, off := range opts.ColOffsets {
		pivot.Columns = append(pivot.Columns, &sheetsapi.PivotGroup{
			SourceColumnOffset: off,
			ShowTotals:         true,
			SortOrder:          "ASCENDING",
			ForceSendFields:    []string{"SourceColumnOffset"},
		})
	}
	function := opts.Function
	if function == "" {
		function = "SUM"
	}
	pivot.Values = append(pivot.Values, &sheetsapi.PivotValue{
		SourceColumnOffset: opts.ValueOffset,
		SummarizeFunction:  function,
		ForceSendFields:    []string{"SourceColumnOffset"},
	})

	start := &sheetsapi.GridCoordinate{
		SheetId:         opts.TargetCell.SheetID,
		ForceSendFields: []string{"SheetId"},
	}
	if opts.TargetCell.StartRowIndex != nil {
		start.RowIndex = *opts.TargetCell.StartRowIndex
		start.ForceSendFields = append(start.ForceSendFields, "RowIndex")
	}
	if opts.TargetCell.StartColumnIndex != nil {
		start.ColumnIndex = *opts.TargetCell.StartColumnIndex
		start.ForceSendFields = append(start.ForceSendFields, "ColumnIndex")
	}

	_, err := c.batchUpdate(ctx, spreadsheetID, &sheetsapi.Request{
		UpdateCells: &sheetsapi.UpdateCellsRequest{
			Rows: []*sheetsapi.RowData{{
				Values: []*sheetsapi.CellData{{PivotTable: pivot}},
			}},
			Start:  start,
			Fields: "pivotTable",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create pivot table: %w", err)
	}
	return nil
}

// SheetComment is a Drive comment thread anchored on a spreadsheet.
type SheetComment struct {
	ID       string
	Author   string
	Content  string
	Created  string
	Modified string
	Resolved bool
	Replies  []SheetCommentReply
}

// SheetCommentReply is a reply within a comment thread.
type SheetCommentReply struct {
	ID      string
	Author  string
	Content string
	Created string
}

// ListComments lists the comment threads on a spreadsheet, newest first.
func (c *Client) ListComments(ctx context.Context, spreadsheetID string, maxResults int64) ([]SheetComment, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	result, err := c.drive.Comments.List(spreadsheetID).
		PageSize(maxResults).
		Fields("comments(id,author(displayName),content,createdTime,modifiedTime,resolved,replies(id,author(displayName),content,createdTime))").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var comments []SheetComment
	for _, cm := range result.Comments {
		comment := SheetComment{
			ID:       cm.Id,
			Content:  cm.Content,
			Created:  cm.CreatedTime,
			Modified: cm.ModifiedTime,
			Resolved: cm.Resolved,
		}
		if cm.Author != nil {
			comment.Author = cm.Author.DisplayName
		}
		for _, r := range cm.Replies {
			reply := SheetCommentReply{
				ID:      r.Id,
				Content: r.Content,
				Created: r.CreatedTime,
			}
			if r.Author != nil {
				reply.Author = r.Author.DisplayName
			}
			comment.Replies = append(comment.Replies, reply)
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// CreateComment starts a new comment thread on a spreadsheet.
func (c *Client) CreateComment(ctx context.Context, spreadsheetID, content string) (*SheetComment, error) {
	created, err := c.drive.Comments.Create(spreadsheetID, &drive.Comment{Content: content}).
		Fields("id,author(displayName),content,createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment := &SheetComment{
		ID:      created.Id,
		Content: created.Content,
		Created: created.CreatedTime,
	}
	if created.Author != nil {
		comment.Author = created.Author.DisplayName
	}
	return comment, nil
}

// ReplyToComment adds a reply to an existing comment thread.
func (c *Client) ReplyToComment(ctx context.Context, spreadsheetID, commentID, content string) (*SheetCommentReply, error) {
	created, err := c.drive.Replies.Create(spreadsheetID, commentID, &drive.Reply{Content: content}).
		Fields("id,author(displayName),content,createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to reply to comment: %w", err)
	}

	reply := &SheetCommentReply{
		ID:      created.Id,
		Content: created.Content,
		Created: created.CreatedTime,
	}
	if created.Author != nil {
		reply.Author = created.Author.DisplayName
	}
	return reply, nil
}

// ResolveComment marks a comment thread resolved by posting a resolving
// reply, optionally with a closing message.
func (c *Client) ResolveComment(ctx context.Context, spreadsheetID, commentID, content string) error {
	reply := &drive.Reply{Action: "resolve", Content: content}
	_, err := c.drive.Replies.Create(spreadsheetID, commentID, reply).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to resolve comment: %w", err)
	}
	return nil
}

// batchUpdate submits a single batchUpdate request. Conditional-format
// mutations always go through here as one positional edit, so the remote
// document applies each change atomically.
func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, requests ...*sheetsapi.Request) (*sheetsapi.BatchUpdateSpreadsheetResponse, error) {
	return c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
}
