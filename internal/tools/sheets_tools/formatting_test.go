package sheets_tools

import (
	"testing"

	"github.com/polaralias/google-workspace-mcp/internal/sheets"
)

func twoSheetDoc() []sheets.SheetRules {
	return []sheets.SheetRules{
		{SheetInfo: sheets.SheetInfo{ID: 0, Title: "Sheet1"}},
		{SheetInfo: sheets.SheetInfo{ID: 77, Title: "Sheet2"}, Rules: make([]sheets.ConditionalFormatRule, 3)},
	}
}

func TestRangeScopeInfos(t *testing.T) {
	sheetRules := twoSheetDoc()

	// Without a sheet argument the document order is kept, so an
	// unqualified range resolves to the first sheet.
	infos, err := rangeScopeInfos(sheetRules, "")
	if err != nil {
		t.Fatalf("rangeScopeInfos() error = %v", err)
	}
	gr, err := sheets.ParseRange("A1:B2", infos)
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if gr.SheetID != 0 {
		t.Errorf("unqualified range resolved to sheet %d, want 0", gr.SheetID)
	}

	// Naming a sheet makes it the default for unqualified ranges.
	infos, err = rangeScopeInfos(sheetRules, "Sheet2")
	if err != nil {
		t.Fatalf("rangeScopeInfos(Sheet2) error = %v", err)
	}
	gr, err = sheets.ParseRange("A1:B2", infos)
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if gr.SheetID != 77 {
		t.Errorf("unqualified range resolved to sheet %d, want 77", gr.SheetID)
	}

	// Qualified ranges still resolve by their own title.
	gr, err = sheets.ParseRange("Sheet1!A1", infos)
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if gr.SheetID != 0 {
		t.Errorf("qualified range resolved to sheet %d, want 0", gr.SheetID)
	}

	if _, err := rangeScopeInfos(sheetRules, "Nope"); err == nil {
		t.Error("unknown sheet: expected error, got none")
	}
}

// A rule is stored on the sheet its ranges point at, so a qualified range
// must pick that sheet even when the sheet argument is omitted. The default
// insert position is the end of that sheet's rule list, not the first
// sheet's.
func TestAddRuleTargetFollowsQualifiedRange(t *testing.T) {
	sheetRules := twoSheetDoc()

	infos, err := rangeScopeInfos(sheetRules, "")
	if err != nil {
		t.Fatalf("rangeScopeInfos() error = %v", err)
	}
	gridRanges, err := parseRangeList("Sheet2!A1:B2", infos)
	if err != nil {
		t.Fatalf("parseRangeList() error = %v", err)
	}

	target, err := sheets.SelectSheetByID(sheetRules, gridRanges[0].SheetID)
	if err != nil {
		t.Fatalf("SelectSheetByID() error = %v", err)
	}
	if target.Title != "Sheet2" {
		t.Errorf("target sheet = %q, want Sheet2", target.Title)
	}
	if got := len(target.Rules); got != 3 {
		t.Errorf("default insert position = %d, want 3", got)
	}
}
