package sheets

import (
	"context"
	"testing"
)

func twoSheetRules(t *testing.T) []SheetRules {
	t.Helper()
	return []SheetRules{
		{SheetInfo: SheetInfo{ID: 0, Title: "Sheet1"}},
		{SheetInfo: SheetInfo{ID: 77, Title: "Data"}, Rules: threeRules(t)},
	}
}

func TestSelectSheet(t *testing.T) {
	sheets := twoSheetRules(t)

	target, err := SelectSheet(sheets, "")
	if err != nil {
		t.Fatalf("SelectSheet(\"\") returned error: %v", err)
	}
	if target.Title != "Sheet1" {
		t.Errorf("empty title selected %q, want Sheet1", target.Title)
	}

	target, err = SelectSheet(sheets, "Data")
	if err != nil {
		t.Fatalf("SelectSheet(Data) returned error: %v", err)
	}
	if target.ID != 77 {
		t.Errorf("SelectSheet(Data) selected id %d, want 77", target.ID)
	}

	if _, err := SelectSheet(sheets, "Nope"); err == nil {
		t.Error("unknown title: expected error, got none")
	}
	if _, err := SelectSheet(nil, ""); err == nil {
		t.Error("no sheets: expected error, got none")
	}
}

func TestSelectSheetByID(t *testing.T) {
	sheets := twoSheetRules(t)

	target, err := SelectSheetByID(sheets, 77)
	if err != nil {
		t.Fatalf("SelectSheetByID(77) returned error: %v", err)
	}
	if target.Title != "Data" {
		t.Errorf("SelectSheetByID(77) selected %q, want Data", target.Title)
	}
	if len(target.Rules) != 3 {
		t.Errorf("selected sheet has %d rules, want 3", len(target.Rules))
	}

	if _, err := SelectSheetByID(sheets, 99); err == nil {
		t.Error("unknown id: expected error, got none")
	}
}

func TestUpdateChartValidation(t *testing.T) {
	c := &Client{}
	err := c.UpdateChart(context.Background(), "sheet-id", 123, "", "")
	if err == nil {
		t.Fatal("empty update: expected error, got none")
	}
}
