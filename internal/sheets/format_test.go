package sheets

import (
	"strings"
	"testing"
)

func TestFormatRulesEmpty(t *testing.T) {
	got := FormatRules(SheetInfo{ID: 0, Title: "Sheet1"}, nil, nil)
	if !strings.Contains(got, "no conditional formatting rules") {
		t.Errorf("FormatRules(empty) = %q, want a no-rules message", got)
	}
}

func TestFormatRules(t *testing.T) {
	sheet := SheetInfo{ID: 0, Title: "Sheet1"}
	titles := map[int64]string{0: "Sheet1", 77: "Data"}

	rules := []ConditionalFormatRule{
		{
			Ranges: []GridRange{{SheetID: 0, StartRowIndex: i64(0), EndRowIndex: i64(10), StartColumnIndex: i64(0), EndColumnIndex: i64(2)}},
			Boolean: &BooleanRule{
				ConditionType: "NUMBER_GREATER",
				Values:        []string{"100"},
				Background:    &Color{Red: 1},
			},
		},
		{
			Ranges: []GridRange{{SheetID: 77, StartColumnIndex: i64(0), EndColumnIndex: i64(1)}},
			Gradient: &GradientRule{
				Min: GradientPoint{Color: Color{Red: 1, Green: 1, Blue: 1}, Type: "MIN"},
				Mid: &GradientPoint{Color: Color{Red: 1}, Type: "PERCENTILE", Value: "50"},
				Max: GradientPoint{Color: Color{Green: 1}, Type: "MAX"},
			},
		},
	}

	got := FormatRules(sheet, rules, titles)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("FormatRules produced %d lines, want header plus one per rule:\n%s", len(lines), got)
	}

	if !strings.Contains(lines[0], "Sheet1") || !strings.Contains(lines[0], "(2)") {
		t.Errorf("header = %q, want sheet title and rule count", lines[0])
	}

	first := lines[1]
	for _, want := range []string{"[0]", "Boolean", "A1:B10", "NUMBER_GREATER", "100", "background #FF0000"} {
		if !strings.Contains(first, want) {
			t.Errorf("rule 0 line %q missing %q", first, want)
		}
	}

	second := lines[2]
	for _, want := range []string{"[1]", "Gradient", "Data!A:A", "MIN #FFFFFF", "PERCENTILE(50) #FF0000", "MAX #00FF00"} {
		if !strings.Contains(second, want) {
			t.Errorf("rule 1 line %q missing %q", second, want)
		}
	}
}

func TestFormatRulesAfterMutationSequence(t *testing.T) {
	sheet := SheetInfo{ID: 0, Title: "Sheet1"}

	rules := threeRules(t)
	rule := boolRule(t, "TEXT_EQ", []string{"done"}, "", "#00FF00")

	inserted, err := InsertRuleAt(rules, rule, 0)
	if err != nil {
		t.Fatalf("InsertRuleAt returned error: %v", err)
	}

	got := FormatRules(sheet, inserted, map[int64]string{0: "Sheet1"})
	if !strings.Contains(got, "(4)") {
		t.Errorf("FormatRules = %q, want 4 rules after insert", got)
	}
	if idx := strings.Index(got, "TEXT_EQ"); idx < 0 || idx > strings.Index(got, "NUMBER_GREATER") {
		t.Errorf("inserted rule should be listed first:\n%s", got)
	}
}
