package sheets

import (
	"fmt"
	"strings"
)

// FormatRules renders a sheet's rule list as a human-readable summary:
// one line per rule with its 0-based index (the rule's priority),
// variant, ranges in A1 notation and a short description of its
// condition or gradient stops. Ranges on other sheets are qualified
// with the title looked up in titlesByID. Purely presentational.
func FormatRules(sheet SheetInfo, rules []ConditionalFormatRule, titlesByID map[int64]string) string {
	var b strings.Builder
	if len(rules) == 0 {
		fmt.Fprintf(&b, "Sheet '%s' has no conditional formatting rules.", sheet.Title)
		return b.String()
	}

	fmt.Fprintf(&b, "Conditional formatting rules on sheet '%s' (%d):", sheet.Title, len(rules))
	for i, rule := range rules {
		fmt.Fprintf(&b, "\n  [%d] %s", i, describeRule(rule, sheet.ID, titlesByID))
	}
	return b.String()
}

func describeRule(rule ConditionalFormatRule, currentSheetID int64, titlesByID map[int64]string) string {
	ranges := make([]string, 0, len(rule.Ranges))
	for _, r := range rule.Ranges {
		ranges = append(ranges, FormatGridRange(r, currentSheetID, titlesByID))
	}
	rangeText := strings.Join(ranges, ", ")
	if rangeText == "" {
		rangeText = "entire sheet"
	}

	switch {
	case rule.Boolean != nil:
		return fmt.Sprintf("Boolean on %s: %s%s", rangeText, describeCondition(*rule.Boolean), describeFormat(*rule.Boolean))
	case rule.Gradient != nil:
		return fmt.Sprintf("Gradient on %s: %s", rangeText, describeGradient(*rule.Gradient))
	default:
		return fmt.Sprintf("(empty rule) on %s", rangeText)
	}
}

func describeCondition(b BooleanRule) string {
	if len(b.Values) == 0 {
		return b.ConditionType
	}
	return fmt.Sprintf("%s [%s]", b.ConditionType, strings.Join(b.Values, ", "))
}

func describeFormat(b BooleanRule) string {
	var parts []string
	if b.Background != nil {
		parts = append(parts, "background "+b.Background.Hex())
	}
	if b.TextColor != nil {
		parts = append(parts, "text "+b.TextColor.Hex())
	}
	if len(parts) == 0 {
		return ""
	}
	return " -> " + strings.Join(parts, ", ")
}

func describeGradient(g GradientRule) string {
	parts := []string{describeGradientPoint(g.Min)}
	if g.Mid != nil {
		parts = append(parts, describeGradientPoint(*g.Mid))
	}
	parts = append(parts, describeGradientPoint(g.Max))
	return strings.Join(parts, " -> ")
}

func describeGradientPoint(p GradientPoint) string {
	if p.Value != "" {
		return fmt.Sprintf("%s(%s) %s", p.Type, p.Value, p.Color.Hex())
	}
	return fmt.Sprintf("%s %s", p.Type, p.Color.Hex())
}
