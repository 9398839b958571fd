package sheets

import (
	sheetsapi "google.golang.org/api/sheets/v4"
)

// SheetInfo identifies a sheet within a spreadsheet document.
type SheetInfo struct {
	ID    int64
	Title string
}

// GridRange is a resolved, zero-based, half-open rectangular region on a
// specific sheet. A nil bound means the range is unbounded in that
// direction; this is distinct from index 0.
type GridRange struct {
	SheetID          int64
	StartRowIndex    *int64
	EndRowIndex      *int64
	StartColumnIndex *int64
	EndColumnIndex   *int64
}

// Color is a normalized RGB triple with each channel in [0,1].
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// BooleanRule is the condition→format variant of a conditional-format
// rule. At least one of Background/TextColor is set.
type BooleanRule struct {
	ConditionType string
	Values        []string
	Background    *Color
	TextColor     *Color
}

// GradientPoint is one color stop of a gradient rule. Type is one of
// MIN, MAX, NUMBER, PERCENT, PERCENTILE; Value is required for the
// literal modes and empty for MIN/MAX.
type GradientPoint struct {
	Color Color
	Type  string
	Value string
}

// GradientRule is the value→color-scale variant of a conditional-format
// rule. Mid is optional.
type GradientRule struct {
	Min GradientPoint
	Mid *GradientPoint
	Max GradientPoint
}

// ConditionalFormatRule is a tagged union: exactly one of Boolean or
// Gradient is non-nil. Its position in a sheet's rule list is the rule's
// evaluation priority, so position changes are visible behavior.
type ConditionalFormatRule struct {
	Ranges   []GridRange
	Boolean  *BooleanRule
	Gradient *GradientRule
}

// IsGradient reports whether the rule is the gradient variant.
func (r ConditionalFormatRule) IsGradient() bool {
	return r.Gradient != nil
}

// SheetRules pairs a sheet's identity with its current ordered rule list
// as fetched from the remote document.
type SheetRules struct {
	SheetInfo
	Rules []ConditionalFormatRule
}

// int64Ptr returns a pointer to v. The Sheets API distinguishes an
// explicit 0 from an absent bound, so optional indices are pointers
// throughout.
func int64Ptr(v int64) *int64 {
	return &v
}

// toAPIGridRange converts a GridRange to the Sheets API representation.
// Zero-valued bounds that are explicitly set must be force-sent so the
// API does not treat them as absent.
func toAPIGridRange(r GridRange) *sheetsapi.GridRange {
	out := &sheetsapi.GridRange{SheetId: r.SheetID}
	out.ForceSendFields = []string{"SheetId"}
	if r.StartRowIndex != nil {
		out.StartRowIndex = *r.StartRowIndex
		out.ForceSendFields = append(out.ForceSendFields, "StartRowIndex")
	}
	if r.EndRowIndex != nil {
		out.EndRowIndex = *r.EndRowIndex
		out.ForceSendFields = append(out.ForceSendFields, "EndRowIndex")
	}
	if r.StartColumnIndex != nil {
		out.StartColumnIndex = *r.StartColumnIndex
		out.ForceSendFields = append(out.ForceSendFields, "StartColumnIndex")
	}
	if r.EndColumnIndex != nil {
		out.EndColumnIndex = *r.EndColumnIndex
		out.ForceSendFields = append(out.ForceSendFields, "EndColumnIndex")
	}
	return out
}

// fromAPIGridRange converts a Sheets API GridRange back into our
// representation. The API omits unbounded indices from the JSON payload,
// which the generated client surfaces as zero values; the NullFields /
// ForceSendFields machinery does not round-trip on reads, so we follow
// the API convention that a zero end index never occurs for a bounded
// range (ends are exclusive and at least 1) and that a zero start with a
// zero end means unbounded.
func fromAPIGridRange(r *sheetsapi.GridRange) GridRange {
	if r == nil {
		return GridRange{}
	}
	out := GridRange{SheetID: r.SheetId}
	// End indices are exclusive, so a bounded dimension always has a
	// positive end. A zero end means the dimension was omitted.
	if r.EndRowIndex > 0 {
		out.StartRowIndex = int64Ptr(r.StartRowIndex)
		out.EndRowIndex = int64Ptr(r.EndRowIndex)
	}
	if r.EndColumnIndex > 0 {
		out.StartColumnIndex = int64Ptr(r.StartColumnIndex)
		out.EndColumnIndex = int64Ptr(r.EndColumnIndex)
	}
	return out
}

// toAPIColor converts a Color to the Sheets API representation.
func toAPIColor(c *Color) *sheetsapi.Color {
	if c == nil {
		return nil
	}
	return &sheetsapi.Color{
		Red:             c.Red,
		Green:           c.Green,
		Blue:            c.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}

func fromAPIColor(c *sheetsapi.Color) *Color {
	if c == nil {
		return nil
	}
	return &Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
}

// toAPIRule converts a ConditionalFormatRule to the Sheets API
// representation for batchUpdate requests.
func toAPIRule(r ConditionalFormatRule) *sheetsapi.ConditionalFormatRule {
	out := &sheetsapi.ConditionalFormatRule{}
	for _, rng := range r.Ranges {
		out.Ranges = append(out.Ranges, toAPIGridRange(rng))
	}
	switch {
	case r.Boolean != nil:
		cond := &sheetsapi.BooleanCondition{Type: r.Boolean.ConditionType}
		for _, v := range r.Boolean.Values {
			cond.Values = append(cond.Values, &sheetsapi.ConditionValue{UserEnteredValue: v})
		}
		format := &sheetsapi.CellFormat{}
		if r.Boolean.Background != nil {
			format.BackgroundColor = toAPIColor(r.Boolean.Background)
		}
		if r.Boolean.TextColor != nil {
			format.TextFormat = &sheetsapi.TextFormat{ForegroundColor: toAPIColor(r.Boolean.TextColor)}
		}
		out.BooleanRule = &sheetsapi.BooleanRule{
			Condition: cond,
			Format:    format,
		}
	case r.Gradient != nil:
		out.GradientRule = &sheetsapi.GradientRule{
			Minpoint: toAPIGradientPoint(r.Gradient.Min),
			Maxpoint: toAPIGradientPoint(r.Gradient.Max),
		}
		if r.Gradient.Mid != nil {
			out.GradientRule.Midpoint = toAPIGradientPoint(*r.Gradient.Mid)
		}
	}
	return out
}

func toAPIGradientPoint(p GradientPoint) *sheetsapi.InterpolationPoint {
	out := &sheetsapi.InterpolationPoint{
		Color: toAPIColor(&p.Color),
		Type:  p.Type,
	}
	if p.Value != "" {
		out.Value = p.Value
	}
	return out
}

// fromAPIRule converts a Sheets API rule into our tagged union. Rules
// with neither variant (which the API should never produce) come back as
// an empty boolean rule so indices stay aligned with the remote list.
func fromAPIRule(r *sheetsapi.ConditionalFormatRule) ConditionalFormatRule {
	out := ConditionalFormatRule{}
	if r == nil {
		return out
	}
	for _, rng := range r.Ranges {
		out.Ranges = append(out.Ranges, fromAPIGridRange(rng))
	}
	switch {
	case r.BooleanRule != nil:
		b := &BooleanRule{}
		if r.BooleanRule.Condition != nil {
			b.ConditionType = r.BooleanRule.Condition.Type
			for _, v := range r.BooleanRule.Condition.Values {
				b.Values = append(b.Values, v.UserEnteredValue)
			}
		}
		if f := r.BooleanRule.Format; f != nil {
			b.Background = fromAPIColor(f.BackgroundColor)
			if f.TextFormat != nil {
				b.TextColor = fromAPIColor(f.TextFormat.ForegroundColor)
			}
		}
		out.Boolean = b
	case r.GradientRule != nil:
		g := &GradientRule{
			Min: fromAPIGradientPoint(r.GradientRule.Minpoint),
			Max: fromAPIGradientPoint(r.GradientRule.Maxpoint),
		}
		if r.GradientRule.Midpoint != nil {
			mid := fromAPIGradientPoint(r.GradientRule.Midpoint)
			g.Mid = &mid
		}
		out.Gradient = g
	default:
		out.Boolean = &BooleanRule{}
	}
	return out
}

func fromAPIGradientPoint(p *sheetsapi.InterpolationPoint) GradientPoint {
	if p == nil {
		return GradientPoint{}
	}
	out := GradientPoint{Type: p.Type, Value: p.Value}
	if c := fromAPIColor(p.Color); c != nil {
		out.Color = *c
	}
	return out
}
