package sheets

import "strings"

// BuildBooleanRule assembles a boolean-variant conditional-format rule.
// The condition type must be a member of ConditionTypes and at least one
// of background/textColor must be given.
func BuildBooleanRule(ranges []GridRange, conditionType string, values []string, background, textColor *Color) (ConditionalFormatRule, error) {
	conditionType = strings.ToUpper(strings.TrimSpace(conditionType))
	if !ConditionTypes[conditionType] {
		return ConditionalFormatRule{}, validationErrorf("condition_type must be one of %s", strings.Join(ConditionTypeList(), ", "))
	}
	if background == nil && textColor == nil {
		return ConditionalFormatRule{}, validationErrorf("no format specified: provide background_color and/or text_color")
	}
	return ConditionalFormatRule{
		Ranges: ranges,
		Boolean: &BooleanRule{
			ConditionType: conditionType,
			Values:        values,
			Background:    background,
			TextColor:     textColor,
		},
	}, nil
}

// BuildGradientRule assembles a gradient-variant rule from 2 or 3 color
// stops. Stops are assigned to min/mid/max by their declared type, not
// by list position: exactly one MIN and one MAX stop are required, and
// an optional third stop must use a literal value mode (NUMBER, PERCENT
// or PERCENTILE) with a value.
func BuildGradientRule(ranges []GridRange, points []GradientPoint) (ConditionalFormatRule, error) {
	if len(points) < 2 || len(points) > 3 {
		return ConditionalFormatRule{}, validationErrorf("gradient rules need 2 or 3 points (min, optional midpoint, max), got %d", len(points))
	}

	var min, mid, max *GradientPoint
	for i := range points {
		p := points[i]
		switch p.Type {
		case "MIN":
			if min != nil {
				return ConditionalFormatRule{}, validationErrorf("gradient rule has more than one MIN point")
			}
			min = &p
		case "MAX":
			if max != nil {
				return ConditionalFormatRule{}, validationErrorf("gradient rule has more than one MAX point")
			}
			max = &p
		case "NUMBER", "PERCENT", "PERCENTILE":
			if mid != nil {
				return ConditionalFormatRule{}, validationErrorf("gradient rule has more than one midpoint")
			}
			if p.Value == "" {
				return ConditionalFormatRule{}, validationErrorf("gradient midpoint of type %s needs a value", p.Type)
			}
			mid = &p
		default:
			return ConditionalFormatRule{}, validationErrorf("gradient point has invalid type %q", p.Type)
		}
	}
	if min == nil || max == nil {
		return ConditionalFormatRule{}, validationErrorf("gradient rules need one MIN and one MAX point")
	}
	if len(points) == 3 && mid == nil {
		return ConditionalFormatRule{}, validationErrorf("the third gradient point must be a midpoint with a literal value mode")
	}

	return ConditionalFormatRule{
		Ranges: ranges,
		Gradient: &GradientRule{
			Min: *min,
			Mid: mid,
			Max: *max,
		},
	}, nil
}

// InsertRuleAt returns a new rule list with rule inserted at index.
// Index may equal len(rules) (append); rules at or after the index shift
// one position later, lowering their priority.
func InsertRuleAt(rules []ConditionalFormatRule, rule ConditionalFormatRule, index int) ([]ConditionalFormatRule, error) {
	if index < 0 || index > len(rules) {
		return nil, validationErrorf("rule index %d out of range: sheet has %d rules", index, len(rules))
	}
	out := make([]ConditionalFormatRule, 0, len(rules)+1)
	out = append(out, rules[:index]...)
	out = append(out, rule)
	out = append(out, rules[index:]...)
	return out, nil
}

// DeleteRuleAt returns a new rule list with the rule at index removed;
// subsequent rules shift down one position. The removed rule is returned
// for reporting.
func DeleteRuleAt(rules []ConditionalFormatRule, index int) ([]ConditionalFormatRule, ConditionalFormatRule, error) {
	if index < 0 || index >= len(rules) {
		return nil, ConditionalFormatRule{}, validationErrorf("rule index %d out of range: sheet has %d rules", index, len(rules))
	}
	removed := rules[index]
	out := make([]ConditionalFormatRule, 0, len(rules)-1)
	out = append(out, rules[:index]...)
	out = append(out, rules[index+1:]...)
	return out, removed, nil
}

// RuleUpdate carries the fields a caller wants to change on an existing
// rule. Zero-valued fields mean "keep the existing value"; ValuesSet
// distinguishes an explicit empty value list from an omitted one. A
// non-nil GradientPoints requests the gradient variant; a non-empty
// ConditionType (or colors, on an existing boolean rule) addresses the
// boolean variant.
type RuleUpdate struct {
	Ranges         []GridRange
	ConditionType  string
	Values         []string
	ValuesSet      bool
	Background     *Color
	TextColor      *Color
	GradientPoints []GradientPoint
}

func (u RuleUpdate) hasBooleanFields() bool {
	return u.ConditionType != "" || u.ValuesSet || u.Background != nil || u.TextColor != nil
}

// UpdateRuleAt returns a new rule list with the rule at index updated
// per upd. Within a variant the update is a field merge: supplied fields
// overwrite, omitted fields (including ranges) carry over from the
// existing rule. A variant change fully replaces the rule. The merged
// rule is validated before being returned, so a boolean rule can never
// lose its last color and a gradient rule its minimum point count.
func UpdateRuleAt(rules []ConditionalFormatRule, index int, upd RuleUpdate) ([]ConditionalFormatRule, ConditionalFormatRule, error) {
	if index < 0 || index >= len(rules) {
		return nil, ConditionalFormatRule{}, validationErrorf("rule index %d out of range: sheet has %d rules", index, len(rules))
	}
	existing := rules[index]

	ranges := upd.Ranges
	if ranges == nil {
		ranges = existing.Ranges
	}

	var merged ConditionalFormatRule
	var err error
	switch {
	case upd.GradientPoints != nil:
		// Gradient variant requested: rebuilt wholesale from the
		// supplied points, whether or not the existing rule was a
		// gradient.
		merged, err = BuildGradientRule(ranges, upd.GradientPoints)
	case existing.IsGradient():
		if upd.hasBooleanFields() && upd.ConditionType == "" {
			return nil, ConditionalFormatRule{}, validationErrorf("rule %d is a gradient rule: provide gradient_points to change it, or condition_type to replace it with a boolean rule", index)
		}
		if upd.ConditionType != "" {
			// Explicit variant change: build the boolean rule from the
			// update alone, nothing carries over from the gradient.
			merged, err = BuildBooleanRule(ranges, upd.ConditionType, upd.Values, upd.Background, upd.TextColor)
		} else if upd.Ranges != nil {
			merged = existing
			merged.Ranges = ranges
		} else {
			return nil, ConditionalFormatRule{}, validationErrorf("no changes specified for rule %d", index)
		}
	default:
		b := BooleanRule{}
		if existing.Boolean != nil {
			b = *existing.Boolean
		}
		if upd.ConditionType != "" {
			condType := strings.ToUpper(strings.TrimSpace(upd.ConditionType))
			if !ConditionTypes[condType] {
				return nil, ConditionalFormatRule{}, validationErrorf("condition_type must be one of %s", strings.Join(ConditionTypeList(), ", "))
			}
			b.ConditionType = condType
		}
		if upd.ValuesSet {
			b.Values = upd.Values
		}
		if upd.Background != nil {
			b.Background = upd.Background
		}
		if upd.TextColor != nil {
			b.TextColor = upd.TextColor
		}
		if b.Background == nil && b.TextColor == nil {
			return nil, ConditionalFormatRule{}, validationErrorf("rule %d would be left with no format: provide background_color and/or text_color", index)
		}
		if !upd.hasBooleanFields() && upd.Ranges == nil {
			return nil, ConditionalFormatRule{}, validationErrorf("no changes specified for rule %d", index)
		}
		merged = ConditionalFormatRule{Ranges: ranges, Boolean: &b}
	}
	if err != nil {
		return nil, ConditionalFormatRule{}, err
	}

	out := make([]ConditionalFormatRule, len(rules))
	copy(out, rules)
	out[index] = merged
	return out, merged, nil
}
