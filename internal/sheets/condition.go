package sheets

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// ConditionTypes is the fixed set of boolean condition kinds accepted by
// the Sheets API for conditional formatting and data validation.
var ConditionTypes = map[string]bool{
	"NUMBER_GREATER":         true,
	"NUMBER_GREATER_THAN_EQ": true,
	"NUMBER_LESS":            true,
	"NUMBER_LESS_THAN_EQ":    true,
	"NUMBER_EQ":              true,
	"NUMBER_NOT_EQ":          true,
	"NUMBER_BETWEEN":         true,
	"NUMBER_NOT_BETWEEN":     true,
	"TEXT_CONTAINS":          true,
	"TEXT_NOT_CONTAINS":      true,
	"TEXT_STARTS_WITH":       true,
	"TEXT_ENDS_WITH":         true,
	"TEXT_EQ":                true,
	"TEXT_IS_EMAIL":          true,
	"TEXT_IS_URL":            true,
	"DATE_EQ":                true,
	"DATE_BEFORE":            true,
	"DATE_AFTER":             true,
	"DATE_ON_OR_BEFORE":      true,
	"DATE_ON_OR_AFTER":       true,
	"DATE_BETWEEN":           true,
	"DATE_NOT_BETWEEN":       true,
	"DATE_IS_VALID":          true,
	"ONE_OF_RANGE":           true,
	"ONE_OF_LIST":            true,
	"BLANK":                  true,
	"NOT_BLANK":              true,
	"CUSTOM_FORMULA":         true,
	"BOOLEAN":                true,
}

// ConditionTypeList returns the accepted condition types in sorted order
// for use in error messages and tool descriptions.
func ConditionTypeList() []string {
	out := make([]string, 0, len(ConditionTypes))
	for t := range ConditionTypes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// NumberFormatTypes is the set of number format kinds accepted by the
// format_range tool.
var NumberFormatTypes = map[string]bool{
	"NUMBER":               true,
	"NUMBER_WITH_GROUPING": true,
	"CURRENCY":             true,
	"PERCENT":              true,
	"SCIENTIFIC":           true,
	"DATE":                 true,
	"TIME":                 true,
	"DATE_TIME":            true,
	"TEXT":                 true,
}

// gradientPointTypes are the value-interpretation modes of a gradient
// color stop.
var gradientPointTypes = map[string]bool{
	"MIN":        true,
	"MAX":        true,
	"NUMBER":     true,
	"PERCENT":    true,
	"PERCENTILE": true,
}

// ParseConditionValues normalizes heterogeneous condition-value input
// into an ordered list of strings.
//
// Accepted forms: nil (no values), a string containing a JSON list (its
// elements, which must be scalars), any other string (a single-element
// list holding the raw string; condition types taking one text argument
// rely on this), or an already-structured []any (each element coerced to
// string). Number literals keep their textual form.
func ParseConditionValues(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if strings.HasPrefix(trimmed, "[") {
			var list []any
			dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
			dec.UseNumber()
			if err := dec.Decode(&list); err == nil {
				return stringifyScalars(list)
			}
		}
		return []string{val}, nil
	case []any:
		return stringifyScalars(val)
	case []string:
		return val, nil
	default:
		return nil, validationErrorf("condition values must be a string or a list, got %T", v)
	}
}

// stringifyScalars coerces each list element to its string form,
// rejecting nested lists and objects.
func stringifyScalars(list []any) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, el := range list {
		s, err := scalarString(el)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case float64:
		return json.Number(trimFloat(val)).String(), nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return json.Number(trimInt(int64(val))).String(), nil
	case int64:
		return json.Number(trimInt(val)).String(), nil
	default:
		return "", validationErrorf("condition value elements must be scalars, got %T", v)
	}
}

func trimFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func trimInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// ParseGradientPoints normalizes gradient color-stop input into
// GradientPoints. Input is either a []any of objects or a JSON string
// encoding such a list; each object carries "color" (hex string),
// "type" (MIN/MAX/NUMBER/PERCENT/PERCENTILE) and, for the literal
// modes, "value".
func ParseGradientPoints(v any) ([]GradientPoint, error) {
	var list []any
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil, nil
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
		dec.UseNumber()
		if err := dec.Decode(&list); err != nil {
			return nil, validationErrorf("gradient_points must be a JSON list of objects: %v", err)
		}
	case []any:
		list = val
	default:
		return nil, validationErrorf("gradient_points must be a list or JSON string, got %T", v)
	}

	points := make([]GradientPoint, 0, len(list))
	for i, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, validationErrorf("gradient point %d must be an object with color/type/value", i)
		}

		p := GradientPoint{}

		colorStr, _ := obj["color"].(string)
		color, err := ParseHexColor(colorStr)
		if err != nil {
			return nil, err
		}
		if color == nil {
			return nil, validationErrorf("gradient point %d is missing a color", i)
		}
		p.Color = *color

		pointType, _ := obj["type"].(string)
		pointType = strings.ToUpper(strings.TrimSpace(pointType))
		if !gradientPointTypes[pointType] {
			return nil, validationErrorf("gradient point %d has invalid type %q: expected MIN, MAX, NUMBER, PERCENT or PERCENTILE", i, pointType)
		}
		p.Type = pointType

		if raw, ok := obj["value"]; ok && raw != nil {
			s, err := scalarString(raw)
			if err != nil {
				return nil, validationErrorf("gradient point %d has a non-scalar value", i)
			}
			p.Value = s
		}

		points = append(points, p)
	}
	return points, nil
}
