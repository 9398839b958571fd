package sheets

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseConditionValues(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil passes through", input: nil, want: nil},
		{name: "json list string", input: `["a","b"]`, want: []string{"a", "b"}},
		{name: "json list with numbers", input: `[1, 2.5, "x"]`, want: []string{"1", "2.5", "x"}},
		{name: "plain string becomes single element", input: "plain", want: []string{"plain"}},
		{name: "numeric-looking string stays raw", input: "100", want: []string{"100"}},
		{name: "structured list", input: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "structured list with number", input: []any{float64(10)}, want: []string{"10"}},
		{name: "string slice passes through", input: []string{"x"}, want: []string{"x"}},
		{name: "invalid json treated as raw string", input: "[not json", want: []string{"[not json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConditionValues(tt.input)
			if err != nil {
				t.Fatalf("ParseConditionValues(%v) returned error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseConditionValues(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseConditionValuesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "nested list in json", input: `[["a"]]`},
		{name: "object in json list", input: `[{"a":1}]`},
		{name: "nested list in structured input", input: []any{[]any{"a"}}},
		{name: "unsupported type", input: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConditionValues(tt.input)
			if err == nil {
				t.Fatalf("ParseConditionValues(%v) expected error, got none", tt.input)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("ParseConditionValues(%v) error = %T, want *ValidationError", tt.input, err)
			}
		})
	}
}

func TestParseGradientPoints(t *testing.T) {
	points, err := ParseGradientPoints(`[
		{"color": "#FFFFFF", "type": "MIN"},
		{"color": "#FF0000", "type": "NUMBER", "value": 50},
		{"color": "#00FF00", "type": "MAX"}
	]`)
	if err != nil {
		t.Fatalf("ParseGradientPoints returned error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("ParseGradientPoints returned %d points, want 3", len(points))
	}
	if points[0].Type != "MIN" || points[0].Value != "" {
		t.Errorf("point 0 = %+v, want MIN with no value", points[0])
	}
	if points[1].Type != "NUMBER" || points[1].Value != "50" {
		t.Errorf("point 1 = %+v, want NUMBER with value 50", points[1])
	}
	if !colorsClose(points[2].Color, Color{Green: 1}) {
		t.Errorf("point 2 color = %+v, want green", points[2].Color)
	}
}

func TestParseGradientPointsStructured(t *testing.T) {
	points, err := ParseGradientPoints([]any{
		map[string]any{"color": "#FFFFFF", "type": "min"},
		map[string]any{"color": "#000000", "type": "max"},
	})
	if err != nil {
		t.Fatalf("ParseGradientPoints returned error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("ParseGradientPoints returned %d points, want 2", len(points))
	}
	if points[0].Type != "MIN" || points[1].Type != "MAX" {
		t.Errorf("point types = %q, %q, want MIN, MAX (case-folded)", points[0].Type, points[1].Type)
	}
}

func TestParseGradientPointsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "not a list", input: `{"color": "#FFFFFF"}`},
		{name: "element not an object", input: `["#FFFFFF"]`},
		{name: "missing color", input: `[{"type": "MIN"}]`},
		{name: "bad color", input: `[{"color": "red", "type": "MIN"}]`},
		{name: "bad type", input: `[{"color": "#FFFFFF", "type": "MIDDLE"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGradientPoints(tt.input)
			if err == nil {
				t.Fatalf("ParseGradientPoints(%v) expected error, got none", tt.input)
			}
		})
	}
}
