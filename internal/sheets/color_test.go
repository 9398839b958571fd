package sheets

import (
	"errors"
	"math"
	"testing"
)

func colorsClose(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.Red-b.Red) < eps && math.Abs(a.Green-b.Green) < eps && math.Abs(a.Blue-b.Blue) < eps
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Color
	}{
		{name: "red", input: "#FF0000", want: &Color{Red: 1, Green: 0, Blue: 0}},
		{name: "green without hash", input: "00FF00", want: &Color{Red: 0, Green: 1, Blue: 0}},
		{name: "lowercase", input: "#0000ff", want: &Color{Red: 0, Green: 0, Blue: 1}},
		{name: "white", input: "#FFFFFF", want: &Color{Red: 1, Green: 1, Blue: 1}},
		{name: "mid gray", input: "#808080", want: &Color{Red: 128.0 / 255, Green: 128.0 / 255, Blue: 128.0 / 255}},
		{name: "empty means unspecified", input: "", want: nil},
		{name: "whitespace only", input: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tt.input, err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !colorsClose(*got, *tt.want) {
				t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestParseHexColorErrors(t *testing.T) {
	for _, input := range []string{"red", "#FF00", "#GGGGGG", "#FF00000", "rgb(1,0,0)"} {
		_, err := ParseHexColor(input)
		if err == nil {
			t.Errorf("ParseHexColor(%q) expected error, got none", input)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("ParseHexColor(%q) error = %T, want *ValidationError", input, err)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#FF0000", "#00FF00", "#0000FF", "#808080", "#123ABC", "#FFFFFF", "#000000"} {
		c, err := ParseHexColor(hex)
		if err != nil {
			t.Fatalf("ParseHexColor(%q) returned error: %v", hex, err)
		}
		if got := c.Hex(); got != hex {
			t.Errorf("ParseHexColor(%q).Hex() = %q, want round trip", hex, got)
		}
	}
}
