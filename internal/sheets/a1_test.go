package sheets

import (
	"errors"
	"testing"
)

func testSheets() []SheetInfo {
	return []SheetInfo{
		{ID: 0, Title: "Sheet1"},
		{ID: 77, Title: "Data"},
	}
}

func i64(v int64) *int64 { return &v }

func gridRangesEqual(a, b GridRange) bool {
	eq := func(x, y *int64) bool {
		if (x == nil) != (y == nil) {
			return false
		}
		return x == nil || *x == *y
	}
	return a.SheetID == b.SheetID &&
		eq(a.StartRowIndex, b.StartRowIndex) && eq(a.EndRowIndex, b.EndRowIndex) &&
		eq(a.StartColumnIndex, b.StartColumnIndex) && eq(a.EndColumnIndex, b.EndColumnIndex)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want GridRange
	}{
		{
			name: "single cell",
			expr: "C7",
			want: GridRange{SheetID: 0, StartRowIndex: i64(6), EndRowIndex: i64(7), StartColumnIndex: i64(2), EndColumnIndex: i64(3)},
		},
		{
			name: "qualified rectangle",
			expr: "Sheet1!A1:B2",
			want: GridRange{SheetID: 0, StartRowIndex: i64(0), EndRowIndex: i64(2), StartColumnIndex: i64(0), EndColumnIndex: i64(2)},
		},
		{
			name: "non-first sheet",
			expr: "Data!A1",
			want: GridRange{SheetID: 77, StartRowIndex: i64(0), EndRowIndex: i64(1), StartColumnIndex: i64(0), EndColumnIndex: i64(1)},
		},
		{
			name: "entire column",
			expr: "A:A",
			want: GridRange{SheetID: 0, StartColumnIndex: i64(0), EndColumnIndex: i64(1)},
		},
		{
			name: "entire row",
			expr: "5:5",
			want: GridRange{SheetID: 0, StartRowIndex: i64(4), EndRowIndex: i64(5)},
		},
		{
			name: "column span",
			expr: "B:D",
			want: GridRange{SheetID: 0, StartColumnIndex: i64(1), EndColumnIndex: i64(4)},
		},
		{
			name: "single column ref",
			expr: "C",
			want: GridRange{SheetID: 0, StartColumnIndex: i64(2), EndColumnIndex: i64(3)},
		},
		{
			name: "multi letter column",
			expr: "AA1",
			want: GridRange{SheetID: 0, StartRowIndex: i64(0), EndRowIndex: i64(1), StartColumnIndex: i64(26), EndColumnIndex: i64(27)},
		},
		{
			name: "quoted sheet name",
			expr: "'Sheet1'!A1",
			want: GridRange{SheetID: 0, StartRowIndex: i64(0), EndRowIndex: i64(1), StartColumnIndex: i64(0), EndColumnIndex: i64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.expr, testSheets())
			if err != nil {
				t.Fatalf("ParseRange(%q) returned error: %v", tt.expr, err)
			}
			if !gridRangesEqual(got, tt.want) {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseRangeOrderIndependence(t *testing.T) {
	a, err := ParseRange("B5:A1", testSheets())
	if err != nil {
		t.Fatalf("ParseRange(B5:A1) returned error: %v", err)
	}
	b, err := ParseRange("A1:B5", testSheets())
	if err != nil {
		t.Fatalf("ParseRange(A1:B5) returned error: %v", err)
	}
	if !gridRangesEqual(a, b) {
		t.Errorf("B5:A1 resolved to %+v, A1:B5 to %+v; want identical", a, b)
	}
}

func TestParseRangeErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "whitespace only", expr: "   "},
		{name: "unknown sheet", expr: "Missing!A1"},
		{name: "case sensitive sheet lookup", expr: "sheet1!A1"},
		{name: "row zero", expr: "A0"},
		{name: "negative row", expr: "A-1"},
		{name: "too many separators", expr: "A1:B2:C3"},
		{name: "empty second ref", expr: "A1:"},
		{name: "garbage", expr: "!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.expr, testSheets())
			if err == nil {
				t.Fatalf("ParseRange(%q) expected error, got none", tt.expr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("ParseRange(%q) error = %T, want *ValidationError", tt.expr, err)
			}
		})
	}
}

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		index int64
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		if got := ColumnLabel(tt.index); got != tt.want {
			t.Errorf("ColumnLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestColumnNumberRoundTrip(t *testing.T) {
	for i := int64(0); i < 1000; i++ {
		label := ColumnLabel(i)
		n, err := columnNumber(label)
		if err != nil {
			t.Fatalf("columnNumber(%q) returned error: %v", label, err)
		}
		if n-1 != i {
			t.Fatalf("columnNumber(ColumnLabel(%d)) = %d, want %d", i, n-1, i)
		}
	}
}

func TestFormatGridRangeRoundTrip(t *testing.T) {
	exprs := []string{"C7", "A1", "A1:B5", "A:A", "5:5", "AA10:AB20"}
	for _, expr := range exprs {
		parsed, err := ParseRange(expr, testSheets())
		if err != nil {
			t.Fatalf("ParseRange(%q) returned error: %v", expr, err)
		}
		got := FormatGridRange(parsed, 0, map[int64]string{0: "Sheet1"})
		if got != expr {
			t.Errorf("FormatGridRange(ParseRange(%q)) = %q, want round trip", expr, got)
		}
	}
}

func TestFormatGridRangeCrossSheet(t *testing.T) {
	r := GridRange{SheetID: 77, StartRowIndex: i64(0), EndRowIndex: i64(1), StartColumnIndex: i64(0), EndColumnIndex: i64(1)}
	got := FormatGridRange(r, 0, map[int64]string{0: "Sheet1", 77: "Data"})
	if got != "Data!A1" {
		t.Errorf("FormatGridRange cross-sheet = %q, want %q", got, "Data!A1")
	}

	// Unknown sheet falls back to the raw id.
	got = FormatGridRange(r, 0, map[int64]string{})
	if got != "'sheet 77'!A1" {
		t.Errorf("FormatGridRange with missing title = %q, want %q", got, "'sheet 77'!A1")
	}
}

func TestFormatGridRangeUnbounded(t *testing.T) {
	got := FormatGridRange(GridRange{SheetID: 0}, 0, nil)
	if got != "entire sheet" {
		t.Errorf("FormatGridRange(unbounded) = %q, want %q", got, "entire sheet")
	}
}
