package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange resolves an A1-notation range expression against the given
// sheet list into a zero-based, half-open GridRange.
//
// Grammar: [<sheet-name>!]<cell-ref>[:<cell-ref>] where a cell-ref is
// column letters plus a row number ("C7"), column letters alone ("C",
// row-unbounded), or a row number alone ("7", column-unbounded). Column
// letters are base-26 (A=1, Z=26, AA=27); rows are 1-based.
//
// A sheet-name prefix is looked up case-sensitively; without a prefix
// the range resolves against the first sheet in document order. Two
// cell-refs may be given in either order ("B5:A1" equals "A1:B5"); the
// resolved end index is exclusive. A dimension never mentioned by either
// cell-ref stays unbounded.
func ParseRange(expr string, sheets []SheetInfo) (GridRange, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return GridRange{}, validationErrorf("range is empty")
	}
	if len(sheets) == 0 {
		return GridRange{}, validationErrorf("spreadsheet has no sheets")
	}

	sheetName, refPart := splitSheetPrefix(expr)

	var sheet *SheetInfo
	if sheetName != "" {
		for i := range sheets {
			if sheets[i].Title == sheetName {
				sheet = &sheets[i]
				break
			}
		}
		if sheet == nil {
			return GridRange{}, validationErrorf("sheet %q not found", sheetName)
		}
	} else {
		sheet = &sheets[0]
	}

	refs := strings.Split(refPart, ":")
	if len(refs) > 2 {
		return GridRange{}, validationErrorf("invalid range %q: too many ':' separators", expr)
	}

	startRow, startCol, err := parseCellRef(refs[0])
	if err != nil {
		return GridRange{}, err
	}

	out := GridRange{SheetID: sheet.ID}

	if len(refs) == 1 {
		// Single cell-ref: a one-cell extent in every dimension the
		// ref mentions.
		if startRow != nil {
			out.StartRowIndex = startRow
			out.EndRowIndex = int64Ptr(*startRow + 1)
		}
		if startCol != nil {
			out.StartColumnIndex = startCol
			out.EndColumnIndex = int64Ptr(*startCol + 1)
		}
		return out, nil
	}

	endRow, endCol, err := parseCellRef(refs[1])
	if err != nil {
		return GridRange{}, err
	}

	out.StartRowIndex, out.EndRowIndex = spanBounds(startRow, endRow)
	out.StartColumnIndex, out.EndColumnIndex = spanBounds(startCol, endCol)
	return out, nil
}

// splitSheetPrefix separates an optional sheet-name prefix from the
// cell-ref part. Quoted names ('My Sheet'!A1) have their quotes
// stripped and '' unescaped.
func splitSheetPrefix(expr string) (sheet, refs string) {
	idx := strings.LastIndex(expr, "!")
	if idx < 0 {
		return "", expr
	}
	sheet = expr[:idx]
	refs = expr[idx+1:]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, refs
}

// parseCellRef parses a single cell-ref into optional 0-based row and
// column indices. Either part may be absent but not both.
func parseCellRef(ref string) (row, col *int64, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil, validationErrorf("cell reference is empty")
	}

	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	letters := ref[:i]
	digits := ref[i:]

	if letters != "" {
		n, err := columnNumber(letters)
		if err != nil {
			return nil, nil, err
		}
		col = int64Ptr(n - 1)
	}
	if digits != "" {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || n < 1 {
			return nil, nil, validationErrorf("invalid row number %q in cell reference %q", digits, ref)
		}
		row = int64Ptr(n - 1)
	}
	if col == nil && row == nil {
		return nil, nil, validationErrorf("invalid cell reference %q", ref)
	}
	return row, col, nil
}

// spanBounds combines a dimension's bounds from two cell-refs: the span
// runs from the minimum to the maximum mentioned value, end exclusive.
// If neither ref mentions the dimension it stays unbounded.
func spanBounds(a, b *int64) (start, end *int64) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil:
		return int64Ptr(*b), int64Ptr(*b + 1)
	case b == nil:
		return int64Ptr(*a), int64Ptr(*a + 1)
	}
	lo, hi := *a, *b
	if lo > hi {
		lo, hi = hi, lo
	}
	return int64Ptr(lo), int64Ptr(hi + 1)
}

// columnNumber converts base-26 column letters to a 1-based column
// number (A=1, Z=26, AA=27).
func columnNumber(letters string) (int64, error) {
	var n int64
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if !isLetter(c) {
			return 0, validationErrorf("invalid column letters %q", letters)
		}
		c = upper(c)
		n = n*26 + int64(c-'A'+1)
	}
	if n == 0 {
		return 0, validationErrorf("invalid column letters %q", letters)
	}
	return n, nil
}

// ColumnLabel converts a 0-based column index back to its letters
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnLabel(index int64) string {
	n := index + 1
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// FormatGridRange renders a GridRange back to A1 notation. A sheet
// prefix is added only when the range lives on a different sheet than
// currentSheetID; the title is looked up in titlesByID with the raw id
// as fallback.
func FormatGridRange(r GridRange, currentSheetID int64, titlesByID map[int64]string) string {
	prefix := ""
	if r.SheetID != currentSheetID {
		title := titlesByID[r.SheetID]
		if title == "" {
			title = fmt.Sprintf("sheet %d", r.SheetID)
		}
		if strings.ContainsAny(title, " !:") {
			title = "'" + strings.ReplaceAll(title, "'", "''") + "'"
		}
		prefix = title + "!"
	}

	rowsBounded := r.StartRowIndex != nil && r.EndRowIndex != nil
	colsBounded := r.StartColumnIndex != nil && r.EndColumnIndex != nil

	switch {
	case rowsBounded && colsBounded:
		start := ColumnLabel(*r.StartColumnIndex) + strconv.FormatInt(*r.StartRowIndex+1, 10)
		if *r.EndRowIndex == *r.StartRowIndex+1 && *r.EndColumnIndex == *r.StartColumnIndex+1 {
			return prefix + start
		}
		end := ColumnLabel(*r.EndColumnIndex-1) + strconv.FormatInt(*r.EndRowIndex, 10)
		return prefix + start + ":" + end
	case colsBounded:
		return prefix + ColumnLabel(*r.StartColumnIndex) + ":" + ColumnLabel(*r.EndColumnIndex-1)
	case rowsBounded:
		return prefix + strconv.FormatInt(*r.StartRowIndex+1, 10) + ":" + strconv.FormatInt(*r.EndRowIndex, 10)
	default:
		if prefix != "" {
			return strings.TrimSuffix(prefix, "!")
		}
		return "entire sheet"
	}
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
