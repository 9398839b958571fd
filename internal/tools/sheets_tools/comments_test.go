package sheets_tools

import (
	"strings"
	"testing"

	"github.com/polaralias/google-workspace-mcp/internal/sheets"
)

func TestFormatComment(t *testing.T) {
	var sb strings.Builder
	formatComment(&sb, sheets.SheetComment{
		ID:      "c1",
		Author:  "Jane Doe",
		Content: "Check this total",
		Created: "2026-08-01T10:00:00Z",
		Replies: []sheets.SheetCommentReply{
			{ID: "r1", Author: "John Doe", Content: "Looks right", Created: "2026-08-01T11:00:00Z"},
		},
	})

	got := sb.String()
	for _, want := range []string{"[open]", "Jane Doe", "Check this total", "Looks right", "id c1", "id r1"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatComment() output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCommentResolved(t *testing.T) {
	var sb strings.Builder
	formatComment(&sb, sheets.SheetComment{ID: "c2", Author: "Jane Doe", Content: "Done", Resolved: true})
	if !strings.Contains(sb.String(), "[resolved]") {
		t.Errorf("formatComment() output missing resolved marker:\n%s", sb.String())
	}
}
