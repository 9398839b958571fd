package admin_tools

import (
	"testing"

	"github.com/polaralias/google-workspace-mcp/internal/admin"
)

func TestFormatUser(t *testing.T) {
	u := &admin.User{
		PrimaryEmail: "jane@example.com",
		FullName:     "Jane Doe",
	}
	got := formatUser(u)
	want := "jane@example.com (Jane Doe, active)"
	if got != want {
		t.Errorf("formatUser() = %q, want %q", got, want)
	}

	u.Suspended = true
	u.IsAdmin = true
	got = formatUser(u)
	want = "jane@example.com (Jane Doe, suspended, admin)"
	if got != want {
		t.Errorf("formatUser() = %q, want %q", got, want)
	}
}

func TestRegisterAdminTools(t *testing.T) {
	// This test verifies that RegisterAdminTools doesn't panic
	// We can't fully test the registration without a real MCP server and context
	// But we can ensure the function signature is correct
	_ = RegisterAdminTools
}
