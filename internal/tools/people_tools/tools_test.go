package people_tools

import (
	"strings"
	"testing"

	"github.com/polaralias/google-workspace-mcp/internal/people"
)

func TestContactInputFromArgs(t *testing.T) {
	args := map[string]interface{}{
		"givenName":    "Jane",
		"familyName":   "Doe",
		"email":        "jane@example.com",
		"organization": "Acme",
	}
	input := contactInputFromArgs(args)
	if input.GivenName != "Jane" || input.FamilyName != "Doe" {
		t.Errorf("contactInputFromArgs() names = %q %q", input.GivenName, input.FamilyName)
	}
	if input.Email != "jane@example.com" {
		t.Errorf("contactInputFromArgs() email = %q", input.Email)
	}
	if input.Phone != "" {
		t.Errorf("contactInputFromArgs() phone should be empty, got %q", input.Phone)
	}
	if input.Organization != "Acme" {
		t.Errorf("contactInputFromArgs() organization = %q", input.Organization)
	}
}

func TestFormatContacts(t *testing.T) {
	if got := formatContacts(nil); got != "No contacts found." {
		t.Errorf("formatContacts(nil) = %q", got)
	}

	contacts := []people.Contact{
		{
			ResourceName: "people/c123",
			DisplayName:  "Jane Doe",
			Emails:       []string{"jane@example.com"},
			Organization: "Acme",
		},
		{ResourceName: "people/c456"},
	}
	got := formatContacts(contacts)
	if !strings.Contains(got, "Jane Doe (people/c123)") {
		t.Errorf("formatContacts() missing contact line: %q", got)
	}
	if !strings.Contains(got, "Organization: Acme") {
		t.Errorf("formatContacts() missing organization: %q", got)
	}
	if !strings.Contains(got, "(no name) (people/c456)") {
		t.Errorf("formatContacts() should label nameless contacts: %q", got)
	}
}

func TestRegisterPeopleTools(t *testing.T) {
	// This test verifies that RegisterPeopleTools doesn't panic
	// We can't fully test the registration without a real MCP server and context
	// But we can ensure the function signature is correct
	_ = RegisterPeopleTools
}
