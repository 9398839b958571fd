package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/server"
)

func TestRegisterAllTools(t *testing.T) {
	serverContext, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	if err := registerAllTools(mcpSrv, serverContext, false); err != nil {
		t.Fatalf("registerAllTools failed: %v", err)
	}

	tools := mcpSrv.ListTools()
	if len(tools) == 0 {
		t.Fatal("expected tools to be registered")
	}

	// Every service group should contribute at least one tool
	prefixes := []string{"google_", "sheets_", "chat_", "admin_", "forms_", "keep_", "meet_", "people_", "slides_"}
	for _, prefix := range prefixes {
		found := false
		for _, tool := range tools {
			if strings.HasPrefix(tool.Tool.Name, prefix) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no tools registered with prefix %q", prefix)
		}
	}
}

func TestRegisterAllToolsReadOnly(t *testing.T) {
	serverContext, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	readOnlySrv := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(readOnlySrv, serverContext, true); err != nil {
		t.Fatalf("registerAllTools (read-only) failed: %v", err)
	}

	fullSrv := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(fullSrv, serverContext, false); err != nil {
		t.Fatalf("registerAllTools (full) failed: %v", err)
	}

	readOnlyCount := len(readOnlySrv.ListTools())
	fullCount := len(fullSrv.ListTools())
	if readOnlyCount >= fullCount {
		t.Errorf("read-only mode registered %d tools, expected fewer than full mode's %d", readOnlyCount, fullCount)
	}

	// Write tools must not be present in read-only mode
	writeTools := []string{"sheets_modify_values", "admin_create_user", "keep_delete_note", "chat_send_message"}
	for _, tool := range readOnlySrv.ListTools() {
		for _, name := range writeTools {
			if tool.Tool.Name == name {
				t.Errorf("write tool %q registered in read-only mode", name)
			}
		}
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"sheets_get_values", "Google Sheets Tools"},
		{"admin_list_users", "Admin Directory Tools"},
		{"chat_send_message", "Google Chat Tools"},
		{"forms_get_form", "Google Forms Tools"},
		{"keep_list_notes", "Google Keep Tools"},
		{"meet_list_conference_records", "Google Meet Tools"},
		{"people_list_contacts", "Google Contacts Tools"},
		{"slides_get_presentation", "Google Slides Tools"},
		{"google_get_auth_url", "Authentication Tools"},
		{"unknown_tool", "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.name); got != tt.expected {
			t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestGenerateToolsMarkdown(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("sheets_get_values",
			mcp.WithDescription("Read values from a spreadsheet range"),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The spreadsheet ID")),
			mcp.WithString("range", mcp.Description("A1 notation range")),
		),
	}

	markdown := generateToolsMarkdown(tools)

	for _, want := range []string{
		"# MCP Tools Reference",
		"## Google Sheets Tools",
		"### sheets_get_values",
		"`spreadsheetId` (required)",
		"`range` (optional)",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("generated markdown missing %q", want)
		}
	}
}
