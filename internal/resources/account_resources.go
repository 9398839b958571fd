package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// RegisterAccountResources registers resources describing the configured
// Google accounts
func RegisterAccountResources(s *mcpserver.MCPServer) error {
	accountsResource := mcp.NewResource(
		"accounts://list",
		"Authenticated Accounts",
		mcp.WithResourceDescription("Google accounts with stored OAuth tokens"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(accountsResource, handleAccountList)

	return nil
}

// handleAccountList returns the accounts that have a stored OAuth token
func handleAccountList(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	accounts, err := google.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	entries := make([]map[string]interface{}, 0, len(accounts))
	for _, account := range accounts {
		entries = append(entries, map[string]interface{}{
			"account":       account,
			"authenticated": google.HasTokenForAccount(account),
		})
	}

	jsonData, err := json.MarshalIndent(map[string]interface{}{
		"accounts": entries,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
