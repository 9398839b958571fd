package people_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/people"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/batch"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getPeopleClient retrieves or creates a people client for the specified account
func getPeopleClient(ctx context.Context, account string, sc *server.ServerContext) (*people.Client, error) {
	client := sc.PeopleClientForAccount(account)
	if client == nil {
		if !people.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = people.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create People client for account %s: %w", account, err)
		}
		sc.SetPeopleClientForAccount(account, client)
	}
	return client, nil
}

// contactInputFromArgs builds a ContactInput from tool arguments
func contactInputFromArgs(args map[string]interface{}) people.ContactInput {
	input := people.ContactInput{}
	input.GivenName, _ = args["givenName"].(string)
	input.FamilyName, _ = args["familyName"].(string)
	input.Email, _ = args["email"].(string)
	input.Phone, _ = args["phone"].(string)
	input.Organization, _ = args["organization"].(string)
	return input
}

func formatContacts(contacts []people.Contact) string {
	if len(contacts) == 0 {
		return "No contacts found."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d contacts:\n", len(contacts)))
	for _, c := range contacts {
		name := c.DisplayName
		if name == "" {
			name = "(no name)"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", name, c.ResourceName))
		if len(c.Emails) > 0 {
			sb.WriteString(fmt.Sprintf("  Email: %s\n", strings.Join(c.Emails, ", ")))
		}
		if len(c.Phones) > 0 {
			sb.WriteString(fmt.Sprintf("  Phone: %s\n", strings.Join(c.Phones, ", ")))
		}
		if c.Organization != "" {
			sb.WriteString(fmt.Sprintf("  Organization: %s\n", c.Organization))
		}
	}
	return sb.String()
}

// RegisterPeopleTools registers all People API contact tools with the MCP server
func RegisterPeopleTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List contacts tool
	listContactsTool := mcp.NewTool("people_list_contacts",
		mcp.WithDescription("List the authenticated user's contacts"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of contacts to return"),
		),
	)

	s.AddTool(listContactsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		contacts, _, err := client.ListContacts(ctx, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list contacts: %v", err)), nil
		}
		return mcp.NewToolResultText(formatContacts(contacts)), nil
	})

	// Search contacts tool
	searchContactsTool := mcp.NewTool("people_search_contacts",
		mcp.WithDescription("Search the user's contacts by name, email, or phone number"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results to return"),
		),
	)

	s.AddTool(searchContactsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		contacts, err := client.SearchContacts(ctx, query, pageSize)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
		}
		return mcp.NewToolResultText(formatContacts(contacts)), nil
	})

	// List other contacts tool
	listOtherContactsTool := mcp.NewTool("people_list_other_contacts",
		mcp.WithDescription("List 'other contacts' -- people the user has interacted with but not added"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of contacts to return"),
		),
	)

	s.AddTool(listOtherContactsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		contacts, _, err := client.ListOtherContacts(ctx, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list other contacts: %v", err)), nil
		}
		return mcp.NewToolResultText(formatContacts(contacts)), nil
	})

	// Search directory tool
	searchDirectoryTool := mcp.NewTool("people_search_directory",
		mcp.WithDescription("Search the Workspace domain directory for people"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results to return"),
		),
	)

	s.AddTool(searchDirectoryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		contacts, err := client.SearchDirectory(ctx, query, pageSize)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search directory: %v", err)), nil
		}
		return mcp.NewToolResultText(formatContacts(contacts)), nil
	})

	if readOnly {
		return nil
	}

	// Create contact tool
	createContactTool := mcp.NewTool("people_create_contact",
		mcp.WithDescription("Create a new contact"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("givenName",
			mcp.Required(),
			mcp.Description("The contact's given name"),
		),
		mcp.WithString("familyName",
			mcp.Description("The contact's family name"),
		),
		mcp.WithString("email",
			mcp.Description("The contact's email address"),
		),
		mcp.WithString("phone",
			mcp.Description("The contact's phone number"),
		),
		mcp.WithString("organization",
			mcp.Description("The contact's organization"),
		),
	)

	s.AddTool(createContactTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		input := contactInputFromArgs(args)
		if input.GivenName == "" {
			return mcp.NewToolResultError("givenName is required"), nil
		}

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		c, err := client.CreateContact(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create contact: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created contact %s (%s)", c.DisplayName, c.ResourceName)), nil
	})

	// Update contact tool
	updateContactTool := mcp.NewTool("people_update_contact",
		mcp.WithDescription("Update an existing contact's name, email, phone, or organization"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("resourceName",
			mcp.Required(),
			mcp.Description("The contact's resource name, e.g. 'people/c12345'"),
		),
		mcp.WithString("givenName",
			mcp.Description("The new given name"),
		),
		mcp.WithString("familyName",
			mcp.Description("The new family name"),
		),
		mcp.WithString("email",
			mcp.Description("The new email address"),
		),
		mcp.WithString("phone",
			mcp.Description("The new phone number"),
		),
		mcp.WithString("organization",
			mcp.Description("The new organization"),
		),
	)

	s.AddTool(updateContactTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		resourceName, ok := args["resourceName"].(string)
		if !ok || resourceName == "" {
			return mcp.NewToolResultError("resourceName is required"), nil
		}

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		c, err := client.UpdateContact(ctx, resourceName, contactInputFromArgs(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update contact: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated contact %s (%s)", c.DisplayName, c.ResourceName)), nil
	})

	// Delete contact tool
	deleteContactTool := mcp.NewTool("people_delete_contact",
		mcp.WithDescription("Delete one or more contacts. Supports batch operations."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("resourceName",
			mcp.Required(),
			mcp.Description("The contact's resource name, e.g. 'people/c12345', or a JSON array of resource names"),
		),
	)

	s.AddTool(deleteContactTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		resourceNames, err := batch.ParseStringOrArray(args["resourceName"], "resourceName")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getPeopleClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.ProcessBatch(resourceNames, func(resourceName string) (string, error) {
			if err := client.DeleteContact(ctx, resourceName); err != nil {
				return "", err
			}
			return fmt.Sprintf("Successfully deleted contact %s", resourceName), nil
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	return nil
}
