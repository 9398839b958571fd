package keep_tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/keep"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/batch"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getKeepClient retrieves or creates a keep client for the specified account
func getKeepClient(ctx context.Context, account string, sc *server.ServerContext) (*keep.Client, error) {
	client := sc.KeepClientForAccount(account)
	if client == nil {
		if !keep.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = keep.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Keep client for account %s: %w", account, err)
		}
		sc.SetKeepClientForAccount(account, client)
	}
	return client, nil
}

func formatNote(n *keep.Note) string {
	var sb strings.Builder
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("Note: %s (%s)\n", title, n.Name))
	if n.Trashed {
		sb.WriteString("Status: trashed\n")
	}
	sb.WriteString(fmt.Sprintf("Updated: %s\n", n.UpdateTime))
	if n.Text != "" {
		sb.WriteString(n.Text + "\n")
	}
	for _, item := range n.ListItems {
		sb.WriteString("- " + item + "\n")
	}
	if len(n.Attachments) > 0 {
		sb.WriteString(fmt.Sprintf("Attachments: %s\n", strings.Join(n.Attachments, ", ")))
	}
	if len(n.Permissions) > 0 {
		var grants []string
		for _, p := range n.Permissions {
			grants = append(grants, fmt.Sprintf("%s (%s)", p.Email, p.Role))
		}
		sb.WriteString(fmt.Sprintf("Shared with: %s\n", strings.Join(grants, ", ")))
	}
	return sb.String()
}

// RegisterKeepTools registers all Google Keep tools with the MCP server
func RegisterKeepTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List notes tool
	listNotesTool := mcp.NewTool("keep_list_notes",
		mcp.WithDescription("List Keep notes, optionally filtered"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("filter",
			mcp.Description("Filter expression, e.g. 'trashed=false'"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of notes to return"),
		),
	)

	s.AddTool(listNotesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		filter, _ := args["filter"].(string)
		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		notes, _, err := client.ListNotes(ctx, filter, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list notes: %v", err)), nil
		}
		if len(notes) == 0 {
			return mcp.NewToolResultText("No notes found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d notes:\n", len(notes)))
		for _, n := range notes {
			title := n.Title
			if title == "" {
				title = "(untitled)"
			}
			sb.WriteString(fmt.Sprintf("- %s (%s, updated %s)\n", title, n.Name, n.UpdateTime))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get note tool
	getNoteTool := mcp.NewTool("keep_get_note",
		mcp.WithDescription("Get a Keep note including its body, attachments, and permissions"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The note resource name, e.g. 'notes/abc123'"),
		),
	)

	s.AddTool(getNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		n, err := client.GetNote(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get note: %v", err)), nil
		}
		return mcp.NewToolResultText(formatNote(n)), nil
	})

	// Download attachment tool
	downloadAttachmentTool := mcp.NewTool("keep_download_attachment",
		mcp.WithDescription("Download a note attachment. Returns the content base64-encoded."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The attachment resource name, e.g. 'notes/abc123/attachments/def456'"),
		),
		mcp.WithString("mimeType",
			mcp.Description("The MIME type to download as, e.g. 'image/png'"),
		),
	)

	s.AddTool(downloadAttachmentTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		mimeType, _ := args["mimeType"].(string)

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := client.DownloadAttachment(ctx, name, mimeType)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to download attachment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Attachment %s (%d bytes, base64):\n%s",
			name, len(data), base64.StdEncoding.EncodeToString(data))), nil
	})

	// List permissions tool
	listPermissionsTool := mcp.NewTool("keep_list_permissions",
		mcp.WithDescription("List who a note is shared with"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The note resource name, e.g. 'notes/abc123'"),
		),
	)

	s.AddTool(listPermissionsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		n, err := client.GetNote(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get note: %v", err)), nil
		}
		if len(n.Permissions) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Note %s is not shared.", name)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Note %s is shared with %d users:\n", name, len(n.Permissions)))
		for _, p := range n.Permissions {
			sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n", p.Email, p.Role, p.Name))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Create note tool
	createNoteTool := mcp.NewTool("keep_create_note",
		mcp.WithDescription("Create a new text note"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Description("The note title"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The note body text"),
		),
	)

	s.AddTool(createNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		text, ok := args["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("text is required"), nil
		}
		title, _ := args["title"].(string)

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		n, err := client.CreateNote(ctx, title, text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create note: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created note %s", n.Name)), nil
	})

	// Delete note tool
	deleteNoteTool := mcp.NewTool("keep_delete_note",
		mcp.WithDescription("Delete one or more Keep notes. Supports batch operations."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The note resource name, e.g. 'notes/abc123', or a JSON array of names"),
		),
	)

	s.AddTool(deleteNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		names, err := batch.ParseStringOrArray(args["name"], "name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.ProcessBatch(names, func(name string) (string, error) {
			if err := client.DeleteNote(ctx, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Successfully deleted note %s", name), nil
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	// Share note tool
	shareNoteTool := mcp.NewTool("keep_share_note",
		mcp.WithDescription("Grant write access on a note to one or more users"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The note resource name, e.g. 'notes/abc123'"),
		),
		mcp.WithString("emails",
			mcp.Required(),
			mcp.Description("Comma-separated email addresses to share with"),
		),
	)

	s.AddTool(shareNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		emailsStr, ok := args["emails"].(string)
		if !ok || emailsStr == "" {
			return mcp.NewToolResultError("emails is required"), nil
		}
		var emails []string
		for _, e := range strings.Split(emailsStr, ",") {
			if e = strings.TrimSpace(e); e != "" {
				emails = append(emails, e)
			}
		}

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		perms, err := client.ShareNote(ctx, name, emails)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to share note: %v", err)), nil
		}

		var granted []string
		for _, p := range perms {
			granted = append(granted, fmt.Sprintf("%s (%s)", p.Email, p.Name))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully shared note %s with: %s",
			name, strings.Join(granted, ", "))), nil
	})

	// Unshare note tool
	unshareNoteTool := mcp.NewTool("keep_unshare_note",
		mcp.WithDescription("Revoke permissions on a note"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The note resource name, e.g. 'notes/abc123'"),
		),
		mcp.WithString("permissions",
			mcp.Required(),
			mcp.Description("Comma-separated permission resource names to revoke"),
		),
	)

	s.AddTool(unshareNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		permsStr, ok := args["permissions"].(string)
		if !ok || permsStr == "" {
			return mcp.NewToolResultError("permissions is required"), nil
		}
		var permissionNames []string
		for _, p := range strings.Split(permsStr, ",") {
			if p = strings.TrimSpace(p); p != "" {
				permissionNames = append(permissionNames, p)
			}
		}

		client, err := getKeepClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.UnshareNote(ctx, name, permissionNames); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to unshare note: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully revoked %d permissions on note %s",
			len(permissionNames), name)), nil
	})

	return nil
}
