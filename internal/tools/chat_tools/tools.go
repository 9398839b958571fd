package chat_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/chat"
	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getChatClient retrieves or creates a chat client for the specified account
func getChatClient(ctx context.Context, account string, sc *server.ServerContext) (*chat.Client, error) {
	client := sc.ChatClientForAccount(account)
	if client == nil {
		if !chat.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = chat.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Chat client for account %s: %w", account, err)
		}
		sc.SetChatClientForAccount(account, client)
	}
	return client, nil
}

func formatMessages(messages []chat.Message) string {
	if len(messages) == 0 {
		return "No messages found."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d messages:\n", len(messages)))
	for _, m := range messages {
		text := m.Text
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n  (name: %s)\n", m.CreateTime, m.Sender, text, m.Name))
	}
	return sb.String()
}

// RegisterChatTools registers all Google Chat tools with the MCP server
func RegisterChatTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerSpaceTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register space tools: %w", err)
	}
	if err := registerMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}
	return nil
}

// registerSpaceTools registers space and membership tools
func registerSpaceTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List spaces tool
	listSpacesTool := mcp.NewTool("chat_list_spaces",
		mcp.WithDescription("List Chat spaces the authenticated user is a member of"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of spaces to return"),
		),
	)

	s.AddTool(listSpacesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		spaces, _, err := client.ListSpaces(ctx, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list spaces: %v", err)), nil
		}
		if len(spaces) == 0 {
			return mcp.NewToolResultText("No spaces found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d spaces:\n", len(spaces)))
		for _, sp := range spaces {
			name := sp.DisplayName
			if name == "" {
				name = "(direct message)"
			}
			sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n", name, sp.Name, sp.SpaceType))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// List members tool
	listMembersTool := mcp.NewTool("chat_list_members",
		mcp.WithDescription("List the members of a Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
	)

	s.AddTool(listMembersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		members, _, err := client.ListMembers(ctx, space, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list members: %v", err)), nil
		}
		if len(members) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Space %s has no members.", space)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Members of %s (%d):\n", space, len(members)))
		for _, m := range members {
			sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n  (membership: %s)\n", m.DisplayName, m.User, m.Role, m.Name))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Create space tool
	createSpaceTool := mcp.NewTool("chat_create_space",
		mcp.WithDescription("Create a new Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("displayName",
			mcp.Required(),
			mcp.Description("The display name for the new space"),
		),
		mcp.WithString("spaceType",
			mcp.Description("The space type: SPACE or GROUP_CHAT (default: SPACE)"),
		),
	)

	s.AddTool(createSpaceTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		displayName, ok := args["displayName"].(string)
		if !ok || displayName == "" {
			return mcp.NewToolResultError("displayName is required"), nil
		}
		spaceType, _ := args["spaceType"].(string)

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sp, err := client.CreateSpace(ctx, displayName, strings.ToUpper(spaceType))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create space: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created space %s (%s)", sp.DisplayName, sp.Name)), nil
	})

	// Add member tool
	addMemberTool := mcp.NewTool("chat_add_member",
		mcp.WithDescription("Add a user to a Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("The email address of the user to add"),
		),
	)

	s.AddTool(addMemberTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}
		email, ok := args["email"].(string)
		if !ok || email == "" {
			return mcp.NewToolResultError("email is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		m, err := client.AddMember(ctx, space, email)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add member: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully added %s to %s (membership: %s)", email, space, m.Name)), nil
	})

	// Remove member tool
	removeMemberTool := mcp.NewTool("chat_remove_member",
		mcp.WithDescription("Remove a member from a Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("membership",
			mcp.Required(),
			mcp.Description("The membership resource name, e.g. 'spaces/AAAA1234/members/111111'"),
		),
	)

	s.AddTool(removeMemberTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		membership, ok := args["membership"].(string)
		if !ok || membership == "" {
			return mcp.NewToolResultError("membership is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.RemoveMember(ctx, membership); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to remove member: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully removed membership %s", membership)), nil
	})

	return nil
}

// registerMessageTools registers message tools
func registerMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List messages tool
	listMessagesTool := mcp.NewTool("chat_list_messages",
		mcp.WithDescription("List recent messages in a Chat space, newest first"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of messages to return"),
		),
	)

	s.AddTool(listMessagesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		messages, _, err := client.ListMessages(ctx, space, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
		}
		return mcp.NewToolResultText(formatMessages(messages)), nil
	})

	// Search messages tool
	searchMessagesTool := mcp.NewTool("chat_search_messages",
		mcp.WithDescription("Search messages in a Chat space using a filter expression"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
		mcp.WithString("filter",
			mcp.Required(),
			mcp.Description("Filter expression, e.g. 'createTime > \"2024-01-01T00:00:00Z\"'"),
		),
	)

	s.AddTool(searchMessagesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}
		filter, ok := args["filter"].(string)
		if !ok || filter == "" {
			return mcp.NewToolResultError("filter is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		messages, err := client.SearchMessages(ctx, space, filter, 0)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search messages: %v", err)), nil
		}
		return mcp.NewToolResultText(formatMessages(messages)), nil
	})

	if readOnly {
		return nil
	}

	// Send message tool
	sendMessageTool := mcp.NewTool("chat_send_message",
		mcp.WithDescription("Send a text message to a Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message text"),
		),
	)

	s.AddTool(sendMessageTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}
		text, ok := args["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		m, err := client.SendMessage(ctx, space, text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully sent message %s", m.Name)), nil
	})

	// Reply to thread tool
	replyThreadTool := mcp.NewTool("chat_reply_to_thread",
		mcp.WithDescription("Reply to a message thread in a Chat space. Falls back to a new thread if the space doesn't support threading."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("The space resource name, e.g. 'spaces/AAAA1234'"),
		),
		mcp.WithString("thread",
			mcp.Required(),
			mcp.Description("The thread resource name, e.g. 'spaces/AAAA1234/threads/BBBB5678'"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The reply text"),
		),
	)

	s.AddTool(replyThreadTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		space, ok := args["space"].(string)
		if !ok || space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}
		thread, ok := args["thread"].(string)
		if !ok || thread == "" {
			return mcp.NewToolResultError("thread is required"), nil
		}
		text, ok := args["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		client, err := getChatClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		m, err := client.ReplyToThread(ctx, space, thread, text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to reply to thread: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully sent reply %s", m.Name)), nil
	})

	return nil
}
