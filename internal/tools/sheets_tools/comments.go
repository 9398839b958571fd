package sheets_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/sheets"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// formatComment renders a comment thread with its replies
func formatComment(sb *strings.Builder, c sheets.SheetComment) {
	status := "open"
	if c.Resolved {
		status = "resolved"
	}
	sb.WriteString(fmt.Sprintf("- [%s] %s (id %s, %s): %s\n", status, c.Author, c.ID, c.Created, c.Content))
	for _, r := range c.Replies {
		sb.WriteString(fmt.Sprintf("  - %s (id %s, %s): %s\n", r.Author, r.ID, r.Created, r.Content))
	}
}

// registerCommentTools registers spreadsheet comment thread tools
func registerCommentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Read comments tool
	readTool := mcp.NewTool("sheets_read_comments",
		mcp.WithDescription("Read the comment threads on a spreadsheet, including replies and resolution state"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of comment threads to return (default: 25)"),
		),
	)

	s.AddTool(readTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		maxResults, _ := argInt(args, "maxResults")
		comments, err := client.ListComments(ctx, spreadsheetID, maxResults)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read comments: %v", err)), nil
		}
		if len(comments) == 0 {
			return mcp.NewToolResultText("No comments found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d comment threads:\n", len(comments)))
		for _, c := range comments {
			formatComment(&sb, c)
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Create comment tool
	createTool := mcp.NewTool("sheets_create_comment",
		mcp.WithDescription("Start a new comment thread on a spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The comment text"),
		),
	)

	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		content, ok := args["content"].(string)
		if !ok || content == "" {
			return mcp.NewToolResultError("content is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		comment, err := client.CreateComment(ctx, spreadsheetID, content)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create comment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created comment (id %s)", comment.ID)), nil
	})

	// Reply to comment tool
	replyTool := mcp.NewTool("sheets_reply_to_comment",
		mcp.WithDescription("Reply to an existing comment thread on a spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("commentId",
			mcp.Required(),
			mcp.Description("The ID of the comment thread to reply to"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The reply text"),
		),
	)

	s.AddTool(replyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		commentID, ok := args["commentId"].(string)
		if !ok || commentID == "" {
			return mcp.NewToolResultError("commentId is required"), nil
		}
		content, ok := args["content"].(string)
		if !ok || content == "" {
			return mcp.NewToolResultError("content is required"), nil
		}

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		reply, err := client.ReplyToComment(ctx, spreadsheetID, commentID, content)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to reply to comment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully replied to comment %s (reply id %s)", commentID, reply.ID)), nil
	})

	// Resolve comment tool
	resolveTool := mcp.NewTool("sheets_resolve_comment",
		mcp.WithDescription("Resolve a comment thread on a spreadsheet, optionally with a closing reply"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("commentId",
			mcp.Required(),
			mcp.Description("The ID of the comment thread to resolve"),
		),
		mcp.WithString("content",
			mcp.Description("An optional closing reply posted alongside the resolution"),
		),
	)

	s.AddTool(resolveTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		spreadsheetID, ok := args["spreadsheetId"].(string)
		if !ok || spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		commentID, ok := args["commentId"].(string)
		if !ok || commentID == "" {
			return mcp.NewToolResultError("commentId is required"), nil
		}
		content, _ := args["content"].(string)

		client, err := getSheetsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.ResolveComment(ctx, spreadsheetID, commentID, content); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve comment: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully resolved comment %s", commentID)), nil
	})

	return nil
}
