package forms_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/forms"
	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getFormsClient retrieves or creates a forms client for the specified account
func getFormsClient(ctx context.Context, account string, sc *server.ServerContext) (*forms.Client, error) {
	client := sc.FormsClientForAccount(account)
	if client == nil {
		if !forms.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = forms.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Forms client for account %s: %w", account, err)
		}
		sc.SetFormsClientForAccount(account, client)
	}
	return client, nil
}

func formatResponse(r *forms.Response) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Response %s from %s at %s:\n", r.ResponseID, r.Respondent, r.SubmitTime))
	for question, answers := range r.Answers {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", question, strings.Join(answers, "; ")))
	}
	return sb.String()
}

// RegisterFormsTools registers all Google Forms tools with the MCP server
func RegisterFormsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get form tool
	getFormTool := mcp.NewTool("forms_get_form",
		mcp.WithDescription("Get a form's metadata, including its title, responder URI, and item count"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("formId",
			mcp.Required(),
			mcp.Description("The ID of the form"),
		),
	)

	s.AddTool(getFormTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		formID, ok := args["formId"].(string)
		if !ok || formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.GetForm(ctx, formID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get form: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Form: %s\nID: %s\nDocument title: %s\nItems: %d\nResponder URI: %s",
			info.Title, info.FormID, info.DocumentTitle, info.ItemCount, info.ResponderURI)), nil
	})

	// List responses tool
	listResponsesTool := mcp.NewTool("forms_list_responses",
		mcp.WithDescription("List the responses submitted to a form"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("formId",
			mcp.Required(),
			mcp.Description("The ID of the form"),
		),
	)

	s.AddTool(listResponsesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		formID, ok := args["formId"].(string)
		if !ok || formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		responses, _, err := client.ListResponses(ctx, formID, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list responses: %v", err)), nil
		}
		if len(responses) == 0 {
			return mcp.NewToolResultText("No responses found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d responses:\n", len(responses)))
		for _, r := range responses {
			sb.WriteString(formatResponse(&r))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get response tool
	getResponseTool := mcp.NewTool("forms_get_response",
		mcp.WithDescription("Get a single form response by ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("formId",
			mcp.Required(),
			mcp.Description("The ID of the form"),
		),
		mcp.WithString("responseId",
			mcp.Required(),
			mcp.Description("The ID of the response"),
		),
	)

	s.AddTool(getResponseTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		formID, ok := args["formId"].(string)
		if !ok || formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}
		responseID, ok := args["responseId"].(string)
		if !ok || responseID == "" {
			return mcp.NewToolResultError("responseId is required"), nil
		}

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		r, err := client.GetResponse(ctx, formID, responseID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get response: %v", err)), nil
		}

		return mcp.NewToolResultText(formatResponse(r)), nil
	})

	if readOnly {
		return nil
	}

	// Create form tool
	createFormTool := mcp.NewTool("forms_create_form",
		mcp.WithDescription("Create a new form with a title"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title shown to respondents"),
		),
		mcp.WithString("documentTitle",
			mcp.Description("The title shown in Drive (defaults to the form title)"),
		),
	)

	s.AddTool(createFormTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		title, ok := args["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		documentTitle, _ := args["documentTitle"].(string)

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.CreateForm(ctx, title, documentTitle)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create form: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created form %s (ID: %s)\nResponder URI: %s",
			info.Title, info.FormID, info.ResponderURI)), nil
	})

	// Batch update tool
	batchUpdateTool := mcp.NewTool("forms_batch_update",
		mcp.WithDescription("Apply a batch of update requests to a form, e.g. to add questions. Requests use the Forms API request JSON format."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("formId",
			mcp.Required(),
			mcp.Description("The ID of the form"),
		),
		mcp.WithString("requests",
			mcp.Required(),
			mcp.Description("JSON array of Forms API request objects, e.g. '[{\"createItem\": {...}}]'"),
		),
	)

	s.AddTool(batchUpdateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		formID, ok := args["formId"].(string)
		if !ok || formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}
		requestsJSON, ok := args["requests"].(string)
		if !ok || requestsJSON == "" {
			return mcp.NewToolResultError("requests is required"), nil
		}

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.BatchUpdate(ctx, formID, requestsJSON)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update form: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully updated form %s (%d items)", info.FormID, info.ItemCount)), nil
	})

	// Publish settings tool
	publishTool := mcp.NewTool("forms_set_publish_settings",
		mcp.WithDescription("Publish or unpublish a form and control whether it accepts responses"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("formId",
			mcp.Required(),
			mcp.Description("The ID of the form"),
		),
		mcp.WithBoolean("published",
			mcp.Required(),
			mcp.Description("Whether the form is published"),
		),
		mcp.WithBoolean("acceptingResponses",
			mcp.Description("Whether the form accepts responses (default: same as published)"),
		),
	)

	s.AddTool(publishTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		formID, ok := args["formId"].(string)
		if !ok || formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}
		published, ok := args["published"].(bool)
		if !ok {
			return mcp.NewToolResultError("published is required"), nil
		}
		acceptingResponses := published
		if accepting, ok := args["acceptingResponses"].(bool); ok {
			acceptingResponses = accepting
		}

		client, err := getFormsClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.SetPublishSettings(ctx, formID, published, acceptingResponses); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to set publish settings: %v", err)), nil
		}

		state := "unpublished"
		if published {
			state = "published"
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully set form %s to %s (accepting responses: %t)",
			formID, state, acceptingResponses)), nil
	})

	return nil
}
