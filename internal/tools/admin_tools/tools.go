package admin_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/admin"
	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getAdminClient retrieves or creates an admin client for the specified account
func getAdminClient(ctx context.Context, account string, sc *server.ServerContext) (*admin.Client, error) {
	client := sc.AdminClientForAccount(account)
	if client == nil {
		if !admin.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = admin.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Admin client for account %s: %w", account, err)
		}
		sc.SetAdminClientForAccount(account, client)
	}
	return client, nil
}

func formatUser(u *admin.User) string {
	status := "active"
	if u.Suspended {
		status = "suspended"
	}
	line := fmt.Sprintf("%s (%s, %s", u.PrimaryEmail, u.FullName, status)
	if u.IsAdmin {
		line += ", admin"
	}
	return line + ")"
}

// RegisterAdminTools registers all Admin Directory and Reports tools with the MCP server
func RegisterAdminTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerUserTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register user tools: %w", err)
	}
	if err := registerGroupTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register group tools: %w", err)
	}
	if err := registerReportTools(s, sc); err != nil {
		return fmt.Errorf("failed to register report tools: %w", err)
	}
	return nil
}

// registerUserTools registers user management tools
func registerUserTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List users tool
	listUsersTool := mcp.NewTool("admin_list_users",
		mcp.WithDescription("List users in the Workspace domain"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Directory search query, e.g. 'name:Jane*' or 'isSuspended=true'"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of users to return"),
		),
	)

	s.AddTool(listUsersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		query, _ := args["query"].(string)
		var maxResults int64
		if n, ok := args["maxResults"].(float64); ok {
			maxResults = int64(n)
		}

		users, nextPage, err := client.ListUsers(ctx, query, maxResults, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list users: %v", err)), nil
		}
		if len(users) == 0 {
			return mcp.NewToolResultText("No users found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d users:\n", len(users)))
		for _, u := range users {
			sb.WriteString("- " + formatUser(&u) + "\n")
		}
		if nextPage != "" {
			sb.WriteString("(more results available)\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get user tool
	getUserTool := mcp.NewTool("admin_get_user",
		mcp.WithDescription("Get a user by primary email, alias, or user ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("userKey",
			mcp.Required(),
			mcp.Description("The user's primary email, alias, or ID"),
		),
	)

	s.AddTool(getUserTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		userKey, ok := args["userKey"].(string)
		if !ok || userKey == "" {
			return mcp.NewToolResultError("userKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		u, err := client.GetUser(ctx, userKey)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get user: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\nID: %s\nOrg unit: %s\nLast login: %s",
			formatUser(u), u.ID, u.OrgUnitPath, u.LastLoginTime)), nil
	})

	if readOnly {
		return nil
	}

	// Create user tool
	createUserTool := mcp.NewTool("admin_create_user",
		mcp.WithDescription("Create a new user in the domain"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("primaryEmail",
			mcp.Required(),
			mcp.Description("The new user's primary email address"),
		),
		mcp.WithString("givenName",
			mcp.Required(),
			mcp.Description("The user's given name"),
		),
		mcp.WithString("familyName",
			mcp.Required(),
			mcp.Description("The user's family name"),
		),
		mcp.WithString("password",
			mcp.Required(),
			mcp.Description("The user's initial password"),
		),
		mcp.WithString("orgUnitPath",
			mcp.Description("The organizational unit to place the user in, e.g. '/Engineering'"),
		),
	)

	s.AddTool(createUserTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		input := admin.UserInput{}
		var ok bool
		if input.PrimaryEmail, ok = args["primaryEmail"].(string); !ok || input.PrimaryEmail == "" {
			return mcp.NewToolResultError("primaryEmail is required"), nil
		}
		if input.GivenName, ok = args["givenName"].(string); !ok || input.GivenName == "" {
			return mcp.NewToolResultError("givenName is required"), nil
		}
		if input.FamilyName, ok = args["familyName"].(string); !ok || input.FamilyName == "" {
			return mcp.NewToolResultError("familyName is required"), nil
		}
		if input.Password, ok = args["password"].(string); !ok || input.Password == "" {
			return mcp.NewToolResultError("password is required"), nil
		}
		input.OrgUnitPath, _ = args["orgUnitPath"].(string)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		u, err := client.CreateUser(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create user: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created user %s (ID: %s)", u.PrimaryEmail, u.ID)), nil
	})

	// Suspend user tool
	suspendUserTool := mcp.NewTool("admin_suspend_user",
		mcp.WithDescription("Suspend a user account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("userKey",
			mcp.Required(),
			mcp.Description("The user's primary email, alias, or ID"),
		),
	)

	s.AddTool(suspendUserTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		userKey, ok := args["userKey"].(string)
		if !ok || userKey == "" {
			return mcp.NewToolResultError("userKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		u, err := client.SuspendUser(ctx, userKey)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to suspend user: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully suspended user %s", u.PrimaryEmail)), nil
	})

	// Restore user tool
	restoreUserTool := mcp.NewTool("admin_restore_user",
		mcp.WithDescription("Reactivate a suspended user account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("userKey",
			mcp.Required(),
			mcp.Description("The user's primary email, alias, or ID"),
		),
	)

	s.AddTool(restoreUserTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		userKey, ok := args["userKey"].(string)
		if !ok || userKey == "" {
			return mcp.NewToolResultError("userKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		u, err := client.RestoreUser(ctx, userKey)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to restore user: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully restored user %s", u.PrimaryEmail)), nil
	})

	return nil
}

// registerGroupTools registers group management tools
func registerGroupTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List groups tool
	listGroupsTool := mcp.NewTool("admin_list_groups",
		mcp.WithDescription("List groups in the Workspace domain"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of groups to return"),
		),
	)

	s.AddTool(listGroupsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var maxResults int64
		if n, ok := args["maxResults"].(float64); ok {
			maxResults = int64(n)
		}

		groups, _, err := client.ListGroups(ctx, maxResults, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list groups: %v", err)), nil
		}
		if len(groups) == 0 {
			return mcp.NewToolResultText("No groups found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d groups:\n", len(groups)))
		for _, g := range groups {
			sb.WriteString(fmt.Sprintf("- %s (%s, %d members)\n", g.Name, g.Email, g.MemberCount))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get group tool
	getGroupTool := mcp.NewTool("admin_get_group",
		mcp.WithDescription("Get a group by email, alias, or group ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("groupKey",
			mcp.Required(),
			mcp.Description("The group's email, alias, or ID"),
		),
	)

	s.AddTool(getGroupTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		groupKey, ok := args["groupKey"].(string)
		if !ok || groupKey == "" {
			return mcp.NewToolResultError("groupKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		g, err := client.GetGroup(ctx, groupKey)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get group: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s (%s)\nID: %s\nMembers: %d\nDescription: %s",
			g.Name, g.Email, g.ID, g.MemberCount, g.Description)), nil
	})

	// List group members tool
	listMembersTool := mcp.NewTool("admin_list_group_members",
		mcp.WithDescription("List the members of a group"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("groupKey",
			mcp.Required(),
			mcp.Description("The group's email, alias, or ID"),
		),
	)

	s.AddTool(listMembersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		groupKey, ok := args["groupKey"].(string)
		if !ok || groupKey == "" {
			return mcp.NewToolResultError("groupKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		members, _, err := client.ListGroupMembers(ctx, groupKey, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list group members: %v", err)), nil
		}
		if len(members) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Group %s has no members.", groupKey)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Members of %s (%d):\n", groupKey, len(members)))
		for _, m := range members {
			sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n", m.Email, m.Role, m.Type))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	if readOnly {
		return nil
	}

	// Create group tool
	createGroupTool := mcp.NewTool("admin_create_group",
		mcp.WithDescription("Create a new group"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("The new group's email address"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The group's display name"),
		),
		mcp.WithString("description",
			mcp.Description("The group's description"),
		),
	)

	s.AddTool(createGroupTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		email, ok := args["email"].(string)
		if !ok || email == "" {
			return mcp.NewToolResultError("email is required"), nil
		}
		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		description, _ := args["description"].(string)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		g, err := client.CreateGroup(ctx, email, name, description)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create group: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created group %s (ID: %s)", g.Email, g.ID)), nil
	})

	// Delete group tool
	deleteGroupTool := mcp.NewTool("admin_delete_group",
		mcp.WithDescription("Delete a group"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("groupKey",
			mcp.Required(),
			mcp.Description("The group's email, alias, or ID"),
		),
	)

	s.AddTool(deleteGroupTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		groupKey, ok := args["groupKey"].(string)
		if !ok || groupKey == "" {
			return mcp.NewToolResultError("groupKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteGroup(ctx, groupKey); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete group: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted group %s", groupKey)), nil
	})

	// Add group member tool
	addMemberTool := mcp.NewTool("admin_add_group_member",
		mcp.WithDescription("Add a member to a group"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("groupKey",
			mcp.Required(),
			mcp.Description("The group's email, alias, or ID"),
		),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("The member's email address"),
		),
		mcp.WithString("role",
			mcp.Description("The membership role: MEMBER, MANAGER, or OWNER (default: MEMBER)"),
		),
	)

	s.AddTool(addMemberTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		groupKey, ok := args["groupKey"].(string)
		if !ok || groupKey == "" {
			return mcp.NewToolResultError("groupKey is required"), nil
		}
		email, ok := args["email"].(string)
		if !ok || email == "" {
			return mcp.NewToolResultError("email is required"), nil
		}
		role, _ := args["role"].(string)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		m, err := client.AddGroupMember(ctx, groupKey, email, strings.ToUpper(role))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add group member: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully added %s to %s as %s", m.Email, groupKey, m.Role)), nil
	})

	// Remove group member tool
	removeMemberTool := mcp.NewTool("admin_remove_group_member",
		mcp.WithDescription("Remove a member from a group"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("groupKey",
			mcp.Required(),
			mcp.Description("The group's email, alias, or ID"),
		),
		mcp.WithString("memberKey",
			mcp.Required(),
			mcp.Description("The member's email or ID"),
		),
	)

	s.AddTool(removeMemberTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		groupKey, ok := args["groupKey"].(string)
		if !ok || groupKey == "" {
			return mcp.NewToolResultError("groupKey is required"), nil
		}
		memberKey, ok := args["memberKey"].(string)
		if !ok || memberKey == "" {
			return mcp.NewToolResultError("memberKey is required"), nil
		}

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.RemoveGroupMember(ctx, groupKey, memberKey); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to remove group member: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully removed %s from %s", memberKey, groupKey)), nil
	})

	return nil
}

// registerReportTools registers Reports API audit tools
func registerReportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	reportArgs := []mcp.ToolOption{
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("userKey",
			mcp.Description("The user to report on, or 'all' (default: all)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of activities to return"),
		),
	}

	formatActivities := func(activities []admin.Activity) string {
		if len(activities) == 0 {
			return "No activities found."
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d activities:\n", len(activities)))
		for _, a := range activities {
			sb.WriteString(fmt.Sprintf("- %s %s [%s] %s\n", a.Time, a.Actor, a.IPAddress,
				strings.Join(a.EventNames, ", ")))
		}
		return sb.String()
	}

	// Admin activities tool
	adminActivitiesTool := mcp.NewTool("admin_list_admin_activities",
		append([]mcp.ToolOption{
			mcp.WithDescription("List admin console audit events from the Reports API"),
		}, reportArgs...)...,
	)

	s.AddTool(adminActivitiesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		userKey, _ := args["userKey"].(string)
		var maxResults int64
		if n, ok := args["maxResults"].(float64); ok {
			maxResults = int64(n)
		}

		activities, err := client.ListAdminActivities(ctx, userKey, maxResults)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list admin activities: %v", err)), nil
		}
		return mcp.NewToolResultText(formatActivities(activities)), nil
	})

	// Drive activities tool
	driveActivitiesTool := mcp.NewTool("admin_list_drive_activities",
		append([]mcp.ToolOption{
			mcp.WithDescription("List Drive audit events from the Reports API"),
		}, reportArgs...)...,
	)

	s.AddTool(driveActivitiesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getAdminClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		userKey, _ := args["userKey"].(string)
		var maxResults int64
		if n, ok := args["maxResults"].(float64); ok {
			maxResults = int64(n)
		}

		activities, err := client.ListDriveActivities(ctx, userKey, maxResults)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list drive activities: %v", err)), nil
		}
		return mcp.NewToolResultText(formatActivities(activities)), nil
	})

	return nil
}
