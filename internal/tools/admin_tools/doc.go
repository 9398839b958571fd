// Package admin_tools provides MCP tools for Workspace administration.
//
// User Management:
//   - admin_list_users, admin_get_user, admin_create_user,
//     admin_suspend_user, admin_restore_user
//
// Group Management:
//   - admin_list_groups, admin_get_group, admin_create_group,
//     admin_delete_group, admin_list_group_members,
//     admin_add_group_member, admin_remove_group_member
//
// Audit Reports:
//   - admin_list_admin_activities, admin_list_drive_activities
//
// All tools support an optional 'account' parameter to specify which
// Google account to use. The authenticated account needs Workspace
// administrator privileges.
package admin_tools
