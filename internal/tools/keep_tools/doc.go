// Package keep_tools provides MCP tools for Google Keep.
//
// Available tools:
//   - keep_list_notes: list notes, optionally filtered
//   - keep_get_note: get a note's body, attachments, and permissions
//   - keep_download_attachment: download an attachment (base64)
//   - keep_create_note: create a text note
//   - keep_delete_note: delete a note
//   - keep_share_note: grant write access to users
//   - keep_unshare_note: revoke permissions
//
// All tools support an optional 'account' parameter to specify which
// Google account to use.
package keep_tools
