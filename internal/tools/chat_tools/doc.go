// Package chat_tools provides MCP tools for Google Chat.
//
// Spaces and Membership:
//   - chat_list_spaces, chat_create_space, chat_list_members,
//     chat_add_member, chat_remove_member
//
// Messages:
//   - chat_list_messages, chat_search_messages, chat_send_message,
//     chat_reply_to_thread
//
// All tools support an optional 'account' parameter to specify which
// Google account to use.
package chat_tools
