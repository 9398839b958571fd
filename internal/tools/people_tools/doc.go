// Package people_tools provides MCP tools for Google Contacts via the
// People API.
//
// Available tools:
//   - people_list_contacts: list the user's contacts
//   - people_search_contacts: search contacts by name, email, or phone
//   - people_list_other_contacts: list auto-collected "other contacts"
//   - people_search_directory: search the domain directory
//   - people_create_contact: create a contact
//   - people_update_contact: update a contact
//   - people_delete_contact: delete a contact
//
// All tools support an optional 'account' parameter to specify which
// Google account to use.
package people_tools
