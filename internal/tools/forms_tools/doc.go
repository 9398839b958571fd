// Package forms_tools provides MCP tools for Google Forms.
//
// Available tools:
//   - forms_get_form: get a form's metadata
//   - forms_list_responses: list submitted responses
//   - forms_get_response: get a single response
//   - forms_create_form: create a new form
//   - forms_batch_update: apply Forms API update requests
//   - forms_set_publish_settings: publish/unpublish a form
//
// All tools support an optional 'account' parameter to specify which
// Google account to use.
package forms_tools
