// Package sheets_tools provides MCP tools for working with Google
// Sheets.
//
// This package implements MCP (Model Context Protocol) tools that wrap
// the Sheets client and its range/rule engine, covering cell values,
// cell formatting, conditional formatting, and document structure.
//
// # Available Tools
//
// Documents:
//   - sheets_list_spreadsheets: List spreadsheets the user has access to
//   - sheets_get_spreadsheet_info: Get a spreadsheet's sheets and rule counts
//   - sheets_create_spreadsheet: Create a new spreadsheet
//   - sheets_create_sheet: Add a sheet (tab) to a spreadsheet
//
// Values:
//   - sheets_read_values: Read a range
//   - sheets_modify_values: Write or clear a range
//   - sheets_append_rows: Append rows to a table
//   - sheets_batch_get_values: Read multiple ranges
//   - sheets_batch_update_values: Write multiple ranges
//
// Formatting:
//   - sheets_format_range: Apply cell formatting
//   - sheets_add_conditional_formatting: Add a boolean or gradient rule
//   - sheets_update_conditional_formatting: Merge changes into a rule
//   - sheets_delete_conditional_formatting: Delete a rule by index
//
// Structure:
//   - sheets_list_named_ranges, sheets_create_named_range,
//     sheets_update_named_range, sheets_delete_named_range
//   - sheets_add_data_validation
//   - sheets_set_protected_range
//   - sheets_create_chart
//   - sheets_create_pivot_table
//
// Conditional formatting rules are addressed by zero-based index within
// a sheet's rule list. Mutations validate against a fresh read of the
// list and echo the resulting state, so stale indices fail before the
// document is touched.
//
// # Multi-Account Support
//
// All tools support an optional 'account' parameter to specify which
// Google account to use. If not provided, the 'default' account is used.
package sheets_tools
