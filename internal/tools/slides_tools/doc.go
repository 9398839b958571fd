// Package slides_tools provides MCP tools for Google Slides.
//
// Presentations and Pages:
//   - slides_get_presentation, slides_get_page,
//     slides_get_page_thumbnail, slides_export_pdf,
//     slides_create_presentation, slides_create_slide,
//     slides_batch_update
//
// Content:
//   - slides_add_text_box, slides_set_text_style,
//     slides_replace_text, slides_insert_image
//
// Placement arguments (x, y, width, height) are in points. All tools
// support an optional 'account' parameter to specify which Google
// account to use.
package slides_tools
