// Package resources provides MCP resources for exposing account data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the list of authenticated Google accounts.
package resources
