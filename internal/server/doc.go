// Package server provides the MCP server context and HTTP transport for
// the google-workspace-mcp application.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and
// caching. Clients for each Workspace service (Sheets, Chat, Admin, Forms,
// Keep, Meet, People, Slides) are created on first use and cached per
// account, so multiple Google accounts can be served by a single process.
//
// HTTPServer exposes the MCP server over streamable HTTP at /mcp and
// registers health check endpoints for Kubernetes probes. TLS is enabled
// when a certificate and key file are configured.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics separate from application traffic.
//
// HealthChecker implements liveness (/healthz) and readiness (/readyz)
// checks, plus a detailed endpoint reporting per-component status.
package server
