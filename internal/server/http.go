package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/instrumentation"
)

// HTTPServer serves the MCP server over streamable HTTP, together with
// health check endpoints for Kubernetes probes.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	httpServer    *http.Server
	healthChecker *HealthChecker
	metrics       *instrumentation.Metrics
	stateless     bool
	tlsCertFile   string
	tlsKeyFile    string
}

// HTTPServerConfig holds configuration for the HTTP transport.
type HTTPServerConfig struct {
	// Stateless disables session tracking for compatibility with
	// clients that do not send session IDs.
	Stateless bool

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
}

// NewHTTPServer creates a new streamable HTTP server for the MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	return &HTTPServer{
		mcpServer:   mcpServer,
		stateless:   config.Stateless,
		tlsCertFile: config.TLSCertFile,
		tlsKeyFile:  config.TLSKeyFile,
	}
}

// SetHealthChecker sets the health checker whose endpoints are exposed
// at /healthz and /readyz.
func (s *HTTPServer) SetHealthChecker(hc *HealthChecker) {
	s.healthChecker = hc
}

// SetMetrics enables HTTP request metrics.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// Start starts the HTTP server on the given address. Blocks until the
// server stops.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.stateless {
		opts = append(opts, mcpserver.WithStateLess(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux.Handle("/mcp", s.instrument("/mcp", streamable))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.tlsCertFile != "" && s.tlsKeyFile != "" {
		return s.httpServer.ListenAndServeTLS(s.tlsCertFile, s.tlsKeyFile)
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrument wraps a handler with HTTP request metrics when enabled
func (s *HTTPServer) instrument(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the response status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
