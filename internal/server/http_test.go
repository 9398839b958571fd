package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServer(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")

	server := NewHTTPServer(mcpSrv, HTTPServerConfig{})
	require.NotNil(t, server)
	assert.False(t, server.stateless)

	stateless := NewHTTPServer(mcpSrv, HTTPServerConfig{Stateless: true})
	assert.True(t, stateless.stateless)
}

func TestHTTPServer_ShutdownWithoutStart(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")
	server := NewHTTPServer(mcpSrv, HTTPServerConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(ctx))
}

func TestHTTPServer_InstrumentWithoutMetrics(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")
	server := NewHTTPServer(mcpSrv, HTTPServerConfig{})

	called := false
	handler := server.instrument("/mcp", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	recorder.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusRecorder_DefaultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	// Writing a body without an explicit WriteHeader keeps the default
	_, err := recorder.Write([]byte("ok"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, recorder.status)
}
