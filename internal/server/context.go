package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polaralias/google-workspace-mcp/internal/admin"
	"github.com/polaralias/google-workspace-mcp/internal/chat"
	"github.com/polaralias/google-workspace-mcp/internal/forms"
	"github.com/polaralias/google-workspace-mcp/internal/instrumentation"
	"github.com/polaralias/google-workspace-mcp/internal/keep"
	"github.com/polaralias/google-workspace-mcp/internal/meet"
	"github.com/polaralias/google-workspace-mcp/internal/people"
	"github.com/polaralias/google-workspace-mcp/internal/sheets"
	"github.com/polaralias/google-workspace-mcp/internal/slides"
)

// ServerContext holds the context for the MCP server. Per-account Google
// service clients are created lazily on first use and cached for the
// lifetime of the server.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	adminClients  map[string]*admin.Client
	chatClients   map[string]*chat.Client
	formsClients  map[string]*forms.Client
	keepClients   map[string]*keep.Client
	meetClients   map[string]*meet.Client
	peopleClients map[string]*people.Client
	sheetsClients map[string]*sheets.Client
	slidesClients map[string]*slides.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		adminClients:  make(map[string]*admin.Client),
		chatClients:   make(map[string]*chat.Client),
		formsClients:  make(map[string]*forms.Client),
		keepClients:   make(map[string]*keep.Client),
		meetClients:   make(map[string]*meet.Client),
		peopleClients: make(map[string]*people.Client),
		sheetsClients: make(map[string]*sheets.Client),
		slidesClients: make(map[string]*slides.Client),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// SetMetrics sets the metrics recorder used by instrumented tool
// handlers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool
// handlers.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when audit logging is
// disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// AdminClientForAccount returns the Admin Directory client for a specific
// account. Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) AdminClientForAccount(account string) *admin.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.adminClients[account]; ok {
		return client
	}
	if !admin.HasTokenForAccount(account) {
		return nil
	}

	client, err := admin.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Admin client", "account", account, "error", err)
		return nil
	}

	sc.adminClients[account] = client
	return client
}

// ChatClientForAccount returns the Chat client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) ChatClientForAccount(account string) *chat.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.chatClients[account]; ok {
		return client
	}
	if !chat.HasTokenForAccount(account) {
		return nil
	}

	client, err := chat.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Chat client", "account", account, "error", err)
		return nil
	}

	sc.chatClients[account] = client
	return client
}

// FormsClientForAccount returns the Forms client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) FormsClientForAccount(account string) *forms.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.formsClients[account]; ok {
		return client
	}
	if !forms.HasTokenForAccount(account) {
		return nil
	}

	client, err := forms.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Forms client", "account", account, "error", err)
		return nil
	}

	sc.formsClients[account] = client
	return client
}

// KeepClientForAccount returns the Keep client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) KeepClientForAccount(account string) *keep.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.keepClients[account]; ok {
		return client
	}
	if !keep.HasTokenForAccount(account) {
		return nil
	}

	client, err := keep.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Keep client", "account", account, "error", err)
		return nil
	}

	sc.keepClients[account] = client
	return client
}

// MeetClientForAccount returns the Meet client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) MeetClientForAccount(account string) *meet.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.meetClients[account]; ok {
		return client
	}
	if !meet.HasTokenForAccount(account) {
		return nil
	}

	client, err := meet.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Meet client", "account", account, "error", err)
		return nil
	}

	sc.meetClients[account] = client
	return client
}

// PeopleClientForAccount returns the People client for a specific
// account. Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) PeopleClientForAccount(account string) *people.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.peopleClients[account]; ok {
		return client
	}
	if !people.HasTokenForAccount(account) {
		return nil
	}

	client, err := people.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create People client", "account", account, "error", err)
		return nil
	}

	sc.peopleClients[account] = client
	return client
}

// SheetsClientForAccount returns the Sheets client for a specific
// account. Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) SheetsClientForAccount(account string) *sheets.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.sheetsClients[account]; ok {
		return client
	}
	if !sheets.HasTokenForAccount(account) {
		return nil
	}

	client, err := sheets.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Sheets client", "account", account, "error", err)
		return nil
	}

	sc.sheetsClients[account] = client
	return client
}

// SheetsClient returns the Sheets client for the default account
func (sc *ServerContext) SheetsClient() *sheets.Client {
	return sc.SheetsClientForAccount("default")
}

// SlidesClientForAccount returns the Slides client for a specific
// account. Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) SlidesClientForAccount(account string) *slides.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.slidesClients[account]; ok {
		return client
	}
	if !slides.HasTokenForAccount(account) {
		return nil
	}

	client, err := slides.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Slides client", "account", account, "error", err)
		return nil
	}

	sc.slidesClients[account] = client
	return client
}

// SetAdminClientForAccount sets the Admin client for a specific account
func (sc *ServerContext) SetAdminClientForAccount(account string, client *admin.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.adminClients[account] = client
}

// SetChatClientForAccount sets the Chat client for a specific account
func (sc *ServerContext) SetChatClientForAccount(account string, client *chat.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.chatClients[account] = client
}

// SetFormsClientForAccount sets the Forms client for a specific account
func (sc *ServerContext) SetFormsClientForAccount(account string, client *forms.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.formsClients[account] = client
}

// SetKeepClientForAccount sets the Keep client for a specific account
func (sc *ServerContext) SetKeepClientForAccount(account string, client *keep.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.keepClients[account] = client
}

// SetMeetClientForAccount sets the Meet client for a specific account
func (sc *ServerContext) SetMeetClientForAccount(account string, client *meet.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.meetClients[account] = client
}

// SetPeopleClientForAccount sets the People client for a specific account
func (sc *ServerContext) SetPeopleClientForAccount(account string, client *people.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.peopleClients[account] = client
}

// SetSheetsClientForAccount sets the Sheets client for a specific account
func (sc *ServerContext) SetSheetsClientForAccount(account string, client *sheets.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.sheetsClients[account] = client
}

// SetSlidesClientForAccount sets the Slides client for a specific account
func (sc *ServerContext) SetSlidesClientForAccount(account string, client *slides.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.slidesClients[account] = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
