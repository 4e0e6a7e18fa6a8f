package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/workspacekit/workspace-mcp/internal/calendar"
	"github.com/workspacekit/workspace-mcp/internal/contacts"
	"github.com/workspacekit/workspace-mcp/internal/docs"
	"github.com/workspacekit/workspace-mcp/internal/drive"
	"github.com/workspacekit/workspace-mcp/internal/googleauth"
	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
	"github.com/workspacekit/workspace-mcp/internal/sheets"
	"github.com/workspacekit/workspace-mcp/internal/slides"
	"github.com/workspacekit/workspace-mcp/internal/tasks"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	auth *googleauth.Authenticator

	mu             sync.RWMutex
	driveClient    *drive.Client
	docsClient     *docs.Client
	slidesClient   *slides.Client
	sheetsClient   *sheets.Client
	calendarClient *calendar.Client
	contactsClient *contacts.Client
	tasksClient    *tasks.Client
	metrics        *instrumentation.Metrics
	auditLogger    *instrumentation.AuditLogger
	shutdown       bool
}

// NewServerContext creates a new server context
// Service clients are lazily initialized on first use so that the server
// can start before the user has completed the OAuth flow
func NewServerContext(ctx context.Context, auth *googleauth.Authenticator) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		auth:     auth,
		shutdown: false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Authenticator returns the credential manager shared by all service clients
func (sc *ServerContext) Authenticator() *googleauth.Authenticator {
	return sc.auth
}

// DriveClient returns the shared Drive client
// Creates and caches the client on first use
func (sc *ServerContext) DriveClient() (*drive.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.driveClient != nil {
		return sc.driveClient, nil
	}

	client, err := drive.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}

	sc.driveClient = client
	return client, nil
}

// SetDriveClient sets the Drive client
func (sc *ServerContext) SetDriveClient(client *drive.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.driveClient = client
}

// DocsClient returns the shared Docs client
// Creates and caches the client on first use
func (sc *ServerContext) DocsClient() (*docs.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.docsClient != nil {
		return sc.docsClient, nil
	}

	client, err := docs.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs client: %w", err)
	}

	sc.docsClient = client
	return client, nil
}

// SetDocsClient sets the Docs client
func (sc *ServerContext) SetDocsClient(client *docs.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.docsClient = client
}

// SlidesClient returns the shared Slides client
// Creates and caches the client on first use
func (sc *ServerContext) SlidesClient() (*slides.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.slidesClient != nil {
		return sc.slidesClient, nil
	}

	client, err := slides.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides client: %w", err)
	}

	sc.slidesClient = client
	return client, nil
}

// SetSlidesClient sets the Slides client
func (sc *ServerContext) SetSlidesClient(client *slides.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.slidesClient = client
}

// SheetsClient returns the shared Sheets client
// Creates and caches the client on first use
func (sc *ServerContext) SheetsClient() (*sheets.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.sheetsClient != nil {
		return sc.sheetsClient, nil
	}

	client, err := sheets.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}

	sc.sheetsClient = client
	return client, nil
}

// SetSheetsClient sets the Sheets client
func (sc *ServerContext) SetSheetsClient(client *sheets.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.sheetsClient = client
}

// CalendarClient returns the shared Calendar client
// Creates and caches the client on first use
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.calendarClient != nil {
		return sc.calendarClient, nil
	}

	client, err := calendar.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}

	sc.calendarClient = client
	return client, nil
}

// SetCalendarClient sets the Calendar client
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClient = client
}

// ContactsClient returns the shared Contacts client
// Creates and caches the client on first use
func (sc *ServerContext) ContactsClient() (*contacts.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.contactsClient != nil {
		return sc.contactsClient, nil
	}

	client, err := contacts.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Contacts client: %w", err)
	}

	sc.contactsClient = client
	return client, nil
}

// SetContactsClient sets the Contacts client
func (sc *ServerContext) SetContactsClient(client *contacts.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.contactsClient = client
}

// TasksClient returns the shared Tasks client
// Creates and caches the client on first use
func (sc *ServerContext) TasksClient() (*tasks.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.tasksClient != nil {
		return sc.tasksClient, nil
	}

	client, err := tasks.NewClient(sc.ctx, sc.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks client: %w", err)
	}

	sc.tasksClient = client
	return client, nil
}

// SetTasksClient sets the Tasks client
func (sc *ServerContext) SetTasksClient(client *tasks.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.tasksClient = client
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// AuditLogger returns the audit logger, or nil when audit logging is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
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
