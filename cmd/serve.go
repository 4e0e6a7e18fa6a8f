package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
	"github.com/workspacekit/workspace-mcp/internal/resources"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/calendar_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/contacts_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/docs_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/drive_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/google_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/sheets_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/slides_tools"
	"github.com/workspacekit/workspace-mcp/internal/tools/tasks_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode        bool
		transport        string
		httpAddr         string
		yolo             bool
		disableStreaming bool
		metricsEnabled   bool
		metricsAddr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Google Workspace
tools (Drive, Docs, Slides, Sheets, Calendar, Contacts, Tasks) for AI
assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (file deletion, event
  creation, etc.)

Credentials:
  GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required; the server refuses
  to start without them. GOOGLE_TOKEN_PATH overrides the token cache location
  (default: $HOME/.workspace-mcp/token.json).

  Run "workspace-mcp auth" once to authorize, or let the agent drive the
  google_get_auth_url and google_save_auth_code tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(transport, debugMode, httpAddr, yolo, disableStreaming, MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			})
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (file deletion, event creation, etc.). Default is read-only mode.")
	cmd.Flags().BoolVar(&disableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// applyMetricsEnv lets METRICS_ENABLED and METRICS_ADDR override the flag
// defaults, but never an explicitly set flag value.
func applyMetricsEnv(cfg *MetricsConfig) {
	if !cfg.Enabled && os.Getenv("METRICS_ENABLED") == "true" {
		cfg.Enabled = true
	}
	if cfg.Addr == "" || cfg.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			cfg.Addr = addr
		}
	}
}

// startMetricsServer launches the Prometheus endpoint on its own listener
// and blocks until it is accepting connections or failed to bind.
func startMetricsServer(provider *instrumentation.Provider, cfg MetricsConfig) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    cfg.Addr,
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	ready := make(chan struct{})
	failed := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
		close(failed)
	}()

	select {
	case <-ready:
		log.Printf("Metrics server started on %s", metricsServer.Addr())
		return metricsServer, nil
	case err := <-failed:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}
}

func runServe(transport string, debugMode bool, httpAddr string, yolo bool, disableStreaming bool, metricsConfig MetricsConfig) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Diagnostics go to stderr so stdout stays clean for the stdio transport
	if debugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// Credentials must be configured before any tool is registered or a
	// transport is attached
	authConfig, err := googleauth.ConfigFromEnv()
	if err != nil {
		return err
	}
	authenticator := googleauth.NewAuthenticator(shutdownCtx, authConfig)

	applyMetricsEnv(&metricsConfig)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil && transport != "stdio" {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// The Prometheus listener only makes sense alongside a network
	// transport; stdio servers are short-lived child processes.
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = startMetricsServer(provider, metricsConfig)
		if err != nil {
			return err
		}
	}

	// Google API clients are created lazily on first tool call, so startup
	// succeeds before the OAuth flow has completed
	serverContext, err := server.NewServerContext(shutdownCtx, authenticator)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.Audit))
		authenticator.SetRefreshRecorder(provider.Metrics())
	}
	defer func() {
		if metricsServer != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(stopCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil && transport != "stdio" {
			log.Printf("Error during server context shutdown: %v", err)
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("workspace-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	readOnly := !yolo
	if transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting workspace-mcp server with %s transport...\n", transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, disableStreaming, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources.
// Shared between serve and generate-docs so the two stay in sync.
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	for _, reg := range []struct {
		name string
		fn   func() error
	}{
		{"Google Auth", func() error { return google_tools.RegisterGoogleTools(mcpSrv, ctx) }},
		{"Drive", func() error { return drive_tools.RegisterDriveTools(mcpSrv, ctx, readOnly) }},
		{"Docs", func() error { return docs_tools.RegisterDocsTools(mcpSrv, ctx, readOnly) }},
		{"Slides", func() error { return slides_tools.RegisterSlidesTools(mcpSrv, ctx, readOnly) }},
		{"Sheets", func() error { return sheets_tools.RegisterSheetsTools(mcpSrv, ctx, readOnly) }},
		{"Calendar", func() error { return calendar_tools.RegisterCalendarTools(mcpSrv, ctx, readOnly) }},
		{"Contacts", func() error { return contacts_tools.RegisterContactsTools(mcpSrv, ctx, readOnly) }},
		{"Tasks", func() error { return tasks_tools.RegisterTasksTools(mcpSrv, ctx, readOnly) }},
		{"Auth Resources", func() error { return resources.RegisterAuthResources(mcpSrv, ctx) }},
	} {
		if err := reg.fn(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, disableStreaming bool, metricsConfig MetricsConfig) error {
	httpServer := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		Addr:             addr,
		DisableStreaming: disableStreaming,
		Metrics:          serverContext.Metrics(),
	})

	// Health checker for Kubernetes probes
	healthChecker := server.NewHealthChecker(serverContext)
	httpServer.SetHealthChecker(healthChecker)

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
