package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/instrumentation"
)

const (
	// DefaultHTTPAddr is the default address for the MCP HTTP server.
	DefaultHTTPAddr = ":8080"

	// DefaultHTTPReadHeaderTimeout is the default read header timeout for the MCP HTTP server.
	DefaultHTTPReadHeaderTimeout = 10 * time.Second

	// DefaultHTTPWriteTimeout is the default write timeout for the MCP HTTP server.
	DefaultHTTPWriteTimeout = 10 * time.Second

	// DefaultHTTPIdleTimeout is the default idle timeout for the MCP HTTP server.
	DefaultHTTPIdleTimeout = 120 * time.Second
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind the MCP server to (e.g., ":8080").
	Addr string

	// DisableStreaming makes every response a plain JSON response instead
	// of an SSE stream, for clients that cannot consume streams.
	DisableStreaming bool

	// Metrics, when set, records per-request counters and latency for the
	// /mcp endpoint.
	Metrics *instrumentation.Metrics
}

// HTTPServer serves the MCP protocol over the streamable HTTP transport.
// The /mcp endpoint carries the protocol; /healthz, /readyz and
// /healthz/detailed expose Kubernetes-style probes when a HealthChecker
// is attached.
type HTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	httpServer       *http.Server
	healthChecker    *HealthChecker
	addr             string
	disableStreaming bool
	metrics          *instrumentation.Metrics
}

// NewHTTPServer creates a new HTTP server for the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}

	return &HTTPServer{
		mcpServer:        mcpServer,
		addr:             config.Addr,
		disableStreaming: config.DisableStreaming,
		metrics:          config.Metrics,
	}
}

// SetHealthChecker attaches the health checker whose probe endpoints are
// mounted next to /mcp.
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.healthChecker = h
}

// buildServer constructs the HTTP server and its routes.
func (s *HTTPServer) buildServer() {
	mux := http.NewServeMux()

	var streamable http.Handler
	if s.disableStreaming {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithDisableStreaming(true),
		)
	} else {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
		)
	}
	mux.Handle("/mcp", s.withMetrics(streamable))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
		WriteTimeout:      DefaultHTTPWriteTimeout,
		IdleTimeout:       DefaultHTTPIdleTimeout,
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withMetrics wraps next with request counting, latency, and in-flight
// session tracking. Without a Metrics it returns next untouched.
func (s *HTTPServer) withMetrics(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.metrics.IncrementActiveSessions(ctx)
		defer s.metrics.DecrementActiveSessions(ctx)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.metrics.RecordHTTPRequest(ctx, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Start starts the HTTP server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *HTTPServer) Start() error {
	s.buildServer()

	slog.Info("starting MCP HTTP server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// StartWithReadySignal starts the HTTP server and closes the ready channel
// once the listener is bound. Like Start, it blocks until the server stops.
func (s *HTTPServer) StartWithReadySignal(ready chan<- struct{}) error {
	s.buildServer()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	slog.Info("starting MCP HTTP server", "addr", s.addr)
	close(ready)
	return s.httpServer.Serve(listener)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down MCP HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured address for the HTTP server.
func (s *HTTPServer) Addr() string {
	return s.addr
}
