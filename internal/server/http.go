package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/guard"
	"github.com/puchtools/puchcal/internal/instrumentation"
)

// GuardedHTTPServer serves the MCP streamable-http transport behind the
// access guard. Only /mcp is guarded; health endpoints stay open for
// probes.
type GuardedHTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	guard      *guard.Guard
	health     *HealthChecker
	metrics    *instrumentation.Metrics
	httpServer *http.Server
}

// NewGuardedHTTPServer creates the HTTP front for the MCP server.
func NewGuardedHTTPServer(mcpServer *mcpserver.MCPServer, g *guard.Guard, health *HealthChecker, metrics *instrumentation.Metrics) *GuardedHTTPServer {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &GuardedHTTPServer{
		mcpServer: mcpServer,
		guard:     g,
		health:    health,
		metrics:   metrics,
	}
}

// Handler builds the full HTTP handler: health endpoints, then the
// guarded and instrumented /mcp endpoint.
func (s *GuardedHTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)
	mux.Handle("/mcp", s.instrument(s.guard.Middleware(streamable)))

	return mux
}

// Start serves until the listener fails or Shutdown is called. Run it
// in a goroutine for non-blocking operation.
func (s *GuardedHTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *GuardedHTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrument records request count and duration for the wrapped handler.
func (s *GuardedHTTPServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
