package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/config"
	"github.com/puchtools/puchcal/internal/googleauth"
	"github.com/puchtools/puchcal/internal/guard"
	"github.com/puchtools/puchcal/internal/instrumentation"
	"github.com/puchtools/puchcal/internal/logging"
	"github.com/puchtools/puchcal/internal/server"
	"github.com/puchtools/puchcal/internal/tools/calendar_tools"
	"github.com/puchtools/puchcal/internal/tools/resume_tools"
	"github.com/puchtools/puchcal/internal/tools/validate_tools"
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
		debugMode      bool
		transport      string
		httpAddr       string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Google Calendar
tools for the Puch AI WhatsApp assistant.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport, guarded by a bearer token

Configuration is read from the environment (and an optional .env file):
  PUCH_TOKEN        bearer token callers must present (required)
  MY_PHONE_NUMBER   owner phone number returned by the validate tool (required)

Google credential (one of):
  SERVICE_ACCOUNT_FILE   service account key file (default: service_account.json)
  GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET with a token cache written by
  the auth command (TOKEN_CACHE_FILE, default: token.json)

Optional:
  CALENDAR_ID   target calendar (default: primary)
  RESUME_FILE   PDF resume enabling the resume tools`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8086", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, metricsConfig MetricsConfig) error {
	logging.Setup(debugMode)

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Load metrics config from environment if not set via flags
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" && metricsConfig.Addr == server.DefaultMetricsAddr {
		metricsConfig.Addr = addr
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	credential, err := credentialProvider(shutdownCtx, cfg)
	if err != nil {
		return err
	}
	if credential == nil {
		slog.Warn("no Google credential configured, calendar tools will be unavailable",
			slog.String("hint", "provide SERVICE_ACCOUNT_FILE or run the auth command"))
	}

	audit := instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging)
	serverContext := server.NewServerContext(shutdownCtx, cfg, credential, provider.Metrics(), audit)
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("puchcal", version,
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runGuardedHTTPServer(shutdownCtx, mcpSrv, serverContext, cfg, httpAddr, provider, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// credentialProvider picks the Google credential: the service account
// key when present, otherwise the cached OAuth token written by the
// auth command. Nil with no error means no credential is configured.
func credentialProvider(ctx context.Context, cfg *config.Config) (googleauth.TokenProvider, error) {
	switch {
	case cfg.HasServiceAccount():
		return googleauth.NewServiceAccountProvider(ctx, cfg.ServiceAccountFile)
	case cfg.HasOAuthClient():
		oauthConfig := googleauth.OAuthConfig(cfg.OAuthClientID, cfg.OAuthClientSecret, "")
		return googleauth.NewFileTokenProvider(oauthConfig, cfg.TokenCacheFile), nil
	default:
		return nil, nil
	}
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Validate",
			register: func() error {
				return validate_tools.RegisterTools(mcpSrv, ctx)
			},
		},
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterTools(mcpSrv, ctx)
			},
		},
	}

	// The resume tools only make sense with a resume file on disk.
	if cfg := ctx.Config(); cfg != nil && cfg.HasResume() {
		registrations = append(registrations, toolRegistration{
			name: "Resume",
			register: func() error {
				return resume_tools.RegisterTools(mcpSrv, ctx)
			},
		})
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runGuardedHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, cfg *config.Config, addr string, provider *instrumentation.Provider, metricsConfig MetricsConfig) error {
	g := guard.New(cfg.AuthToken, cfg.PhoneNumber)
	health := server.NewHealthChecker(serverContext)

	httpServer := server.NewGuardedHTTPServer(mcpSrv, g, health, provider.Metrics())

	slog.Info("starting streamable HTTP server",
		slog.String("addr", addr),
		slog.String("mcp_endpoint", "/mcp"),
		slog.String("health_endpoints", "/healthz, /readyz"),
	)
	if metricsConfig.Enabled && provider.Enabled() {
		slog.Info("metrics enabled", slog.String("endpoint", metricsConfig.Addr+"/metrics"))
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	slog.Info("HTTP server stopped")
	return nil
}
