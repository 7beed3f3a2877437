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

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/config"
	"github.com/mytaskly/taskly-mcp/internal/facade"
	"github.com/mytaskly/taskly-mcp/internal/instrumentation"
	"github.com/mytaskly/taskly-mcp/internal/logging"
	"github.com/mytaskly/taskly-mcp/internal/server"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
	"github.com/mytaskly/taskly-mcp/internal/tools/taskly_tools"
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
		transport      string
		httpAddr       string
		debugMode      bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tool server",
		Long: `Run the tool server over the selected transport.

With --transport stdio (the default) the server speaks the MCP protocol on
stdin/stdout; all logs go to stderr. With --transport http the same
operations are exposed as HTTP routes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(transport, httpAddr, debugMode, MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			})
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport type: stdio or http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (http transport only)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port (http transport only)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

func runServe(transport, httpAddr string, debugMode bool, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	cfg := config.Load()
	cfg.ServerVersion = version
	if debugMode {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Logs go to stderr so stdout stays clean for the stdio protocol.
	logging.Setup(cfg.LogLevel)
	logger := slog.Default()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceName = cfg.ServerName
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	codec := auth.NewCodec(cfg.SigningSecret, cfg.Audience)
	client := taskly.NewClient(cfg, codec,
		taskly.WithLogger(logger),
		taskly.WithMetrics(provider.Metrics()))
	f := facade.New(codec, client,
		facade.WithLogger(logger),
		facade.WithMetrics(provider.Metrics()),
		facade.WithAuditLogger(instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging)))

	switch transport {
	case "stdio":
		return runStdioServer(cfg, f, logger)
	case "http":
		return runHTTPServer(shutdownCtx, cfg, f, httpAddr, metricsConfig, provider, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, http)", transport)
	}
}

func runStdioServer(cfg config.Config, f *facade.Facade, logger *slog.Logger) error {
	mcpSrv := mcpserver.NewMCPServer(cfg.ServerName, cfg.ServerVersion,
		mcpserver.WithToolCapabilities(true),
	)
	if err := taskly_tools.RegisterTasklyTools(mcpSrv, f); err != nil {
		return err
	}

	logger.Info("starting stdio server",
		logging.Transport("stdio"), slog.String("server", cfg.ServerName))

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

func runHTTPServer(shutdownCtx context.Context, cfg config.Config, f *facade.Facade,
	httpAddr string, metricsConfig MetricsConfig, provider *instrumentation.Provider,
	logger *slog.Logger) error {

	httpServer, err := server.NewHTTPServer(server.HTTPServerConfig{
		Addr:       httpAddr,
		ServerName: cfg.ServerName,
		Version:    cfg.ServerVersion,
		Facade:     f,
		Logger:     logger,
		Metrics:    provider.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	httpReady := make(chan struct{})
	httpDone := make(chan error, 1)
	go func() {
		defer close(httpDone)
		if err := httpServer.StartWithReadySignal(httpReady); err != nil && err != http.ErrServerClosed {
			httpDone <- err
		}
	}()

	select {
	case <-httpReady:
		logger.Info("http server started", slog.String("addr", httpServer.Addr()))
	case err := <-httpDone:
		return fmt.Errorf("http server failed to start: %w", err)
	}

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-httpDone:
		if err != nil {
			return fmt.Errorf("http server stopped with error: %w", err)
		}
		return nil
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer drainCancel()

	if err := httpServer.Shutdown(drainCtx); err != nil {
		logger.Error("error during http server shutdown", logging.Err(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(drainCtx); err != nil {
			logger.Error("error during metrics server shutdown", logging.Err(err))
		}
	}
	return nil
}
