package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/krillinai/klicbridge/internal/client"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/connector"
	mcpserver "github.com/krillinai/klicbridge/internal/mcp"
	"github.com/krillinai/klicbridge/internal/metrics"
)

var (
	flagKlicStudioURL string
	flagTransport     string
	flagHost          string
	flagPort          int
	flagLogLevel      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "klicbridge",
		Short: "MCP bridge for a KlicStudio media processing service",
		Long: `klicbridge exposes a KlicStudio instance as MCP tools: file upload,
subtitle task control, artifact download and service configuration.

It serves the MCP protocol on stdio by default, or over streamable HTTP
when started with --transport streamable-http.`,
		Version:      "1.0.0",
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&flagKlicStudioURL, "klicstudio-url", "", "KlicStudio base URL (overrides configuration)")
	cmd.Flags().StringVar(&flagTransport, "transport", "", "MCP transport: stdio or streamable-http")
	cmd.Flags().StringVar(&flagHost, "host", "", "bind address for the streamable-http transport")
	cmd.Flags().IntVar(&flagPort, "port", 0, "port for the streamable-http transport")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn or error")

	return cmd
}

// applyFlagOverrides folds explicitly set flags into the loaded
// configuration. Unset flags leave the config file and environment values
// untouched.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("klicstudio-url") {
		cfg.KlicStudioURL = flagKlicStudioURL
	}
	if flags.Changed("transport") {
		cfg.Transport = flagTransport
	}
	if flags.Changed("host") {
		cfg.Server.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = flagPort
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	applyFlagOverrides(cmd, cfg)
	if cmd.Flags().Changed("log-level") {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		logger = logger.Level(level)
	}

	logger.Info().
		Str("klicstudio_url", cfg.KlicStudioURL).
		Str("transport", cfg.Transport).
		Str("client_timeout", cfg.ClientTimeout).
		Msg("Application started with configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := connector.NewState(cfg.KlicStudioURL)
	if err != nil {
		return fmt.Errorf("invalid klicstudio_url: %w", err)
	}

	httpClient := client.NewClient(cfg, state)
	defer func() {
		if err := httpClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()
	server := mcpserver.NewMCPServer(state, httpClient)

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Host, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	switch cfg.Transport {
	case config.TransportStdio:
		logger.Info().Str("base_url", state.BaseURL()).Msg("Starting MCP server on stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport failed: %w", err)
		}
	case config.TransportStreamableHTTP:
		if err := serveStreamableHTTP(ctx, cfg, server, logger); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown transport %q: use %s or %s", cfg.Transport, config.TransportStdio, config.TransportStreamableHTTP)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}

// serveStreamableHTTP mounts the MCP handler at /mcp and blocks until the
// context is cancelled or the listener fails.
func serveStreamableHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, logger zerolog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", address).Msg("Starting MCP server on streamable HTTP")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-serveErr
}
