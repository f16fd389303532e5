package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/finnvale/drivescout/internal/auth"
	"github.com/finnvale/drivescout/internal/instrumentation"
	"github.com/finnvale/drivescout/internal/logging"
	drivesrv "github.com/finnvale/drivescout/internal/server"
	"github.com/finnvale/drivescout/internal/tools/drive_tools"
)

type serveOptions struct {
	debug          bool
	timeout        time.Duration
	metricsAddr    string
	credentialsDir string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Starts the MCP server, speaking the protocol on stdin/stdout.
Logs go to stderr so they never interfere with the protocol stream.

A stored credential is required; run 'drivescout auth' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-tool-call timeout")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "address for the Prometheus metrics endpoint (empty disables metrics)")
	cmd.Flags().StringVar(&opts.credentialsDir, "credentials-dir", "", "directory holding client_secrets.json and the stored credential (default: user config dir)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	logging.Setup(opts.debug)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := auth.NewStore(opts.credentialsDir)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	oauthConfig, err := store.LoadOAuthConfig(auth.ReadOnlyScopes...)
	if err != nil {
		return fmt.Errorf("loading OAuth client configuration: %w", err)
	}

	instrCfg := instrumentation.DefaultConfig()
	instrCfg.Enabled = opts.metricsAddr != ""
	instrCfg.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrCfg)
	if err != nil {
		return fmt.Errorf("initializing instrumentation: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	managerOpts := []auth.ManagerOption{auth.WithLogger(logger)}
	if provider.Enabled() {
		metrics := provider.Metrics()
		managerOpts = append(managerOpts, auth.WithRefreshObserver(func(err error) {
			status := instrumentation.StatusSuccess
			if err != nil {
				status = instrumentation.StatusError
			}
			metrics.RecordTokenRefresh(context.Background(), status)
		}))
	}
	manager := auth.NewManager(store, oauthConfig, managerOpts...)

	sc := drivesrv.NewServerContext(ctx, manager)
	defer sc.Shutdown()
	if provider.Enabled() {
		sc.SetMetrics(provider.Metrics())
	}

	if opts.metricsAddr != "" {
		if err := startMetricsServer(ctx, opts.metricsAddr, logger); err != nil {
			return err
		}
	}

	mcpServer := server.NewMCPServer(
		"drivescout",
		version,
		server.WithToolCapabilities(true),
	)

	dispatcher := drive_tools.NewDispatcher(sc,
		drive_tools.WithTimeout(opts.timeout),
		drive_tools.WithLogger(logger),
	)
	drive_tools.RegisterTools(mcpServer, dispatcher)

	logger.Info("starting MCP server on stdio",
		slog.String("version", version),
		slog.Bool("metrics", opts.metricsAddr != ""),
	)

	return runStdioServer(ctx, mcpServer, logger)
}

// startMetricsServer starts the metrics HTTP server and waits until it is
// listening, so a bad address fails the serve command instead of being
// logged after startup.
func startMetricsServer(ctx context.Context, addr string, logger *slog.Logger) error {
	ms := drivesrv.NewMetricsServer(addr)

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- ms.Start(ready)
	}()

	select {
	case <-ready:
		logger.Info("metrics server listening", slog.String("addr", addr))
	case err := <-errCh:
		return fmt.Errorf("starting metrics server: %w", err)
	case <-time.After(5 * time.Second):
		return fmt.Errorf("metrics server did not become ready on %s", addr)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ms.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}()

	return nil
}

func runStdioServer(ctx context.Context, s *server.MCPServer, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(s)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	}
}
