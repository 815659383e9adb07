package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/printdesk/jobtrack/internal/config"
	"github.com/printdesk/jobtrack/internal/formschema"
	"github.com/printdesk/jobtrack/internal/observability"
	"github.com/printdesk/jobtrack/internal/server"
	"github.com/printdesk/jobtrack/internal/server/handlers"
	"github.com/printdesk/jobtrack/internal/sheets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server: the JSON API plus the embedded browser UI.

Configuration comes from jobtrack.yaml and JOBTRACK_* environment
variables; the spreadsheet credentials are required.

Example:
  jobtrack serve
  JOBTRACK_PORT=3000 jobtrack serve`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Override listen host")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override listen port")
}

// sheetsHealthChecker reports spreadsheet reachability for the health
// endpoints.
type sheetsHealthChecker struct {
	backend sheets.Backend
}

func (c sheetsHealthChecker) CheckHealth(ctx context.Context) error {
	return c.backend.Ping(ctx)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid configuration", err)
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	if err := observability.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid logging configuration", err)
	}
	defer observability.Sync()

	backend, err := sheets.NewClient(cfg.Sheets)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid spreadsheet configuration", err)
	}

	schema, err := formschema.Load()
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid form schema", err)
	}

	handlers.InitHealthManager(versionInfo.Version)
	handlers.GetHealthManager().RegisterChecker("sheets", sheetsHealthChecker{backend: backend})

	opts := server.Options{
		Backend:      backend,
		Schema:       schema,
		Version:      versionInfo.Version,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimitRPS = cfg.RateLimit.RPS
		opts.RateLimitBurst = cfg.RateLimit.Burst
	}

	srv := server.New(cfg.Server.Host, cfg.Server.Port, opts)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		observability.ServerLogger.Info("server starting",
			zap.String("addr", srv.Addr()),
			zap.String("version", versionInfo.Version))
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Server failed", err)
		}
		return nil
	case <-runCtx.Done():
		observability.ServerLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Shutdown failed", err)
	}

	observability.ServerLogger.Info("server stopped")
	return nil
}
