package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/handlers"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/service"
	"expense-tracker-api/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the expense tracker API locally",
		Long: `Serves the expense tracker API over HTTP, running the same handlers
that are deployed behind API Gateway.

Settings come from the optional YAML file given with --config and from the
environment (JWT_SECRET, DB_DRIVER, DB_PATH, PORT, ...).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

// newApp wires the handlers to a lazily connected database.
func newApp(cfg *config.Config, logger *slog.Logger) (*handlers.Handlers, *storage.Handle) {
	db := storage.NewHandle(cfg.Database, logger)
	tokens := auth.NewTokenCodec(cfg.JWT.Secret, cfg.TokenTTL())
	svc := service.New(db, tokens, logger)
	return handlers.NewHandlers(svc, tokens, cfg.AllowedOrigin(), logger), db
}

func setupRouter(h *handlers.Handlers) http.Handler {
	return h.Router()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	h, db := newApp(cfg, logger)
	defer db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
