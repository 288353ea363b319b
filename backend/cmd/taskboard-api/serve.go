package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskboard-dev/taskboard/backend/internal/router"
	"github.com/taskboard-dev/taskboard/backend/internal/setup"
	"github.com/taskboard-dev/taskboard/shared/config"
	"github.com/taskboard-dev/taskboard/shared/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Log.Error("failed to release dependencies", "error", err)
		}
	}()

	// schema problems are logged and startup continues
	if err := deps.Storage.EnsureSchema(ctx); err != nil {
		logger.Log.Warn("schema guard finished with errors", "error", err)
	}
	if _, err := deps.Storage.EnsureDefaultBoard(ctx, cfg.Public.DefaultBoardTitle); err != nil {
		logger.Log.Warn("failed to ensure default board", "error", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Public.Http.Port),
		Handler: router.New(deps),
	}

	listenErrs := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "addr", server.Addr)
		listenErrs <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Log.Info("shutting down", "timeout", cfg.Public.Http.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.Http.ShutdownTimeout)
		defer cancel()
		shutdownErr := server.Shutdown(shutdownCtx)
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}
