package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	source sourceFlags
	addr   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Train once and serve generated text over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveFlags.source.register(serveCmd)
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := loadTrainingText(ctx, cmd, &serveFlags.source)
	if err != nil {
		return err
	}
	model, err := trainModel(src)
	if err != nil {
		return err
	}

	addr := cfg.Server.ApiAddr
	if serveFlags.addr != "" {
		addr = serveFlags.addr
	}

	mux := http.NewServeMux()
	NewModelAPI(model, src.Label, cfg.Model, logger).RegisterRoutes(mux)
	apiHttpServer := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting api server", slog.String("address", addr))
		if err := apiHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("OS signal received, stopping api server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = apiHttpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Api server shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("Api server stopped.")
	return nil
}
