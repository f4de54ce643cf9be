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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"wageconv.org/explorer/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard and JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.Int("port", 0, "API server port")
	flags.String("env", "", "Environment (development|test|production)")
	flags.StringSlice("api-keys", nil, "Comma separated API keys; the JSON API is open when empty")
	flags.Int("rate-limit", 0, "Requests per second allowed per client; 0 disables limiting")

	for key, flag := range map[string]string{
		"server.port":       "port",
		"server.env":        "env",
		"server.api_keys":   "api-keys",
		"server.rate_limit": "rate-limit",
	} {
		if err := rt.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("error binding flag %s: %v", flag, err))
		}
	}

	return cmd
}

func (rt *runtime) serve(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	application, err := rt.newApplication(registry)
	if err != nil {
		return err
	}
	handler, api := newHandler(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", rt.config.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(rt.logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer func() {
		signal.Stop(hangup)
		close(hangup)
	}()
	go func() {
		for range hangup {
			if err := application.Results.Reload(); err != nil {
				logging.LogError(rt.logger, "reloading result tables failed", err)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("starting server", "addr", srv.Addr, "result_dir", rt.config.Data.ResultDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
