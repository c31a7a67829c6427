package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SharangSharma09/Draftly/internal/orchestrator"
	"github.com/SharangSharma09/Draftly/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}

			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			slog.SetDefault(logger)

			keys, err := a.keys(cfg)
			if err != nil {
				return err
			}
			rec, err := a.history(cfg)
			if err != nil {
				return err
			}
			policy, err := orchestrator.ParsePolicy(cfg.Fallback)
			if err != nil {
				return err
			}

			handler := server.SetupMux(server.Options{
				Orchestrator:   newOrchestrator(cfg, keys, policy, logger),
				Keys:           keys,
				History:        rec,
				APIKey:         cfg.APIKey,
				RateLimit:      cfg.RateLimit,
				MaxTextLength:  cfg.MaxTextLength,
				RequestTimeout: cfg.RequestTimeout,
			})

			if cfg.APIKey != "" {
				logger.Info("auth: API key required (X-API-Key header)")
			} else {
				logger.Info("auth: disabled (no api_key configured)")
			}
			logger.Info("config",
				"fallback", policy,
				"local_emoji", cfg.LocalEmoji,
				"history", cfg.HistoryBackend,
				"rate_limit", cfg.RateLimit,
			)

			return listen(cmd.Context(), logger, fmt.Sprintf(":%d", cfg.Port), handler)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "override listen port")
	return cmd
}

// listen serves until ctx is cancelled, then drains in-flight requests.
func listen(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("draftly api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
