package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/repository"
	"github.com/magefree/mage-goldfish/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve goldfish sessions over websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("starting goldfish server",
				zap.String("version", version),
				zap.String("config", a.configPath),
				zap.String("address", cfg.Server.Address),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := repository.Open(ctx, cfg.Decks, logger)
			if err != nil {
				logger.Error("failed to open deck store", zap.Error(err))
				return err
			}
			defer store.Close()

			srv := server.New(store, server.Options{
				Settings:       cfg.Game.Settings(),
				Seed:           cfg.Game.Seed,
				ReplayDir:      cfg.Replay.Dir,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}, logger)
			go srv.Run(ctx)

			httpSrv := &http.Server{
				Addr:              cfg.Server.Address,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("websocket endpoint listening",
					zap.String("address", cfg.Server.Address),
					zap.String("path", "/ws"),
				)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logger.Error("server failed", zap.Error(err))
					return err
				}
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown failed", zap.Error(err))
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}
