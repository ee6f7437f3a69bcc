package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"guardian-beam/internal/config"
	"guardian-beam/internal/constants"
	fxmodules "guardian-beam/internal/fx"
	"guardian-beam/internal/repository"
	"guardian-beam/internal/server"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	moderationServer *server.ModerationServer,
	interceptor connect.UnaryInterceptorFunc,
	reg *prometheus.Registry,
	tx *repository.Transactor,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           server.NewRouter(moderationServer, interceptor, reg, tx, logger),
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().
				Str("auth_mode", cfg.AuthMode).
				Str("db_path", cfg.DBPath).
				Str("log_level", cfg.LogLevel).
				Msg("config loaded")

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
