package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/api/router"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/util"
)

const shutdownTimeout = 30 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the wallet daemon",
		Long: `Starts the wallet daemon.

Resolves the wallet session from the local vault, then serves the
HTTP control surface until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), config.DefaultServiceConfigFromEnv())
		},
	}
}

func run(ctx context.Context, cfg config.Server) error {
	util.ConfigureLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	if err := router.Init(s); err != nil {
		log.Error().Err(err).Msg("Failed to initialize router")
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed unlock leaves the session Locked; the daemon still serves so
	// the user can retry through the API.
	if err := s.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Str("state", s.Wallet.State().String()).Msg("Wallet bootstrap did not complete")
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.Echo.ListenAddress).Msg("Starting server")
		errc <- s.Start()
	}()

	var startErr error
	select {
	case <-ctx.Done():
	case startErr = <-errc:
		if errors.Is(startErr, http.ErrServerClosed) {
			startErr = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server stopped")

	return startErr
}
