package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/util"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/network"
	"github/chapool/quickpay-wallet/internal/wallet/session"
	"github/chapool/quickpay-wallet/internal/wallet/vault"
)

type Router struct {
	Routes      []*echo.Route
	Root        *echo.Group
	Management  *echo.Group
	APIV1Wallet *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Store    *store.Fallback
	Vault    vault.Vault
	Networks *network.Registry
	Accounts account.Provider
	Wallet   session.Controller
	Metrics  *metrics.Service
	Clock    time2.Clock
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	st *store.Fallback,
	v vault.Vault,
	networks *network.Registry,
	accounts account.Provider,
	wallet session.Controller,
	metrics *metrics.Service,
	clock time2.Clock,
) *Server {
	return &Server{
		Config:   cfg,
		Store:    st,
		Vault:    v,
		Networks: networks,
		Accounts: accounts,
		Wallet:   wallet,
		Metrics:  metrics,
		Clock:    clock,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

// Bootstrap resolves the wallet state at startup from the wallet config.
func (s *Server) Bootstrap(ctx context.Context) error {
	return s.Wallet.Bootstrap(ctx, session.BootstrapOptions{
		AutoCreate: s.Config.Wallet.AutoCreate,
		AutoUnlock: s.Config.Wallet.AutoUnlock,
	})
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.Wallet != nil && s.Wallet.State() == session.StateUnlocked {
		log.Debug().Msg("Locking wallet session")

		if err := s.Wallet.LockWallet(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to lock wallet session")
			errs = append(errs, err)
		}
	}

	if s.Store != nil {
		log.Debug().Msg("Closing store")

		if err := s.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
			errs = append(errs, err)
		}
	}

	return errs
}
