package api

import (
	"github.com/dropbox/godropbox/time2"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
	"github/chapool/quickpay-wallet/internal/wallet/network"
	"github/chapool/quickpay-wallet/internal/wallet/session"
	"github/chapool/quickpay-wallet/internal/wallet/vault"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewStore opens the badger primary and the file fallback under the configured data dir.
func NewStore(cfg config.Server, m *metrics.Service) (*store.Fallback, error) {
	return store.Open(cfg.Store, m)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewDeviceKeys(st *store.Fallback) devicekey.Manager {
	return devicekey.NewManager(st)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewVault(st *store.Fallback, keys devicekey.Manager) vault.Vault {
	return vault.NewService(st, keys)
}

func NewNetworks(cfg config.Server) (*network.Registry, error) {
	return network.NewRegistry(cfg.Wallet.RPCURLs)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewAccountProvider() account.Provider {
	return account.NewEVMProvider()
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewWalletController(cfg config.Server, v vault.Vault, accounts account.Provider, networks *network.Registry, m *metrics.Service) session.Controller {
	return session.NewController(v, accounts, networks, cfg.Wallet, m)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClock() time2.Clock {
	return time2.DefaultClock
}
