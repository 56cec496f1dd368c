//go:build wireinject

package api

import (
	"github.com/google/wire"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
	"github/chapool/quickpay-wallet/internal/wallet/account"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewStore,
	NewDeviceKeys,
	NewVault,
	NewNetworks,
	NewWalletController,
	metrics.New,
	NewClock,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewAccountProvider)
	return new(Server), nil
}

// InitNewServerWithAccounts returns a new Server instance with the given account provider.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithAccounts(
	_ config.Server,
	_ account.Provider,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
