package test

import (
	"context"
	"testing"

	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/api/router"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/wallet/account"
)

// TestMnemonic is the standard BIP39 test vector phrase.
//
//nolint:dupword // BIP39 test mnemonic with repeated words
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// TestAddress is the first account of TestMnemonic at m/44'/60'/0'/0/0.
const TestAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

// NewTestConfig returns the env config with an in-memory store under t.TempDir
// and no automatic wallet creation.
func NewTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Store = config.Store{
		DataDir:    t.TempDir(),
		InMemory:   true,
		SyncWrites: false,
	}
	cfg.Wallet.DefaultNetwork = "local"
	cfg.Wallet.AutoCreate = false
	cfg.Wallet.AutoUnlock = true
	cfg.Wallet.MnemonicWords = 12
	cfg.Wallet.RPCURLs = nil
	cfg.Logger.PrettyPrintConsole = false

	return cfg
}

// WithTestServer runs closure against a fully wired server backed by an
// in-memory store and a ChainStub.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(t), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerAndChain(t, cfg, func(s *api.Server, _ *ChainStub) {
		closure(s)
	})
}

func WithTestServerAndChain(t *testing.T, cfg config.Server, closure func(s *api.Server, chain *ChainStub)) {
	t.Helper()

	chain := NewChainStub()
	s := NewTestServer(t, cfg, chain)

	closure(s, chain)

	// echo is shut down with a fresh context, t.Context is already done here
	ctx := context.Background()
	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

func NewTestServer(t *testing.T, cfg config.Server, chain *ChainStub) *api.Server {
	t.Helper()

	s, err := api.InitNewServerWithAccounts(cfg, account.NewEVMProvider(account.WithDialer(chain.Dial)))
	require.NoError(t, err)

	s.Clock = time2.NewMockClock(time2.DefaultClock.Now())

	require.NoError(t, router.Init(s))

	return s
}
