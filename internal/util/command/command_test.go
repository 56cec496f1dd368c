package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/test"
	"github/chapool/quickpay-wallet/internal/util/command"
	"github/chapool/quickpay-wallet/internal/wallet/session"
)

func TestWithServer(t *testing.T) {
	ctx := t.Context()
	cfg := test.NewTestConfig(t)
	cfg.Logger.PrettyPrintConsole = false

	var testError = errors.New("test error")

	resultErr := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		exists, err := s.Vault.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.Equal(t, session.StateUninitialized, s.Wallet.State())

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestNewSubcommandGroup(t *testing.T) {
	group := command.NewSubcommandGroup("wallet")

	assert.Equal(t, "wallet <subcommand>", group.Use)
	assert.NoError(t, group.RunE(group, nil))
}
