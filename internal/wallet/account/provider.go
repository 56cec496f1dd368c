package account

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/util"
	"github/chapool/quickpay-wallet/internal/wallet/network"
	"github/chapool/quickpay-wallet/internal/wallet/seed"
)

// EVMProvider derives secp256k1 accounts along DerivationPath.
type EVMProvider struct {
	dial DialFunc
}

// Option configures an EVMProvider
type Option func(*EVMProvider)

// WithDialer replaces the RPC dialer, used by tests and offline tooling.
func WithDialer(dial DialFunc) Option {
	return func(p *EVMProvider) {
		p.dial = dial
	}
}

// NewEVMProvider returns a provider that dials RPC nodes with ethclient.
func NewEVMProvider(opts ...Option) *EVMProvider {
	p := &EVMProvider{dial: DialEthClient}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DeriveAccount validates mnemonic, derives the account key and binds it to
// net. No network I/O happens until a chain method is called.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func (p *EVMProvider) DeriveAccount(ctx context.Context, mnemonic string, net network.Network) (Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !seed.IsValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seeds := seed.NewManager()
	if err := seeds.Initialize(mnemonic, ""); err != nil {
		return nil, errors.Wrap(err, "failed to derive seed")
	}
	defer seeds.Clear()

	master := seeds.GetSeed()
	defer zero(master)

	privateKey, err := derivePrivateKey(master, DerivationPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive private key")
	}
	defer zero(privateKey)

	acct, err := newEVMAccount(privateKey, net, p.dial)
	if err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Debug().Str("network", net.ID).Str("address", acct.address.Hex()).Msg("Derived account")

	return acct, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
