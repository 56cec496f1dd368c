package session

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/network"
	"github/chapool/quickpay-wallet/internal/wallet/seed"
	"github/chapool/quickpay-wallet/internal/wallet/vault"
)

type controller struct {
	vault    vault.Vault
	provider account.Provider
	networks *network.Registry
	metrics  *metrics.Service
	log      zerolog.Logger

	defaultNetwork string
	mnemonicWords  int

	current      atomic.Pointer[snapshot]
	busy         atomic.Bool
	switching    atomic.Bool
	bootstrapped atomic.Bool
}

// NewController creates the session controller. It performs no I/O; the
// initial state is Uninitialized until Bootstrap runs.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewController(v vault.Vault, provider account.Provider, networks *network.Registry, cfg config.Wallet, m *metrics.Service) Controller {
	words := cfg.MnemonicWords
	if words == 0 {
		words = seed.MinWords
	}

	defaultNetwork := cfg.DefaultNetwork
	if !networks.Has(defaultNetwork) {
		defaultNetwork = network.DefaultID
	}

	c := &controller{
		vault:          v,
		provider:       provider,
		networks:       networks,
		metrics:        m,
		log:            log.With().Str("component", "wallet_session").Logger(),
		defaultNetwork: defaultNetwork,
		mnemonicWords:  words,
	}
	c.current.Store(&snapshot{state: StateUninitialized})

	return c
}

func (c *controller) State() State {
	return c.current.Load().state
}

func (c *controller) Snapshot() Status {
	st := c.current.Load().status()
	st.SwitchingNetwork = c.switching.Load()
	st.Busy = c.busy.Load()

	return st
}

//nolint:ireturn // Account handle is the collaborator interface
func (c *controller) Account() (account.Account, error) {
	s := c.current.Load()
	if s.state != StateUnlocked {
		return nil, errors.Wrapf(ErrInvalidTransition, "wallet is %s", s.state)
	}

	return s.account, nil
}

func (c *controller) Bootstrap(ctx context.Context, opts BootstrapOptions) (err error) {
	done, err := c.begin("bootstrap")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	if !c.bootstrapped.CompareAndSwap(false, true) {
		return errors.Wrap(ErrInvalidTransition, "bootstrap already ran")
	}

	if s := c.current.Load(); s.state != StateUninitialized {
		c.log.Debug().Str("state", s.state.String()).Msg("Session already resolved before bootstrap")
		return nil
	}

	exists, err := c.vault.Exists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check vault")
	}

	if !exists {
		if !opts.AutoCreate {
			c.log.Info().Msg("No wallet stored")
			return nil
		}

		c.log.Info().Msg("No wallet stored, generating a new one")
		_, err = c.create(ctx)
		return err
	}

	c.publish(&snapshot{state: StateLocked})

	if !opts.AutoUnlock {
		c.log.Info().Msg("Wallet stored and locked")
		return nil
	}

	return c.unlock(ctx)
}

func (c *controller) CreateWallet(ctx context.Context) (mnemonic string, err error) {
	done, err := c.begin("create")
	if err != nil {
		return "", err
	}
	defer func() { done(err) }()

	return c.create(ctx)
}

func (c *controller) create(ctx context.Context) (string, error) {
	if err := c.requireEmpty(ctx); err != nil {
		return "", err
	}

	mnemonic, err := seed.NewMnemonic(c.mnemonicWords)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	if err := c.store(ctx, mnemonic); err != nil {
		return "", err
	}

	return mnemonic, nil
}

func (c *controller) ImportWallet(ctx context.Context, mnemonic string) (err error) {
	done, err := c.begin("import")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	if words := seed.WordCount(mnemonic); words < MinSeedWords {
		return errors.Wrapf(ErrInvalidSeed, "expected at least %d words, got %d", MinSeedWords, words)
	}

	if err := c.requireEmpty(ctx); err != nil {
		return err
	}

	return c.store(ctx, seed.Normalize(mnemonic))
}

// store materializes a session for a new mnemonic, persists it and publishes
// the session. Nothing is persisted if materialization fails.
func (c *controller) store(ctx context.Context, mnemonic string) error {
	net, err := c.resolveNetwork(ctx)
	if err != nil {
		return err
	}

	next, err := c.materialize(ctx, mnemonic, net)
	if err != nil {
		return err
	}

	if err := c.vault.SaveNetwork(ctx, net.ID); err != nil {
		next.discard()
		return errors.Wrap(err, "failed to save network")
	}

	if err := c.vault.Save(ctx, mnemonic); err != nil {
		next.discard()
		return errors.Wrap(err, "failed to save seed")
	}

	c.swap(next)
	c.log.Info().Str("network", net.ID).Str("address", next.address).Msg("Wallet stored and unlocked")

	return nil
}

func (c *controller) UnlockWallet(ctx context.Context) (err error) {
	done, err := c.begin("unlock")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	return c.unlock(ctx)
}

func (c *controller) unlock(ctx context.Context) error {
	if s := c.current.Load(); s.state == StateUnlocked {
		return errors.Wrap(ErrInvalidTransition, "wallet is already unlocked")
	}

	mnemonic, found, err := c.vault.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load seed")
	}
	if !found {
		c.publish(&snapshot{state: StateUninitialized})
		return vault.ErrNoSeedStored
	}

	// the vault holds a seed even if Bootstrap never ran
	if c.current.Load().state == StateUninitialized {
		c.publish(&snapshot{state: StateLocked})
	}

	net, err := c.resolveNetwork(ctx)
	if err != nil {
		return err
	}

	next, err := c.materialize(ctx, mnemonic, net)
	if err != nil {
		return err
	}

	if err := c.vault.SaveNetwork(ctx, net.ID); err != nil {
		next.discard()
		return errors.Wrap(err, "failed to save network")
	}

	c.swap(next)
	c.log.Info().Str("network", net.ID).Str("address", next.address).Msg("Wallet unlocked")

	return nil
}

func (c *controller) LockWallet(_ context.Context) (err error) {
	done, err := c.begin("lock")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	switch c.current.Load().state {
	case StateLocked:
		return nil
	case StateUninitialized:
		return errors.Wrap(ErrInvalidTransition, "no wallet to lock")
	case StateUnlocked:
	}

	c.swap(&snapshot{state: StateLocked})
	c.log.Info().Msg("Wallet locked")

	return nil
}

func (c *controller) DisconnectWallet(ctx context.Context) (err error) {
	done, err := c.begin("disconnect")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	// once started the clear runs to completion
	ctx = context.WithoutCancel(ctx)

	clearErr := c.vault.Clear(ctx)

	state := StateUninitialized
	if clearErr != nil {
		if exists, err := c.vault.Exists(ctx); err != nil || exists {
			state = StateLocked
		}
	}

	c.swap(&snapshot{state: state})

	if clearErr != nil {
		return errors.Wrap(clearErr, "failed to clear vault")
	}

	c.log.Info().Msg("Wallet disconnected")

	return nil
}

func (c *controller) SwitchNetwork(ctx context.Context, networkID string) (err error) {
	done, err := c.begin("switch_network")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	c.switching.Store(true)
	defer c.switching.Store(false)

	net, err := c.networks.Get(networkID)
	if err != nil {
		return err
	}

	if s := c.current.Load(); s.state != StateUnlocked {
		return errors.Wrapf(ErrInvalidTransition, "wallet is %s", s.state)
	}

	mnemonic, found, err := c.vault.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load seed")
	}
	if !found {
		return vault.ErrNoSeedStored
	}

	next, err := c.materialize(ctx, mnemonic, net)
	if err != nil {
		return err
	}

	if err := c.vault.SaveNetwork(ctx, net.ID); err != nil {
		next.discard()
		return errors.Wrap(err, "failed to save network")
	}

	c.swap(next)
	c.log.Info().Str("network", net.ID).Str("address", next.address).Msg("Switched network")

	return nil
}

func (c *controller) ExportSeedPhrase(ctx context.Context) (string, error) {
	mnemonic, err := c.vault.ExportSeed(ctx)
	if err != nil {
		return "", err
	}

	c.log.Warn().Msg("Seed phrase exported")

	return mnemonic, nil
}

func (c *controller) RefreshBalance(ctx context.Context) (balance *big.Int, err error) {
	done, err := c.begin("refresh_balance")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s := c.current.Load()
	if s.state != StateUnlocked {
		return nil, errors.Wrapf(ErrInvalidTransition, "wallet is %s", s.state)
	}

	balance, err = s.account.GetBalance(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	c.publish(s.withBalance(balance))

	return new(big.Int).Set(balance), nil
}

func (c *controller) RefreshAddress(ctx context.Context) (address string, err error) {
	done, err := c.begin("refresh_address")
	if err != nil {
		return "", err
	}
	defer func() { done(err) }()

	s := c.current.Load()
	if s.state != StateUnlocked {
		return "", errors.Wrapf(ErrInvalidTransition, "wallet is %s", s.state)
	}

	address, err = s.account.GetAddress(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get address")
	}

	c.publish(s.withAddress(address))

	return address, nil
}

// begin claims the transition slot. The returned func releases it and
// records the outcome.
func (c *controller) begin(op string) (func(error), error) {
	if !c.busy.CompareAndSwap(false, true) {
		c.metrics.Transition(op, ErrSessionBusy)
		return nil, errors.Wrapf(ErrSessionBusy, "cannot %s", op)
	}

	return func(err error) {
		c.busy.Store(false)
		c.metrics.Transition(op, err)
	}, nil
}

// requireEmpty rejects create/import while a wallet exists.
func (c *controller) requireEmpty(ctx context.Context) error {
	if s := c.current.Load(); s.state != StateUninitialized {
		return errors.Wrapf(ErrInvalidTransition, "wallet is %s", s.state)
	}

	exists, err := c.vault.Exists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check vault")
	}
	if exists {
		c.publish(&snapshot{state: StateLocked})
		return errors.Wrap(ErrInvalidTransition, "a wallet is already stored")
	}

	return nil
}

// resolveNetwork returns the saved network preference, falling back to the
// configured default.
func (c *controller) resolveNetwork(ctx context.Context) (network.Network, error) {
	id, found, err := c.vault.LoadNetwork(ctx)
	if err != nil {
		return network.Network{}, errors.Wrap(err, "failed to load network")
	}

	if found && c.networks.Has(id) {
		return c.networks.Get(id)
	}
	if found {
		c.log.Warn().Str("network", id).Msg("Ignoring unknown saved network")
	}

	return c.networks.Get(c.defaultNetwork)
}

// materialize derives the account for mnemonic on net and reads its address
// and balance. On failure nothing is left open.
func (c *controller) materialize(ctx context.Context, mnemonic string, net network.Network) (*snapshot, error) {
	acct, err := c.provider.DeriveAccount(ctx, mnemonic, net)
	if err != nil {
		if errors.Is(err, account.ErrInvalidMnemonic) {
			return nil, errors.Wrap(ErrInvalidSeed, err.Error())
		}
		return nil, &MaterializationError{Network: net.ID, Err: err}
	}

	address, err := acct.GetAddress(ctx)
	if err != nil {
		closeAccount(acct)
		return nil, &MaterializationError{Network: net.ID, Err: errors.Wrap(err, "failed to get address")}
	}

	balance, err := acct.GetBalance(ctx)
	if err != nil {
		closeAccount(acct)
		return nil, &MaterializationError{Network: net.ID, Err: errors.Wrap(err, "failed to get balance")}
	}

	return &snapshot{
		state:   StateUnlocked,
		net:     net,
		account: acct,
		address: address,
		balance: balance,
	}, nil
}

// swap publishes next and releases the session it replaces.
func (c *controller) swap(next *snapshot) {
	prev := c.current.Swap(next)
	c.metrics.SessionState(int(next.state))

	if prev != nil && prev.account != next.account {
		prev.discard()
	}
}

// publish replaces the snapshot without releasing the previous account.
func (c *controller) publish(next *snapshot) {
	c.current.Store(next)
	c.metrics.SessionState(int(next.state))
}
