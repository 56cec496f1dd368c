package session

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/wallet/account"
)

// State is the lifecycle position of the wallet.
type State int

const (
	// StateUninitialized means no seed is stored and no session is live.
	StateUninitialized State = iota
	// StateLocked means a seed is stored but no session is live.
	StateLocked
	// StateUnlocked means a session is materialized.
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MinSeedWords is the minimum token count accepted by ImportWallet.
const MinSeedWords = 12

var (
	// ErrInvalidSeed is returned when an imported phrase is rejected.
	ErrInvalidSeed = errors.New("invalid seed phrase")
	// ErrSessionMaterializationFailed is matched by every *MaterializationError.
	ErrSessionMaterializationFailed = errors.New("session materialization failed")
	// ErrSessionBusy is returned while another transition is in flight.
	ErrSessionBusy = errors.New("session busy")
	// ErrInvalidTransition is returned when an operation is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// MaterializationError wraps a failure of the account provider.
type MaterializationError struct {
	Network string
	Err     error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("%s on network %s: %v", ErrSessionMaterializationFailed, e.Network, e.Err)
}

func (e *MaterializationError) Unwrap() error {
	return e.Err
}

func (e *MaterializationError) Is(target error) bool {
	return target == ErrSessionMaterializationFailed
}

// Status is a read-only view of the controller. It never carries secrets.
type Status struct {
	State            State    `json:"state"`
	Network          string   `json:"network,omitempty"`
	Address          string   `json:"address,omitempty"`
	Balance          *big.Int `json:"balance,omitempty"`
	SwitchingNetwork bool     `json:"switching_network"`
	Busy             bool     `json:"busy"`
}

// BootstrapOptions controls the startup transition.
type BootstrapOptions struct {
	// AutoCreate generates a wallet when none is stored.
	AutoCreate bool
	// AutoUnlock unlocks a stored wallet without user interaction.
	AutoUnlock bool
}

// Controller owns the single wallet session of the process
type Controller interface {
	// Bootstrap resolves the startup state; it may run only once
	Bootstrap(ctx context.Context, opts BootstrapOptions) error

	// CreateWallet generates, stores and unlocks a new wallet, returning its mnemonic
	CreateWallet(ctx context.Context) (string, error)

	// ImportWallet stores and unlocks an existing mnemonic
	ImportWallet(ctx context.Context, mnemonic string) error

	// UnlockWallet decrypts the stored seed and materializes a session
	UnlockWallet(ctx context.Context) error

	// LockWallet discards the live session, keeping the stored seed
	LockWallet(ctx context.Context) error

	// DisconnectWallet irreversibly clears the vault and discards the session
	DisconnectWallet(ctx context.Context) error

	// SwitchNetwork re-materializes the session on another network
	SwitchNetwork(ctx context.Context, networkID string) error

	// ExportSeedPhrase returns the stored mnemonic
	ExportSeedPhrase(ctx context.Context) (string, error)

	// RefreshBalance re-queries the live account balance
	RefreshBalance(ctx context.Context) (*big.Int, error)

	// RefreshAddress re-queries the live account address
	RefreshAddress(ctx context.Context) (string, error)

	// Account returns the live account handle
	Account() (account.Account, error)

	// State returns the current state
	State() State

	// Snapshot returns the current status
	Snapshot() Status
}
