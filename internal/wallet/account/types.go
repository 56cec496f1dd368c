package account

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

// DerivationPath is the BIP44 path of the single account a session exposes.
const DerivationPath = "m/44'/60'/0'/0/0"

var (
	// ErrInvalidMnemonic is returned when a phrase fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrAccountClosed is returned by an account after Close.
	ErrAccountClosed = errors.New("account closed")
)

// TxRequest is a native-currency transfer. Value is in wei.
type TxRequest struct {
	To    string
	Value *big.Int
	Data  []byte
}

// TxQuote is the fee estimate for a TxRequest
type TxQuote struct {
	GasLimit             uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Fee                  *big.Int
}

// TxResult is returned after broadcast
type TxResult struct {
	Hash string
	Fee  *big.Int
}

// Account is a signing handle bound to one network. It holds derived key
// material and must be closed when the session drops it.
type Account interface {
	// GetAddress returns the checksummed account address
	GetAddress(ctx context.Context) (string, error)

	// GetBalance returns the native balance in wei
	GetBalance(ctx context.Context) (*big.Int, error)

	// QuoteSendTransaction estimates the fee of req without sending it
	QuoteSendTransaction(ctx context.Context, req TxRequest) (*TxQuote, error)

	// SendTransaction signs and broadcasts req
	SendTransaction(ctx context.Context, req TxRequest) (*TxResult, error)

	// SignMessage returns an EIP-191 personal signature over message
	SignMessage(ctx context.Context, message []byte) ([]byte, error)

	// Network returns the network the account is bound to
	Network() network.Network

	// Close zeroes the key material and releases the RPC connection
	Close() error
}

// Provider materializes accounts from a recovery phrase
type Provider interface {
	// DeriveAccount derives the account at DerivationPath on net
	DeriveAccount(ctx context.Context, mnemonic string, net network.Network) (Account, error)
}
