package account

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

// evmAccount signs locally and talks to the chain through a lazily dialed client.
type evmAccount struct {
	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	address common.Address
	net     network.Network
	dial    DialFunc
	client  ChainClient
	closed  bool
}

func newEVMAccount(privateKey []byte, net network.Network, dial DialFunc) (*evmAccount, error) {
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return &evmAccount{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		net:     net,
		dial:    dial,
	}, nil
}

func (a *evmAccount) GetAddress(_ context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return "", ErrAccountClosed
	}

	return a.address.Hex(), nil
}

func (a *evmAccount) Network() network.Network {
	return a.net
}

func (a *evmAccount) GetBalance(ctx context.Context) (*big.Int, error) {
	client, err := a.chain(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := client.BalanceAt(ctx, a.address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

func (a *evmAccount) QuoteSendTransaction(ctx context.Context, req TxRequest) (*TxQuote, error) {
	client, err := a.chain(ctx)
	if err != nil {
		return nil, err
	}

	return a.quote(ctx, client, req)
}

func (a *evmAccount) quote(ctx context.Context, client ChainClient, req TxRequest) (*TxQuote, error) {
	if !common.IsHexAddress(req.To) {
		return nil, errors.Errorf("invalid recipient address: %s", req.To)
	}
	to := common.HexToAddress(req.To)

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return nil, errors.New("value must not be negative")
	}

	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  a.address,
		To:    &to,
		Value: value,
		Data:  req.Data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas")
	}

	tip, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	head, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}

	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}

	// maxFee = 2*baseFee + tip leaves room for base fee growth over a few blocks
	maxFee := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), tip)

	return &TxQuote{
		GasLimit:             gas,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tip,
		Fee:                  new(big.Int).Mul(maxFee, new(big.Int).SetUint64(gas)),
	}, nil
}

func (a *evmAccount) SendTransaction(ctx context.Context, req TxRequest) (*TxResult, error) {
	client, err := a.chain(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := a.quote(ctx, client, req)
	if err != nil {
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, a.address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := common.HexToAddress(req.To)
	chainID := big.NewInt(a.net.ChainID)

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: quote.MaxPriorityFeePerGas,
		GasFeeCap: quote.MaxFeePerGas,
		Gas:       quote.GasLimit,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})

	signed, err := a.signTx(tx, chainID)
	if err != nil {
		return nil, err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	return &TxResult{Hash: signed.Hash().Hex(), Fee: quote.Fee}, nil
}

func (a *evmAccount) signTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrAccountClosed
	}

	signed, err := types.SignTx(tx, types.NewLondonSigner(chainID), a.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signed, nil
}

func (a *evmAccount) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrAccountClosed
	}

	sig, err := crypto.Sign(accounts.TextHash(message), a.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}

	// personal_sign convention
	sig[crypto.RecoveryIDOffset] += 27

	return sig, nil
}

// Close zeroes the private key and drops the RPC client. It is idempotent.
func (a *evmAccount) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if a.key != nil {
		a.key.D.SetInt64(0)
		a.key = nil
	}

	if a.client != nil {
		a.client.Close()
		a.client = nil
	}

	return nil
}

// chain returns the RPC client, dialing on first use.
func (a *evmAccount) chain(ctx context.Context) (ChainClient, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrAccountClosed
	}

	if a.client == nil {
		client, err := dialAny(ctx, a.dial, a.net)
		if err != nil {
			return nil, err
		}
		a.client = client
	}

	return a.client, nil
}
