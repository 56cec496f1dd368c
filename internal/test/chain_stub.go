package test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github/chapool/quickpay-wallet/internal/wallet/account"
)

// DefaultBalance is the balance every address holds on a fresh ChainStub (1 AVAX).
var DefaultBalance = big.NewInt(1_000_000_000_000_000_000)

// ChainStub is an in-memory account.ChainClient. It never touches the network.
type ChainStub struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	sent     []*types.Transaction
	dialErr  error
}

func NewChainStub() *ChainStub {
	return &ChainStub{balances: make(map[common.Address]*big.Int)}
}

// Dial satisfies account.DialFunc.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func (c *ChainStub) Dial(_ context.Context, _ string) (account.ChainClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialErr != nil {
		return nil, c.dialErr
	}

	return c, nil
}

// FailDial makes every following Dial fail with err; nil restores it.
func (c *ChainStub) FailDial(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialErr = err
}

func (c *ChainStub) SetBalance(address string, wei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[common.HexToAddress(address)] = new(big.Int).Set(wei)
}

func (c *ChainStub) Sent() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Transaction(nil), c.sent...)
}

func (c *ChainStub) BalanceAt(_ context.Context, addr common.Address, _ *big.Int) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.balances[addr]; ok {
		return new(big.Int).Set(b), nil
	}

	return new(big.Int).Set(DefaultBalance), nil
}

func (c *ChainStub) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(len(c.sent)), nil
}

func (c *ChainStub) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: big.NewInt(25_000_000_000)}, nil
}

func (c *ChainStub) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (c *ChainStub) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}

func (c *ChainStub) SendTransaction(_ context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, tx)
	return nil
}

func (c *ChainStub) Close() {}
