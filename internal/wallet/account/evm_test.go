package account_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testAddress  = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
)

type fakeChain struct {
	mu      sync.Mutex
	balance *big.Int
	baseFee *big.Int
	tip     *big.Int
	gas     uint64
	nonce   uint64
	sent    []*types.Transaction
	closed  bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balance: big.NewInt(1_000_000_000_000_000_000),
		baseFee: big.NewInt(25_000_000_000),
		tip:     big.NewInt(1_000_000_000),
		gas:     21000,
		nonce:   7,
	}
}

func (f *fakeChain) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeChain) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeChain) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: f.baseFee}, nil
}

func (f *fakeChain) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return f.tip, nil
}

func (f *fakeChain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return f.gas, nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeChain) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func dialerFor(chain *fakeChain, dialed *[]string) account.DialFunc {
	return func(_ context.Context, url string) (account.ChainClient, error) {
		if dialed != nil {
			*dialed = append(*dialed, url)
		}
		if url == "http://down" {
			return nil, errors.New("connection refused")
		}
		return chain, nil
	}
}

func localNetwork(t *testing.T) network.Network {
	t.Helper()

	r, err := network.NewRegistry(nil)
	require.NoError(t, err)
	n, err := r.Get("local")
	require.NoError(t, err)

	return n
}

func TestDeriveKnownAddress(t *testing.T) {
	p := account.NewEVMProvider(account.WithDialer(dialerFor(newFakeChain(), nil)))

	acct, err := p.DeriveAccount(t.Context(), testMnemonic, localNetwork(t))
	require.NoError(t, err)
	defer acct.Close()

	addr, err := acct.GetAddress(t.Context())
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)
	assert.Equal(t, "local", acct.Network().ID)
}

func TestDeriveRejectsInvalidMnemonic(t *testing.T) {
	p := account.NewEVMProvider(account.WithDialer(dialerFor(newFakeChain(), nil)))

	for _, phrase := range []string{
		"",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		"not a real mnemonic at all but twelve words long okay fine done",
	} {
		_, err := p.DeriveAccount(t.Context(), phrase, localNetwork(t))
		require.ErrorIs(t, err, account.ErrInvalidMnemonic, phrase)
	}
}

func TestDeriveDoesNotDial(t *testing.T) {
	var dialed []string
	p := account.NewEVMProvider(account.WithDialer(dialerFor(newFakeChain(), &dialed)))

	acct, err := p.DeriveAccount(t.Context(), testMnemonic, localNetwork(t))
	require.NoError(t, err)
	defer acct.Close()

	assert.Empty(t, dialed)
}

func TestSignMessage(t *testing.T) {
	p := account.NewEVMProvider(account.WithDialer(dialerFor(newFakeChain(), nil)))
	acct, err := p.DeriveAccount(t.Context(), testMnemonic, localNetwork(t))
	require.NoError(t, err)
	defer acct.Close()

	msg := []byte("hello quickpay")
	sig, err := acct.SignMessage(t.Context(), msg)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[crypto.RecoveryIDOffset])

	raw := append([]byte(nil), sig...)
	raw[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash(msg), raw)
	require.NoError(t, err)
	assert.Equal(t, testAddress, crypto.PubkeyToAddress(*pub).Hex())
}

func TestBalanceAndFailover(t *testing.T) {
	chain := newFakeChain()
	var dialed []string
	p := account.NewEVMProvider(account.WithDialer(dialerFor(chain, &dialed)))

	net := localNetwork(t)
	net.RPCURL = "http://down, http://up"

	acct, err := p.DeriveAccount(t.Context(), testMnemonic, net)
	require.NoError(t, err)
	defer acct.Close()

	bal, err := acct.GetBalance(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Cmp(chain.balance))
	assert.Equal(t, []string{"http://down", "http://up"}, dialed)

	// the client is reused
	_, err = acct.GetBalance(t.Context())
	require.NoError(t, err)
	assert.Len(t, dialed, 2)
}

func TestQuoteAndSend(t *testing.T) {
	chain := newFakeChain()
	p := account.NewEVMProvider(account.WithDialer(dialerFor(chain, nil)))
	net := localNetwork(t)

	acct, err := p.DeriveAccount(t.Context(), testMnemonic, net)
	require.NoError(t, err)
	defer acct.Close()

	req := account.TxRequest{
		To:    "0x000000000000000000000000000000000000dEaD",
		Value: big.NewInt(12345),
	}

	quote, err := acct.QuoteSendTransaction(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), quote.GasLimit)
	assert.Equal(t, "51000000000", quote.MaxFeePerGas.String())
	assert.Equal(t, "1071000000000000", quote.Fee.String())
	assert.Empty(t, chain.sent)

	res, err := acct.SendTransaction(t.Context(), req)
	require.NoError(t, err)
	require.Len(t, chain.sent, 1)

	tx := chain.sent[0]
	assert.Equal(t, tx.Hash().Hex(), res.Hash)
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, net.ChainID, tx.ChainId().Int64())
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())

	from, err := types.Sender(types.NewLondonSigner(big.NewInt(net.ChainID)), tx)
	require.NoError(t, err)
	assert.Equal(t, testAddress, from.Hex())
}

func TestQuoteRejectsBadRecipient(t *testing.T) {
	p := account.NewEVMProvider(account.WithDialer(dialerFor(newFakeChain(), nil)))
	acct, err := p.DeriveAccount(t.Context(), testMnemonic, localNetwork(t))
	require.NoError(t, err)
	defer acct.Close()

	_, err = acct.QuoteSendTransaction(t.Context(), account.TxRequest{To: "bob"})
	require.Error(t, err)
}

func TestClosedAccount(t *testing.T) {
	chain := newFakeChain()
	p := account.NewEVMProvider(account.WithDialer(dialerFor(chain, nil)))
	acct, err := p.DeriveAccount(t.Context(), testMnemonic, localNetwork(t))
	require.NoError(t, err)

	_, err = acct.GetBalance(t.Context())
	require.NoError(t, err)

	require.NoError(t, acct.Close())
	require.NoError(t, acct.Close())
	assert.True(t, chain.closed)

	_, err = acct.GetAddress(t.Context())
	require.ErrorIs(t, err, account.ErrAccountClosed)
	_, err = acct.SignMessage(t.Context(), []byte("x"))
	require.ErrorIs(t, err, account.ErrAccountClosed)
	_, err = acct.GetBalance(t.Context())
	require.ErrorIs(t, err, account.ErrAccountClosed)
}
