package account

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

// ChainClient is the subset of the JSON-RPC client an account uses.
type ChainClient interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	Close()
}

// DialFunc opens a ChainClient for one RPC URL.
type DialFunc func(ctx context.Context, url string) (ChainClient, error)

// DialEthClient dials url with go-ethereum's ethclient.
func DialEthClient(ctx context.Context, url string) (ChainClient, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// dialAny tries each URL of net's RPC setting in order and returns the first
// client that connects.
func dialAny(ctx context.Context, dial DialFunc, net network.Network) (ChainClient, error) {
	urls := network.ParseRPCURLs(net.RPCURL)
	if len(urls) == 0 {
		return nil, errors.Errorf("no RPC URL configured for network %s", net.ID)
	}

	var lastErr error
	for _, url := range urls {
		client, err := dial(ctx, url)
		if err == nil {
			return client, nil
		}

		log.Warn().Str("network", net.ID).Str("url", url).Err(err).Msg("Failed to connect to RPC node")
		lastErr = err
	}

	return nil, errors.Wrapf(lastErr, "failed to connect to any RPC node for %s", net.ID)
}
