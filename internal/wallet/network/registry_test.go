package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

func TestDefaultTable(t *testing.T) {
	r, err := network.NewRegistry(nil)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"local", "fuji", "mainnet"}, []string{list[0].ID, list[1].ID, list[2].ID})

	n, err := r.Get("fuji")
	require.NoError(t, err)
	assert.Equal(t, int64(43113), n.ChainID)
	assert.Equal(t, "Fuji Testnet", n.DisplayName)

	n, err = r.GetByChainID(43114)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", n.ID)

	assert.True(t, r.Has(network.DefaultID))
}

func TestUnknownNetwork(t *testing.T) {
	r, err := network.NewRegistry(nil)
	require.NoError(t, err)

	_, err = r.Get("sepolia")
	require.ErrorIs(t, err, network.ErrUnknownNetwork)

	_, err = r.GetByChainID(1)
	require.ErrorIs(t, err, network.ErrUnknownNetwork)
}

func TestRPCOverrides(t *testing.T) {
	r, err := network.NewRegistry(map[string]string{"local": "http://node:9650/ext/bc/C/rpc"})
	require.NoError(t, err)

	n, err := r.Get("local")
	require.NoError(t, err)
	assert.Equal(t, "http://node:9650/ext/bc/C/rpc", n.RPCURL)

	_, err = network.NewRegistry(map[string]string{"nope": "http://x"})
	require.ErrorIs(t, err, network.ErrUnknownNetwork)
}

func TestListIsACopy(t *testing.T) {
	r, err := network.NewRegistry(nil)
	require.NoError(t, err)

	list := r.List()
	list[0].RPCURL = "mutated"

	n, err := r.Get(list[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", n.RPCURL)
}

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, network.ParseRPCURLs(""))
	assert.Equal(t, []string{"http://a", "http://b"}, network.ParseRPCURLs(" http://a, ,http://b "))
}
