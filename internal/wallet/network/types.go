package network

import "github.com/pkg/errors"

// ErrUnknownNetwork is returned when an id is not in the network table.
var ErrUnknownNetwork = errors.New("unknown network")

// DefaultID is used when no network preference is stored or configured.
const DefaultID = "local"

// Currency describes a network's native currency.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Network is one entry of the static network table
type Network struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	ChainID       int64    `json:"chain_id"`
	RPCURL        string   `json:"rpc_url"`
	BlockExplorer string   `json:"block_explorer"`
	Currency      Currency `json:"native_currency"`
}

var avax = Currency{Name: "Avalanche", Symbol: "AVAX", Decimals: 18}

// defaults is the built-in network table.
var defaults = []Network{
	{
		ID:            "local",
		Name:          "avalanche-local",
		DisplayName:   "Local Avalanche",
		ChainID:       1337,
		RPCURL:        "http://127.0.0.1:9650/ext/bc/C/rpc",
		BlockExplorer: "http://localhost:4000",
		Currency:      avax,
	},
	{
		ID:            "fuji",
		Name:          "avalanche-fuji",
		DisplayName:   "Fuji Testnet",
		ChainID:       43113,
		RPCURL:        "https://api.avax-test.network/ext/bc/C/rpc",
		BlockExplorer: "https://testnet.snowtrace.io",
		Currency:      avax,
	},
	{
		ID:            "mainnet",
		Name:          "avalanche",
		DisplayName:   "Avalanche Mainnet",
		ChainID:       43114,
		RPCURL:        "https://api.avax.network/ext/bc/C/rpc",
		BlockExplorer: "https://snowtrace.io",
		Currency:      avax,
	},
}
