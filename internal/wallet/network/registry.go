package network

import (
	"strings"

	"github.com/pkg/errors"
)

// Registry is a read-only lookup over the network table. It is built once,
// optionally with RPC URL overrides, and never mutated afterwards.
type Registry struct {
	networks []Network
	byID     map[string]Network
}

// NewRegistry builds the table with rpcOverrides applied, keyed by network id.
// Overrides for unknown ids are rejected.
func NewRegistry(rpcOverrides map[string]string) (*Registry, error) {
	r := &Registry{
		networks: make([]Network, 0, len(defaults)),
		byID:     make(map[string]Network, len(defaults)),
	}

	for _, n := range defaults {
		if url, ok := rpcOverrides[n.ID]; ok && strings.TrimSpace(url) != "" {
			n.RPCURL = url
		}
		r.networks = append(r.networks, n)
		r.byID[n.ID] = n
	}

	for id := range rpcOverrides {
		if _, ok := r.byID[id]; !ok {
			return nil, errors.Wrapf(ErrUnknownNetwork, "rpc override for %q", id)
		}
	}

	return r, nil
}

// Get returns the network with the given id
func (r *Registry) Get(id string) (Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return Network{}, errors.Wrapf(ErrUnknownNetwork, "%q", id)
	}

	return n, nil
}

// GetByChainID returns the network with the given EVM chain id
func (r *Registry) GetByChainID(chainID int64) (Network, error) {
	for _, n := range r.networks {
		if n.ChainID == chainID {
			return n, nil
		}
	}

	return Network{}, errors.Wrapf(ErrUnknownNetwork, "chain id %d", chainID)
}

// List returns all networks in table order
func (r *Registry) List() []Network {
	out := make([]Network, len(r.networks))
	copy(out, r.networks)
	return out
}

// Has reports whether id is a known network
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// ParseRPCURLs splits an RPC URL setting (comma separated for failover)
func ParseRPCURLs(rpcURL string) []string {
	if rpcURL == "" {
		return nil
	}

	urls := strings.Split(rpcURL, ",")
	result := make([]string, 0, len(urls))

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url != "" {
			result = append(result, url)
		}
	}

	return result
}
