package devicekey

import (
	"context"

	"github.com/pkg/errors"
)

// StoreKey is the fixed store key the exported device key lives under.
const StoreKey = "device_key"

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// ErrKeyCorrupted is returned when a stored device key exists but cannot be
// parsed. A replacement key is never generated in that case, since it would
// strand any seed encrypted under the old one.
var ErrKeyCorrupted = errors.New("device key corrupted")

// Manager provides the per-installation symmetric key
type Manager interface {
	// GetOrCreateKey loads the device key, generating and persisting one on first use
	GetOrCreateKey(ctx context.Context) (*Key, error)

	// Delete removes the stored device key
	Delete(ctx context.Context) error
}

// jwk is the exported form of the key, a JSON Web Key for an AES-GCM octet key.
type jwk struct {
	Kty    string   `json:"kty"`
	K      string   `json:"k"`
	Alg    string   `json:"alg"`
	Ext    bool     `json:"ext"`
	KeyOps []string `json:"key_ops"`
}
