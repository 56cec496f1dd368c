package vault

import (
	"context"

	"github.com/pkg/errors"
)

// Store keys owned by the vault.
const (
	SeedKey    = "encrypted_seed"
	NetworkKey = "selected_network"
)

const (
	blobVersion = 1
	ivSize      = 12
	saltSize    = 16
)

var (
	// ErrVaultCorrupted is returned when a stored seed cannot be decrypted or authenticated.
	ErrVaultCorrupted = errors.New("vault corrupted")
	// ErrNoSeedStored is returned by ExportSeed when the vault is empty.
	ErrNoSeedStored = errors.New("no seed phrase stored")
	// ErrInvalidSeed is returned by Save for an empty seed phrase.
	ErrInvalidSeed = errors.New("invalid seed phrase")
)

// Vault encrypts and persists a single recovery seed and the selected network
type Vault interface {
	// Exists reports whether an encrypted seed entry is present
	Exists(ctx context.Context) (bool, error)

	// Save encrypts seed under the device key and overwrites any stored seed
	Save(ctx context.Context, seed string) error

	// Load decrypts the stored seed; found is false if none is stored
	Load(ctx context.Context) (seed string, found bool, err error)

	// ExportSeed returns the stored seed for explicit user-requested export
	ExportSeed(ctx context.Context) (string, error)

	// Clear irreversibly deletes the seed, the device key and the network preference
	Clear(ctx context.Context) error

	// SaveNetwork persists the selected network id in plaintext
	SaveNetwork(ctx context.Context, id string) error

	// LoadNetwork returns the persisted network id, if any
	LoadNetwork(ctx context.Context) (id string, found bool, err error)
}

// EncryptedBlob is the stored record of one encrypted seed. Fields are base64.
// The salt is not used for key derivation yet; it is kept so a passphrase
// derived key can be introduced without changing the record shape.
type EncryptedBlob struct {
	Version    int    `json:"version"`
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}
