package devicekey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/store"
)

const (
	jwkKty = "oct"
	jwkAlg = "A256GCM"
)

type manager struct {
	store store.Store
	// mu serializes first-use generation so two callers never persist two different keys.
	mu sync.Mutex
}

// NewManager creates a new device key Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager(s store.Store) Manager {
	return &manager{store: s}
}

// GetOrCreateKey loads the device key, generating and persisting one on first use
func (m *manager) GetOrCreateKey(ctx context.Context) (*Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, found, err := store.Lookup(ctx, m.store, StoreKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read device key")
	}

	if found {
		return importKey(data)
	}

	material := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, errors.Wrap(err, "failed to generate device key")
	}

	exported, err := exportKey(material)
	if err != nil {
		clear(material)
		return nil, err
	}
	defer clear(exported)

	if err := m.store.Set(ctx, StoreKey, exported); err != nil {
		clear(material)
		return nil, errors.Wrap(err, "failed to persist device key")
	}

	log.Info().Str("component", "device_key").Msg("Generated new device key")

	return &Key{material: material}, nil
}

// Delete removes the stored device key
func (m *manager) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, StoreKey); err != nil {
		return errors.Wrap(err, "failed to delete device key")
	}

	return nil
}

func exportKey(material []byte) ([]byte, error) {
	data, err := json.Marshal(jwk{
		Kty:    jwkKty,
		K:      base64.RawURLEncoding.EncodeToString(material),
		Alg:    jwkAlg,
		Ext:    true,
		KeyOps: []string{"encrypt", "decrypt"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to export device key")
	}

	return data, nil
}

func importKey(data []byte) (*Key, error) {
	var k jwk
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, errors.Wrap(ErrKeyCorrupted, "stored key is not a JWK")
	}

	if k.Kty != jwkKty || k.Alg != jwkAlg {
		return nil, errors.Wrapf(ErrKeyCorrupted, "unexpected key type %q/%q", k.Kty, k.Alg)
	}

	material, err := base64.RawURLEncoding.DecodeString(k.K)
	if err != nil {
		return nil, errors.Wrap(ErrKeyCorrupted, "key material is not base64url")
	}

	if len(material) != KeySize {
		clear(material)
		return nil, errors.Wrapf(ErrKeyCorrupted, "key material has %d bytes", len(material))
	}

	return &Key{material: material}, nil
}
