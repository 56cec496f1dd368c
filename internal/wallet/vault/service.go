package vault

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/util"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
)

type service struct {
	store store.Store
	keys  devicekey.Manager
}

// NewService creates a new Vault
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(s store.Store, keys devicekey.Manager) Vault {
	return &service{
		store: s,
		keys:  keys,
	}
}

// Exists reports whether an encrypted seed entry is present
func (s *service) Exists(ctx context.Context) (bool, error) {
	_, found, err := store.Lookup(ctx, s.store, SeedKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to check seed existence")
	}

	return found, nil
}

// Save encrypts seed under the device key and overwrites any stored seed
func (s *service) Save(ctx context.Context, seed string) error {
	log := util.LogFromContext(ctx)

	if strings.TrimSpace(seed) == "" {
		return ErrInvalidSeed
	}

	key, err := s.keys.GetOrCreateKey(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get device key")
	}
	defer key.Zero()

	blob, err := encryptSeed(key, seed)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt seed phrase")
		return errors.Wrap(err, "failed to encrypt seed phrase")
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "failed to marshal encrypted seed")
	}

	if err := s.store.Set(ctx, SeedKey, data); err != nil {
		log.Error().Err(err).Msg("Failed to store encrypted seed")
		return errors.Wrap(err, "failed to store encrypted seed")
	}

	return nil
}

// Load decrypts the stored seed; found is false if none is stored
func (s *service) Load(ctx context.Context) (string, bool, error) {
	data, found, err := store.Lookup(ctx, s.store, SeedKey)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to read encrypted seed")
	}
	if !found {
		return "", false, nil
	}

	var blob EncryptedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return "", false, errors.Wrap(ErrVaultCorrupted, "failed to unmarshal encrypted seed")
	}

	key, err := s.keys.GetOrCreateKey(ctx)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get device key")
	}
	defer key.Zero()

	seed, err := decryptSeed(key, &blob)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Msg("Failed to decrypt seed phrase")
		return "", false, err
	}

	return seed, true, nil
}

// ExportSeed returns the stored seed for explicit user-requested export
func (s *service) ExportSeed(ctx context.Context) (string, error) {
	seed, found, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoSeedStored
	}

	return seed, nil
}

// Clear irreversibly deletes the seed, the device key and the network preference.
// The seed entry goes first so Exists reports false even if a later delete fails.
func (s *service) Clear(ctx context.Context) error {
	var result *multierror.Error

	if err := s.store.Delete(ctx, SeedKey); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "failed to delete encrypted seed"))
	}
	if err := s.keys.Delete(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.store.Delete(ctx, NetworkKey); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "failed to delete network preference"))
	}

	return result.ErrorOrNil()
}

// SaveNetwork persists the selected network id in plaintext
func (s *service) SaveNetwork(ctx context.Context, id string) error {
	if err := s.store.Set(ctx, NetworkKey, []byte(id)); err != nil {
		return errors.Wrap(err, "failed to store network preference")
	}

	return nil
}

// LoadNetwork returns the persisted network id, if any
func (s *service) LoadNetwork(ctx context.Context) (string, bool, error) {
	data, found, err := store.Lookup(ctx, s.store, NetworkKey)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to read network preference")
	}
	if !found || len(data) == 0 {
		return "", false, nil
	}

	return string(data), true, nil
}
