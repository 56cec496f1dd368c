package vault_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
	"github/chapool/quickpay-wallet/internal/wallet/vault"
)

//nolint:dupword // BIP39 test mnemonic with repeated words
const testSeed = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newVault(t *testing.T) (vault.Vault, store.Store) {
	t.Helper()
	b, err := store.OpenBadger(store.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return vault.NewService(b, devicekey.NewManager(b)), b
}

func readBlob(t *testing.T, s store.Store) vault.EncryptedBlob {
	t.Helper()
	raw, err := s.Get(t.Context(), vault.SeedKey)
	require.NoError(t, err)

	var blob vault.EncryptedBlob
	require.NoError(t, json.Unmarshal(raw, &blob))
	return blob
}

func writeBlob(t *testing.T, s store.Store, blob vault.EncryptedBlob) {
	t.Helper()
	raw, err := json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, s.Set(t.Context(), vault.SeedKey, raw))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	seeds := []string{
		testSeed,
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo vote",
		"  leading and trailing whitespace is preserved  ",
		"ünïcödé wörds stay byte exact",
	}

	for _, seed := range seeds {
		ctx := t.Context()
		v, _ := newVault(t)

		require.NoError(t, v.Save(ctx, seed))

		got, found, err := v.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, seed, got)
	}
}

func TestLoadEmptyVault(t *testing.T) {
	v, _ := newVault(t)

	seed, found, err := v.Load(t.Context())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, seed)
}

func TestSaveRejectsEmptySeed(t *testing.T) {
	v, _ := newVault(t)

	require.ErrorIs(t, v.Save(t.Context(), ""), vault.ErrInvalidSeed)
	require.ErrorIs(t, v.Save(t.Context(), "   "), vault.ErrInvalidSeed)

	exists, err := v.Exists(t.Context())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveUsesFreshRandomness(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)

	require.NoError(t, v.Save(ctx, testSeed))
	first := readBlob(t, s)
	require.NoError(t, v.Save(ctx, testSeed))
	second := readBlob(t, s)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)

	iv, err := base64.StdEncoding.DecodeString(second.IV)
	require.NoError(t, err)
	assert.Len(t, iv, 12)
	salt, err := base64.StdEncoding.DecodeString(second.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)
	assert.NotContains(t, second.Ciphertext, "abandon")
}

func TestExistsInvariant(t *testing.T) {
	ctx := t.Context()
	v, _ := newVault(t)

	exists, err := v.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.Save(ctx, testSeed))
	exists, err = v.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, v.Clear(ctx))
	exists, err = v.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClearRemovesEverything(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)

	require.NoError(t, v.Save(ctx, testSeed))
	require.NoError(t, v.SaveNetwork(ctx, "fuji"))

	require.NoError(t, v.Clear(ctx))

	for _, key := range []string{vault.SeedKey, vault.NetworkKey, devicekey.StoreKey} {
		_, found, err := store.Lookup(ctx, s, key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}

func TestFlippedCiphertextByteIsCorruption(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)
	require.NoError(t, v.Save(ctx, testSeed))

	original := readBlob(t, s)
	ciphertext, err := base64.StdEncoding.DecodeString(original.Ciphertext)
	require.NoError(t, err)

	for i := range ciphertext {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[i] ^= 0x01

		blob := original
		blob.Ciphertext = base64.StdEncoding.EncodeToString(tampered)
		writeBlob(t, s, blob)

		seed, found, err := v.Load(ctx)
		require.ErrorIs(t, err, vault.ErrVaultCorrupted, "byte %d", i)
		assert.False(t, found)
		assert.Empty(t, seed)
	}
}

func TestMalformedRecordIsCorruption(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)
	require.NoError(t, v.Save(ctx, testSeed))
	original := readBlob(t, s)

	badIV := original
	badIV.IV = base64.StdEncoding.EncodeToString([]byte("short"))

	badBase64 := original
	badBase64.Ciphertext = "%%%"

	badVersion := original
	badVersion.Version = 99

	for _, blob := range []vault.EncryptedBlob{badIV, badBase64, badVersion} {
		writeBlob(t, s, blob)
		_, _, err := v.Load(ctx)
		require.ErrorIs(t, err, vault.ErrVaultCorrupted)
	}

	require.NoError(t, s.Set(ctx, vault.SeedKey, []byte("not json")))
	_, _, err := v.Load(ctx)
	require.ErrorIs(t, err, vault.ErrVaultCorrupted)
}

func TestWrongDeviceKeyIsCorruption(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)
	require.NoError(t, v.Save(ctx, testSeed))

	// Replace the device key with a different valid key.
	require.NoError(t, s.Delete(ctx, devicekey.StoreKey))
	_, err := devicekey.NewManager(s).GetOrCreateKey(ctx)
	require.NoError(t, err)

	_, _, err = v.Load(ctx)
	require.ErrorIs(t, err, vault.ErrVaultCorrupted)
}

func TestCorruptedDeviceKeyPassesThrough(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)
	require.NoError(t, v.Save(ctx, testSeed))
	require.NoError(t, s.Set(ctx, devicekey.StoreKey, []byte("{}")))

	_, _, err := v.Load(ctx)
	require.ErrorIs(t, err, devicekey.ErrKeyCorrupted)
	assert.NotErrorIs(t, err, vault.ErrVaultCorrupted)

	err = v.Save(ctx, testSeed)
	require.ErrorIs(t, err, devicekey.ErrKeyCorrupted)
}

func TestExportSeed(t *testing.T) {
	ctx := t.Context()
	v, _ := newVault(t)

	_, err := v.ExportSeed(ctx)
	require.ErrorIs(t, err, vault.ErrNoSeedStored)

	require.NoError(t, v.Save(ctx, testSeed))
	seed, err := v.ExportSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSeed, seed)
}

func TestNetworkPreferenceIsIndependent(t *testing.T) {
	ctx := t.Context()
	v, s := newVault(t)

	_, found, err := v.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, v.SaveNetwork(ctx, "mainnet"))
	id, found, err := v.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "mainnet", id)

	exists, err := v.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	raw, err := s.Get(ctx, vault.NetworkKey)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", string(raw))
}

var errDeleteFailed = errors.New("delete failed")

// failingDeletes wraps a store and fails deletes of selected keys.
type failingDeletes struct {
	store.Store
	keys map[string]bool
}

func (f failingDeletes) Delete(ctx context.Context, key string) error {
	if f.keys[key] {
		return errDeleteFailed
	}
	return f.Store.Delete(ctx, key)
}

func TestPartialClearStillReportsEmpty(t *testing.T) {
	ctx := t.Context()
	b, err := store.OpenBadger(store.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	defer b.Close()

	s := failingDeletes{Store: b, keys: map[string]bool{devicekey.StoreKey: true, vault.NetworkKey: true}}
	v := vault.NewService(s, devicekey.NewManager(s))

	require.NoError(t, v.Save(ctx, testSeed))
	require.NoError(t, v.SaveNetwork(ctx, "fuji"))

	err = v.Clear(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDeleteFailed)
	assert.True(t, strings.Contains(err.Error(), "2 errors occurred"), err.Error())

	exists, err := v.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, found, err := v.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

// openShared opens two stores on one data dir. The second cannot take badger's
// directory lock and runs on the file backend alone.
func openShared(t *testing.T) (*store.Fallback, *store.Fallback, string) {
	t.Helper()
	cfg := config.Store{DataDir: t.TempDir()}

	owner, err := store.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = owner.Close() })

	other, err := store.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	_, isBadger := other.Primary.(*store.Badger)
	require.False(t, isBadger)

	return owner, other, cfg.DataDir
}

func TestClearWhileBadgerLockedElsewhereIsFinal(t *testing.T) {
	ctx := t.Context()
	owner, other, _ := openShared(t)
	daemon := vault.NewService(owner, devicekey.NewManager(owner))
	cli := vault.NewService(other, devicekey.NewManager(other))

	require.NoError(t, daemon.Save(ctx, testSeed))
	require.NoError(t, daemon.SaveNetwork(ctx, "local"))

	require.NoError(t, cli.Clear(ctx))

	exists, err := daemon.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, found, err := daemon.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	const imported = "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong"
	require.NoError(t, cli.Save(ctx, imported))
	require.NoError(t, cli.SaveNetwork(ctx, "fuji"))

	seed, found, err := daemon.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, imported, seed)

	id, _, err := daemon.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fuji", id)
}

func TestUnreadableFallbackIsNotAnEmptyVault(t *testing.T) {
	ctx := t.Context()
	_, other, dir := openShared(t)
	cli := vault.NewService(other, devicekey.NewManager(other))

	require.NoError(t, cli.Save(ctx, testSeed))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vault.json"), []byte("{"), 0o600))

	exists, err := cli.Exists(ctx)
	require.Error(t, err)
	assert.False(t, exists)

	var storeErr *store.Error
	assert.ErrorAs(t, err, &storeErr)
}
