package vault

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
)

// decryptSeed opens blob under key. Every failure, including an
// authentication tag mismatch, maps to ErrVaultCorrupted.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func decryptSeed(key *devicekey.Key, blob *EncryptedBlob) (string, error) {
	if blob.Version != blobVersion {
		return "", errors.Wrapf(ErrVaultCorrupted, "unsupported record version %d", blob.Version)
	}

	iv, err := base64.StdEncoding.DecodeString(blob.IV)
	if err != nil {
		return "", errors.Wrap(ErrVaultCorrupted, "failed to decode IV")
	}
	if len(iv) != ivSize {
		return "", errors.Wrapf(ErrVaultCorrupted, "IV has %d bytes", len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(blob.Ciphertext)
	if err != nil {
		return "", errors.Wrap(ErrVaultCorrupted, "failed to decode ciphertext")
	}

	aesGCM, err := key.AEAD()
	if err != nil {
		return "", err
	}

	plaintext, err := aesGCM.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", errors.Wrap(ErrVaultCorrupted, "failed to decrypt seed phrase")
	}
	defer clear(plaintext)

	return string(plaintext), nil
}
