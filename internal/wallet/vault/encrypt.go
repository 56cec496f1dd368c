package vault

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
)

// encryptSeed seals seed with AES-256-GCM under key using a fresh IV and salt
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func encryptSeed(key *devicekey.Key, seed string) (*EncryptedBlob, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	aesGCM, err := key.AEAD()
	if err != nil {
		return nil, err
	}

	plaintext := []byte(seed)
	defer clear(plaintext)

	ciphertext := aesGCM.Seal(nil, iv, plaintext, nil)

	return &EncryptedBlob{
		Version:    blobVersion,
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}, nil
}
