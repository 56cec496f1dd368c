package devicekey

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

// Key holds raw key material. Callers borrow it for one operation and Zero it afterwards.
type Key struct {
	material []byte
}

// Bytes returns a copy of the key material
func (k *Key) Bytes() []byte {
	out := make([]byte, len(k.material))
	copy(out, k.material)
	return out
}

// AEAD returns an AES-GCM cipher bound to the key
func (k *Key) AEAD() (cipher.AEAD, error) {
	if len(k.material) != KeySize {
		return nil, errors.New("device key has been zeroed")
	}

	block, err := aes.NewCipher(k.material)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return aesGCM, nil
}

// Zero wipes the key material from memory
func (k *Key) Zero() {
	clear(k.material)
	k.material = nil
}
