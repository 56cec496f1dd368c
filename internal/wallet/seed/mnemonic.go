package seed

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// MinWords is the smallest accepted mnemonic length.
const MinWords = 12

// entropyBits maps supported mnemonic lengths to BIP39 entropy sizes.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// NewMnemonic generates a random BIP39 mnemonic with the given number of words.
func NewMnemonic(words int) (string, error) {
	bits, ok := entropyBits[words]
	if !ok {
		return "", fmt.Errorf("unsupported mnemonic length: %d words", words)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

// Normalize trims the phrase and collapses runs of whitespace to single spaces.
func Normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// WordCount returns the number of whitespace separated tokens.
func WordCount(mnemonic string) int {
	return len(strings.Fields(mnemonic))
}

// IsValid checks the phrase against the BIP39 English word list and checksum.
func IsValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(Normalize(mnemonic))
}
