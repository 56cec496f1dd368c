package seed

// Manager holds the BIP39 seed derived from a mnemonic for the duration of one
// key derivation. Callers Clear it as soon as the account key is derived.
type Manager interface {
	// Initialize derives and holds the seed for mnemonic and an optional BIP39 passphrase
	Initialize(mnemonic string, passphrase string) error

	// GetSeed gets the seed (from memory)
	GetSeed() []byte

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
