package bip44

import "github.com/tyler-smith/go-bip39"

// GenerateMnemonic creates a new BIP-39 mnemonic phrase of bitSize bits
// of entropy (128, 160, 192, 224 or 256). Kept from the teacher's
// mnemonic.go as a convenience on top of go-bip39; derivation itself
// treats BIP-39 as an external collaborator (see SPEC_FULL.md §6).
func GenerateMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}
