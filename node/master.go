package node

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/primitives"
)

// FromMnemonic builds a root (depth-0) node per the SLIP-10 master-key
// spec (spec §4.4) for secp256k1 or ed25519. The passphrase is the BIP-39
// optional passphrase, not a node-level secret.
func FromMnemonic(curveKind curve.Kind, network Network, mnemonic, passphrase string, overrides *primitives.Overrides) (*Node, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("%w: invalid bip39 mnemonic", ErrInvalidParameters)
	}

	prim := overrides.Resolve()
	salt := append([]byte("mnemonic"), []byte(passphrase)...)
	seed, err := prim.PBKDF2SHA512([]byte(mnemonic), salt, 2048, 64)
	if err != nil {
		return nil, err
	}
	return FromSeed(curveKind, network, seed, overrides)
}

// FromSeed builds a root node directly from a raw 16-64 byte seed, per
// the SLIP-10 master-key spec. Use this when the seed was derived
// out-of-band instead of from a mnemonic.
func FromSeed(curveKind curve.Kind, network Network, seed []byte, overrides *primitives.Overrides) (*Node, error) {
	c, err := curve.ByKind(curveKind)
	if err != nil {
		return nil, err
	}
	if c.MasterNodeSpec() != curve.SpecSLIP10 {
		return nil, fmt.Errorf("%w: fromSeed only applies to slip10 curves (secp256k1, ed25519)", ErrUnsupportedCurve)
	}
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("%w: seed must be 16-64 bytes, got %d", ErrInvalidParameters, len(seed))
	}

	prim := overrides.Resolve()
	i, err := prim.HMACSHA512(c.MasterSecretSalt(), seed)
	if err != nil {
		return nil, err
	}
	il, ir := i[:32], i[32:]

	if curveKind == curve.Secp256k1 && !c.IsValidPrivateKey(il) {
		return nil, ErrInvalidMasterKey
	}

	var chainCode [32]byte
	copy(chainCode[:], ir)
	return newRoot(curveKind, network, il, chainCode)
}

// FromMnemonicEntropy builds a root ed25519Bip32 node per the CIP-3
// (Icarus) master-key spec (spec §4.4), decoding the mnemonic to its
// underlying BIP-39 entropy first.
func FromMnemonicEntropy(network Network, mnemonic string, overrides *primitives.Overrides) (*Node, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("%w: invalid bip39 mnemonic", ErrInvalidParameters)
	}
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: could not recover entropy from mnemonic: %v", ErrInvalidParameters, err)
	}
	return FromEntropy(network, entropy, overrides)
}

// FromEntropy builds a root ed25519Bip32 node from raw BIP-39 entropy
// (16-64 bytes) per the CIP-3 (Icarus) master-key spec.
func FromEntropy(network Network, entropy []byte, overrides *primitives.Overrides) (*Node, error) {
	if len(entropy) < 16 || len(entropy) > 64 {
		return nil, fmt.Errorf("%w: entropy must be 16-64 bytes, got %d", ErrInvalidParameters, len(entropy))
	}

	prim := overrides.Resolve()
	xprv, err := prim.PBKDF2SHA512(nil, entropy, 4096, 96)
	if err != nil {
		return nil, err
	}

	kL := append([]byte(nil), xprv[:32]...)
	kR := append([]byte(nil), xprv[32:64]...)
	var chainCode [32]byte
	copy(chainCode[:], xprv[64:96])

	// Tweak kL per CIP-3: clear the low 3 bits (cofactor clearing) and
	// fix the top bit pair so the scalar always sits in [2^254, 2^255).
	kL[0] &^= 0x07
	kL[31] &^= 0x80
	kL[31] |= 0x40

	privateKey := append(append([]byte{}, kL...), kR...)
	return newRoot(curve.Ed25519Bip32, network, privateKey, chainCode)
}
