package node

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/not-for-prod/hdkey/curve"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestFromSeed_BIP32Vector1 checks the well-known BIP-32 test vector 1
// root key (seed 000102030405060708090a0b0c0d0e0f).
func TestFromSeed_BIP32Vector1(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")

	root, err := FromSeed(curve.Secp256k1, Mainnet, seed, nil)
	require.NoError(t, err)

	require.Equal(t, "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35", hex.EncodeToString(root.PrivateKey()))

	mfp, ok := root.MasterFingerprint()
	require.True(t, ok)
	fp, err := root.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fp, mfp)

	require.Equal(t, uint8(0), root.Depth())
	require.Equal(t, uint32(0), root.Index())
	require.Equal(t, uint32(0), root.ParentFingerprint())
}

// TestFromSeed_SLIP10Ed25519Vector1 checks SLIP-10's published ed25519
// test vector 1.
func TestFromSeed_SLIP10Ed25519Vector1(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")

	root, err := FromSeed(curve.Ed25519, Mainnet, seed, nil)
	require.NoError(t, err)

	require.Equal(t, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", hex.EncodeToString(root.PrivateKey()))

	pub, err := root.PublicKey()
	require.NoError(t, err)
	require.Equal(t, "00a4b2856bfec510abab89753fac1ac0e1112364e7d250545963f135f2a33188ed", hex.EncodeToString(pub))
}

// TestFromEntropy_CIP3Vector checks the CIP-3 (Icarus) master-key
// derivation for a fixed mnemonic entropy.
func TestFromEntropy_CIP3Vector(t *testing.T) {
	entropy := mustHex(t, "46e62370a138a182a498b8e2885bc032379ddf38")

	root, err := FromEntropy(Mainnet, entropy, nil)
	require.NoError(t, err)

	wantPriv := "c065afd2832cd8b087c4d9ab7011f481ee1e0721e78ea5dd609f3ab3f156d245" +
		"d176bd8fd4ec60b4731c3918a2a72a0226c0cd119ec35b47e4d55884667f552a"
	require.Equal(t, wantPriv, hex.EncodeToString(root.PrivateKey()))

	chainCode := root.ChainCode()
	require.Equal(t, "23f7fdcd4a10c6cd2c7393ac61d877873e248f417634aa3d812af327ffe9d620", hex.EncodeToString(chainCode[:]))
}

func TestFromSeed_RejectsOutOfRangeSeed(t *testing.T) {
	_, err := FromSeed(curve.Secp256k1, Mainnet, make([]byte, 8), nil)
	require.ErrorIs(t, err, ErrInvalidParameters)

	_, err = FromSeed(curve.Secp256k1, Mainnet, make([]byte, 65), nil)
	require.ErrorIs(t, err, ErrInvalidParameters)
}

func TestFromSeed_RejectsCIP3Curve(t *testing.T) {
	_, err := FromSeed(curve.Ed25519Bip32, Mainnet, make([]byte, 32), nil)
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestFromMnemonic_InvokesOverriddenPrimitives(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	var pbkdf2Called, hmacCalled bool
	overrides := &primitivesSpy{
		onPBKDF2: func() { pbkdf2Called = true },
		onHMAC:   func() { hmacCalled = true },
		seed:     seed,
	}

	_, err := FromMnemonic(curve.Secp256k1, Mainnet, mnemonic, "", overrides.toOverrides())
	require.NoError(t, err)
	require.True(t, pbkdf2Called)
	require.True(t, hmacCalled)
}
