package curve

import (
	stded25519 "crypto/ed25519"
	"math/big"
)

// ed25519Curve implements SLIP-10 ed25519: hardened derivation only, no
// public-key tweaking. Grounded on anyproto-go-slip10's derive.go, which
// builds the key pair from the 32-byte node secret via crypto/ed25519.
type ed25519Curve struct{}

func (ed25519Curve) Name() Kind              { return Ed25519 }
func (ed25519Curve) MasterSecretSalt() []byte { return []byte("ed25519 seed") }
func (ed25519Curve) PrivateKeyLength() int   { return 32 }
func (ed25519Curve) PublicKeyLength() int    { return 33 }
func (ed25519Curve) CompressedPublicKeyLength() int { return 33 }
func (ed25519Curve) CurveOrder() *big.Int    { return nil }
func (ed25519Curve) MasterNodeSpec() MasterSpec { return SpecSLIP10 }
func (ed25519Curve) DerivesUnhardenedKeys() bool { return false }

// IsValidPrivateKey: SLIP-10 treats every 32-byte sequence as a valid
// ed25519 node secret.
func (ed25519Curve) IsValidPrivateKey(key []byte) bool {
	return len(key) == 32
}

// PublicKey returns the 0x00-prefixed ed25519 public key, per SLIP-10's
// test vector convention (a distinguishing prefix since ed25519 public
// keys are 32 bytes, one short of secp256k1's compressed form).
func (ed25519Curve) PublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	priv := stded25519.NewKeyFromSeed(privateKey)
	pub := priv.Public().(stded25519.PublicKey)
	out := make([]byte, 0, 33)
	out = append(out, 0x00)
	out = append(out, pub...)
	return out, nil
}

func (ed25519Curve) CompressPublicKey(pub []byte) ([]byte, error) {
	return pub, nil
}

func (ed25519Curve) DecompressPublicKey(pub []byte) ([]byte, error) {
	return pub, nil
}

// PublicAdd: SLIP-10 forbids public derivation for ed25519.
func (ed25519Curve) PublicAdd(_, _ []byte) ([]byte, error) {
	return nil, ErrUnsupportedOperation
}

// PrivateAdd: ed25519's hardened step replaces the key with IL directly
// (see node.deriveStepBIP32); it does not add scalars.
func (ed25519Curve) PrivateAdd(_, _ []byte) ([]byte, bool, error) {
	return nil, false, ErrUnsupportedOperation
}
