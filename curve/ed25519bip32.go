package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/edwards/v2"
)

// ed25519Bip32Curve implements CIP-3 (BIP32-Ed25519 / Icarus): a
// twisted-Edwards point model with a 64-byte expanded private key
// (kL || kR) and unhardened derivation via scalar multiplication.
// Point arithmetic is delegated to decred's edwards/v2 package, the same
// one used for Ed25519 HD derivation in the io-vault and mpc-web
// reference material.
type ed25519Bip32Curve struct{}

var edwardsCurve = edwards.Edwards()

// ed25519Order is l, the order of the Ed25519 base point's subgroup.
var ed25519Order, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED", 16)

func (ed25519Bip32Curve) Name() Kind               { return Ed25519Bip32 }
func (ed25519Bip32Curve) MasterSecretSalt() []byte { return nil }
func (ed25519Bip32Curve) PrivateKeyLength() int    { return 64 }
func (ed25519Bip32Curve) PublicKeyLength() int     { return 32 }
func (ed25519Bip32Curve) CompressedPublicKeyLength() int { return 32 }
func (ed25519Bip32Curve) CurveOrder() *big.Int     { return new(big.Int).Set(ed25519Order) }
func (ed25519Bip32Curve) MasterNodeSpec() MasterSpec { return SpecCIP3Icarus }
func (ed25519Bip32Curve) DerivesUnhardenedKeys() bool { return true }

// IsValidPrivateKey checks the 64-byte expanded key shape; CIP-3 does not
// otherwise range-check kL, since the tweak in the master-key step
// already clears/sets the bits that matter for the scalar's cofactor.
func (ed25519Bip32Curve) IsValidPrivateKey(key []byte) bool {
	return len(key) == 64
}

// PublicKey returns scalar_mul_base(kL), the left 32 bytes of the
// expanded private key.
func (c ed25519Bip32Curve) PublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != 64 {
		return nil, ErrInvalidPrivateKey
	}
	return c.scalarMulBase(privateKey[:32]), nil
}

// scalarMulBase computes kL*B for the little-endian CIP-3 scalar kL,
// returning the compressed 32-byte point.
func (ed25519Bip32Curve) scalarMulBase(kL []byte) []byte {
	be := reverse32(kL)
	x, y := edwardsCurve.ScalarBaseMult(be)
	pub := edwards.NewPublicKey(edwardsCurve, x, y)
	return pub.Serialize()
}

// pointAdd returns a + b for two compressed 32-byte Ed25519 points.
func (ed25519Bip32Curve) pointAdd(a, b []byte) ([]byte, error) {
	pa, err := edwards.ParsePubKey(a)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	pb, err := edwards.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	x, y := edwardsCurve.Add(pa.GetX(), pa.GetY(), pb.GetX(), pb.GetY())
	sum := edwards.NewPublicKey(edwardsCurve, x, y)
	return sum.Serialize(), nil
}

func (ed25519Bip32Curve) CompressPublicKey(pub []byte) ([]byte, error) {
	return pub, nil
}

func (ed25519Bip32Curve) DecompressPublicKey(pub []byte) ([]byte, error) {
	return pub, nil
}

// PublicAdd computes pub + tweak*B for the CIP-3 unhardened
// public-derivation step. The tweak is used as given; node.deriveStepCIP3
// passes the already trunc28_mul8-ed ZL.
func (c ed25519Bip32Curve) PublicAdd(pub, tweak []byte) ([]byte, error) {
	right := c.scalarMulBase(tweak)
	return c.pointAdd(pub, right)
}

// PrivateAdd is not used: CIP-3's private step (node.deriveStepCIP3) has
// its own le_add_32 combination of the full 64-byte expanded key, not a
// single-scalar addition.
func (ed25519Bip32Curve) PrivateAdd(_, _ []byte) ([]byte, bool, error) {
	return nil, false, ErrUnsupportedOperation
}

// reverse32 flips a 32-byte little-endian scalar into the big-endian
// form decred's edwards package expects for its generic elliptic.Curve
// arithmetic. CIP-3 scalars are little-endian throughout; this is the
// one seam where that convention meets a big-endian-oriented library.
func reverse32(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
