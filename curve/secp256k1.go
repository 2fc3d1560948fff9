package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1Order is n, the order of the secp256k1 base point.
var secp256k1Order, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

type secp256k1Curve struct{}

func (secp256k1Curve) Name() Kind                 { return Secp256k1 }
func (secp256k1Curve) MasterSecretSalt() []byte    { return []byte("Bitcoin seed") }
func (secp256k1Curve) PrivateKeyLength() int       { return 32 }
func (secp256k1Curve) PublicKeyLength() int        { return 65 }
func (secp256k1Curve) CompressedPublicKeyLength() int { return 33 }
func (secp256k1Curve) CurveOrder() *big.Int        { return new(big.Int).Set(secp256k1Order) }
func (secp256k1Curve) MasterNodeSpec() MasterSpec  { return SpecSLIP10 }
func (secp256k1Curve) DerivesUnhardenedKeys() bool { return true }

func (secp256k1Curve) IsValidPrivateKey(key []byte) bool {
	if len(key) != 32 {
		return false
	}
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(key)
	return !overflow && !s.IsZero()
}

func (c secp256k1Curve) PublicKey(privateKey []byte) ([]byte, error) {
	if !c.IsValidPrivateKey(privateKey) {
		return nil, ErrInvalidPrivateKey
	}
	priv := secp256k1.PrivKeyFromBytes(privateKey)
	return priv.PubKey().SerializeUncompressed(), nil
}

func (secp256k1Curve) CompressPublicKey(pub []byte) ([]byte, error) {
	parsed, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return parsed.SerializeCompressed(), nil
}

func (secp256k1Curve) DecompressPublicKey(pub []byte) ([]byte, error) {
	parsed, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return parsed.SerializeUncompressed(), nil
}

// PrivateAdd computes (privateKey + tweak) mod n using decred's ModNScalar,
// which avoids a big.Int allocation for the common case. ok is false on
// tweak overflow or a zero sum — the two SLIP-10 retry conditions.
func (secp256k1Curve) PrivateAdd(privateKey, tweak []byte) ([]byte, bool, error) {
	var il, parent secp256k1.ModNScalar
	if overflow := il.SetByteSlice(tweak); overflow {
		return nil, false, nil
	}
	if overflow := parent.SetByteSlice(privateKey); overflow {
		return nil, false, ErrInvalidPrivateKey
	}

	sum := new(secp256k1.ModNScalar).Set(&parent).Add(&il)
	if sum.IsZero() {
		return nil, false, nil
	}
	b := sum.Bytes()
	return b[:], true, nil
}

// PublicAdd computes compress(pub) + tweak*G, returning the uncompressed
// result. Used by the BIP-32 public-derivation step.
func (secp256k1Curve) PublicAdd(pub, tweak []byte) ([]byte, error) {
	parent, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}

	var il secp256k1.ModNScalar
	if overflow := il.SetByteSlice(tweak); overflow {
		return nil, ErrInvalidPrivateKey
	}

	var tweakPoint, parentPoint, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&il, &tweakPoint)

	parent.AsJacobian(&parentPoint)
	secp256k1.AddNonConst(&parentPoint, &tweakPoint, &sum)

	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, ErrInvalidPublicKey
	}

	sum.ToAffine()
	childPub := secp256k1.NewPublicKey(&sum.X, &sum.Y)
	return childPub.SerializeUncompressed(), nil
}
