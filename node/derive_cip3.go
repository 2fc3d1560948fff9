package node

import (
	"fmt"
	"math/big"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/primitives"
)

// CIP-3 extension tags (spec §4.6).
const (
	cip3ZHardTag  = 0
	cip3ZSoftTag  = 2
	cip3CCHardTag = 1
	cip3CCSoftTag = 3
)

// deriveStepCIP3 performs one BIP32-Ed25519 (Icarus) derivation step
// (spec §4.6). All scalars here are little-endian, unlike BIP-32's
// big-endian convention.
func deriveStepCIP3(parent *Node, index uint32, hardened bool, overrides *primitives.Overrides) (*Node, error) {
	if parent.curveKind != curve.Ed25519Bip32 {
		return nil, fmt.Errorf("%w: cip3 derivation requires an ed25519Bip32 node", ErrUnsupportedCurve)
	}
	if hardened && parent.privateKey == nil {
		return nil, ErrMissingPrivateKey
	}

	actualIndex := index
	if hardened {
		actualIndex += 0x80000000
	}
	idxLE := indexBytesLE(actualIndex)

	var zExt, ccExt []byte
	if hardened {
		zExt = concat([]byte{cip3ZHardTag}, parent.privateKey, idxLE)
		ccExt = concat([]byte{cip3CCHardTag}, parent.privateKey, idxLE)
	} else {
		pub, err := parent.PublicKey()
		if err != nil {
			return nil, err
		}
		zExt = concat([]byte{cip3ZSoftTag}, pub, idxLE)
		ccExt = concat([]byte{cip3CCSoftTag}, pub, idxLE)
	}

	prim := overrides.Resolve()
	z, err := prim.HMACSHA512(parent.chainCode[:], zExt)
	if err != nil {
		return nil, err
	}
	zl, zr := z[:32], z[32:64]

	ccFull, err := prim.HMACSHA512(parent.chainCode[:], ccExt)
	if err != nil {
		return nil, err
	}
	cc := ccFull[32:64]

	c, err := curve.ByKind(curve.Ed25519Bip32)
	if err != nil {
		return nil, err
	}

	var childPriv, childPub []byte
	if parent.privateKey != nil {
		kL := parent.privateKey[:32]
		kR := parent.privateKey[32:]
		childKL := leAdd32(trunc28Mul8(zl), kL)
		childKR := leAdd32(zr, kR)
		childPriv = concat(childKL, childKR)

		childPub, err = c.PublicKey(childPriv)
		if err != nil {
			return nil, err
		}
	} else {
		parentPub, err := parent.PublicKey()
		if err != nil {
			return nil, err
		}
		childPub, err = c.PublicAdd(parentPub, trunc28Mul8(zl))
		if err != nil {
			return nil, err
		}
	}

	var childChain [32]byte
	copy(childChain[:], cc)

	depth, err := nextDepth(parent)
	if err != nil {
		return nil, err
	}
	parentFP, err := parent.Fingerprint()
	if err != nil {
		return nil, err
	}
	masterFP, err := masterFingerprintOf(parent)
	if err != nil {
		return nil, err
	}
	return newChild(curve.Ed25519Bip32, parent.network, depth, actualIndex, parentFP, masterFP, childChain, childPriv, childPub)
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func indexBytesLE(i uint32) []byte {
	return []byte{byte(i), byte(i >> 8), byte(i >> 16), byte(i >> 24)}
}

// leAdd32 returns (a+b) mod 2^256 as 32 little-endian bytes.
func leAdd32(a, b []byte) []byte {
	sum := new(big.Int).Add(leToBig(a), leToBig(b))
	return bigToLE32(sum)
}

// trunc28Mul8 takes the first 28 bytes of z as a little-endian integer,
// multiplies by 8 (the Ed25519 cofactor), and returns 32 little-endian
// bytes.
func trunc28Mul8(z []byte) []byte {
	v := leToBig(z[:28])
	v.Mul(v, big.NewInt(8))
	return bigToLE32(v)
}

func leToBig(b []byte) *big.Int {
	return new(big.Int).SetBytes(reverseBytes(b))
}

// bigToLE32 renders x mod 2^256 as 32 little-endian bytes.
func bigToLE32(x *big.Int) []byte {
	be := x.Bytes()
	if len(be) > 32 {
		be = be[len(be)-32:]
	}
	padded := make([]byte, 32)
	copy(padded[32-len(be):], be)
	return reverseBytes(padded)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
