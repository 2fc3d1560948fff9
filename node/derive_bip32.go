package node

import (
	"errors"
	"fmt"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/primitives"
)

// deriveStepBIP32 performs one BIP-32/SLIP-10 derivation step (spec
// §4.5): hardened or unhardened, private->child or public->child, with
// the SLIP-10 invalid-key retry rule for secp256k1.
func deriveStepBIP32(parent *Node, index uint32, hardened bool, overrides *primitives.Overrides) (*Node, error) {
	c, err := curve.ByKind(parent.curveKind)
	if err != nil {
		return nil, err
	}

	if hardened && parent.privateKey == nil {
		return nil, ErrMissingPrivateKey
	}
	if !hardened && !c.DerivesUnhardenedKeys() {
		return nil, fmt.Errorf("%w: %s does not support unhardened derivation", ErrUnsupportedCurve, parent.curveKind)
	}

	actualIndex := index
	if hardened {
		actualIndex += 0x80000000
	}

	extension, err := bip32Extension(parent, c, actualIndex, hardened)
	if err != nil {
		return nil, err
	}

	prim := overrides.Resolve()
	chainCode := append([]byte(nil), parent.chainCode[:]...)

	for {
		i, err := prim.HMACSHA512(chainCode, extension)
		if err != nil {
			return nil, err
		}
		il, ir := i[:32], i[32:]

		childPriv, childPub, ok, err := bip32Child(parent, c, il)
		if err != nil {
			return nil, err
		}
		if ok {
			var childChain [32]byte
			copy(childChain[:], ir)
			return bip32ChildNode(parent, actualIndex, childChain, childPriv, childPub)
		}
		if parent.curveKind == curve.Ed25519 {
			// Construction cannot fail for ed25519 (spec §4.5); a false ok
			// above would be a library bug, not a recoverable condition.
			return nil, fmt.Errorf("%w: ed25519 derivation unexpectedly failed", ErrInvalidTweak)
		}

		// SLIP-10 retry: re-hash 0x01 || IR || index under the same chain code.
		retry := make([]byte, 0, 1+32+4)
		retry = append(retry, 0x01)
		retry = append(retry, ir...)
		retry = append(retry, indexBytesBE(actualIndex)...)
		extension = retry
	}
}

func bip32Extension(parent *Node, c curve.Curve, actualIndex uint32, hardened bool) ([]byte, error) {
	if hardened {
		ext := make([]byte, 0, 1+len(parent.privateKey)+4)
		ext = append(ext, 0x00)
		ext = append(ext, parent.privateKey...)
		ext = append(ext, indexBytesBE(actualIndex)...)
		return ext, nil
	}
	pub, err := parent.PublicKey()
	if err != nil {
		return nil, err
	}
	compressed, err := c.CompressPublicKey(pub)
	if err != nil {
		return nil, err
	}
	ext := make([]byte, 0, len(compressed)+4)
	ext = append(ext, compressed...)
	ext = append(ext, indexBytesBE(actualIndex)...)
	return ext, nil
}

// bip32Child computes the per-curve child key material. ok is false for
// the retryable SLIP-10 "invalid key" case (secp256k1 only); err is
// reserved for non-retryable failures.
func bip32Child(parent *Node, c curve.Curve, il []byte) (childPriv, childPub []byte, ok bool, err error) {
	switch parent.curveKind {
	case curve.Ed25519:
		pub, err := c.PublicKey(il)
		if err != nil {
			return nil, nil, false, err
		}
		return append([]byte(nil), il...), pub, true, nil

	case curve.Secp256k1:
		if parent.privateKey != nil {
			child, ok, err := c.PrivateAdd(parent.privateKey, il)
			if err != nil || !ok {
				return nil, nil, ok, err
			}
			pub, err := c.PublicKey(child)
			if err != nil {
				return nil, nil, false, err
			}
			return child, pub, true, nil
		}

		parentPub, err := parent.PublicKey()
		if err != nil {
			return nil, nil, false, err
		}
		childPub, err := c.PublicAdd(parentPub, il)
		if err != nil {
			if errors.Is(err, curve.ErrInvalidPublicKey) || errors.Is(err, curve.ErrInvalidPrivateKey) {
				return nil, nil, false, nil
			}
			return nil, nil, false, err
		}
		return nil, childPub, true, nil

	default:
		return nil, nil, false, fmt.Errorf("%w: bip32 step deriver does not support %s", ErrUnsupportedCurve, parent.curveKind)
	}
}

func bip32ChildNode(parent *Node, actualIndex uint32, chainCode [32]byte, privateKey, publicKey []byte) (*Node, error) {
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
	return newChild(parent.curveKind, parent.network, depth, actualIndex, parentFP, masterFP, chainCode, privateKey, publicKey)
}
