// Package curve abstracts the elliptic-curve operations needed by the
// derivation engine over secp256k1, ed25519 and ed25519Bip32, so that the
// step derivers in package node can work against a single interface.
package curve

import (
	"errors"
	"math/big"
)

// Kind names one of the three curves this module derives keys over.
type Kind string

const (
	Secp256k1    Kind = "secp256k1"
	Ed25519      Kind = "ed25519"
	Ed25519Bip32 Kind = "ed25519Bip32"
)

// MasterSpec selects which master-key generation protocol a curve uses.
type MasterSpec string

const (
	SpecSLIP10     MasterSpec = "slip10"
	SpecCIP3Icarus MasterSpec = "cip3Icarus"
)

var (
	ErrUnsupportedOperation = errors.New("curve: operation not supported on this curve")
	ErrInvalidPrivateKey    = errors.New("curve: invalid private key")
	ErrInvalidPublicKey     = errors.New("curve: invalid public key")
	ErrUnknownCurve         = errors.New("curve: unknown curve kind")
)

// Curve is the uniform interface the derivation engine operates through.
// Implementations are stateless and safe for concurrent use.
type Curve interface {
	Name() Kind

	// MasterSecretSalt is the HMAC key used when hashing the seed into the
	// master node (e.g. "Bitcoin seed", "ed25519 seed").
	MasterSecretSalt() []byte

	PrivateKeyLength() int
	PublicKeyLength() int
	CompressedPublicKeyLength() int
	CurveOrder() *big.Int
	MasterNodeSpec() MasterSpec

	// DerivesUnhardenedKeys reports whether public (non-hardened) child
	// derivation is supported on this curve.
	DerivesUnhardenedKeys() bool

	// PublicKey returns the uncompressed public key for a private key.
	PublicKey(privateKey []byte) ([]byte, error)

	CompressPublicKey(pub []byte) ([]byte, error)
	DecompressPublicKey(pub []byte) ([]byte, error)

	// PublicAdd returns compress(pub) + tweak*G for curves that support
	// public derivation; ErrUnsupportedOperation otherwise.
	PublicAdd(pub, tweak []byte) ([]byte, error)

	// PrivateAdd returns (privateKey + tweak) mod curveOrder for curves
	// whose BIP-32-style private derivation is scalar addition. ok is
	// false when the result is zero or the tweak overflows the curve
	// order (the SLIP-10 "invalid key" case the step deriver retries on).
	// ErrUnsupportedOperation for curves that don't derive this way.
	PrivateAdd(privateKey, tweak []byte) (child []byte, ok bool, err error)

	IsValidPrivateKey(key []byte) bool
}

// ByKind returns the Curve implementation for k.
func ByKind(k Kind) (Curve, error) {
	switch k {
	case Secp256k1:
		return secp256k1Curve{}, nil
	case Ed25519:
		return ed25519Curve{}, nil
	case Ed25519Bip32:
		return ed25519Bip32Curve{}, nil
	default:
		return nil, ErrUnknownCurve
	}
}
