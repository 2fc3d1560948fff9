// Package xkey implements the BIP-32 serialized extended-key envelope
// (spec §4.8): 78 bytes plus a double-SHA-256 checksum, base58-encoded.
// It repurposes tyler-smith/go-bip32's Key type purely as a wire-format
// codec — its own derivation logic is not used, since the node package
// owns derivation for every curve this module supports.
package xkey

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip32"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/node"
)

// ErrInvalidExtendedKey covers every serialized-key validation failure:
// bad base58, bad checksum, unknown version, zero key bytes, or a
// depth/parent-fingerprint mismatch.
var ErrInvalidExtendedKey = errors.New("xkey: invalid extended key")

var (
	versionPublicMainnet  = []byte{0x04, 0x88, 0xB2, 0x1E}
	versionPrivateMainnet = []byte{0x04, 0x88, 0xAD, 0xE4}
	versionPublicTestnet  = []byte{0x04, 0x35, 0x87, 0xCF}
	versionPrivateTestnet = []byte{0x04, 0x35, 0x83, 0x94}
)

func versionFor(network node.Network, private bool) []byte {
	switch {
	case network == node.Testnet && private:
		return versionPrivateTestnet
	case network == node.Testnet && !private:
		return versionPublicTestnet
	case private:
		return versionPrivateMainnet
	default:
		return versionPublicMainnet
	}
}

func classifyVersion(version []byte) (private bool, network node.Network, err error) {
	switch {
	case bytes.Equal(version, versionPrivateMainnet):
		return true, node.Mainnet, nil
	case bytes.Equal(version, versionPublicMainnet):
		return false, node.Mainnet, nil
	case bytes.Equal(version, versionPrivateTestnet):
		return true, node.Testnet, nil
	case bytes.Equal(version, versionPublicTestnet):
		return false, node.Testnet, nil
	default:
		return false, "", fmt.Errorf("%w: unknown version bytes %x", ErrInvalidExtendedKey, version)
	}
}

// Encode serializes a secp256k1 node into a base58check extended key.
// Only secp256k1 carries this wire format (spec §4.8).
func Encode(n *node.Node) (string, error) {
	if n.Curve() != curve.Secp256k1 {
		return "", fmt.Errorf("%w: extended keys are only defined for secp256k1 nodes", node.ErrUnsupportedCurve)
	}

	c, err := curve.ByKind(curve.Secp256k1)
	if err != nil {
		return "", err
	}

	parentFP := make([]byte, 4)
	binary.BigEndian.PutUint32(parentFP, n.ParentFingerprint())
	childNumber := make([]byte, 4)
	binary.BigEndian.PutUint32(childNumber, n.Index())

	chainCode := n.ChainCode()

	k := &bip32.Key{
		Depth:       n.Depth(),
		FingerPrint: parentFP,
		ChildNumber: childNumber,
		ChainCode:   append([]byte(nil), chainCode[:]...),
	}

	if priv := n.PrivateKey(); priv != nil {
		k.IsPrivate = true
		k.Version = versionFor(n.Network(), true)
		// B58Serialize prepends the 0x00 marker byte for private keys
		// itself; Key.Key holds the bare 32-byte secret.
		k.Key = priv
	} else {
		pub, err := n.PublicKey()
		if err != nil {
			return "", err
		}
		compressed, err := c.CompressPublicKey(pub)
		if err != nil {
			return "", err
		}
		k.IsPrivate = false
		k.Version = versionFor(n.Network(), false)
		k.Key = compressed
	}

	return k.B58Serialize(), nil
}

// Decode parses a base58check extended key back into a node.
func Decode(serialized string) (*node.Node, error) {
	k, err := bip32.B58Deserialize(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
	}

	private, network, err := classifyVersion(k.Version)
	if err != nil {
		return nil, err
	}

	parentFP := binary.BigEndian.Uint32(k.FingerPrint)
	index := binary.BigEndian.Uint32(k.ChildNumber)

	if k.Depth == 0 && parentFP != 0 {
		return nil, fmt.Errorf("%w: depth-0 key must have a zero parent fingerprint", ErrInvalidExtendedKey)
	}
	if k.Depth >= 1 && parentFP == 0 {
		return nil, fmt.Errorf("%w: depth >= 1 key must have a non-zero parent fingerprint", ErrInvalidExtendedKey)
	}

	var chainCode [32]byte
	if len(k.ChainCode) != 32 {
		return nil, fmt.Errorf("%w: chain code must be 32 bytes", ErrInvalidExtendedKey)
	}
	copy(chainCode[:], k.ChainCode)

	if private {
		// B58Deserialize strips the 0x00 marker byte for private keys;
		// Key.Key holds the bare 32-byte secret, mirroring Encode.
		if len(k.Key) != 32 {
			return nil, fmt.Errorf("%w: malformed private key field", ErrInvalidExtendedKey)
		}
		secret := k.Key
		if allZero(secret) {
			return nil, fmt.Errorf("%w: zero private key", ErrInvalidExtendedKey)
		}
		n, err := node.FromExtendedKeyFields(curve.Secp256k1, network, k.Depth, index, parentFP, chainCode, secret, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
		}
		return n, nil
	}

	c, err := curve.ByKind(curve.Secp256k1)
	if err != nil {
		return nil, err
	}
	pub, err := c.DecompressPublicKey(k.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
	}
	n, err := node.FromExtendedKeyFields(curve.Secp256k1, network, k.Depth, index, parentFP, chainCode, nil, pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtendedKey, err)
	}
	return n, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
