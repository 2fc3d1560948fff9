package bip44

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/sha3"

	"github.com/not-for-prod/hdkey/curve"
)

// TronAddress derives the TRON address for a secp256k1 node, per the
// teacher's tron.go: Keccak-256 of the uncompressed public key (as
// Ethereum does), last 20 bytes prefixed with TRON's 0x41 network byte,
// checksummed with double SHA-256 and base58-encoded. This is kept as a
// bip44-level convenience, not part of node.Node.Address, which stays
// Ethereum-only per spec §4.7.
func TronAddress(n *Node) (string, error) {
	if n.Curve() != curve.Secp256k1 {
		return "", fmt.Errorf("%w: got %s", ErrWrongCurve, n.Curve())
	}
	pub, err := n.PublicKey()
	if err != nil {
		return "", err
	}

	hash := sha3.NewLegacyKeccak256()
	hash.Write(pub[1:]) //nolint:errcheck // hash.Hash.Write never errors
	hashed := hash.Sum(nil)

	addr := append([]byte{0x41}, hashed[len(hashed)-20:]...)
	first := sha256.Sum256(addr)
	second := sha256.Sum256(first[:])
	addr = append(addr, second[:4]...)

	return base58.Encode(addr), nil
}
