// Package bip44 provides depth-bound specializations of package node for
// the BIP-44 hierarchy (m/44'/coin_type'/account'/change/address_index):
// a generic node restricted to depth 0-5 on secp256k1, a coin-type node
// pinned at depth 2, and an address-key deriver factory that collapses
// depths 3-5 into a single call. Adapted from the teacher's bip44.go,
// generalized from its flat (coin, account, chain, address uint32)
// signature to proper path derivation through package node.
package bip44

import (
	"errors"
	"fmt"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/node"
	"github.com/not-for-prod/hdkey/primitives"
)

// Purpose is the BIP-44 purpose constant (m/44'/...).
const Purpose uint32 = 44

var (
	ErrWrongCurve = errors.New("bip44: node must be secp256k1")
	ErrWrongDepth = errors.New("bip44: node is at the wrong depth for this operation")
)

// Node is a *node.Node known to be secp256k1 and within BIP-44's [0,5]
// depth range.
type Node struct {
	*node.Node
}

func wrap(n *node.Node) (*Node, error) {
	if n.Curve() != curve.Secp256k1 {
		return nil, fmt.Errorf("%w: got %s", ErrWrongCurve, n.Curve())
	}
	if n.Depth() > 5 {
		return nil, fmt.Errorf("%w: depth %d exceeds bip-44's maximum of 5", ErrWrongDepth, n.Depth())
	}
	return &Node{n}, nil
}

// FromMnemonic builds a depth-0 BIP-44 root from a BIP-39 mnemonic.
func FromMnemonic(mnemonic, passphrase string, network node.Network, overrides *primitives.Overrides) (*Node, error) {
	root, err := node.FromMnemonic(curve.Secp256k1, network, mnemonic, passphrase, overrides)
	if err != nil {
		return nil, err
	}
	return wrap(root)
}

// FromSeed builds a depth-0 BIP-44 root from a raw seed.
func FromSeed(seed []byte, network node.Network, overrides *primitives.Overrides) (*Node, error) {
	root, err := node.FromSeed(curve.Secp256k1, network, seed, overrides)
	if err != nil {
		return nil, err
	}
	return wrap(root)
}

// Derive extends the node along raw path segments, rejecting any
// extension that would carry it past BIP-44's depth-5 ceiling.
func (n *Node) Derive(segments []string, overrides *primitives.Overrides) (*Node, error) {
	if int(n.Depth())+len(segments) > 5 {
		return nil, fmt.Errorf("%w: deriving %d more segment(s) from depth %d would exceed 5", ErrWrongDepth, len(segments), n.Depth())
	}
	child, err := n.Node.Derive(segments, overrides)
	if err != nil {
		return nil, err
	}
	return wrap(child)
}

// FromDerivationPath derives m/44'/coinType'/account'/change/addressIndex
// from a depth-0 root, hardening purpose/coinType/account automatically
// so callers never have to set the hardened-offset bit themselves (the
// teacher's DeriveKeyFromPath required exactly that, and silently
// produced the wrong key if a caller forgot).
func FromDerivationPath(root *Node, coinType, account, change, addressIndex uint32) (*Node, error) {
	if root.Depth() != 0 {
		return nil, fmt.Errorf("%w: fromDerivationPath requires a depth-0 root, got depth %d", ErrWrongDepth, root.Depth())
	}
	segs := []string{
		fmt.Sprintf("bip32:%d'", Purpose),
		fmt.Sprintf("bip32:%d'", coinType),
		fmt.Sprintf("bip32:%d'", account),
		fmt.Sprintf("bip32:%d", change),
		fmt.Sprintf("bip32:%d", addressIndex),
	}
	return root.Derive(segs, nil)
}

// CoinTypeNode is a BIP-44 node pinned at depth 2 (m/44'/coin_type').
type CoinTypeNode struct {
	*Node
}

// ToCoinTypeNode asserts n is at depth 2.
func ToCoinTypeNode(n *Node) (*CoinTypeNode, error) {
	if n.Depth() != 2 {
		return nil, fmt.Errorf("%w: coin-type node must be at depth 2, got %d", ErrWrongDepth, n.Depth())
	}
	return &CoinTypeNode{n}, nil
}

// DeriveCoinTypeNode derives m/44'/coinType' from a depth-0 root.
func DeriveCoinTypeNode(root *Node, coinType uint32) (*CoinTypeNode, error) {
	if root.Depth() != 0 {
		return nil, fmt.Errorf("%w: deriveCoinTypeNode requires a depth-0 root, got depth %d", ErrWrongDepth, root.Depth())
	}
	segs := []string{
		fmt.Sprintf("bip32:%d'", Purpose),
		fmt.Sprintf("bip32:%d'", coinType),
	}
	child, err := root.Derive(segs, nil)
	if err != nil {
		return nil, err
	}
	return ToCoinTypeNode(child)
}

// AddressKeyDeriver collapses depths 3-5 (account'/change/address_index)
// into a single call, for callers that want to stamp out many addresses
// under one account/change pair.
type AddressKeyDeriver func(addressIndex uint32) (*Node, error)

// GetBIP44AddressKeyDeriver returns an AddressKeyDeriver for the given
// account and change chain, rooted at coinTypeNode.
func GetBIP44AddressKeyDeriver(coinTypeNode *CoinTypeNode, account, change uint32) (AddressKeyDeriver, error) {
	if coinTypeNode.Depth() != 2 {
		return nil, fmt.Errorf("%w: coin-type node must be at depth 2, got %d", ErrWrongDepth, coinTypeNode.Depth())
	}
	return func(addressIndex uint32) (*Node, error) {
		segs := []string{
			fmt.Sprintf("bip32:%d'", account),
			fmt.Sprintf("bip32:%d", change),
			fmt.Sprintf("bip32:%d", addressIndex),
		}
		return coinTypeNode.Derive(segs, nil)
	}, nil
}
