// Package node implements the HD key tree's data model (spec §3, §4.7)
// and the two step derivers that grow it: BIP-32/SLIP-10 (§4.5) and
// CIP-3 (§4.6). A Node is immutable once constructed; derivation always
// returns a new Node.
package node

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the correct hash for BIP-32 fingerprints

	"golang.org/x/crypto/sha3"

	"github.com/not-for-prod/hdkey/curve"
	"github.com/not-for-prod/hdkey/path"
	"github.com/not-for-prod/hdkey/primitives"
)

// Network selects only the extended-key version bytes a node serializes
// under; it has no effect on key material.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Node is an immutable HD key tree node (spec §3). Construct one via
// FromMnemonic, FromSeed, FromEntropy, Derive, or the xkey package's
// Decode; zero-value Node is not valid.
type Node struct {
	depth             uint8
	index             uint32
	parentFingerprint uint32
	masterFingerprint *uint32
	chainCode         [32]byte
	privateKey        []byte
	curveKind         curve.Kind
	network           Network

	mu        sync.Mutex
	publicKey []byte
}

func newRoot(curveKind curve.Kind, network Network, privateKey []byte, chainCode [32]byte) (*Node, error) {
	n := &Node{
		curveKind: curveKind,
		network:   network,
		depth:     0,
		index:     0,
		chainCode: chainCode,
	}
	n.privateKey = append([]byte(nil), privateKey...)

	if err := n.validate(); err != nil {
		return nil, err
	}
	fp, err := n.Fingerprint()
	if err != nil {
		return nil, err
	}
	n.masterFingerprint = &fp
	return n, nil
}

func newChild(curveKind curve.Kind, network Network, depth uint8, index, parentFP, masterFP uint32, chainCode [32]byte, privateKey, publicKey []byte) (*Node, error) {
	mfp := masterFP
	n := &Node{
		curveKind:         curveKind,
		network:           network,
		depth:             depth,
		index:             index,
		parentFingerprint: parentFP,
		masterFingerprint: &mfp,
		chainCode:         chainCode,
	}
	if privateKey != nil {
		n.privateKey = append([]byte(nil), privateKey...)
	}
	if publicKey != nil {
		n.publicKey = append([]byte(nil), publicKey...)
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) validate() error {
	c, err := curve.ByKind(n.curveKind)
	if err != nil {
		return err
	}

	if n.privateKey != nil && n.curveKind != curve.Ed25519 && !c.IsValidPrivateKey(n.privateKey) {
		return ErrInvalidPrivateKey
	}

	if n.depth == 0 {
		if n.parentFingerprint != 0 {
			return fmt.Errorf("%w: a depth-0 node must have parent fingerprint 0", ErrInvalidParameters)
		}
		if n.index != 0 {
			return fmt.Errorf("%w: a depth-0 node must have index 0", ErrInvalidParameters)
		}
	}
	if n.depth >= 1 && n.parentFingerprint == 0 {
		return fmt.Errorf("%w: a depth-%d node must have a non-zero parent fingerprint", ErrInvalidParameters, n.depth)
	}
	if n.depth >= 2 && n.masterFingerprint != nil && n.parentFingerprint == *n.masterFingerprint {
		return fmt.Errorf("%w: a depth-%d node's parent fingerprint must not equal the master fingerprint", ErrInvalidParameters, n.depth)
	}
	return nil
}

// Depth returns the node's position in the tree (0 = root).
func (n *Node) Depth() uint8 { return n.depth }

// Index returns the child index this node was derived at (0 for root);
// values >= 2^31 denote hardened children.
func (n *Node) Index() uint32 { return n.index }

// ParentFingerprint returns the parent's fingerprint, or 0 for the root.
func (n *Node) ParentFingerprint() uint32 { return n.parentFingerprint }

// MasterFingerprint returns the fingerprint of the depth-0 ancestor, and
// whether one has been propagated to this node.
func (n *Node) MasterFingerprint() (uint32, bool) {
	if n.masterFingerprint == nil {
		return 0, false
	}
	return *n.masterFingerprint, true
}

// ChainCode returns the node's 32-byte chain code.
func (n *Node) ChainCode() [32]byte { return n.chainCode }

// Curve returns the curve this node was derived over.
func (n *Node) Curve() curve.Kind { return n.curveKind }

// Network returns the node's network tag (affects extended-key version
// bytes only).
func (n *Node) Network() Network { return n.network }

// HasPrivateKey reports whether the node carries private key material.
func (n *Node) HasPrivateKey() bool { return n.privateKey != nil }

// PrivateKey returns a copy of the private key, or nil if the node has
// been neutered.
func (n *Node) PrivateKey() []byte {
	if n.privateKey == nil {
		return nil
	}
	return append([]byte(nil), n.privateKey...)
}

// PublicKey returns the uncompressed public key, computing and caching
// it from the private key on first access if necessary.
func (n *Node) PublicKey() ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.publicKey != nil {
		return append([]byte(nil), n.publicKey...), nil
	}
	if n.privateKey == nil {
		return nil, fmt.Errorf("%w: node has neither a private key nor a public key", ErrInvalidParameters)
	}
	c, err := curve.ByKind(n.curveKind)
	if err != nil {
		return nil, err
	}
	pub, err := c.PublicKey(n.privateKey)
	if err != nil {
		return nil, err
	}
	n.publicKey = pub
	return append([]byte(nil), pub...), nil
}

// Neuter returns a copy of the node with its private key removed. Unlike
// masking the field, the returned Node literally does not carry it.
func (n *Node) Neuter() (*Node, error) {
	pub, err := n.PublicKey()
	if err != nil {
		return nil, err
	}
	var mfp *uint32
	if n.masterFingerprint != nil {
		v := *n.masterFingerprint
		mfp = &v
	}
	return &Node{
		curveKind:         n.curveKind,
		network:           n.network,
		depth:             n.depth,
		index:             n.index,
		parentFingerprint: n.parentFingerprint,
		masterFingerprint: mfp,
		chainCode:         n.chainCode,
		publicKey:         pub,
	}, nil
}

// Fingerprint returns the first 4 bytes of RIPEMD160(SHA256(compressed
// public key)), big-endian.
func (n *Node) Fingerprint() (uint32, error) {
	pub, err := n.PublicKey()
	if err != nil {
		return 0, err
	}
	c, err := curve.ByKind(n.curveKind)
	if err != nil {
		return 0, err
	}
	compressed, err := c.CompressPublicKey(pub)
	if err != nil {
		return 0, err
	}
	sha := sha256.Sum256(compressed)
	r := ripemd160.New()
	r.Write(sha[:]) //nolint:errcheck // hash.Hash.Write never errors
	sum := r.Sum(nil)
	return binary.BigEndian.Uint32(sum[:4]), nil
}

// Address returns the lowercase-hex, 0x-prefixed Ethereum address for a
// secp256k1 node; ErrUnsupportedCurve otherwise.
func (n *Node) Address() (string, error) {
	if n.curveKind != curve.Secp256k1 {
		return "", ErrUnsupportedCurve
	}
	pub, err := n.PublicKey()
	if err != nil {
		return "", err
	}
	hash := sha3.NewLegacyKeccak256()
	hash.Write(pub[1:]) //nolint:errcheck // hash.Hash.Write never errors
	sum := hash.Sum(nil)
	return "0x" + hex.EncodeToString(sum[12:]), nil
}

// Derive walks segs left to right, dispatching each to the step deriver
// matching its scheme, and returns the resulting descendant node. The
// path is validated as a partial path (it must not start with a bip39
// segment) per spec §4.3.
func (n *Node) Derive(segs []string, overrides *primitives.Overrides) (*Node, error) {
	parsed, err := path.Parse(segs, path.Options{HasParentKey: true})
	if err != nil {
		if errors.Is(err, path.ErrEmptyPath) {
			return nil, fmt.Errorf("%w: %w", ErrEmptyPath, err)
		}
		return nil, err
	}

	cur := n
	for _, seg := range parsed {
		var next *Node
		switch seg.Scheme {
		case path.Bip32, path.Slip10:
			next, err = deriveStepBIP32(cur, seg.Index, seg.Hardened, overrides)
		case path.Cip3:
			next, err = deriveStepCIP3(cur, seg.Index, seg.Hardened, overrides)
		default:
			err = fmt.Errorf("%w: cannot derive through a %s segment", ErrInvalidParameters, seg.Scheme)
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// FromExtendedKeyFields constructs a node from the fields decoded out of
// a serialized extended key (spec §4.8). The wire format does not carry
// a master fingerprint, so it is left unset except at depth 0, where it
// equals the node's own fingerprint (invariant 3).
func FromExtendedKeyFields(curveKind curve.Kind, network Network, depth uint8, index, parentFingerprint uint32, chainCode [32]byte, privateKey, publicKey []byte) (*Node, error) {
	n := &Node{
		curveKind:         curveKind,
		network:           network,
		depth:             depth,
		index:             index,
		parentFingerprint: parentFingerprint,
		chainCode:         chainCode,
	}
	if privateKey != nil {
		n.privateKey = append([]byte(nil), privateKey...)
	}
	if publicKey != nil {
		n.publicKey = append([]byte(nil), publicKey...)
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	if depth == 0 {
		fp, err := n.Fingerprint()
		if err != nil {
			return nil, err
		}
		n.masterFingerprint = &fp
	}
	return n, nil
}

func nextDepth(parent *Node) (uint8, error) {
	if parent.depth == 255 {
		return 0, fmt.Errorf("%w: node is already at maximum depth 255", ErrInvalidParameters)
	}
	return parent.depth + 1, nil
}

func masterFingerprintOf(parent *Node) (uint32, error) {
	if mfp, ok := parent.MasterFingerprint(); ok {
		return mfp, nil
	}
	return parent.Fingerprint()
}

func indexBytesBE(i uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, i)
	return b
}
