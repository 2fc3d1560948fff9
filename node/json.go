package node

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/not-for-prod/hdkey/curve"
)

// wireNode mirrors the JSON shape from spec §6.3.
type wireNode struct {
	Depth             uint8   `json:"depth"`
	MasterFingerprint *uint32 `json:"masterFingerprint"`
	ParentFingerprint uint32  `json:"parentFingerprint"`
	Index             uint32  `json:"index"`
	Network           string  `json:"network"`
	Curve             string  `json:"curve"`
	PrivateKey        *string `json:"privateKey"`
	PublicKey         string  `json:"publicKey"`
	ChainCode         string  `json:"chainCode"`
}

// MarshalJSON renders the node per spec §6.3. All byte fields are
// 0x-prefixed lowercase hex.
func (n *Node) MarshalJSON() ([]byte, error) {
	pub, err := n.PublicKey()
	if err != nil {
		return nil, err
	}

	var privHex *string
	if n.privateKey != nil {
		s := hexPrefixed(n.privateKey)
		privHex = &s
	}

	w := wireNode{
		Depth:             n.depth,
		ParentFingerprint: n.parentFingerprint,
		Index:             n.index,
		Network:           string(n.network),
		Curve:             string(n.curveKind),
		PrivateKey:        privHex,
		PublicKey:         hexPrefixed(pub),
		ChainCode:         hexPrefixed(n.chainCode[:]),
	}
	if mfp, ok := n.MasterFingerprint(); ok {
		w.MasterFingerprint = &mfp
	}
	return json.Marshal(w)
}

// UnmarshalJSON reconstructs a node from its wire form and re-checks the
// §3 invariants.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	chainCode, err := decodeHexPrefixed(w.ChainCode)
	if err != nil {
		return fmt.Errorf("%w: chainCode: %v", ErrInvalidChainCode, err)
	}
	if len(chainCode) != 32 {
		return fmt.Errorf("%w: chainCode must be 32 bytes, got %d", ErrInvalidChainCode, len(chainCode))
	}

	var privateKey []byte
	if w.PrivateKey != nil {
		privateKey, err = decodeHexPrefixed(*w.PrivateKey)
		if err != nil {
			return fmt.Errorf("%w: privateKey: %v", ErrInvalidPrivateKey, err)
		}
	}

	publicKey, err := decodeHexPrefixed(w.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: publicKey: %v", ErrInvalidPublicKey, err)
	}

	curveKind := curve.Kind(w.Curve)
	if _, err := curve.ByKind(curveKind); err != nil {
		return err
	}

	var masterFingerprint *uint32
	if w.MasterFingerprint != nil {
		v := *w.MasterFingerprint
		masterFingerprint = &v
	}

	// Validate against a throwaway Node rather than mutating n in place,
	// so a failed unmarshal never leaves n partially overwritten; the
	// fields are then copied into n individually to avoid copying its
	// embedded sync.Mutex (n.mu).
	check := Node{
		curveKind:         curveKind,
		network:           Network(w.Network),
		depth:             w.Depth,
		index:             w.Index,
		parentFingerprint: w.ParentFingerprint,
		masterFingerprint: masterFingerprint,
		privateKey:        privateKey,
		publicKey:         publicKey,
	}
	copy(check.chainCode[:], chainCode)
	if err := check.validate(); err != nil {
		return err
	}

	n.curveKind = check.curveKind
	n.network = check.network
	n.depth = check.depth
	n.index = check.index
	n.parentFingerprint = check.parentFingerprint
	n.masterFingerprint = check.masterFingerprint
	n.chainCode = check.chainCode
	n.privateKey = check.privateKey
	n.publicKey = check.publicKey
	return nil
}

// ToJSON is a named alias for MarshalJSON, matching spec §4.7's naming.
func (n *Node) ToJSON() ([]byte, error) { return json.Marshal(n) }

// FromJSON parses a node previously produced by ToJSON/MarshalJSON.
func FromJSON(data []byte) (*Node, error) {
	n := &Node{}
	if err := json.Unmarshal(data, n); err != nil {
		return nil, err
	}
	return n, nil
}

func hexPrefixed(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func decodeHexPrefixed(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, fmt.Errorf("value %q is not 0x-prefixed", s)
	}
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
