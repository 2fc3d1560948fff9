// Package path parses and validates the segment strings that describe a
// derivation path: "<scheme>:<value>" pairs, optionally rooted in a
// bip39 mnemonic, followed by a run of bip32/slip10/cip3 index segments
// that must all share one scheme.
package path

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scheme identifies which derivation a segment belongs to.
type Scheme string

const (
	Bip39  Scheme = "bip39"
	Bip32  Scheme = "bip32"
	Slip10 Scheme = "slip10"
	Cip3   Scheme = "cip3"
)

// ErrMalformedPath is returned, wrapped with a descriptive reason, for
// every structural violation of the segment grammar.
var ErrMalformedPath = errors.New("path: malformed derivation path")

// ErrEmptyPath is returned when a derivation is attempted with zero
// segments.
var ErrEmptyPath = errors.New("path: empty derivation path")

var (
	indexPattern        = regexp.MustCompile(`^\d+'?$`)
	mnemonicWordPattern  = regexp.MustCompile(`^[a-z]+$`)
)

// Segment is one parsed path element. For Bip39 either Mnemonic or
// Entropy is set (never both); for the other schemes Index/Hardened
// carry the child-derivation position.
type Segment struct {
	Scheme   Scheme
	Mnemonic string
	Entropy  []byte
	Index    uint32
	Hardened bool
}

// HardenedIndex returns the index with the hardened offset (2^31) applied
// when Hardened is set.
func (s Segment) HardenedIndex() uint32 {
	if s.Hardened {
		return s.Index + 0x80000000
	}
	return s.Index
}

// String renders the segment back into "<scheme>:<value>" form.
func (s Segment) String() string {
	switch s.Scheme {
	case Bip39:
		if s.Mnemonic != "" {
			return string(Bip39) + ":" + s.Mnemonic
		}
		return string(Bip39) + ":<entropy>"
	default:
		suffix := ""
		if s.Hardened {
			suffix = "'"
		}
		return fmt.Sprintf("%s:%d%s", s.Scheme, s.Index, suffix)
	}
}

// NewEntropySegment builds a bip39 segment carrying raw entropy bytes
// instead of a mnemonic string. Only valid at position 0 of a rooted path.
func NewEntropySegment(entropy []byte) Segment {
	return Segment{Scheme: Bip39, Entropy: entropy}
}

// Path is an ordered, already-validated sequence of segments.
type Path []Segment

// Options controls which structural rules Parse enforces.
type Options struct {
	// HasParentKey is true when the path extends an existing node rather
	// than starting fresh from a mnemonic/seed.
	HasParentKey bool
	// MaxDepth caps the number of segments accepted; 0 means unbounded.
	MaxDepth int
	// DeclaredDepth, if non-nil, is the caller's asserted current depth;
	// at declared depth 0 the path must be exactly one bip39 segment.
	DeclaredDepth *int
}

// Parse validates raw segment strings against opts and returns the typed
// Path, or a wrapped ErrMalformedPath / ErrEmptyPath describing the first
// violation found.
func Parse(raw []string, opts Options) (Path, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPath
	}

	if opts.DeclaredDepth != nil && *opts.DeclaredDepth == 0 {
		if len(raw) != 1 || !strings.HasPrefix(raw[0], string(Bip39)+":") {
			return nil, fmt.Errorf("%w: at depth 0 the path must be exactly one bip39 segment", ErrMalformedPath)
		}
	}

	segs := make(Path, 0, len(raw))
	var scheme Scheme

	for i, r := range raw {
		seg, err := ParseSegment(r)
		if err != nil {
			return nil, err
		}

		if seg.Scheme == Bip39 {
			if i != 0 {
				return nil, fmt.Errorf("%w: bip39 segment only allowed at position 0", ErrMalformedPath)
			}
			if opts.HasParentKey {
				return nil, fmt.Errorf("%w: bip39 segment not allowed when a parent key is supplied", ErrMalformedPath)
			}
		} else {
			if i == 0 && !opts.HasParentKey {
				return nil, fmt.Errorf("%w: first segment must be bip39 when no parent key is supplied", ErrMalformedPath)
			}
			if scheme == "" {
				scheme = seg.Scheme
			} else if scheme != seg.Scheme {
				return nil, fmt.Errorf("%w: cannot mix %s and %s derivation schemes in one path", ErrMalformedPath, scheme, seg.Scheme)
			}
		}

		segs = append(segs, seg)
	}

	if opts.MaxDepth > 0 && len(segs) > opts.MaxDepth {
		return nil, fmt.Errorf("%w: path has %d segments, max is %d", ErrMalformedPath, len(segs), opts.MaxDepth)
	}

	return segs, nil
}

// ParseSegment parses a single "<scheme>:<value>" string.
func ParseSegment(raw string) (Segment, error) {
	scheme, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Segment{}, fmt.Errorf("%w: segment %q is missing a \"scheme:\" prefix", ErrMalformedPath, raw)
	}

	switch Scheme(scheme) {
	case Bip39:
		words := strings.Fields(value)
		switch len(words) {
		case 12, 15, 18, 21, 24:
		default:
			return Segment{}, fmt.Errorf("%w: bip39 mnemonic must have 12, 15, 18, 21 or 24 words, got %d", ErrMalformedPath, len(words))
		}
		for _, w := range words {
			if !mnemonicWordPattern.MatchString(w) {
				return Segment{}, fmt.Errorf("%w: bip39 mnemonic word %q is not lowercase English", ErrMalformedPath, w)
			}
		}
		return Segment{Scheme: Bip39, Mnemonic: value}, nil

	case Bip32, Slip10, Cip3:
		if !indexPattern.MatchString(value) {
			return Segment{}, fmt.Errorf("%w: segment value %q must match ^\\d+'?$", ErrMalformedPath, value)
		}
		hardened := strings.HasSuffix(value, "'")
		numeric := strings.TrimSuffix(value, "'")
		idx, err := strconv.ParseUint(numeric, 10, 32)
		if err != nil || idx >= 0x80000000 {
			return Segment{}, fmt.Errorf("%w: index %q is out of range [0, 2^31)", ErrMalformedPath, numeric)
		}
		return Segment{Scheme: Scheme(scheme), Index: uint32(idx), Hardened: hardened}, nil

	default:
		return Segment{}, fmt.Errorf("%w: unknown scheme %q", ErrMalformedPath, scheme)
	}
}
