package path

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSegment_Bip32Hardened(t *testing.T) {
	seg, err := ParseSegment("bip32:44'")
	require.NoError(t, err)
	require.Equal(t, Bip32, seg.Scheme)
	require.Equal(t, uint32(44), seg.Index)
	require.True(t, seg.Hardened)
	require.Equal(t, uint32(44)+0x80000000, seg.HardenedIndex())
}

func TestParseSegment_Bip39(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seg, err := ParseSegment("bip39:" + mnemonic)
	require.NoError(t, err)
	require.Equal(t, Bip39, seg.Scheme)
	require.Equal(t, mnemonic, seg.Mnemonic)
}

func TestParseSegment_RejectsOutOfRangeIndex(t *testing.T) {
	_, err := ParseSegment("bip32:2147483648")
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParseSegment_RejectsBadWordCount(t *testing.T) {
	_, err := ParseSegment("bip39:abandon abandon abandon")
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParseSegment_RejectsMissingScheme(t *testing.T) {
	_, err := ParseSegment("44'")
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := Parse(nil, Options{})
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestParse_RejectsBip39WithParentKey(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	_, err := Parse([]string{"bip39:" + mnemonic}, Options{HasParentKey: true})
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_RejectsFirstSegmentNotBip39WithoutParentKey(t *testing.T) {
	_, err := Parse([]string{"bip32:0'"}, Options{HasParentKey: false})
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_RejectsMixedSchemes(t *testing.T) {
	_, err := Parse([]string{"bip32:0'", "slip10:0"}, Options{HasParentKey: true})
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_RejectsOverMaxDepth(t *testing.T) {
	_, err := Parse([]string{"bip32:0'", "bip32:1'", "bip32:2'"}, Options{HasParentKey: true, MaxDepth: 2})
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_DeclaredDepthZeroRequiresSingleBip39Segment(t *testing.T) {
	depth := 0
	_, err := Parse([]string{"bip32:0'", "bip32:1'"}, Options{DeclaredDepth: &depth})
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestParse_AcceptsValidHardenedChain(t *testing.T) {
	segs, err := Parse([]string{"bip32:44'", "bip32:60'", "bip32:0'", "bip32:0", "bip32:0"}, Options{HasParentKey: true})
	require.NoError(t, err)
	require.Len(t, segs, 5)
	require.Equal(t, "bip32:44'", segs[0].String())
	require.Equal(t, "bip32:0", segs[3].String())
}
