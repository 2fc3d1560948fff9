package curve

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEd25519Bip32_PublicKey_Length(t *testing.T) {
	c := ed25519Bip32Curve{}
	priv, err := hex.DecodeString(
		"c065afd2832cd8b087c4d9ab7011f481ee1e0721e78ea5dd609f3ab3f156d24" +
			"5d176bd8fd4ec60b4731c3918a2a72a0226c0cd119ec35b47e4d55884667f552a")
	require.NoError(t, err)
	require.Len(t, priv, 64)

	pub, err := c.PublicKey(priv)
	require.NoError(t, err)
	require.Len(t, pub, 32)
}

func TestEd25519Bip32_PublicAdd_ZeroTweakIsIdentity(t *testing.T) {
	c := ed25519Bip32Curve{}
	priv, err := hex.DecodeString(
		"c065afd2832cd8b087c4d9ab7011f481ee1e0721e78ea5dd609f3ab3f156d24" +
			"5d176bd8fd4ec60b4731c3918a2a72a0226c0cd119ec35b47e4d55884667f552a")
	require.NoError(t, err)

	pub, err := c.PublicKey(priv)
	require.NoError(t, err)

	zeroTweak := make([]byte, 32)
	added, err := c.PublicAdd(pub, zeroTweak)
	require.NoError(t, err)
	require.Equal(t, pub, added)
}

func TestReverse32(t *testing.T) {
	in := []byte{1, 2, 3}
	out := reverse32(in)
	require.Equal(t, []byte{3, 2, 1}, out)
}
