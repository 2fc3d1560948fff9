package curve

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecp256k1_PublicKey_GeneratorVector(t *testing.T) {
	c := secp256k1Curve{}
	priv := make([]byte, 32)
	priv[31] = 1

	pub, err := c.PublicKey(priv)
	require.NoError(t, err)

	want := "04" +
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	require.Equal(t, want, hex.EncodeToString(pub))
}

func TestSecp256k1_CompressDecompressRoundTrip(t *testing.T) {
	c := secp256k1Curve{}
	priv := make([]byte, 32)
	priv[31] = 2
	pub, err := c.PublicKey(priv)
	require.NoError(t, err)

	compressed, err := c.CompressPublicKey(pub)
	require.NoError(t, err)
	require.Len(t, compressed, 33)

	decompressed, err := c.DecompressPublicKey(compressed)
	require.NoError(t, err)
	require.Equal(t, pub, decompressed)
}

func TestSecp256k1_IsValidPrivateKey(t *testing.T) {
	c := secp256k1Curve{}
	require.False(t, c.IsValidPrivateKey(make([]byte, 32)))
	require.False(t, c.IsValidPrivateKey(secp256k1Order.Bytes()))

	valid := make([]byte, 32)
	valid[31] = 1
	require.True(t, c.IsValidPrivateKey(valid))
}

func TestSecp256k1_PrivateAdd(t *testing.T) {
	c := secp256k1Curve{}
	a := make([]byte, 32)
	a[31] = 5
	b := make([]byte, 32)
	b[31] = 7

	sum, ok, err := c.PrivateAdd(a, b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint8(12), sum[31])
}

func TestSecp256k1_PublicAdd_MatchesPrivateAdd(t *testing.T) {
	c := secp256k1Curve{}
	a := make([]byte, 32)
	a[31] = 3
	tweak := make([]byte, 32)
	tweak[31] = 4

	childPriv, ok, err := c.PrivateAdd(a, tweak)
	require.NoError(t, err)
	require.True(t, ok)
	wantPub, err := c.PublicKey(childPriv)
	require.NoError(t, err)

	parentPub, err := c.PublicKey(a)
	require.NoError(t, err)
	compressedParent, err := c.CompressPublicKey(parentPub)
	require.NoError(t, err)

	gotCompressed, err := c.PublicAdd(compressedParent, tweak)
	require.NoError(t, err)
	gotPub, err := c.DecompressPublicKey(gotCompressed)
	require.NoError(t, err)

	require.Equal(t, wantPub, gotPub)
}
