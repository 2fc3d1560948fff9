package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/not-for-prod/hdkey/curve"
)

func cip3Root(t *testing.T) *Node {
	t.Helper()
	entropy := mustHex(t, "46e62370a138a182a498b8e2885bc032379ddf38")
	root, err := FromEntropy(Mainnet, entropy, nil)
	require.NoError(t, err)
	return root
}

func TestDeriveCIP3_HardenedChild(t *testing.T) {
	root := cip3Root(t)

	child, err := root.Derive([]string{"cip3:0'"}, nil)
	require.NoError(t, err)
	require.Len(t, child.PrivateKey(), 64)
	require.Equal(t, uint8(1), child.Depth())
	require.Equal(t, uint32(0)+0x80000000, child.Index())

	pub, err := child.PublicKey()
	require.NoError(t, err)
	require.Len(t, pub, 32)
}

func TestDeriveCIP3_SoftChildMatchesFromPublicParent(t *testing.T) {
	root := cip3Root(t)
	hardened, err := root.Derive([]string{"cip3:0'"}, nil)
	require.NoError(t, err)

	fromPriv, err := hardened.Derive([]string{"cip3:5"}, nil)
	require.NoError(t, err)

	neutered, err := hardened.Neuter()
	require.NoError(t, err)
	fromPub, err := neutered.Derive([]string{"cip3:5"}, nil)
	require.NoError(t, err)

	privPub, err := fromPriv.PublicKey()
	require.NoError(t, err)
	pubPub, err := fromPub.PublicKey()
	require.NoError(t, err)
	require.Equal(t, privPub, pubPub)
}

func TestDeriveCIP3_HardenedRequiresPrivateKey(t *testing.T) {
	root := cip3Root(t)
	neutered, err := root.Neuter()
	require.NoError(t, err)

	_, err = neutered.Derive([]string{"cip3:0'"}, nil)
	require.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestDeriveCIP3_RejectsNonCIP3Curve(t *testing.T) {
	seed := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	root, err := FromSeed(curve.Secp256k1, Mainnet, seed, nil)
	require.NoError(t, err)

	_, err = root.Derive([]string{"cip3:0'"}, nil)
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}
