package curve

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEd25519_PublicKey_KnownVector(t *testing.T) {
	c := ed25519Curve{}
	priv, err := hex.DecodeString("2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7")
	require.NoError(t, err)

	pub, err := c.PublicKey(priv)
	require.NoError(t, err)
	require.Equal(t, "00a4b2856bfec510abab89753fac1ac0e1112364e7d250545963f135f2a33188ed", hex.EncodeToString(pub))
}

func TestEd25519_PublicAdd_Unsupported(t *testing.T) {
	c := ed25519Curve{}
	_, err := c.PublicAdd(nil, nil)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestEd25519_IsValidPrivateKey_LengthOnly(t *testing.T) {
	c := ed25519Curve{}
	require.True(t, c.IsValidPrivateKey(make([]byte, 32)))
	require.False(t, c.IsValidPrivateKey(make([]byte, 31)))
}
