package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverPoint(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for i := 0; i < 16; i++ {
			g := NewGeneratorPoint()
			k := NewScalar().MustRandomize()
			R := NewPointFrom(g).ScalarMult(k, g)

			xBytes, err := R.XBytes()
			require.NoError(t, err, "[%d]: R.XBytes", i)

			r, err := NewScalarFromCanonicalBytes((*[ScalarSize]byte)(xBytes))
			require.NoError(t, err, "[%d]: x(R) as scalar", i)

			recoveryID := byte(R.IsYOdd())
			got, err := RecoverPoint(r, recoveryID)
			require.NoError(t, err, "[%d]: RecoverPoint", i)
			requirePointDeepEquals(t, R, got, "[%d]: recovered point", i)
		}
	})
	t.Run("InvalidRecoveryID", func(t *testing.T) {
		r := NewScalar().One()
		_, err := RecoverPoint(r, 4)
		require.ErrorIs(t, err, ErrInvalidRecoveryID, "recoveryID out of range")
	})
}
