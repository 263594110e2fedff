package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ctcurve/ctcurve/internal/helpers"
)

func mustScalarFromHex(t *testing.T, s string) *Scalar {
	t.Helper()
	b := helpers.MustBytesFromHex(s)
	require.Len(t, b, ScalarSize, "mustScalarFromHex(%s)", s)
	sc, err := NewScalarFromCanonicalBytes((*[ScalarSize]byte)(b))
	require.NoError(t, err, "NewScalarFromCanonicalBytes(%s)", s)
	return sc
}

func TestScalar(t *testing.T) {
	t.Run("SetBytes", func(t *testing.T) {
		// N = fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141
		geqN := []string{
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", // N
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142", // N+1
		}
		geqNReduced := []*Scalar{
			NewScalar(),
			NewScalar().One(),
		}
		for i, raw := range geqN {
			b := helpers.MustBytesFromHex(raw)
			s, didReduce := NewScalar().SetBytes((*[ScalarSize]byte)(b))
			require.EqualValues(t, 1, didReduce, "[%d]: didReduce", i)
			require.EqualValues(t, 1, geqNReduced[i].Equal(s), "[%d]: reduced value", i)
		}
	})
	t.Run("SetCanonicalBytes", func(t *testing.T) {
		raw := helpers.MustBytesFromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
		s, err := NewScalar().SetCanonicalBytes((*[ScalarSize]byte)(raw))
		require.Error(t, err, "SetCanonicalBytes(N)")
		require.Nil(t, s, "SetCanonicalBytes(N)")
	})
	t.Run("IsGreaterThanHalfN", func(t *testing.T) {
		// N/2 = 7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0
		halfN := mustScalarFromHex(t, "7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0")
		require.EqualValues(t, 0, halfN.IsGreaterThanHalfN(), "N/2")

		halfNPlus1 := NewScalar().Add(halfN, NewScalar().One())
		require.EqualValues(t, 1, halfNPlus1.IsGreaterThanHalfN(), "N/2+1")
	})
	t.Run("Zero/One", func(t *testing.T) {
		z := NewScalar()
		require.EqualValues(t, 1, z.IsZero(), "NewScalar() == 0")

		o := NewScalar().One()
		require.EqualValues(t, 0, o.IsZero(), "One() != 0")

		back := NewScalar().Zero()
		require.EqualValues(t, 1, back.IsZero(), "Zero()")
	})
	t.Run("Square", func(t *testing.T) {
		a := NewScalar().MustRandomize()
		viaMul := NewScalar().Multiply(a, a)
		viaSquare := NewScalar().Square(a)
		require.EqualValues(t, 1, viaMul.Equal(viaSquare), "sqr(a) == a*a")
	})
	t.Run("Invert", func(t *testing.T) {
		a := NewScalar().MustRandomize()
		inv := NewScalar().Invert(a)
		prod := NewScalar().Multiply(a, inv)
		require.EqualValues(t, 1, prod.Equal(NewScalar().One()), "a * 1/a == 1")
	})
	t.Run("ConditionalNegate", func(t *testing.T) {
		a := NewScalar().MustRandomize()
		neg := NewScalar().Negate(a)

		unchanged := NewScalar().ConditionalNegate(a, 0)
		require.EqualValues(t, 1, unchanged.Equal(a), "ctrl=0")

		negated := NewScalar().ConditionalNegate(a, 1)
		require.EqualValues(t, 1, negated.Equal(neg), "ctrl=1")
	})
}
