package fr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustElementFromDecimal(t *testing.T, s string) *Element {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "SetString(%s)", s)

	var buf [ByteLength]byte
	n.FillBytes(buf[:])
	e, err := NewElementFromCanonicalBytes(&buf)
	require.NoError(t, err, "NewElementFromCanonicalBytes(%s)", s)
	return e
}

func TestField(t *testing.T) {
	a := NewElement().MustRandomize()
	b := NewElement().MustRandomize()

	t.Run("Commutativity", func(t *testing.T) {
		lhs := NewElement().Add(a, b)
		rhs := NewElement().Add(b, a)
		require.EqualValues(t, 1, lhs.Equal(rhs), "a+b != b+a")
	})
	t.Run("MultiplicativeInverse", func(t *testing.T) {
		inv := NewElement().Invert(a)
		prod := NewElement().Multiply(a, inv)
		require.EqualValues(t, 1, prod.Equal(NewElement().One()), "a * 1/a != 1")
	})
	t.Run("RoundTrip", func(t *testing.T) {
		ab := a.Bytes()
		back, err := NewElementFromCanonicalBytes(&ab)
		require.NoError(t, err, "parse(serialize(a))")
		require.EqualValues(t, 1, a.Equal(back), "parse(serialize(a)) != a")
	})
	t.Run("MontgomeryOneInverseKAT", func(t *testing.T) {
		// Spec scenario 3: a's Montgomery form equals 1 (ie: a == R^-1
		// mod r in the ordinary integers), a regression case for
		// inversion routines that special-case the Montgomery
		// representation of 1 rather than the value 1 itself.
		a := mustElementFromDecimal(t, "12549076656233958353659347336803947287922716146853412054870763148006372261952")
		want := mustElementFromDecimal(t, "10920338887063814464675503992315976177888879664585288394250266608035967270910")

		inv := NewElement().Invert(a)
		require.EqualValues(t, 1, inv.Equal(want), "invert(a) != expected")
	})
}
