package fr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

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
	t.Run("SquaringIsMultiplication", func(t *testing.T) {
		viaMul := NewElement().Multiply(a, a)
		viaSquare := NewElement().Square(a)
		require.Equal(t, viaMul.Bytes(), viaSquare.Bytes(), "sqr(a) != a*a bit-for-bit")
	})
	t.Run("RoundTrip", func(t *testing.T) {
		ab := a.Bytes()
		back, err := NewElementFromCanonicalBytes(&ab)
		require.NoError(t, err, "parse(serialize(a))")
		require.EqualValues(t, 1, a.Equal(back), "parse(serialize(a)) != a")
	})
}
