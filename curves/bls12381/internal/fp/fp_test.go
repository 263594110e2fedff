package fp

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustElementFromHex(t *testing.T, s string) *Element {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "hex.DecodeString(%s)", s)
	require.Len(t, b, ByteLength, "mustElementFromHex(%s)", s)
	e, err := NewElementFromCanonicalBytes((*[ByteLength]byte)(b))
	require.NoError(t, err, "NewElementFromCanonicalBytes(%s)", s)
	return e
}

func TestField(t *testing.T) {
	a := NewElement().MustRandomize()
	b := NewElement().MustRandomize()
	c := NewElement().MustRandomize()

	t.Run("Commutativity", func(t *testing.T) {
		lhs := NewElement().Add(a, b)
		rhs := NewElement().Add(b, a)
		require.EqualValues(t, 1, lhs.Equal(rhs), "a+b != b+a")

		lhsM := NewElement().Multiply(a, b)
		rhsM := NewElement().Multiply(b, a)
		require.EqualValues(t, 1, lhsM.Equal(rhsM), "a*b != b*a")
	})
	t.Run("Associativity", func(t *testing.T) {
		lhs := NewElement().Add(NewElement().Add(a, b), c)
		rhs := NewElement().Add(a, NewElement().Add(b, c))
		require.EqualValues(t, 1, lhs.Equal(rhs), "(a+b)+c != a+(b+c)")
	})
	t.Run("Distributivity", func(t *testing.T) {
		lhs := NewElement().Multiply(a, NewElement().Add(b, c))
		rhs := NewElement().Add(NewElement().Multiply(a, b), NewElement().Multiply(a, c))
		require.EqualValues(t, 1, lhs.Equal(rhs), "a*(b+c) != a*b+a*c")
	})
	t.Run("AdditiveInverse", func(t *testing.T) {
		sum := NewElement().Add(a, NewElement().Negate(a))
		require.EqualValues(t, 1, sum.IsZero(), "a+(-a) != 0")
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
	t.Run("FusedSquaringKAT", func(t *testing.T) {
		// Spec scenario 4.
		in := mustElementFromHex(t, "091f02efa1c9b99c004329e94cd3c6b308164cbe02037333d78b6c10415286f7c51b5cd7f917f77b25667ab083314b1b")
		want := mustElementFromHex(t, "129e84715b197f76766c8604002cfc287fbe3d16774e18c599853ce48d03dc26bf882e159323ee3d25e52e4809ff4ccc")

		viaSquare := NewElement().Square(in)
		viaMul := NewElement().Multiply(in, in)
		require.EqualValues(t, 1, viaSquare.Equal(want), "square(a) != expected")
		require.EqualValues(t, 1, viaMul.Equal(want), "a*a != expected")
		require.Equal(t, viaSquare.Bytes(), viaMul.Bytes(), "square(a) != a*a bit-for-bit")
	})
}
