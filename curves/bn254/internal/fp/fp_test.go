package fp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

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

		lhsM := NewElement().Multiply(NewElement().Multiply(a, b), c)
		rhsM := NewElement().Multiply(a, NewElement().Multiply(b, c))
		require.EqualValues(t, 1, lhsM.Equal(rhsM), "(a*b)*c != a*(b*c)")
	})
	t.Run("Distributivity", func(t *testing.T) {
		lhs := NewElement().Multiply(a, NewElement().Add(b, c))
		rhs := NewElement().Add(NewElement().Multiply(a, b), NewElement().Multiply(a, c))
		require.EqualValues(t, 1, lhs.Equal(rhs), "a*(b+c) != a*b+a*c")
	})
	t.Run("AdditiveInverse", func(t *testing.T) {
		sum := NewElement().Add(a, NewElement().Negate(a))
		require.EqualValues(t, 1, sum.IsZero(), "a+(-a) != 0")

		var zeroBytes [ByteLength]byte
		require.Equal(t, zeroBytes[:], sumBytes(sum), "stored 0 is not all-zero")
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
	t.Run("NegateZeroRegression", func(t *testing.T) {
		// Spec scenario 2: neg(0) == 0 in Fp[BN254_Snarks], and the
		// stored representation must be all-zero, not M.
		z := NewElement().Zero()
		negZ := NewElement().Negate(z)
		require.EqualValues(t, 1, negZ.IsZero(), "neg(0) != 0")

		var zeroBytes [ByteLength]byte
		require.Equal(t, zeroBytes, negZ.Bytes(), "neg(0) stored representation is not all-zero")
	})
}

func sumBytes(e *Element) []byte {
	b := e.Bytes()
	return b[:]
}
