package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ctcurve/ctcurve/internal/helpers"
)

func requirePointDeepEquals(t *testing.T, expected, actual *Point, fmtStr string, args ...interface{}) {
	t.Helper()
	require.EqualValues(t, 1, expected.Equal(actual), fmtStr, args...)
}

func TestPoint(t *testing.T) {
	t.Run("S11n", testPointS11n)
	t.Run("Axioms", testPointAxioms)
	t.Run("ScalarMult", testPointScalarMult)
	t.Run("ScalarBaseMult", testPointScalarBaseMult)
	t.Run("DoubleScalarMultBasepointVartime", testPointDoubleScalarMultBasepointVartime)
}

func testPointS11n(t *testing.T) {
	t.Run("G compressed", func(t *testing.T) {
		gCompressed := helpers.MustBytesFromHex("0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")

		p, err := NewPointFromBytes(gCompressed)
		require.NoError(t, err, "NewPointFromBytes(gCompressed)")
		requirePointDeepEquals(t, NewGeneratorPoint(), p, "G decompressed")

		gBytes := p.CompressedBytes()
		require.Equal(t, gCompressed, gBytes, "G re-compressed")
	})
	t.Run("G uncompressed", func(t *testing.T) {
		gUncompressed := helpers.MustBytesFromHex("0479BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")
		p, err := NewPointFromBytes(gUncompressed)
		require.NoError(t, err, "NewPointFromBytes(gUncompressed)")
		requirePointDeepEquals(t, NewGeneratorPoint(), p, "G")

		gBytes := p.UncompressedBytes()
		require.Equal(t, gUncompressed, gBytes, "G")
	})
	t.Run("Identity", func(t *testing.T) {
		secIDBytes := []byte{prefixIdentity}

		idBytes := NewIdentityPoint().CompressedBytes()
		require.Equal(t, secIDBytes, idBytes, "Identity compressed")
		p, err := NewPointFromBytes(idBytes)
		require.NoError(t, err, "NewPointFromBytes(idCompressed)")
		requirePointDeepEquals(t, NewIdentityPoint(), p, "NewPointFromBytes(idCompressed)")

		idBytes = NewIdentityPoint().UncompressedBytes()
		require.Equal(t, secIDBytes, idBytes, "Identity uncompressed")
		p, err = NewPointFromBytes(idBytes)
		require.NoError(t, err, "NewPointFromBytes(idUncompressed)")
		requirePointDeepEquals(t, NewIdentityPoint(), p, "NewPointFromBytes(idUncompressed)")
	})
	t.Run("Malformed", func(t *testing.T) {
		_, err := NewPointFromBytes(nil)
		require.Error(t, err, "NewPointFromBytes(nil)")

		_, err = NewPointFromBytes([]byte{0x05})
		require.Error(t, err, "NewPointFromBytes(badTag)")

		tooShort := make([]byte, CompressedPointSize-1)
		tooShort[0] = 0x02
		_, err = NewPointFromBytes(tooShort)
		require.Error(t, err, "NewPointFromBytes(tooShortCompressed)")
	})
}

func testPointAxioms(t *testing.T) {
	g := NewGeneratorPoint()
	p := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)
	q := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)
	s := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)

	t.Run("Commutativity", func(t *testing.T) {
		lhs := NewPointFrom(p).Add(p, q)
		rhs := NewPointFrom(q).Add(q, p)
		requirePointDeepEquals(t, lhs, rhs, "P+Q != Q+P")
	})
	t.Run("Associativity", func(t *testing.T) {
		lhs := NewPointFrom(p).Add(NewPointFrom(p).Add(p, q), s)
		rhs := NewPointFrom(p).Add(p, NewPointFrom(q).Add(q, s))
		requirePointDeepEquals(t, lhs, rhs, "(P+Q)+S != P+(Q+S)")
	})
	t.Run("Identity", func(t *testing.T) {
		sum := NewPointFrom(p).Add(p, NewIdentityPoint())
		requirePointDeepEquals(t, p, sum, "P+O != P")
	})
	t.Run("Inverse", func(t *testing.T) {
		negP := NewPointFrom(p).Negate(p)
		sum := NewPointFrom(p).Add(p, negP)
		require.EqualValues(t, 1, sum.IsIdentity(), "P+(-P) != O")
	})
	t.Run("DoublingAgreement", func(t *testing.T) {
		doubled := NewPointFrom(p).Double(p)
		added := NewPointFrom(p).Add(p, p)
		requirePointDeepEquals(t, doubled, added, "double(P) != P+P")
	})
}

func testPointScalarMult(t *testing.T) {
	t.Run("0 * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := NewScalar()

		q := NewIdentityPoint().ScalarMult(s, g)

		require.EqualValues(t, 1, q.IsIdentity(), "0 * G != id, got %+v", q)
	})
	t.Run("1 * G", func(t *testing.T) {
		g := NewGeneratorPoint()
		s := NewScalar().One()

		q := NewIdentityPoint().ScalarMult(s, g)

		require.EqualValues(t, 1, q.Equal(g), "1 * G != G, got %+v", q)
	})
	t.Run("Distributivity", func(t *testing.T) {
		g := NewGeneratorPoint()
		k := NewScalar().MustRandomize()
		p := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)
		q := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)

		lhs := NewPointFrom(g).ScalarMult(k, NewPointFrom(p).Add(p, q))
		rhs := NewPointFrom(g).Add(
			NewPointFrom(g).ScalarMult(k, p),
			NewPointFrom(g).ScalarMult(k, q),
		)
		requirePointDeepEquals(t, lhs, rhs, "[k](P+Q) != [k]P+[k]Q")
	})
	t.Run("Additivity", func(t *testing.T) {
		g := NewGeneratorPoint()
		p := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)
		k := NewScalar().MustRandomize()
		m := NewScalar().MustRandomize()

		lhs := NewPointFrom(g).ScalarMult(NewScalar().Add(k, m), p)
		rhs := NewPointFrom(g).Add(
			NewPointFrom(g).ScalarMult(k, p),
			NewPointFrom(g).ScalarMult(m, p),
		)
		requirePointDeepEquals(t, lhs, rhs, "[k+m]P != [k]P+[m]P")
	})
}

func testPointScalarBaseMult(t *testing.T) {
	s := NewScalar().MustRandomize()
	viaMult := NewPointFrom(NewGeneratorPoint()).ScalarMult(s, NewGeneratorPoint())
	viaBaseMult := NewIdentityPoint().ScalarBaseMult(s)
	requirePointDeepEquals(t, viaMult, viaBaseMult, "ScalarBaseMult != ScalarMult(s, G)")
}

func testPointDoubleScalarMultBasepointVartime(t *testing.T) {
	g := NewGeneratorPoint()
	p := NewPointFrom(g).ScalarMult(NewScalar().MustRandomize(), g)
	u1 := NewScalar().MustRandomize()
	u2 := NewScalar().MustRandomize()

	got := NewIdentityPoint().DoubleScalarMultBasepointVartime(u1, u2, p)
	want := NewPointFrom(g).Add(
		NewPointFrom(g).ScalarMult(u1, g),
		NewPointFrom(g).ScalarMult(u2, p),
	)
	requirePointDeepEquals(t, want, got, "u1*G + u2*P")
}
