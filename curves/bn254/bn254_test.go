package bn254

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requirePointEqual(t *testing.T, expected, actual *Point, fmtStr string, args ...interface{}) {
	t.Helper()
	require.EqualValues(t, 1, expected.Equal(actual), fmtStr, args...)
}

func TestPoint(t *testing.T) {
	var g Point
	g.Generator()

	var p, q, s Point
	p.ScalarMult(mustFr("deadbeefcafef00d1234deadbeefcafef00d1234deadbeefcafef00d1234"), &g)
	q.ScalarMult(mustFr("1234cafef00ddeadbeef1234cafef00ddeadbeef1234cafef00ddeadbeef"), &g)
	s.ScalarMult(mustFr("5678feedface5678feedface5678feedface5678feedface5678feedface"), &g)

	t.Run("IsOnCurve", func(t *testing.T) {
		require.EqualValues(t, 1, g.IsOnCurve(), "G")
		require.EqualValues(t, 1, p.IsOnCurve(), "P")

		var id Point
		id.Identity()
		require.EqualValues(t, 1, id.IsOnCurve(), "identity")
	})
	t.Run("Commutativity", func(t *testing.T) {
		var lhs, rhs Point
		lhs.Add(&p, &q)
		rhs.Add(&q, &p)
		requirePointEqual(t, &lhs, &rhs, "P+Q != Q+P")
	})
	t.Run("Associativity", func(t *testing.T) {
		var pq, lhs, qs, rhs Point
		pq.Add(&p, &q)
		lhs.Add(&pq, &s)
		qs.Add(&q, &s)
		rhs.Add(&p, &qs)
		requirePointEqual(t, &lhs, &rhs, "(P+Q)+S != P+(Q+S)")
	})
	t.Run("Identity", func(t *testing.T) {
		var id, sum Point
		id.Identity()
		sum.Add(&p, &id)
		requirePointEqual(t, &p, &sum, "P+O != P")

		var sumII Point
		sumII.Add(&id, &id)
		require.EqualValues(t, 1, sumII.IsIdentity(), "O+O != O")
	})
	t.Run("Inverse", func(t *testing.T) {
		var negP, sum Point
		negP.Negate(&p)
		sum.Add(&p, &negP)
		require.EqualValues(t, 1, sum.IsIdentity(), "P+(-P) != O")
	})
	t.Run("DoublingAgreement", func(t *testing.T) {
		var doubled, added Point
		doubled.Double(&p)
		added.Add(&p, &p)
		requirePointEqual(t, &doubled, &added, "double(P) != P+P")
	})
	t.Run("ScalarMultZeroOne", func(t *testing.T) {
		var zeroScalar, oneScalar Scalar
		zeroScalar.Zero()
		oneScalar.One()

		var zero Point
		zero.ScalarMult(&zeroScalar, &g)
		require.EqualValues(t, 1, zero.IsIdentity(), "[0]G != O")

		var one Point
		one.ScalarMult(&oneScalar, &g)
		requirePointEqual(t, &g, &one, "[1]G != G")
	})
	t.Run("ScalarBaseMultAgreement", func(t *testing.T) {
		k := mustFr("aabbccddeeff00112233445566778899aabbccddeeff00112233445566778")
		var viaMult, viaBaseMult Point
		viaMult.ScalarMult(k, &g)
		viaBaseMult.ScalarBaseMult(k)
		requirePointEqual(t, &viaMult, &viaBaseMult, "ScalarBaseMult != ScalarMult(k, G)")
	})
}
