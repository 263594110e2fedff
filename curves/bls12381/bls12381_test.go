package bls12381

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ctcurve/ctcurve/curves/bls12381/internal/fr"
)

func requirePointEqual(t *testing.T, expected, actual *Point, fmtStr string, args ...interface{}) {
	t.Helper()
	require.EqualValues(t, 1, expected.Equal(actual), fmtStr, args...)
}

func mustScalarFromHex(t *testing.T, s string) *Scalar {
	t.Helper()
	var buf [fr.ByteLength]byte
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "hex.DecodeString(%s)", s)
	require.LessOrEqual(t, len(b), len(buf), "mustScalarFromHex(%s)", s)
	copy(buf[len(buf)-len(b):], b)

	e, err := fr.NewElementFromCanonicalBytes(&buf)
	require.NoError(t, err, "NewElementFromCanonicalBytes(%s)", s)
	return e
}

func TestPoint(t *testing.T) {
	var g Point
	g.Generator()

	var p, q, s Point
	p.ScalarMult(mustScalarFromHex(t, "deadbeefcafef00d1234deadbeefcafef00d1234deadbeefcafef00d1234"), &g)
	q.ScalarMult(mustScalarFromHex(t, "1234cafef00ddeadbeef1234cafef00ddeadbeef1234cafef00ddeadbeef"), &g)
	s.ScalarMult(mustScalarFromHex(t, "5678feedface5678feedface5678feedface5678feedface5678feedface"), &g)

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
	t.Run("ScalarMultDistributivity", func(t *testing.T) {
		// Spec scenario 5.
		k := mustScalarFromHex(t, "0aabbccddeeff00112233445566778899aabbccddeeff00112233445566778")

		var pPlusQ, lhs, kp, kq, rhs Point
		pPlusQ.Add(&p, &q)
		lhs.ScalarMult(k, &pPlusQ)
		kp.ScalarMult(k, &p)
		kq.ScalarMult(k, &q)
		rhs.Add(&kp, &kq)
		requirePointEqual(t, &lhs, &rhs, "[k](P+Q) != [k]P+[k]Q")
	})
	t.Run("ScalarBaseMultAgreement", func(t *testing.T) {
		k := mustScalarFromHex(t, "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
		var viaMult, viaBaseMult Point
		viaMult.ScalarMult(k, &g)
		viaBaseMult.ScalarBaseMult(k)
		requirePointEqual(t, &viaMult, &viaBaseMult, "ScalarBaseMult != ScalarMult(k, G)")
	})
}
