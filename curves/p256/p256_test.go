package p256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	var g, id Point
	g.Generator()
	id.Identity()

	require.EqualValues(t, 1, g.IsOnCurve(), "G")
	require.EqualValues(t, 1, id.IsOnCurve(), "identity")
	require.EqualValues(t, 1, id.IsIdentity(), "identity")

	var zeroScalar, oneScalar Scalar
	zeroScalar.Zero()
	oneScalar.One()

	var zero Point
	zero.ScalarMult(&zeroScalar, &g)
	require.EqualValues(t, 1, zero.IsIdentity(), "[0]G != O")

	var one Point
	one.ScalarMult(&oneScalar, &g)
	require.EqualValues(t, 1, g.Equal(&one), "[1]G != G")

	var doubled, added Point
	doubled.Double(&g)
	added.Add(&g, &g)
	require.EqualValues(t, 1, doubled.Equal(&added), "double(G) != G+G")

	var negG, sum Point
	negG.Negate(&g)
	sum.Add(&g, &negG)
	require.EqualValues(t, 1, sum.IsIdentity(), "G+(-G) != O")
}
