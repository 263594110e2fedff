package bn254

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ctcurve/ctcurve/curves/bn254/internal/fr"
	"gitlab.com/ctcurve/ctcurve/internal/helpers"
	"gitlab.com/ctcurve/ctcurve/internal/limbs4"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

func TestEndomorphism(t *testing.T) {
	var g, p, lamP, phiP Point
	g.Generator()
	p.ScalarMult(mustFr("1234deadbeef5678cafef00d1234deadbeef5678cafef00d1234deadbeef"), &g)

	lamP.ScalarMult(lambda, &p)
	phiP.endomorphism(&p)

	require.EqualValues(t, 1, lamP.Equal(&phiP), "phi(P) != [lambda]P")
}

func TestScalarMultGLV(t *testing.T) {
	var g, p Point
	g.Generator()
	k := mustFr("2cafe1234deadbeef5678cafef00d1234deadbeef5678cafef00d1234dead")
	p.ScalarMult(k, &g)

	var viaGLV, viaPlain Point
	viaGLV.ScalarMultGLV(k, &g)
	viaPlain.ScalarMultPlain(k, &g)

	require.EqualValues(t, 1, viaGLV.Equal(&viaPlain), "ScalarMultGLV != ScalarMultPlain")
	require.EqualValues(t, 1, viaGLV.Equal(&p), "ScalarMultGLV != [k]G")
}

func TestDecomposeGLV(t *testing.T) {
	// The full-width scalar of DESIGN.md's scenario 6; its GLV
	// decomposition gives two non-negative mini-scalars of 125 bits each.
	k := mustFr("24a0b87203c7a8def0018c95d7fab106373aebf920265c696f0ae08f8229b3f3")
	kBytes := k.Bytes()
	kLimbs := helpers.BytesToSaturated(&kBytes)

	k1, k2, k1Neg, k2Neg := scalarmul.DecomposeGLV(&kLimbs, glvBasis)

	// Recombine k1, k2 (applying their signs) against lambda and check
	// the result lands back on k*G, independent of the exact mini-scalar
	// values: this is the decomposition's only correctness requirement.
	var k1Scalar, k2Scalar fr.Element
	k1Bytes := limbsToBigEndianBytes(&k1)
	k2Bytes := limbsToBigEndianBytes(&k2)
	_, err := k1Scalar.SetCanonicalBytes(&k1Bytes)
	require.NoError(t, err)
	_, err = k2Scalar.SetCanonicalBytes(&k2Bytes)
	require.NoError(t, err)
	if k1Neg == 1 {
		k1Scalar.Negate(&k1Scalar)
	}
	if k2Neg == 1 {
		k2Scalar.Negate(&k2Scalar)
	}

	var recombined fr.Element
	recombined.Multiply(&k2Scalar, lambda)
	recombined.Add(&recombined, &k1Scalar)

	var g, want, got Point
	g.Generator()
	want.ScalarMultPlain(k, &g)
	got.ScalarMultPlain(&recombined, &g)
	require.EqualValues(t, 1, want.Equal(&got), "k1 + k2*lambda != k (mod r)")
}

func limbsToBigEndianBytes(l *limbs4.Limbs) [fr.ByteLength]byte {
	var out [fr.ByteLength]byte
	for i := 0; i < limbs4.N; i++ {
		for j := 0; j < 8; j++ {
			out[fr.ByteLength-1-(i*8+j)] = byte(l[i] >> (8 * j))
		}
	}
	return out
}
