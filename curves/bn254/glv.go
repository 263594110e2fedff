package bn254

import (
	"math/big"

	"gitlab.com/ctcurve/ctcurve/curve/shortw"
	"gitlab.com/ctcurve/ctcurve/curves/bn254/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/bn254/internal/fr"
	"gitlab.com/ctcurve/ctcurve/internal/helpers"
	"gitlab.com/ctcurve/ctcurve/internal/limbs4"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

type innerPoint = shortw.Projective[fp.Element, *fp.Element]

// This file implements the GLV (Gallant-Lambert-Vanstone) endomorphism
// decomposition for BN254's G1: the map phi(x, y) = (beta*x, y) is an
// endomorphism of G1 satisfying phi(P) = lambda*P for the constants
// below, letting any scalar k be split as k = k1 + k2*lambda mod r
// with k1, k2 each about half the bit-length of r. Scalar
// multiplication then becomes a single simultaneous double-and-add
// over (k1, k2) against a precomputed {O, P, phi(P), P+phi(P)} table,
// roughly halving the number of doublings versus a full-width multiply.
//
// lambda, beta, and the lattice basis below are BN254's well-known
// GLV constants (see e.g. the GLV basis used by gnark-crypto for the
// same curve); beta is verified at init time to satisfy
// beta^3 == 1 and lambda*G == (beta*Gx, Gy).
//
// The decomposition itself (scalarmul.DecomposeGLV) never touches
// math/big: it is built entirely out of internal/limbs4's fixed-width
// schoolbook multiply/add/subtract, so its running time and
// memory-access pattern depend only on the byte-length of the scalar
// field, never on the secret scalar's value. math/big is used in this
// file only to parse the public constants below once, at package init.

var (
	lambda = mustFr("30644e72e131a029048b6e193fd84104cc37a73fec2bc5e9b8ca0b2d36636f23")
	beta   = mustFp("30644e72e131a0295e6dd9e7e0acccb0c28f069fbb966e3de4bd44e5607cfd48")
)

// Lattice basis vectors (a1,b1), (a2,b2) with a1*b2 - a2*b1 == r,
// found by the extended Euclidean algorithm applied to (r, lambda)
// per Algorithm 3.74 of Hankerson-Menezes-Vanstone, "Guide to
// Elliptic Curve Cryptography".
var (
	glvA1    = mustBig("89d3256894d213e3")
	glvB1Abs = mustBig("6f4d8248eeb859fd0be4e1541221250b") // b1 = -glvB1Abs
	glvA2    = mustBig("6f4d8248eeb859fc8211bbeb7d4f1128")
	glvB2    = mustBig("89d3256894d213e3")
)

// glvScaleLimbs*64 is the fixed-point precision used to approximate
// the Babai-rounded lattice coefficients c1, c2 (see
// scalarmul.GLVBasis doc); choosing a whole number of limbs turns the
// right-shift by the scale into a limb-aligned truncation, needing no
// bit-level shifting.
const glvScaleLimbs = 5 // 320 bits

var (
	glvG1 = mustBig("2d91d232ec7e0b3d76eb9c714773a6ef3")
	glvG2 = mustBig("24ccef014a773d2d25398fd0300ff6565149d540fd5e495cc")
)

var glvBasis = &scalarmul.GLVBasis{
	G1:         limbsFromBig(glvG1),
	G2:         limbsFromBig(glvG2),
	A1:         limbsFromBig(glvA1),
	A2:         limbsFromBig(glvA2),
	B1Abs:      limbsFromBig(glvB1Abs),
	B2:         limbsFromBig(glvB2),
	ScaleLimbs: glvScaleLimbs,
}

func limbsFromBig(n *big.Int) limbs4.Limbs {
	var l limbs4.Limbs
	limbs4.FromBig(&l, n)
	return l
}

func init() {
	var g, lamG, phiG Point
	g.Generator()
	lamG.ScalarMult(lambda, &g)
	phiG.endomorphism(&g)
	if lamG.Equal(&phiG) != 1 {
		panic("bn254: lambda*G != phi(G), GLV constants are inconsistent")
	}
	var beta3, one fp.Element
	beta3.Multiply(beta, beta)
	beta3.Multiply(&beta3, beta)
	one.One()
	if beta3.Equal(&one) != 1 {
		panic("bn254: beta^3 != 1, GLV constants are inconsistent")
	}
}

func mustBig(hexStr string) *big.Int {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic("bn254: invalid GLV constant")
	}
	return n
}

func mustFr(hexStr string) *fr.Element {
	n := mustBig(hexStr)
	var buf [fr.ByteLength]byte
	n.FillBytes(buf[:])
	e, err := fr.NewElementFromCanonicalBytes(&buf)
	if err != nil {
		panic("bn254: invalid scalar constant: " + err.Error())
	}
	return e
}

func mustFp(hexStr string) *fp.Element {
	n := mustBig(hexStr)
	var buf [fp.ByteLength]byte
	n.FillBytes(buf[:])
	e, err := fp.NewElementFromCanonicalBytes(&buf)
	if err != nil {
		panic("bn254: invalid field constant: " + err.Error())
	}
	return e
}

// glvHalfBits bounds the bit-length of |k1|, |k2| for any k in
// [0, r): the lattice basis vectors are each about half of r's
// bit-length, and the decomposition identity holds for any integer
// (c1, c2), so the fixed-point approximation only affects how tight
// this bound is, never correctness.
const glvHalfBits = 130

func bitAtLimbs(v *limbs4.Limbs, i int) uint64 {
	return (v[i/64] >> uint(i%64)) & 1
}

// ScalarMultGLV sets v = s*p using the constant-time GLV-decomposed,
// table-based simultaneous double-and-add, and returns v. Every
// big.Int operation this depends on (lambda, beta, the lattice basis)
// touches only public compile-time constants; the decomposition of
// the secret scalar s itself runs entirely on fixed-width limbs4
// arithmetic (see scalarmul.DecomposeGLV), and the main loop performs
// exactly glvHalfBits Doubles and one table-driven Add each, with no
// branch whose direction depends on s.
func (v *Point) ScalarMultGLV(s *Scalar, p *Point) *Point {
	sBytes := s.Bytes()
	kLimbs := helpers.BytesToSaturated(&sBytes)

	k1, k2, k1Neg, k2Neg := scalarmul.DecomposeGLV(&kLimbs, glvBasis)

	var phiP Point
	phiP.endomorphism(p)

	var negP, negPhiP Point
	negP.Negate(p)
	negPhiP.Negate(&phiP)

	var pSel, phiSel Point
	pSel.ConditionalSelect(p, &negP, k1Neg)
	phiSel.ConditionalSelect(&phiP, &negPhiP, k2Neg)

	var table scalarmul.GLV2Table[innerPoint, *innerPoint]
	scalarmul.BuildGLV2Table[innerPoint, *innerPoint](&table, &pSel.inner, &phiSel.inner)

	v.Identity()
	bitAt1 := func(i int) uint64 { return bitAtLimbs(&k1, i) }
	bitAt2 := func(i int) uint64 { return bitAtLimbs(&k2, i) }
	scalarmul.ScalarMulGLV2[innerPoint, *innerPoint](&v.inner, table.Slice(), glvHalfBits, bitAt1, bitAt2)

	return v
}

// endomorphism sets v = phi(p) = (beta*x, y), and returns v. phi acts
// on affine x; in projective coordinates x = X/Z so scaling X by beta
// scales the affine x-coordinate by beta too, leaving Y and Z (and
// hence y) unchanged.
func (v *Point) endomorphism(p *Point) *Point {
	v.inner.Set(&p.inner)
	var x fp.Element
	x.Multiply(p.inner.RawX(), beta)
	v.inner.SetRawX(&x)
	return v
}
