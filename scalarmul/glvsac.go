package scalarmul

import (
	"gitlab.com/ctcurve/ctcurve/internal/limbs4"
)

// GLVBasis holds the public constants a GLV decomposition over a
// 256-bit scalar field needs: the lattice basis found by the extended
// Euclidean algorithm applied to (r, lambda), and the fixed-point
// reciprocal approximations used to round the Babai coefficients
// without a variable-time big.Int division of the secret scalar.
//
// G1, G2 are 2^(64*ScaleLimbs)*b2/det and 2^(64*ScaleLimbs)*(-b1)/det
// respectively (det = a1*b2-a2*b1 = r), rounded once since they are
// public constants. ScaleLimbs MUST be chosen so the rounding error
// this introduces never changes the sign of the recovered k1, k2 (the
// decomposition identity below holds for any integer c1, c2 near the
// true Babai values).
type GLVBasis struct {
	G1, G2     limbs4.Limbs
	A1, A2     limbs4.Limbs
	B1Abs, B2  limbs4.Limbs
	ScaleLimbs int
}

// DecomposeGLV splits a secret 256-bit scalar k into signed half-width
// mini-scalars (k1, k2) with k1 + k2*lambda == k (mod r) when the basis
// satisfies a_i - b_i*lambda == 0 (mod r) with b1 = -B1Abs (as BN254's
// does); for a basis with a_i + b_i*lambda == 0 (mod r) (as secp256k1's
// has) the same outputs satisfy k1 - k2*lambda == k (mod r). It uses only
// internal/limbs4's fixed-width schoolbook multiply, add, and subtract
// -- no math/big, no allocation, no branching on k's value.
//
// The approach follows the textbook GLV lattice-reduction identity
// (Hankerson-Menezes-Vanstone, "Guide to Elliptic Curve Cryptography",
// Algorithm 3.74), but evaluates it entirely mod 2^256: c1, c2 (the
// rounded Babai coefficients) are obtained by truncating a wide
// product to its high limbs (an exact limb-shift, since ScaleLimbs*64
// is the shift amount and every operand is a fixed 256-bit width), and
// k1, k2 are formed by subtracting/adding further wide products
// truncated to their low 256 bits. Truncating to 256 bits is exact
// here because the true (unbounded-precision) k1, k2 are each bounded
// to roughly half of r's bit-length -- far short of 256 bits -- so
// their two's-complement representation mod 2^256 recovers the exact
// signed value, with the sign read off the top bit.
func DecomposeGLV(k *limbs4.Limbs, basis *GLVBasis) (k1, k2 limbs4.Limbs, k1Neg, k2Neg uint64) {
	var wide1, wide2 limbs4.Wide
	limbs4.Mul(&wide1, k, &basis.G1)
	limbs4.Mul(&wide2, k, &basis.G2)

	var c1, c2 limbs4.Limbs
	copy(c1[:], wide1[basis.ScaleLimbs:])
	copy(c2[:], wide2[basis.ScaleLimbs:])

	var t1, t2 limbs4.Wide
	limbs4.Mul(&t1, &c1, &basis.A1)
	limbs4.Mul(&t2, &c2, &basis.A2)
	var t1Lo, t2Lo limbs4.Limbs
	copy(t1Lo[:], t1[:limbs4.N])
	copy(t2Lo[:], t2[:limbs4.N])

	var rawK1 limbs4.Limbs
	limbs4.Sub(&rawK1, k, &t1Lo)
	limbs4.Sub(&rawK1, &rawK1, &t2Lo)
	k1Neg = rawK1[limbs4.N-1] >> 63
	var negK1, zero limbs4.Limbs
	limbs4.Sub(&negK1, &zero, &rawK1)
	limbs4.CSelect(&k1, &rawK1, &negK1, k1Neg)

	var t3, t4 limbs4.Wide
	limbs4.Mul(&t3, &c1, &basis.B1Abs)
	limbs4.Mul(&t4, &c2, &basis.B2)
	var t3Lo, t4Lo limbs4.Limbs
	copy(t3Lo[:], t3[:limbs4.N])
	copy(t4Lo[:], t4[:limbs4.N])

	var rawK2 limbs4.Limbs
	limbs4.Sub(&rawK2, &t4Lo, &t3Lo)
	k2Neg = rawK2[limbs4.N-1] >> 63
	var negK2 limbs4.Limbs
	limbs4.Sub(&negK2, &zero, &rawK2)
	limbs4.CSelect(&k2, &rawK2, &negK2, k2Neg)

	return
}

// SecretLookup sets dst = table[idx], touching every entry of table
// via ConditionalSelect regardless of idx, so the memory access
// pattern this produces never depends on idx. idx MUST be < len(table).
func SecretLookup[T any, E Group[T]](dst E, table []E, idx uint64) {
	for i, entry := range table {
		dst.ConditionalSelect(dst, entry, indexMatches(uint64(i), idx))
	}
}

func indexMatches(i, idx uint64) uint64 {
	diff := i ^ idx
	return ^(diff | -diff) >> 63
}

// NegatableGroup is Group plus Negate, the extra method a point type
// needs to build a signed combined lookup table.
type NegatableGroup[T any] interface {
	Group[T]
	Negate(a *T) *T
}

// GLV2Table is the 4-entry combined table {O, +-P, +-phi(P), +-P+-phi(P)}
// a simultaneous GLV-2 scalar multiplication looks up every iteration,
// indexed by the pair of bits (bit of k1, bit of k2) at the current
// column. Building this once up front means the main loop performs a
// single SecretLookup (scanning all four entries) and a single Add per
// bit, instead of two independent conditional adds.
type GLV2Table[T any, E NegatableGroup[T]] struct {
	entries [4]T
}

// BuildGLV2Table fills t with {O, p, phiP, p+phiP}, where p and phiP
// are already sign-adjusted for k1's and k2's signs respectively (so
// "+" here is the group operation on the caller's chosen
// representatives, not a magnitude sum). The identity entry is built
// as p + Negate(p), never assumed to be constructible any other way,
// so this works for any NegatableGroup without relying on an
// out-of-band Identity() constructor.
func BuildGLV2Table[T any, E NegatableGroup[T]](t *GLV2Table[T, E], p, phiP E) {
	var negP T
	eNegP := E(&negP)
	eNegP.Negate(p)

	e0 := E(&t.entries[0])
	e0.Set(p)
	e0.Add(e0, eNegP)

	E(&t.entries[1]).Set(p)
	E(&t.entries[2]).Set(phiP)

	e3 := E(&t.entries[3])
	e3.Set(p)
	e3.Add(e3, phiP)
}

// Slice returns t's four entries as a pointer-typed slice, for passing
// to SecretLookup/ScalarMulGLV2.
func (t *GLV2Table[T, E]) Slice() []E {
	return []E{E(&t.entries[0]), E(&t.entries[1]), E(&t.entries[2]), E(&t.entries[3])}
}

// ScalarMulGLV2 sets acc (which the caller MUST have already set to
// the group identity) to base*combine(k1,k2,lambda) using a fixed
// 4-entry precomputed table and a single SecretLookup per bit, and
// returns acc. table MUST already hold {O, +-P, +-phi(P), +-P+-phi(P)}
// for the caller's chosen signs (see curves/<name>/glv.go for how each
// curve builds it); bits is the common bit-length of k1, k2; bitAt1,
// bitAt2 read MSB-first bits of |k1|, |k2| respectively.
func ScalarMulGLV2[T any, E NegatableGroup[T]](acc E, table []E, bits int, bitAt1, bitAt2 func(i int) uint64) E {
	for i := bits - 1; i >= 0; i-- {
		acc.Double(acc)

		idx := bitAt1(i) | (bitAt2(i) << 1)

		var tmp T
		g := E(&tmp)
		SecretLookup[T, E](g, table, idx)

		var withT T
		gw := E(&withT)
		gw.Add(acc, g)

		// idx == 0 means both bits are 0: adding the identity is a
		// no-op, but ConditionalSelect keeps the trace uniform either
		// way, so no special case is needed for idx == 0 beyond the
		// table already holding the identity there.
		acc.Set(gw)
	}
	return acc
}
