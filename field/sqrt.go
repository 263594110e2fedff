package field

// This file provides the two remaining L2 operations every field in this
// module's scope needs: Sqrt and SqrtRatio ("sqrt_ratio_if_square" in the
// hash-to-curve literature). Both come in two flavors, selected by how the
// field's modulus behaves mod 4:
//
//   - p = 3 (mod 4): Sqrt3Mod4/SqrtRatio3Mod4, a direct generalization of
//     the addition-chain-free case of Tonelli-Shanks, since (p+1)/4 is then
//     an integer and a^((p+1)/4) is a square root of a whenever one exists.
//   - p = 1 (mod 4): SqrtTonelliShanks, the general algorithm, needed by
//     every scalar (Fr) field in this module (all of them have p = 1 mod 4,
//     since SNARK-friendly scalar fields are chosen for large 2-adicity) and
//     by a handful of base (Fp) fields (Curve25519, P-224, Pallas, Vesta).
//
// Callers supply the modulus-specific constants (exponent bits, the field's
// 2-adicity, a fixed non-residue) through the Params structs below, the
// same way curve/shortw.Params and curve/edwards.Params let concrete curves
// supply their own coefficients; this file contains only the
// curve/field-agnostic control flow. No field package in this module calls
// these functions.

// Sqrt3Mod4Params holds the modulus-specific constant a p = 3 (mod 4) field
// needs for Sqrt3Mod4: the bits of (p+1)/4, MSB-first.
type Sqrt3Mod4Params struct {
	ExponentBitLen int
	ExponentBitAt  func(i int) uint64
}

// Sqrt3Mod4 sets dst = sqrt(a) and returns 1 iff a is a square, for any
// field whose modulus is congruent to 3 mod 4. dst is set to 0 when a has
// no square root.
func Sqrt3Mod4[T any, E Element[T]](dst E, a E, params Sqrt3Mod4Params) uint64 {
	var rootT T
	root := E(&rootT)
	Pow[T, E](root, a, params.ExponentBitLen, params.ExponentBitAt)

	var checkT T
	check := E(&checkT)
	check.Multiply(root, root)
	isSqrt := check.Equal(a)

	var zeroT T
	E(&zeroT).Zero()
	dst.ConditionalSelect(E(&zeroT), root, isSqrt)

	return isSqrt
}

// SqrtRatioParams3Mod4 holds the modulus-specific constants a p = 3 (mod 4)
// field needs for SqrtRatio3Mod4: the bits of c1 = (p-3)/4, and a fixed
// element c2 = sqrt(-Z) for some fixed non-square Z (the same Z used by
// the field's hash-to-curve map, when it has one).
type SqrtRatioParams3Mod4[T any, E Element[T]] struct {
	C1BitLen int
	C1BitAt  func(i int) uint64
	C2       E
}

// SqrtRatio3Mod4 sets dst = sqrt(u/v) and returns 1 if u/v is a square,
// otherwise dst = sqrt(Z * u/v) with Z = -c2^2 (i.e. a square root of a
// fixed non-square multiple of u/v) and returns 0. v MUST be non-zero. This is
// the p = 3 (mod 4) optimized sqrt_ratio from the hash-to-curve literature:
// one exponentiation computes both the "is it a square" test and a
// candidate root, rather than inverting v and calling Sqrt separately.
func SqrtRatio3Mod4[T any, E Element[T]](dst E, u, v E, params SqrtRatioParams3Mod4[T, E]) uint64 {
	var tv1T, tv2T, y1T, y2T, tv3T T
	tv1, tv2, y1, y2, tv3 := E(&tv1T), E(&tv2T), E(&y1T), E(&y2T), E(&tv3T)

	tv1.Multiply(v, v)
	tv2.Multiply(u, v)
	tv1.Multiply(tv1, tv2)

	Pow[T, E](y1, tv1, params.C1BitLen, params.C1BitAt)
	y1.Multiply(y1, tv2)
	y2.Multiply(y1, params.C2)

	tv3.Multiply(y1, y1)
	tv3.Multiply(tv3, v)
	isQR := tv3.Equal(u)

	dst.ConditionalSelect(y2, y1, isQR)
	return isQR
}

// TonelliShanksParams holds the modulus-specific constants a p = 1 (mod 4)
// field needs for SqrtTonelliShanks. The modulus factors as p - 1 = Q *
// 2^S with Q odd; QMinus1Over2BitAt/BitLen supply the bits of (Q-1)/2, and
// RootOfUnity is z^Q for a fixed non-square z, i.e. a primitive 2^S-th
// root of unity.
type TonelliShanksParams[T any, E Element[T]] struct {
	S                  int
	QMinus1Over2BitLen int
	QMinus1Over2BitAt  func(i int) uint64
	RootOfUnity        E
}

// SqrtTonelliShanks sets dst = sqrt(a) and returns 1 iff a is a square,
// for any field whose modulus is congruent to 1 mod 4. dst is set to 0
// when a has no square root.
//
// This is the constant-time nested-loop formulation of Tonelli-Shanks:
// the outer loop always runs S iterations and the inner loop's triangular
// total of squarings is always performed in full, so the trace depends
// only on the field's fixed 2-adicity S, never on a. w = a^((Q-1)/2) uses
// the module's fixed-iteration Pow, even though (Q-1)/2 is public, to
// avoid introducing a second, variable-time exponentiation primitive.
func SqrtTonelliShanks[T any, E Element[T]](dst E, a E, params TonelliShanksParams[T, E]) uint64 {
	var oneT T
	one := E(&oneT)
	one.One()

	var wT T
	w := E(&wT)
	Pow[T, E](w, a, params.QMinus1Over2BitLen, params.QMinus1Over2BitAt)

	var xT T
	x := E(&xT)
	x.Multiply(w, a)

	var bT T
	b := E(&bT)
	b.Multiply(x, w)

	var zT T
	z := E(&zT)
	z.Set(params.RootOfUnity)

	v := params.S

	for maxV := params.S; maxV >= 1; maxV-- {
		k := 1
		var tmpT T
		tmp := E(&tmpT)
		tmp.Multiply(b, b)

		jLessThanV := uint64(1)

		for j := 2; j < maxV; j++ {
			tmpIsOne := tmp.Equal(one)

			var selSrcT T
			selSrc := E(&selSrcT)
			selSrc.ConditionalSelect(tmp, z, tmpIsOne)
			var squaredT T
			squared := E(&squaredT)
			squared.Multiply(selSrc, selSrc)
			tmp.ConditionalSelect(squared, tmp, tmpIsOne)

			var zSqT T
			zSq := E(&zSqT)
			zSq.Multiply(z, z)
			var newZT T
			newZ := E(&newZT)
			newZ.ConditionalSelect(z, zSq, tmpIsOne)

			jLessThanV &= 1 ^ ctEqInt(j, v)
			k = ctSelectInt(k, j, tmpIsOne)
			z.ConditionalSelect(z, newZ, jLessThanV)
		}

		var resultT T
		result := E(&resultT)
		result.Multiply(x, z)
		bIsOne := b.Equal(one)
		x.ConditionalSelect(result, x, bIsOne)

		z.Multiply(z, z)
		b.Multiply(b, z)
		v = k
	}

	var checkT T
	check := E(&checkT)
	check.Multiply(x, x)
	isSquare := check.Equal(a)

	var zeroT T
	E(&zeroT).Zero()
	dst.ConditionalSelect(E(&zeroT), x, isSquare)

	return isSquare
}

// SqrtRatioGeneric computes sqrt_ratio_if_square(u, v) by composing
// Invert with a caller-supplied sqrt implementation, for fields (the p = 1
// mod 4 case) that have no dedicated ratio-optimized formula in this
// module. v MUST be non-zero. Both the "is a square" and "is not a
// square" candidate roots are always computed, and the result selected
// with ConditionalSelect, so the extra exponentiation sqrtFn performs in
// the non-square case never shows up as a timing difference.
func SqrtRatioGeneric[T any, E Invertible[T]](dst E, u, v E, sqrtFn func(dst, a E) uint64, nonResidue E) uint64 {
	var vInvT T
	vInv := E(&vInvT)
	vInv.Invert(v)

	var tT T
	t := E(&tT)
	t.Multiply(u, vInv)

	var rootIfSquareT T
	rootIfSquare := E(&rootIfSquareT)
	isSquare := sqrtFn(rootIfSquare, t)

	var tNonResidueT T
	tNonResidue := E(&tNonResidueT)
	tNonResidue.Multiply(t, nonResidue)
	var rootIfNonSquareT T
	rootIfNonSquare := E(&rootIfNonSquareT)
	sqrtFn(rootIfNonSquare, tNonResidue)

	dst.ConditionalSelect(rootIfNonSquare, rootIfSquare, isSquare)
	return isSquare
}

// ctEqInt returns 1 iff a == b, in constant time, for small non-negative
// loop-index values (never secret-length inputs; used only to compare
// Tonelli-Shanks' internal bookkeeping indices, which are bounded by a
// field's fixed 2-adicity).
func ctEqInt(a, b int) uint64 {
	d := uint64(a ^ b)
	d |= d >> 32
	d |= d >> 16
	d |= d >> 8
	d |= d >> 4
	d |= d >> 2
	d |= d >> 1
	return 1 ^ (d & 1)
}

// ctSelectInt returns a iff ctrl == 1, b otherwise. ctrl MUST be 0 or 1.
func ctSelectInt(a, b int, ctrl uint64) int {
	mask := -int64(ctrl)
	return int(int64(b) ^ (mask & int64(a^b)))
}
