// Package field provides the generic (curve-independent) half of the L2
// field layer: exponentiation, square root, batched inversion, and
// sum-of-products, written once against a small method-set interface and
// monomorphized per concrete modulus.
//
// Go generics cannot unify array types of differing lengths (there is no
// shared "core type" across `~[4]uint64 | ~[6]uint64 | ~[12]uint64`), so
// the actual limb storage and Montgomery primitives live in
// internal/limbs4, internal/limbs6, and internal/limbs12. What *can* be
// shared across every field, regardless of limb width, is anything
// expressible purely in terms of a field element's public method set —
// which is what this package contains, using the "pointer method set"
// generics idiom: Element[T] requires *T to implement the operations,
// so a function can be written once as `func Foo[T any, E Element[T]](...)`
// and instantiated per concrete element type.
package field

// Element is the method set every concrete field element type (one per
// curve's Fp/Fr) implements.  E is intentionally the pointer type: Go's
// generics let a type parameter be constrained to "must be a pointer to
// some T that also satisfies these methods", which is what lets this
// package manipulate *T values without knowing T's internal layout.
type Element[T any] interface {
	*T

	Zero() *T
	One() *T
	Set(a *T) *T
	Add(a, b *T) *T
	Subtract(a, b *T) *T
	Negate(a *T) *T
	Multiply(a, b *T) *T
	Square(a *T) *T
	ConditionalSelect(a, b *T, ctrl uint64) *T
	Equal(a *T) uint64
	IsZero() uint64
}

// Invertible is implemented by element types that expose a constant-time
// Fermat-style inverse (a^(M-2)).
type Invertible[T any] interface {
	Element[T]
	Invert(a *T) *T
}

// Pow sets dst = base^e, where e's bits (MSB-first) are consumed from
// bitFn, using a fixed-iteration square-and-multiply whose trace depends
// only on bitLen, never on e's value. This is the generic analogue of
// each concrete type's internal Pow2k/exponentiation helper, usable for
// curve-specific addition chains (e.g. sqrt exponents) expressed over
// the public Element interface instead of raw limbs.
func Pow[T any, E Element[T]](dst E, base E, bitLen int, bitAt func(i int) uint64) {
	var acc T
	eAcc := E(&acc)
	eAcc.One()

	var tmp T
	eTmp := E(&tmp)

	for i := bitLen - 1; i >= 0; i-- {
		eAcc.Multiply(eAcc, eAcc)
		eTmp.Multiply(eAcc, base)
		eAcc.ConditionalSelect(eAcc, eTmp, bitAt(i))
	}
	dst.Set(eAcc)
}

// BatchInvert computes dst[i] = inv(src[i]) for every i, using Montgomery's
// trick: one inversion and 3n multiplications instead of n inversions.
// Elements that are zero in src map to zero in dst.  The inversion is E's
// Invert, a constant-time Fermat inverse (it is only ever called once, on a product
// of non-zero terms, so the fact that Invert(0) is well-defined and zero
// is not load-bearing here).
//
// scratch is caller-supplied working storage of length len(src) (e.g. a
// fixed-size stack array the caller slices down to the batch size); this
// routine performs no allocation of its own, matching every other L2
// primitive in this package.
func BatchInvert[T any, E Invertible[T]](dst, src []E, scratch []T) {
	n := len(src)
	if n == 0 {
		return
	}

	// scratch[i] = src[0] * src[1] * ... * src[i-1], with a zero input
	// treated as 1 so the running product stays invertible; whether
	// src[i] was itself zero is recomputed from src[i] directly where
	// needed below rather than cached, so no separate storage is kept
	// for it.
	var acc T
	eAcc := E(&acc)
	eAcc.One()

	for i := 0; i < n; i++ {
		eDst := E(&scratch[i])
		eDst.Set(eAcc)

		var masked T
		eMasked := E(&masked)
		eMasked.One()
		eMasked.ConditionalSelect(eMasked, src[i], 1^src[i].IsZero())

		eAcc.Multiply(eAcc, eMasked)
	}

	var accInv T
	eAccInv := E(&accInv)
	eAccInv.Invert(&acc)

	for i := n - 1; i >= 0; i-- {
		var result T
		eResult := E(&result)
		eResult.Multiply(eAccInv, &scratch[i])

		var zero T
		E(&zero).Zero()
		eResult.ConditionalSelect(eResult, &zero, src[i].IsZero())
		dst[i].Set(&result)

		var masked T
		eMasked := E(&masked)
		eMasked.One()
		eMasked.ConditionalSelect(eMasked, src[i], 1^src[i].IsZero())
		eAccInv.Multiply(eAccInv, eMasked)
	}
}

// SumProduct sets dst = sum(a[i]*b[i]).  Callers are responsible for
// ensuring len(a) == len(b) and that the curve's field has enough spare
// bits for the accumulation not to need intermediate reduction beyond
// what Multiply/Add already perform (documented per curve).
func SumProduct[T any, E Element[T]](dst E, a, b []E) {
	var acc T
	eAcc := E(&acc)
	eAcc.Zero()

	var tmp T
	eTmp := E(&tmp)

	for i := range a {
		eTmp.Multiply(a[i], b[i])
		eAcc.Add(eAcc, eTmp)
	}
	dst.Set(eAcc)
}

// CondNegate returns a function that, when called with ctrl, sets dst = a
// iff ctrl == 0, dst = -a otherwise.
func CondNegate[T any, E Element[T]](dst, a E) func(ctrl uint64) {
	return func(ctrl uint64) {
		var neg T
		eNeg := E(&neg)
		eNeg.Negate(a)
		dst.ConditionalSelect(a, eNeg, ctrl)
	}
}
