// Package edwards implements a generic twisted-Edwards curve
// (a*x^2 + y^2 = 1 + d*x^2*y^2) over any field satisfying
// field.Invertible, using extended homogeneous coordinates
// (X:Y:Z:T with x=X/Z, y=Y/Z, x*y=T/Z). Unlike short-Weierstrass
// Jacobian addition, the unified Hisil-Wong-Carter-Dawson formulas
// used here are complete whenever a is a square and d is a
// non-square (true for every twisted-Edwards
// curve used in this module): Add and Double have no exceptional
// cases and need no ConditionalSelect fallback, which is the usual
// reason a protocol chooses the Edwards model over Weierstrass in
// the first place.
package edwards

import (
	"gitlab.com/ctcurve/ctcurve/field"
)

// Params holds a twisted-Edwards curve's coefficients and conventional
// base point.
type Params[T any, E field.Invertible[T]] struct {
	A, D   T
	Gx, Gy T
}

// Point is a point in extended homogeneous coordinates. The zero value
// is NOT valid; use Identity, Generator, or SetAffine on a receiver first.
type Point[T any, E field.Invertible[T]] struct {
	x, y, z, t T
	curve      *Params[T, E]
}

func (v *Point[T, E]) ex() E { return E(&v.x) }
func (v *Point[T, E]) ey() E { return E(&v.y) }
func (v *Point[T, E]) ez() E { return E(&v.z) }
func (v *Point[T, E]) et() E { return E(&v.t) }

// Identity sets v to the neutral element (0, 1) on curve, and returns v.
func (v *Point[T, E]) Identity(curve *Params[T, E]) *Point[T, E] {
	v.curve = curve
	v.ex().Zero()
	v.ey().One()
	v.ez().One()
	v.et().Zero()
	return v
}

// Generator sets v to curve's conventional base point, and returns v.
func (v *Point[T, E]) Generator(curve *Params[T, E]) *Point[T, E] {
	return v.SetAffine(curve, E(&curve.Gx), E(&curve.Gy))
}

// SetAffine sets v from affine coordinates (x, y), which the caller
// MUST have already verified satisfy the curve equation, and returns v.
func (v *Point[T, E]) SetAffine(curve *Params[T, E], x, y E) *Point[T, E] {
	v.curve = curve
	v.ex().Set(x)
	v.ey().Set(y)
	v.ez().One()
	v.et().Multiply(x, y)
	return v
}

// Set sets v = p, and returns v.
func (v *Point[T, E]) Set(p *Point[T, E]) *Point[T, E] {
	v.curve = p.curve
	v.ex().Set(p.ex())
	v.ey().Set(p.ey())
	v.ez().Set(p.ez())
	v.et().Set(p.et())
	return v
}

// IsIdentity returns 1 iff v is the neutral element, 0 otherwise.
func (v *Point[T, E]) IsIdentity() uint64 {
	return v.ex().IsZero() & v.ey().Equal(v.ez())
}

// Negate sets v = -p, and returns v.
func (v *Point[T, E]) Negate(p *Point[T, E]) *Point[T, E] {
	v.curve = p.curve
	v.ex().Negate(p.ex())
	v.ey().Set(p.ey())
	v.ez().Set(p.ez())
	v.et().Negate(p.et())
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v. ctrl MUST be 0 or 1.
func (v *Point[T, E]) ConditionalSelect(a, b *Point[T, E], ctrl uint64) *Point[T, E] {
	v.curve = a.curve
	v.ex().ConditionalSelect(a.ex(), b.ex(), ctrl)
	v.ey().ConditionalSelect(a.ey(), b.ey(), ctrl)
	v.ez().ConditionalSelect(a.ez(), b.ez(), ctrl)
	v.et().ConditionalSelect(a.et(), b.et(), ctrl)
	return v
}

// Equal returns 1 iff v and p represent the same point
// (X*Z' == X'*Z and Y*Z' == Y'*Z), 0 otherwise.
func (v *Point[T, E]) Equal(p *Point[T, E]) uint64 {
	var xz, xz2, yz, yz2 T
	E(&xz).Multiply(v.ex(), p.ez())
	E(&xz2).Multiply(p.ex(), v.ez())
	E(&yz).Multiply(v.ey(), p.ez())
	E(&yz2).Multiply(p.ey(), v.ez())
	return E(&xz).Equal(E(&xz2)) & E(&yz).Equal(E(&yz2))
}

// Add sets v = p+q using the complete Hisil-Wong-Carter-Dawson
// extended-coordinate addition formula, and returns v. Valid for any
// inputs, including p == q, p == -q, or either being the identity.
func (v *Point[T, E]) Add(p, q *Point[T, E]) *Point[T, E] {
	v.curve = p.curve

	var a, b, c, d, e, f, g, h T
	E(&a).Multiply(p.ex(), q.ex())
	E(&b).Multiply(p.ey(), q.ey())
	E(&c).Multiply(p.et(), q.et())
	E(&c).Multiply(E(&c), E(&p.curve.D))
	E(&d).Multiply(p.ez(), q.ez())

	var xSum, ySum, sumProd T
	E(&xSum).Add(p.ex(), p.ey())
	E(&ySum).Add(q.ex(), q.ey())
	E(&sumProd).Multiply(E(&xSum), E(&ySum))
	E(&e).Subtract(E(&sumProd), E(&a))
	E(&e).Subtract(E(&e), E(&b))

	E(&f).Subtract(E(&d), E(&c))
	E(&g).Add(E(&d), E(&c))

	var aA T
	E(&aA).Multiply(E(&a), E(&p.curve.A))
	E(&h).Subtract(E(&b), E(&aA))

	v.ex().Multiply(E(&e), E(&f))
	v.ey().Multiply(E(&g), E(&h))
	v.et().Multiply(E(&e), E(&h))
	v.ez().Multiply(E(&f), E(&g))

	return v
}

// Double sets v = p+p, and returns v.
func (v *Point[T, E]) Double(p *Point[T, E]) *Point[T, E] {
	return v.Add(p, p)
}

// Subtract sets v = p-q, and returns v.
func (v *Point[T, E]) Subtract(p, q *Point[T, E]) *Point[T, E] {
	var negQ Point[T, E]
	negQ.Negate(q)
	return v.Add(p, &negQ)
}

// ToAffine sets ax, ay to the affine (x, y) coordinates of p, using a
// constant-time (Fermat) inversion. Unlike shortw.ToAffine there is no
// identity special case: the Edwards identity (0, 1) has Z=1 already.
func (v *Point[T, E]) ToAffine(ax, ay E) {
	var zInv T
	E(&zInv).Invert(v.ez())
	ax.Multiply(v.ex(), E(&zInv))
	ay.Multiply(v.ey(), E(&zInv))
}

// IsOnCurve returns 1 iff p's affine representative satisfies
// a*x^2 + y^2 = 1 + d*x^2*y^2, 0 otherwise.
func IsOnCurve[T any, E field.Invertible[T]](curve *Params[T, E], p *Point[T, E]) uint64 {
	var ax, ay T
	p.ToAffine(E(&ax), E(&ay))

	var x2, y2, lhs, x2y2, rhs, one T
	E(&x2).Square(E(&ax))
	E(&y2).Square(E(&ay))
	E(&lhs).Multiply(E(&x2), E(&curve.A))
	E(&lhs).Add(E(&lhs), E(&y2))

	E(&x2y2).Multiply(E(&x2), E(&y2))
	E(&x2y2).Multiply(E(&x2y2), E(&curve.D))
	E(&one).One()
	E(&rhs).Add(E(&one), E(&x2y2))

	return E(&lhs).Equal(E(&rhs))
}
