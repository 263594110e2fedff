// Package shortw implements a generic short-Weierstrass curve
// (y^2 = x^3 + a*x + b) over any field satisfying field.Invertible,
// using Jacobian projective coordinates (x = X/Z^2, y = Y/Z^3).
//
// The addition law is the textbook Jacobian formula (EFD add-2007-bl),
// which has two exceptional inputs: equal x-coordinates with equal
// y-coordinates (P == Q, where the formula must fall back to doubling)
// and equal x-coordinates with opposite y-coordinates (P == -Q, where
// the result is the identity). Both exceptions are detected from
// public structure of the computation (never from secret data alone)
// and resolved with constant-time ConditionalSelect, so Add is safe
// to call with P == Q or P == -Q without special-casing at the
// call site, matching the "complete-enough" addition law used
// throughout this module's higher layers (GLV-SAC recoding, fixed
// windows) that cannot avoid occasionally adding a point to itself.
package shortw

import (
	"gitlab.com/ctcurve/ctcurve/field"
)

// Params holds the coefficients of a short-Weierstrass curve and its
// conventional generator, all as affine field elements.
type Params[T any, E field.Invertible[T]] struct {
	A, B T
	Gx, Gy T
}

// Point is a point on a short-Weierstrass curve in Jacobian coordinates.
// The zero value is NOT valid; use Identity, Generator, or a decode
// routine on a receiver first.
type Point[T any, E field.Invertible[T]] struct {
	x, y, z T
	curve   *Params[T, E]
}

func (v *Point[T, E]) ex() E { return E(&v.x) }
func (v *Point[T, E]) ey() E { return E(&v.y) }
func (v *Point[T, E]) ez() E { return E(&v.z) }

// RawX exposes the Jacobian X coordinate directly (x = X/Z^2), for
// curve-specific endomorphisms (e.g. GLV's phi(X,Y,Z) = (beta*X,Y,Z))
// that act on X alone and must not disturb Z by routing through an
// affine round-trip.
func (v *Point[T, E]) RawX() E { return v.ex() }

// SetRawX overwrites the Jacobian X coordinate directly; see RawX.
func (v *Point[T, E]) SetRawX(x E) { v.ex().Set(x) }

// Identity sets v to the point at infinity (represented as Z=0) on
// curve, and returns v.
func (v *Point[T, E]) Identity(curve *Params[T, E]) *Point[T, E] {
	v.curve = curve
	v.ex().Zero()
	v.ey().One()
	v.ez().Zero()
	return v
}

// Generator sets v to curve's conventional base point, and returns v.
func (v *Point[T, E]) Generator(curve *Params[T, E]) *Point[T, E] {
	v.curve = curve
	v.ex().Set(E(&curve.Gx))
	v.ey().Set(E(&curve.Gy))
	v.ez().One()
	return v
}

// Set sets v = p, and returns v.
func (v *Point[T, E]) Set(p *Point[T, E]) *Point[T, E] {
	v.curve = p.curve
	v.ex().Set(p.ex())
	v.ey().Set(p.ey())
	v.ez().Set(p.ez())
	return v
}

// IsIdentity returns 1 iff v is the point at infinity, 0 otherwise.
func (v *Point[T, E]) IsIdentity() uint64 {
	return v.ez().IsZero()
}

// Negate sets v = -p, and returns v.
func (v *Point[T, E]) Negate(p *Point[T, E]) *Point[T, E] {
	v.curve = p.curve
	v.ex().Set(p.ex())
	v.ey().Negate(p.ey())
	v.ez().Set(p.ez())
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v. ctrl MUST be 0 or 1.
func (v *Point[T, E]) ConditionalSelect(a, b *Point[T, E], ctrl uint64) *Point[T, E] {
	v.curve = a.curve
	v.ex().ConditionalSelect(a.ex(), b.ex(), ctrl)
	v.ey().ConditionalSelect(a.ey(), b.ey(), ctrl)
	v.ez().ConditionalSelect(a.ez(), b.ez(), ctrl)
	return v
}

// Equal returns 1 iff v and p represent the same curve point
// (comparing X*Z'^2 == X'*Z^2 and Y*Z'^3 == Y'*Z^3), 0 otherwise.
func (v *Point[T, E]) Equal(p *Point[T, E]) uint64 {
	var z1z1, z2z2, u1, u2, z1c, z2c, s1, s2 T
	E(&z1z1).Square(v.ez())
	E(&z2z2).Square(p.ez())
	E(&u1).Multiply(v.ex(), E(&z2z2))
	E(&u2).Multiply(p.ex(), E(&z1z1))

	E(&z1c).Multiply(E(&z1z1), v.ez())
	E(&z2c).Multiply(E(&z2z2), p.ez())
	E(&s1).Multiply(v.ey(), E(&z2c))
	E(&s2).Multiply(p.ey(), E(&z1c))

	xEq := E(&u1).Equal(E(&u2))
	yEq := E(&s1).Equal(E(&s2))
	bothInf := v.IsIdentity() & p.IsIdentity()
	neitherInf := 1 ^ (v.IsIdentity() | p.IsIdentity())

	return bothInf | (neitherInf & xEq & yEq)
}

// Double sets v = p+p, and returns v. Valid for any input, including
// the identity.
func (v *Point[T, E]) Double(p *Point[T, E]) *Point[T, E] {
	v.curve = p.curve

	var xx, yy, yyyy, zz, s, m, azz2, t T
	E(&xx).Square(p.ex())
	E(&yy).Square(p.ey())
	E(&yyyy).Square(E(&yy))
	E(&zz).Square(p.ez())

	// s = 2*((X+YY)^2 - XX - YYYY)
	var xPlusYY, sq T
	E(&xPlusYY).Add(p.ex(), E(&yy))
	E(&sq).Square(E(&xPlusYY))
	E(&s).Subtract(E(&sq), E(&xx))
	E(&s).Subtract(E(&s), E(&yyyy))
	E(&s).Add(E(&s), E(&s))

	// m = 3*XX + a*ZZ^2
	var threeXX T
	E(&threeXX).Add(E(&xx), E(&xx))
	E(&threeXX).Add(E(&threeXX), E(&xx))
	E(&azz2).Square(E(&zz))
	E(&azz2).Multiply(E(&azz2), E(&p.curve.A))
	E(&m).Add(E(&threeXX), E(&azz2))

	// t = m^2 - 2*s
	E(&t).Square(E(&m))
	var twoS T
	E(&twoS).Add(E(&s), E(&s))
	E(&t).Subtract(E(&t), E(&twoS))

	v.ex().Set(E(&t))

	// y3 = m*(s-t) - 8*yyyy
	var sMinusT, eightYYYY T
	E(&sMinusT).Subtract(E(&s), E(&t))
	E(&eightYYYY).Add(E(&yyyy), E(&yyyy))
	E(&eightYYYY).Add(E(&eightYYYY), E(&eightYYYY))
	E(&eightYYYY).Add(E(&eightYYYY), E(&eightYYYY))
	var mTimes T
	E(&mTimes).Multiply(E(&m), E(&sMinusT))
	v.ey().Subtract(E(&mTimes), E(&eightYYYY))

	// z3 = (y+z)^2 - yy - zz
	var yPlusZ, zSq T
	E(&yPlusZ).Add(p.ey(), p.ez())
	E(&zSq).Square(E(&yPlusZ))
	E(&zSq).Subtract(E(&zSq), E(&yy))
	v.ez().Subtract(E(&zSq), E(&zz))

	return v
}

// Add sets v = p+q, and returns v. Safe to call with p == q or
// p == -q (see package doc).
func (v *Point[T, E]) Add(p, q *Point[T, E]) *Point[T, E] {
	v.curve = p.curve

	var z1z1, z2z2, u1, u2, s1, s2, h, i, j, r, vv T
	E(&z1z1).Square(p.ez())
	E(&z2z2).Square(q.ez())
	E(&u1).Multiply(p.ex(), E(&z2z2))
	E(&u2).Multiply(q.ex(), E(&z1z1))

	var z1z1z1, z2z2z2 T
	E(&z1z1z1).Multiply(E(&z1z1), p.ez())
	E(&z2z2z2).Multiply(E(&z2z2), q.ez())
	E(&s1).Multiply(p.ey(), E(&z2z2z2))
	E(&s2).Multiply(q.ey(), E(&z1z1z1))

	E(&h).Subtract(E(&u2), E(&u1))
	isH0 := E(&h).IsZero()

	var rr T
	E(&rr).Subtract(E(&s2), E(&s1))
	E(&r).Add(E(&rr), E(&rr))
	isR0 := E(&r).IsZero()

	var twoH T
	E(&twoH).Add(E(&h), E(&h))
	E(&i).Square(E(&twoH))
	E(&j).Multiply(E(&h), E(&i))
	E(&vv).Multiply(E(&u1), E(&i))

	var x3, y3, z3 T
	E(&x3).Square(E(&r))
	E(&x3).Subtract(E(&x3), E(&j))
	var twoV T
	E(&twoV).Add(E(&vv), E(&vv))
	E(&x3).Subtract(E(&x3), E(&twoV))

	var vMinusX3, twoS1J T
	E(&vMinusX3).Subtract(E(&vv), E(&x3))
	E(&y3).Multiply(E(&r), E(&vMinusX3))
	E(&twoS1J).Multiply(E(&s1), E(&j))
	E(&twoS1J).Add(E(&twoS1J), E(&twoS1J))
	E(&y3).Subtract(E(&y3), E(&twoS1J))

	var zSum, zSumSq T
	E(&zSum).Add(p.ez(), q.ez())
	E(&zSumSq).Square(E(&zSum))
	E(&zSumSq).Subtract(E(&zSumSq), E(&z1z1))
	E(&zSumSq).Subtract(E(&zSumSq), E(&z2z2))
	E(&z3).Multiply(E(&zSumSq), E(&h))

	var added Point[T, E]
	added.curve = p.curve
	added.x, added.y, added.z = x3, y3, z3

	var doubled Point[T, E]
	doubled.Double(p)

	var identity Point[T, E]
	identity.Identity(p.curve)

	var tmp Point[T, E]
	tmp.ConditionalSelect(&added, &doubled, isH0)
	v.ConditionalSelect(&tmp, &identity, isH0&(1^isR0))

	// p or q being the identity is itself an exceptional input to the
	// addition law above (Z=0 makes several of the intermediate terms
	// degenerate in ways isH0/isR0 do not capture); handle both ends
	// explicitly as a distinguished case.
	v.ConditionalSelect(v, q, p.IsIdentity())
	v.ConditionalSelect(v, p, q.IsIdentity())

	return v
}

// Subtract sets v = p-q, and returns v.
func (v *Point[T, E]) Subtract(p, q *Point[T, E]) *Point[T, E] {
	var negQ Point[T, E]
	negQ.Negate(q)
	return v.Add(p, &negQ)
}

// ToAffine sets ax, ay to the affine (x, y) coordinates of p, and
// returns 1 iff p is not the identity (for which affine coordinates
// do not exist and ax/ay are left as zero). This branches on
// IsIdentity and MUST only be called on points whose non-identity-ness
// is already public (e.g. at serialization time after validity checks,
// never mid-scalar-multiplication).
func (v *Point[T, E]) ToAffine(ax, ay E) uint64 {
	isId := v.IsIdentity()
	if isId == 1 {
		ax.Zero()
		ay.Zero()
		return 0
	}

	var zInv, zInv2, zInv3 T
	E(&zInv).Invert(v.ez())
	E(&zInv2).Square(E(&zInv))
	E(&zInv3).Multiply(E(&zInv2), E(&zInv))

	ax.Multiply(v.ex(), E(&zInv2))
	ay.Multiply(v.ey(), E(&zInv3))
	return 1
}

// SetAffine sets v from affine coordinates (x, y), which the caller
// MUST have already verified satisfy the curve equation, and returns v.
func (v *Point[T, E]) SetAffine(curve *Params[T, E], x, y E) *Point[T, E] {
	v.curve = curve
	v.ex().Set(x)
	v.ey().Set(y)
	v.ez().One()
	return v
}

// IsOnCurve returns 1 iff p's affine representative satisfies
// y^2 = x^3 + a*x + b, 0 otherwise. The identity is considered on-curve.
func IsOnCurve[T any, E field.Invertible[T]](curve *Params[T, E], p *Point[T, E]) uint64 {
	if p.IsIdentity() == 1 {
		return 1
	}
	var ax, ay T
	p.ToAffine(E(&ax), E(&ay))

	var lhs, rhs, x2, x3, ax_ T
	E(&lhs).Square(E(&ay))
	E(&x2).Square(E(&ax))
	E(&x3).Multiply(E(&x2), E(&ax))
	E(&ax_).Multiply(E(&ax), E(&curve.A))
	E(&rhs).Add(E(&x3), E(&ax_))
	E(&rhs).Add(E(&rhs), E(&curve.B))
	return E(&lhs).Equal(E(&rhs))
}
