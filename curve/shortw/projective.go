package shortw

import (
	"gitlab.com/ctcurve/ctcurve/field"
)

// Projective is a point on a short-Weierstrass curve with a = 0, held in
// homogeneous projective coordinates (x = X/Z, y = Y/Z; the identity is
// X = 0, Z = 0).
//
// Unlike Point (Jacobian, which carries two documented exceptional
// inputs resolved by branching), every routine on Projective is the
// Renes-Costello-Batina 2015 complete addition law specialized to
// a = 0: correct for every pair of inputs, including P == Q, P == -Q,
// and either operand at infinity, with no case analysis anywhere in
// the routine. Curves with a != 0 (P-224, P-256) stay on Point; the
// a = 0 pairing-friendly and short-Weierstrass curves in this module
// (secp256k1, BN254, BLS12-381, Pallas, Vesta) use Projective so their
// scalar multiplication never branches on point structure.
type Projective[T any, E field.Invertible[T]] struct {
	x, y, z T
	curve   *Params[T, E]
}

func (v *Projective[T, E]) ex() E { return E(&v.x) }
func (v *Projective[T, E]) ey() E { return E(&v.y) }
func (v *Projective[T, E]) ez() E { return E(&v.z) }

// RawX exposes the projective X coordinate directly (x = X/Z), for
// curve-specific endomorphisms (e.g. GLV's phi(X,Y,Z) = (beta*X,Y,Z))
// that act on X alone.
func (v *Projective[T, E]) RawX() E { return v.ex() }

// SetRawX overwrites the projective X coordinate directly; see RawX.
func (v *Projective[T, E]) SetRawX(x E) { v.ex().Set(x) }

// Identity sets v to the point at infinity (X=Z=0) on curve, and
// returns v.
func (v *Projective[T, E]) Identity(curve *Params[T, E]) *Projective[T, E] {
	v.curve = curve
	v.ex().Zero()
	v.ey().One()
	v.ez().Zero()
	return v
}

// Generator sets v to curve's conventional base point, and returns v.
func (v *Projective[T, E]) Generator(curve *Params[T, E]) *Projective[T, E] {
	v.curve = curve
	v.ex().Set(E(&curve.Gx))
	v.ey().Set(E(&curve.Gy))
	v.ez().One()
	return v
}

// Set sets v = p, and returns v.
func (v *Projective[T, E]) Set(p *Projective[T, E]) *Projective[T, E] {
	v.curve = p.curve
	v.ex().Set(p.ex())
	v.ey().Set(p.ey())
	v.ez().Set(p.ez())
	return v
}

// IsIdentity returns 1 iff v is the point at infinity, 0 otherwise.
func (v *Projective[T, E]) IsIdentity() uint64 {
	return v.ex().IsZero() & v.ez().IsZero()
}

// Negate sets v = -p, and returns v.
func (v *Projective[T, E]) Negate(p *Projective[T, E]) *Projective[T, E] {
	v.curve = p.curve
	v.ex().Set(p.ex())
	v.ey().Negate(p.ey())
	v.ez().Set(p.ez())
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v. ctrl MUST be 0 or 1.
func (v *Projective[T, E]) ConditionalSelect(a, b *Projective[T, E], ctrl uint64) *Projective[T, E] {
	v.curve = a.curve
	v.ex().ConditionalSelect(a.ex(), b.ex(), ctrl)
	v.ey().ConditionalSelect(a.ey(), b.ey(), ctrl)
	v.ez().ConditionalSelect(a.ez(), b.ez(), ctrl)
	return v
}

// Equal returns 1 iff v and p represent the same curve point (comparing
// X*Z' == X'*Z and Y*Z' == Y'*Z), 0 otherwise.
func (v *Projective[T, E]) Equal(p *Projective[T, E]) uint64 {
	var xz, xz2, yz, yz2 T
	E(&xz).Multiply(v.ex(), p.ez())
	E(&xz2).Multiply(p.ex(), v.ez())
	E(&yz).Multiply(v.ey(), p.ez())
	E(&yz2).Multiply(p.ey(), v.ez())

	xEq := E(&xz).Equal(E(&xz2))
	yEq := E(&yz).Equal(E(&yz2))
	bothInf := v.IsIdentity() & p.IsIdentity()
	neitherInf := 1 ^ (v.IsIdentity() | p.IsIdentity())

	return bothInf | (neitherInf & xEq & yEq)
}

// threeB returns 3*curve.B, the only curve-dependent constant the a=0
// complete formulas need.
func threeB[T any, E field.Invertible[T]](curve *Params[T, E]) T {
	var b3 T
	E(&b3).Add(E(&curve.B), E(&curve.B))
	E(&b3).Add(E(&b3), E(&curve.B))
	return b3
}

// Add sets v = p+q using the Renes-Costello-Batina 2015 complete
// addition law (Algorithm 7 of that paper, specialized to a = 0), and
// returns v. Safe to call with any combination of operands, including
// p == q, p == -q, or either at infinity -- no case analysis is
// performed anywhere in this routine, by construction.
func (v *Projective[T, E]) Add(p, q *Projective[T, E]) *Projective[T, E] {
	curve := p.curve
	x1, y1, z1 := p.ex(), p.ey(), p.ez()
	x2, y2, z2 := q.ex(), q.ey(), q.ez()
	b3 := threeB[T, E](curve)

	var t0, t1, t2, t3, t4, x3, y3, z3 T
	e := func(t *T) E { return E(t) }

	e(&t0).Multiply(x1, x2) // t0 = X1*X2
	e(&t1).Multiply(y1, y2) // t1 = Y1*Y2
	e(&t2).Multiply(z1, z2) // t2 = Z1*Z2

	var sumXY1, sumXY2 T
	e(&sumXY1).Add(x1, y1)
	e(&sumXY2).Add(x2, y2)
	e(&t3).Multiply(e(&sumXY1), e(&sumXY2))
	var t0t1 T
	e(&t0t1).Add(e(&t0), e(&t1))
	e(&t3).Subtract(e(&t3), e(&t0t1)) // t3 = (X1+Y1)(X2+Y2)-(t0+t1)

	var sumYZ1, sumYZ2 T
	e(&sumYZ1).Add(y1, z1)
	e(&sumYZ2).Add(y2, z2)
	e(&t4).Multiply(e(&sumYZ1), e(&sumYZ2))
	var t1t2 T
	e(&t1t2).Add(e(&t1), e(&t2))
	e(&t4).Subtract(e(&t4), e(&t1t2)) // t4 = (Y1+Z1)(Y2+Z2)-(t1+t2)

	var sumXZ1, sumXZ2 T
	e(&sumXZ1).Add(x1, z1)
	e(&sumXZ2).Add(x2, z2)
	e(&x3).Multiply(e(&sumXZ1), e(&sumXZ2))
	var t0t2 T
	e(&t0t2).Add(e(&t0), e(&t2))
	e(&y3).Subtract(e(&x3), e(&t0t2)) // y3 = (X1+Z1)(X2+Z2)-(t0+t2)

	e(&x3).Add(e(&t0), e(&t0))
	e(&t0).Add(e(&x3), e(&t0)) // t0 = 3*t0
	e(&t2).Multiply(e(&b3), e(&t2))
	e(&z3).Add(e(&t1), e(&t2))
	e(&t1).Subtract(e(&t1), e(&t2))
	e(&y3).Multiply(e(&b3), e(&y3))

	e(&x3).Multiply(e(&t4), e(&y3))
	var tt T
	e(&tt).Multiply(e(&t3), e(&t1))
	e(&x3).Subtract(e(&tt), e(&x3))

	e(&y3).Multiply(e(&y3), e(&t0))
	e(&t1).Multiply(e(&t1), e(&z3))
	e(&y3).Add(e(&t1), e(&y3))

	e(&t0).Multiply(e(&t0), e(&t3))
	e(&z3).Multiply(e(&z3), e(&t4))
	e(&z3).Add(e(&z3), e(&t0))

	v.curve = curve
	v.ex().Set(e(&x3))
	v.ey().Set(e(&y3))
	v.ez().Set(e(&z3))
	return v
}

// AddMixed sets v = p+q where q is given in affine coordinates
// (Z=1 implicitly), using Renes-Costello-Batina Algorithm 8 specialized
// to a = 0. This saves one multiplication relative to Add whenever the
// second operand comes straight out of a precomputed lookup table.
// Complete in the same sense as Add: no case analysis on p, q.
func (v *Projective[T, E]) AddMixed(p *Projective[T, E], qx, qy E) *Projective[T, E] {
	curve := p.curve
	x1, y1, z1 := p.ex(), p.ey(), p.ez()
	x2, y2 := qx, qy
	b3 := threeB[T, E](curve)

	var t0, t1, t2, t3, t4, x3, y3, z3 T
	e := func(t *T) E { return E(t) }

	e(&t0).Multiply(x1, x2) // t0 = X1*X2
	e(&t1).Multiply(y1, y2) // t1 = Y1*Y2

	var sumXY1, sumXY2 T
	e(&sumXY1).Add(x2, y2)
	e(&sumXY2).Add(x1, y1)
	e(&t3).Multiply(e(&sumXY1), e(&sumXY2))
	var t0t1 T
	e(&t0t1).Add(e(&t0), e(&t1))
	e(&t3).Subtract(e(&t3), e(&t0t1)) // t3 = (X2+Y2)(X1+Y1)-(t0+t1)

	e(&t4).Multiply(y2, z1)
	e(&t4).Add(e(&t4), y1) // t4 = Y2*Z1+Y1

	e(&y3).Multiply(x2, z1)
	e(&y3).Add(e(&y3), x1) // y3 = X2*Z1+X1

	e(&x3).Add(e(&t0), e(&t0))
	e(&t0).Add(e(&x3), e(&t0)) // t0 = 3*t0
	e(&t2).Multiply(e(&b3), z1)
	e(&z3).Add(e(&t1), e(&t2))
	e(&t1).Subtract(e(&t1), e(&t2))
	e(&y3).Multiply(e(&b3), e(&y3))

	e(&x3).Multiply(e(&t4), e(&y3))
	var tt T
	e(&tt).Multiply(e(&t3), e(&t1))
	e(&x3).Subtract(e(&tt), e(&x3))

	e(&y3).Multiply(e(&y3), e(&t0))
	e(&t1).Multiply(e(&t1), e(&z3))
	e(&y3).Add(e(&t1), e(&y3))

	e(&t0).Multiply(e(&t0), e(&t3))
	e(&z3).Multiply(e(&z3), e(&t4))
	e(&z3).Add(e(&z3), e(&t0))

	v.curve = curve
	v.ex().Set(e(&x3))
	v.ey().Set(e(&y3))
	v.ez().Set(e(&z3))
	return v
}

// Double sets v = p+p using the Renes-Costello-Batina complete
// doubling law (Algorithm 9 of that paper, specialized to a = 0), and
// returns v. Valid for any input, including the identity.
func (v *Projective[T, E]) Double(p *Projective[T, E]) *Projective[T, E] {
	curve := p.curve
	x, y, z := p.ex(), p.ey(), p.ez()
	b3 := threeB[T, E](curve)

	var t0, t1, t2, x3, y3, z3 T
	e := func(t *T) E { return E(t) }

	e(&t0).Square(y)      // t0 = Y^2
	e(&z3).Add(e(&t0), e(&t0))
	e(&z3).Add(e(&z3), e(&z3))
	e(&z3).Add(e(&z3), e(&z3)) // z3 = 4*t0

	e(&t1).Multiply(y, z) // t1 = Y*Z
	e(&t2).Square(z)      // t2 = Z^2
	e(&t2).Multiply(e(&b3), e(&t2))

	e(&x3).Multiply(e(&t2), e(&z3))
	e(&y3).Add(e(&t0), e(&t2))
	e(&z3).Multiply(e(&t1), e(&z3))

	var t1b T
	e(&t1b).Add(e(&t2), e(&t2))
	e(&t2).Add(e(&t1b), e(&t2)) // t2 = 3*t2

	e(&t0).Subtract(e(&t0), e(&t2))
	e(&y3).Multiply(e(&t0), e(&y3))
	e(&y3).Add(e(&x3), e(&y3))

	e(&t1).Multiply(x, y)
	e(&x3).Multiply(e(&t0), e(&t1))
	e(&x3).Add(e(&x3), e(&x3))

	v.curve = curve
	v.ex().Set(e(&x3))
	v.ey().Set(e(&y3))
	v.ez().Set(e(&z3))
	return v
}

// Subtract sets v = p-q, and returns v.
func (v *Projective[T, E]) Subtract(p, q *Projective[T, E]) *Projective[T, E] {
	var negQ Projective[T, E]
	negQ.Negate(q)
	return v.Add(p, &negQ)
}

// ToAffine sets ax, ay to the affine (x, y) coordinates of p, and
// returns 1 iff p is not the identity (for which affine coordinates do
// not exist and ax/ay are left as zero). This branches on
// IsIdentity and MUST only be called on points whose non-identity-ness
// is already public (e.g. at serialization time after validity checks,
// never mid-scalar-multiplication).
func (v *Projective[T, E]) ToAffine(ax, ay E) uint64 {
	isId := v.IsIdentity()
	if isId == 1 {
		ax.Zero()
		ay.Zero()
		return 0
	}

	var zInv T
	E(&zInv).Invert(v.ez())
	ax.Multiply(v.ex(), E(&zInv))
	ay.Multiply(v.ey(), E(&zInv))
	return 1
}

// SetAffine sets v from affine coordinates (x, y), which the caller
// MUST have already verified satisfy the curve equation, and returns v.
func (v *Projective[T, E]) SetAffine(curve *Params[T, E], x, y E) *Projective[T, E] {
	v.curve = curve
	v.ex().Set(x)
	v.ey().Set(y)
	v.ez().One()
	return v
}

// IsOnCurve returns 1 iff p's affine representative satisfies
// y^2 = x^3 + b (a = 0), 0 otherwise. The identity is considered
// on-curve.
func IsOnCurveProjective[T any, E field.Invertible[T]](curve *Params[T, E], p *Projective[T, E]) uint64 {
	if p.IsIdentity() == 1 {
		return 1
	}
	var ax, ay T
	p.ToAffine(E(&ax), E(&ay))

	var lhs, rhs, x2, x3 T
	E(&lhs).Square(E(&ay))
	E(&x2).Square(E(&ax))
	E(&x3).Multiply(E(&x2), E(&ax))
	E(&rhs).Add(E(&x3), E(&curve.B))
	return E(&lhs).Equal(E(&rhs))
}
