// Package secp256k1 wires the generic short-Weierstrass point type in
// curve/shortw to secp256k1's field and curve parameters.
package secp256k1

import (
	"gitlab.com/ctcurve/ctcurve/curve/shortw"
	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fr"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

// Scalar is an element of secp256k1's scalar field Fr.
type Scalar = fr.Element

// params holds the curve's coefficients (y^2 = x^3 + a*x + b) and
// conventional generator, computed once at package init.
var params = newParams()

func newParams() *shortw.Params[fp.Element, *fp.Element] {
	p := &shortw.Params[fp.Element, *fp.Element]{}
	p.A.Zero()

	p.B.One()
	p.B.Add(&p.B, new(fp.Element).One())
	p.B.Add(&p.B, new(fp.Element).One())
	p.B.Add(&p.B, new(fp.Element).One())
	p.B.Add(&p.B, new(fp.Element).One())
	p.B.Add(&p.B, new(fp.Element).One())
	p.B.Add(&p.B, new(fp.Element).One())

	var gxBytes = [fp.ByteLength]byte{0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac, 0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07, 0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9, 0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98}
	var gyBytes = [fp.ByteLength]byte{0x48, 0x3a, 0xda, 0x77, 0x26, 0xa3, 0xc4, 0x65, 0x5d, 0xa4, 0xfb, 0xfc, 0x0e, 0x11, 0x08, 0xa8, 0xfd, 0x17, 0xb4, 0x48, 0xa6, 0x85, 0x54, 0x19, 0x9c, 0x47, 0xd0, 0x8f, 0xfb, 0x10, 0xd4, 0xb8}
	if _, err := p.Gx.SetCanonicalBytes(&gxBytes); err != nil {
		panic("secp256k1: invalid generator x constant")
	}
	if _, err := p.Gy.SetCanonicalBytes(&gyBytes); err != nil {
		panic("secp256k1: invalid generator y constant")
	}

	return p
}

// Point represents a point on secp256k1. secp256k1 has a = 0, so points
// are held in the complete-formula Projective representation rather
// than Jacobian (see curve/shortw.Projective).
type Point struct {
	inner shortw.Projective[fp.Element, *fp.Element]
}

// Identity sets v to the point at infinity, and returns v.
func (v *Point) Identity() *Point {
	v.inner.Identity(params)
	return v
}

// Generator sets v to the conventional generator, and returns v.
func (v *Point) Generator() *Point {
	v.inner.Generator(params)
	return v
}

// Add sets v = p+q, and returns v.
func (v *Point) Add(p, q *Point) *Point {
	v.inner.Add(&p.inner, &q.inner)
	return v
}

// Double sets v = p+p, and returns v.
func (v *Point) Double(p *Point) *Point {
	v.inner.Double(&p.inner)
	return v
}

// Subtract sets v = p-q, and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	v.inner.Subtract(&p.inner, &q.inner)
	return v
}

// Negate sets v = -p, and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.inner.Negate(&p.inner)
	return v
}

// Equal returns 1 iff v and p are the same point, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	return v.inner.Equal(&p.inner)
}

// IsIdentity returns 1 iff v is the point at infinity, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	return v.inner.IsIdentity()
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	v.inner.ConditionalSelect(&a.inner, &b.inner, ctrl)
	return v
}

// ToAffine returns the affine (x, y) coordinates of p and 1, or
// (0, 0, 0) if p is the identity.
func (v *Point) ToAffine() (fp.Element, fp.Element, uint64) {
	var x, y fp.Element
	ok := v.inner.ToAffine(&x, &y)
	return x, y, ok
}

// ScalarMult sets v = s*p, and returns v, using the constant-time GLV
// decomposition (ScalarMultGLV) to roughly halve the number of point
// doublings needed versus a full-width walk.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	return v.ScalarMultGLV(s, p)
}

// ScalarMultPlain sets v = s*p using a fixed-iteration
// double-and-always-add walk over s's bits, without the GLV
// endomorphism shortcut, and returns v. Kept for cross-checking
// ScalarMultGLV against the textbook algorithm in tests.
func (v *Point) ScalarMultPlain(s *Scalar, p *Point) *Point {
	v.Identity()
	sBytes := s.Bytes()
	scalarmul.ScalarMul(&v.inner, &p.inner, fr.ByteLength*8, scalarmul.BitAtBigEndianBytes(sBytes[:], fr.ByteLength*8))
	return v
}

// ScalarBaseMult sets v = s*G, and returns v.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	var g Point
	g.Generator()
	return v.ScalarMult(s, &g)
}

// IsOnCurve returns 1 iff v's affine representative satisfies the
// curve equation, 0 otherwise. The identity is considered on-curve.
func (v *Point) IsOnCurve() uint64 {
	return shortw.IsOnCurveProjective[fp.Element, *fp.Element](params, &v.inner)
}

// SetAffine sets v from affine coordinates (x, y), which the caller
// MUST have already verified satisfy the curve equation (e.g. via
// IsOnCurve after calling this), and returns v.
func (v *Point) SetAffine(x, y *fp.Element) *Point {
	v.inner.SetAffine(params, x, y)
	return v
}
