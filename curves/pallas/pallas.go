// Package pallas wires the generic short-Weierstrass point type in
// curve/shortw to the Pallas curve (Vesta's scalar field is Pallas's base field)'s field and curve parameters.
package pallas

import (
	"gitlab.com/ctcurve/ctcurve/curve/shortw"
	"gitlab.com/ctcurve/ctcurve/curves/pallas/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/pallas/internal/fr"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

// Scalar is an element of pallas's scalar field Fr.
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

	var gxBytes = [fp.ByteLength]byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x22, 0x46, 0x98, 0xfc, 0x09, 0x94, 0xa8, 0xdd, 0x8c, 0x46, 0xeb, 0x21, 0x00, 0x00, 0x00, 0x00}
	var gyBytes = [fp.ByteLength]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02}
	if _, err := p.Gx.SetCanonicalBytes(&gxBytes); err != nil {
		panic("pallas: invalid generator x constant")
	}
	if _, err := p.Gy.SetCanonicalBytes(&gyBytes); err != nil {
		panic("pallas: invalid generator y constant")
	}

	return p
}

// Point represents a point on pallas. Pallas has a = 0, so points are
// held in the complete-formula Projective representation rather than
// Jacobian (see curve/shortw.Projective).
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

// ScalarMult sets v = s*p using a fixed-iteration double-and-always-add
// walk over s's bits, and returns v.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
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
