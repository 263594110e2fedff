// Package p224 wires the generic short-Weierstrass point type in
// curve/shortw to NIST P-224's field and curve parameters.
package p224

import (
	"gitlab.com/ctcurve/ctcurve/curve/shortw"
	"gitlab.com/ctcurve/ctcurve/curves/p224/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/p224/internal/fr"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

// Scalar is an element of p224's scalar field Fr.
type Scalar = fr.Element

// params holds the curve's coefficients (y^2 = x^3 + a*x + b) and
// conventional generator, computed once at package init.
var params = newParams()

func newParams() *shortw.Params[fp.Element, *fp.Element] {
	p := &shortw.Params[fp.Element, *fp.Element]{}
	var three fp.Element
	three.One()
	three.Add(&three, &three)
	three.Add(&three, new(fp.Element).One())
	p.A.Negate(&three)

	var bBytes = [fp.ByteLength]byte{0xb4, 0x05, 0x0a, 0x85, 0x0c, 0x04, 0xb3, 0xab, 0xf5, 0x41, 0x32, 0x56, 0x50, 0x44, 0xb0, 0xb7, 0xd7, 0xbf, 0xd8, 0xba, 0x27, 0x0b, 0x39, 0x43, 0x23, 0x55, 0xff, 0xb4}
	if _, err := p.B.SetCanonicalBytes(&bBytes); err != nil {
		panic("p224: invalid b constant")
	}

	var gxBytes = [fp.ByteLength]byte{0xb7, 0x0e, 0x0c, 0xbd, 0x6b, 0xb4, 0xbf, 0x7f, 0x32, 0x13, 0x90, 0xb9, 0x4a, 0x03, 0xc1, 0xd3, 0x56, 0xc2, 0x11, 0x22, 0x34, 0x32, 0x80, 0xd6, 0x11, 0x5c, 0x1d, 0x21}
	var gyBytes = [fp.ByteLength]byte{0xbd, 0x37, 0x63, 0x88, 0xb5, 0xf7, 0x23, 0xfb, 0x4c, 0x22, 0xdf, 0xe6, 0xcd, 0x43, 0x75, 0xa0, 0x5a, 0x07, 0x47, 0x64, 0x44, 0xd5, 0x81, 0x99, 0x85, 0x00, 0x7e, 0x34}
	if _, err := p.Gx.SetCanonicalBytes(&gxBytes); err != nil {
		panic("p224: invalid generator x constant")
	}
	if _, err := p.Gy.SetCanonicalBytes(&gyBytes); err != nil {
		panic("p224: invalid generator y constant")
	}

	return p
}

// Point represents a point on p224.
type Point struct {
	inner shortw.Point[fp.Element, *fp.Element]
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
	return shortw.IsOnCurve[fp.Element, *fp.Element](params, &v.inner)
}
