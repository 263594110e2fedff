// Package p256 wires the generic short-Weierstrass point type in
// curve/shortw to NIST P-256's field and curve parameters.
package p256

import (
	"gitlab.com/ctcurve/ctcurve/curve/shortw"
	"gitlab.com/ctcurve/ctcurve/curves/p256/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/p256/internal/fr"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

// Scalar is an element of p256's scalar field Fr.
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

	var bBytes = [fp.ByteLength]byte{0x5a, 0xc6, 0x35, 0xd8, 0xaa, 0x3a, 0x93, 0xe7, 0xb3, 0xeb, 0xbd, 0x55, 0x76, 0x98, 0x86, 0xbc, 0x65, 0x1d, 0x06, 0xb0, 0xcc, 0x53, 0xb0, 0xf6, 0x3b, 0xce, 0x3c, 0x3e, 0x27, 0xd2, 0x60, 0x4b}
	if _, err := p.B.SetCanonicalBytes(&bBytes); err != nil {
		panic("p256: invalid b constant")
	}

	var gxBytes = [fp.ByteLength]byte{0x6b, 0x17, 0xd1, 0xf2, 0xe1, 0x2c, 0x42, 0x47, 0xf8, 0xbc, 0xe6, 0xe5, 0x63, 0xa4, 0x40, 0xf2, 0x77, 0x03, 0x7d, 0x81, 0x2d, 0xeb, 0x33, 0xa0, 0xf4, 0xa1, 0x39, 0x45, 0xd8, 0x98, 0xc2, 0x96}
	var gyBytes = [fp.ByteLength]byte{0x4f, 0xe3, 0x42, 0xe2, 0xfe, 0x1a, 0x7f, 0x9b, 0x8e, 0xe7, 0xeb, 0x4a, 0x7c, 0x0f, 0x9e, 0x16, 0x2b, 0xce, 0x33, 0x57, 0x6b, 0x31, 0x5e, 0xce, 0xcb, 0xb6, 0x40, 0x68, 0x37, 0xbf, 0x51, 0xf5}
	if _, err := p.Gx.SetCanonicalBytes(&gxBytes); err != nil {
		panic("p256: invalid generator x constant")
	}
	if _, err := p.Gy.SetCanonicalBytes(&gyBytes); err != nil {
		panic("p256: invalid generator y constant")
	}

	return p
}

// Point represents a point on p256.
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
