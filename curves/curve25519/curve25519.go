// Package curve25519 wires the generic twisted-Edwards point type in
// curve/edwards to Curve25519's field and curve parameters, i.e. the
// group underlying Ed25519 (RFC 8032): -x^2 + y^2 = 1 + d*x^2*y^2 over
// Fp = GF(2^255-19), with d = -121665/121666 and the conventional base
// point of order l = 2^252 + 27742317777372353535851937790883648493.
package curve25519

import (
	"gitlab.com/ctcurve/ctcurve/curve/edwards"
	"gitlab.com/ctcurve/ctcurve/curves/curve25519/internal/fp"
	"gitlab.com/ctcurve/ctcurve/curves/curve25519/internal/fr"
	"gitlab.com/ctcurve/ctcurve/scalarmul"
)

// Scalar is an element of Curve25519's scalar field Fr (i.e. mod l).
type Scalar = fr.Element

// params holds the curve's coefficients and conventional base point,
// computed once at package init.
var params = newParams()

func newParams() *edwards.Params[fp.Element, *fp.Element] {
	p := &edwards.Params[fp.Element, *fp.Element]{}

	var one fp.Element
	one.One()
	p.A.Negate(&one)

	var dBytes = [fp.ByteLength]byte{0x52, 0x03, 0x6c, 0xee, 0x2b, 0x6f, 0xfe, 0x73, 0x8c, 0xc7, 0x40, 0x79, 0x77, 0x79, 0xe8, 0x98, 0x00, 0x70, 0x0a, 0x4d, 0x41, 0x41, 0xd8, 0xab, 0x75, 0xeb, 0x4d, 0xca, 0x13, 0x59, 0x78, 0xa3}
	if _, err := p.D.SetCanonicalBytes(&dBytes); err != nil {
		panic("curve25519: invalid d constant")
	}

	var gxBytes = [fp.ByteLength]byte{0x21, 0x69, 0x36, 0xd3, 0xcd, 0x6e, 0x53, 0xfe, 0xc0, 0xa4, 0xe2, 0x31, 0xfd, 0xd6, 0xdc, 0x5c, 0x69, 0x2c, 0xc7, 0x60, 0x95, 0x25, 0xa7, 0xb2, 0xc9, 0x56, 0x2d, 0x60, 0x8f, 0x25, 0xd5, 0x1a}
	var gyBytes = [fp.ByteLength]byte{0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x58}
	if _, err := p.Gx.SetCanonicalBytes(&gxBytes); err != nil {
		panic("curve25519: invalid generator x constant")
	}
	if _, err := p.Gy.SetCanonicalBytes(&gyBytes); err != nil {
		panic("curve25519: invalid generator y constant")
	}

	return p
}

// Point represents a point on the Curve25519/Ed25519 group.
type Point struct {
	inner edwards.Point[fp.Element, *fp.Element]
}

// Identity sets v to the neutral element, and returns v.
func (v *Point) Identity() *Point {
	v.inner.Identity(params)
	return v
}

// Generator sets v to the conventional base point, and returns v.
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

// IsIdentity returns 1 iff v is the neutral element, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	return v.inner.IsIdentity()
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise, and
// returns v.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	v.inner.ConditionalSelect(&a.inner, &b.inner, ctrl)
	return v
}

// ToAffine returns the affine (x, y) coordinates of p.
func (v *Point) ToAffine() (fp.Element, fp.Element) {
	var x, y fp.Element
	v.inner.ToAffine(&x, &y)
	return x, y
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
// curve equation, 0 otherwise.
func (v *Point) IsOnCurve() uint64 {
	return edwards.IsOnCurve[fp.Element, *fp.Element](params, &v.inner)
}
