package secp256k1

import (
	"errors"

	"gitlab.com/ctcurve/ctcurve/curves/secp256k1"
	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fp"
	"gitlab.com/ctcurve/ctcurve/internal/disalloweq"
)

// CoordSize is the size, in bytes, of a field element as used in an
// affine coordinate.
const CoordSize = fp.ByteLength

// Point represents a point on the secp256k1 curve. All arguments and
// receivers are allowed to alias. The zero value is NOT valid, and
// may only be used as a receiver.
type Point struct {
	_ disalloweq.DisallowEqual

	inner secp256k1.Point
}

// Identity sets `v = id`, and returns `v`.
func (v *Point) Identity() *Point {
	v.inner.Identity()
	return v
}

// Generator sets `v = G`, and returns `v`.
func (v *Point) Generator() *Point {
	v.inner.Generator()
	return v
}

// Add sets `v = p + q`, and returns `v`.
func (v *Point) Add(p, q *Point) *Point {
	v.inner.Add(&p.inner, &q.inner)
	return v
}

// Double sets `v = p + p`, and returns `v`.
func (v *Point) Double(p *Point) *Point {
	v.inner.Double(&p.inner)
	return v
}

// Subtract sets `v = p - q`, and returns `v`.
func (v *Point) Subtract(p, q *Point) *Point {
	v.inner.Subtract(&p.inner, &q.inner)
	return v
}

// Negate sets `v = -p`, and returns `v`.
func (v *Point) Negate(p *Point) *Point {
	v.inner.Negate(&p.inner)
	return v
}

// ConditionalSelect sets `v = a` iff `ctrl == 0`, `v = b` otherwise,
// and returns `v`.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	v.inner.ConditionalSelect(&a.inner, &b.inner, ctrl)
	return v
}

// Equal returns 1 iff `v == p`, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	return v.inner.Equal(&p.inner)
}

// IsIdentity returns 1 iff v is the identity point, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	return v.inner.IsIdentity()
}

// Set sets `v = p`, and returns `v`.
func (v *Point) Set(p *Point) *Point {
	v.inner = p.inner
	return v
}

// ConditionalNegate sets `v = p` iff `ctrl == 0`, `v = -p` otherwise,
// and returns `v`.
func (v *Point) ConditionalNegate(p *Point, ctrl uint64) *Point {
	var negP Point
	negP.Negate(p)
	return v.ConditionalSelect(p, &negP, ctrl)
}

// IsYOdd returns 1 iff the y-coordinate of `v`, in affine form, is odd,
// 0 otherwise. `v` MUST NOT be the point at infinity.
func (v *Point) IsYOdd() uint64 {
	_, y, isValid := v.inner.ToAffine()
	if isValid != 1 {
		panic("secp256k1: IsYOdd called on the point at infinity")
	}
	return y.IsOdd()
}

// XBytes returns the canonical encoding of the affine x-coordinate of
// `v`. `v` MUST NOT be the point at infinity.
func (v *Point) XBytes() ([]byte, error) {
	x, _, isValid := v.inner.ToAffine()
	if isValid != 1 {
		return nil, ErrInvalidPointEncoding
	}
	xBytes := x.Bytes()
	return xBytes[:], nil
}

// NewGeneratorPoint returns a new Point set to the canonical generator.
func NewGeneratorPoint() *Point {
	return new(Point).Generator()
}

// NewIdentityPoint returns a new Point set to the identity (point at
// infinity).
func NewIdentityPoint() *Point {
	return new(Point).Identity()
}

// NewPointFrom creates a new Point from another.
func NewPointFrom(p *Point) *Point {
	return new(Point).Set(p)
}

// ErrInvalidPointEncoding is returned when a byte string does not
// decode to a point on the curve.
var ErrInvalidPointEncoding = errors.New("secp256k1: invalid point encoding")

// NewPointFromCoords creates a new Point from affine (x, y)
// coordinates, returning an error if the coordinates are not on the
// curve.
func NewPointFromCoords(xBytes, yBytes *[CoordSize]byte) (*Point, error) {
	var x, y fp.Element
	if _, err := x.SetCanonicalBytes(xBytes); err != nil {
		return nil, ErrInvalidPointEncoding
	}
	if _, err := y.SetCanonicalBytes(yBytes); err != nil {
		return nil, ErrInvalidPointEncoding
	}

	p := new(Point)
	p.inner.SetAffine(&x, &y)
	if p.inner.IsOnCurve() != 1 {
		return nil, ErrInvalidPointEncoding
	}
	return p, nil
}
