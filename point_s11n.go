package secp256k1

import (
	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fp"
	"gitlab.com/ctcurve/ctcurve/field"
)

// CompressedPointSize is the size, in bytes, of a SEC1 compressed
// point encoding.
const CompressedPointSize = 1 + CoordSize

// UncompressedPointSize is the size, in bytes, of a SEC1 uncompressed
// point encoding.
const UncompressedPointSize = 1 + 2*CoordSize

// fpSqrtExponent is (p+1)/4, the public exponent used to take square
// roots in Fp via Tonelli-Shanks' p = 3 (mod 4) special case: since
// secp256k1's p is 3 (mod 4), a^((p+1)/4) is a square root of a
// whenever one exists.
var fpSqrtExponent = [CoordSize]byte{
	0x3f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xbf, 0xff, 0xff, 0x0c,
}

func fpSqrt(dst, a *fp.Element) {
	bitAt := func(i int) uint64 {
		byteIdx := i / 8
		bitInByte := 7 - uint(i%8)
		return uint64((fpSqrtExponent[byteIdx] >> bitInByte) & 1)
	}
	field.Pow[fp.Element, *fp.Element](dst, a, CoordSize*8, bitAt)
}

// curveB is the secp256k1 short-Weierstrass curve equation's constant
// term, y^2 = x^3 + 7.
func curveB() fp.Element {
	var b fp.Element
	b.One()
	for i := 0; i < 6; i++ {
		b.Add(&b, new(fp.Element).One())
	}
	return b
}

// liftX recovers the y-coordinate for a given x-coordinate and parity,
// per SEC1's point decompression (y = sqrt(x^3+b)), returning an error
// if x does not correspond to a point on the curve.
func liftX(x *fp.Element, wantOdd uint64) (xBytes, yBytes [CoordSize]byte, err error) {
	var x2, x3, y2, b, y fp.Element
	x2.Square(x)
	x3.Multiply(&x2, x)
	b = curveB()
	y2.Add(&x3, &b)
	fpSqrt(&y, &y2)

	var check fp.Element
	check.Square(&y)
	if check.Equal(&y2) != 1 {
		return xBytes, yBytes, ErrInvalidPointEncoding
	}

	var negY fp.Element
	negY.Negate(&y)
	y.ConditionalSelect(&y, &negY, y.IsOdd()^wantOdd)

	xb := x.Bytes()
	yb := y.Bytes()
	copy(xBytes[:], xb[:])
	copy(yBytes[:], yb[:])
	return xBytes, yBytes, nil
}

// prefixIdentity is the single-byte SEC1 encoding of the point at
// infinity: neither the compressed nor uncompressed tag bytes below
// ever collide with it, so its length alone is unambiguous.
const prefixIdentity = 0x00

// CompressedBytes returns the SEC1 compressed encoding of v.
func (v *Point) CompressedBytes() []byte {
	x, y, isValid := v.inner.ToAffine()
	if isValid != 1 {
		return []byte{prefixIdentity}
	}
	out := make([]byte, CompressedPointSize)
	xBytes := x.Bytes()
	copy(out[1:], xBytes[:])
	out[0] = 0x02 | byte(y.IsOdd())
	return out
}

// UncompressedBytes returns the SEC1 uncompressed encoding of v.
func (v *Point) UncompressedBytes() []byte {
	x, y, isValid := v.inner.ToAffine()
	if isValid != 1 {
		return []byte{prefixIdentity}
	}
	out := make([]byte, UncompressedPointSize)
	out[0] = 0x04
	xBytes := x.Bytes()
	yBytes := y.Bytes()
	copy(out[1:1+CoordSize], xBytes[:])
	copy(out[1+CoordSize:], yBytes[:])
	return out
}

// Bytes returns the SEC1 uncompressed encoding of v.
func (v *Point) Bytes() []byte {
	return v.UncompressedBytes()
}

// NewPointFromBytes creates a new Point from its SEC1 compressed or
// uncompressed encoding, returning an error if the encoding is
// malformed or does not decode to a point on the curve.
func NewPointFromBytes(b []byte) (*Point, error) {
	if len(b) < 1 {
		return nil, ErrInvalidPointEncoding
	}

	switch b[0] {
	case prefixIdentity:
		if len(b) != 1 {
			return nil, ErrInvalidPointEncoding
		}
		return NewIdentityPoint(), nil
	case 0x02, 0x03:
		if len(b) != CompressedPointSize {
			return nil, ErrInvalidPointEncoding
		}
		var rawX [CoordSize]byte
		copy(rawX[:], b[1:])

		var x fp.Element
		if _, err := x.SetCanonicalBytes(&rawX); err != nil {
			return nil, ErrInvalidPointEncoding
		}

		xBytes, yBytes, err := liftX(&x, uint64(b[0]&1))
		if err != nil {
			return nil, err
		}
		return NewPointFromCoords(&xBytes, &yBytes)
	case 0x04:
		if len(b) != UncompressedPointSize {
			return nil, ErrInvalidPointEncoding
		}
		var xBytes, yBytes [CoordSize]byte
		copy(xBytes[:], b[1:1+CoordSize])
		copy(yBytes[:], b[1+CoordSize:])
		return NewPointFromCoords(&xBytes, &yBytes)
	default:
		return nil, ErrInvalidPointEncoding
	}
}

// SetBytes sets v from its SEC1 compressed or uncompressed encoding,
// and returns v and an error, if any.
func (v *Point) SetBytes(b []byte) (*Point, error) {
	p, err := NewPointFromBytes(b)
	if err != nil {
		return nil, err
	}
	return v.Set(p), nil
}
