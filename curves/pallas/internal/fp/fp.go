// Package fp implements constant-time Montgomery-form arithmetic for
// the Pallas curve's base field Fp (= Vesta's scalar field Fr).
//
// This package is generated glue over internal/limbs4: it supplies the
// modulus-specific constants (m0inv, R^2 mod m, and the Fermat inversion
// exponent m-2) and exposes the field.Element/field.Invertible method set
// so the generic helpers in package field (Pow, BatchInvert, SumProduct)
// monomorphize against it.
package fp

import (
	"crypto/rand"
	"errors"
	"io"

	"gitlab.com/ctcurve/ctcurve/internal/disalloweq"
	"gitlab.com/ctcurve/ctcurve/internal/limbs4"
)

// ByteLength is the size of a field element's canonical big-endian
// encoding.
const ByteLength = 32

// Element is a field element in Montgomery form.  The zero value is NOT a
// valid element; use Zero, One, or one of the constructors.
type Element struct {
	m limbs4.Limbs

	_ disalloweq.DisallowEqual
}

var modulus = limbs4.Limbs{0x8c46eb2100000001, 0x224698fc0994a8dd, 0x0000000000000000, 0x4000000000000000}

const m0inv limbs4.Word = 0x8c46eb20ffffffff

var r2ModM = limbs4.Limbs{0xfc9678ff0000000f, 0x67bb433d891a16e3, 0x7fae231004ccf590, 0x096d41af7ccfdaa9}

var montOne = limbs4.Limbs{0x5b2b3e9cfffffffd, 0x992c350be3420567, 0xffffffffffffffff, 0x3fffffffffffffff}

// invExponent is m-2, the public exponent for Fermat-style inversion.
var invExponent = limbs4.Limbs{0x8c46eb20ffffffff, 0x224698fc0994a8dd, 0x0000000000000000, 0x4000000000000000}

const invExponentBits = 255

// Zero sets dst = 0 and returns dst.
func (dst *Element) Zero() *Element {
	dst.m = limbs4.Limbs{}
	return dst
}

// One sets dst = 1 and returns dst.
func (dst *Element) One() *Element {
	dst.m = montOne
	return dst
}

// Set sets dst = a and returns dst.
func (dst *Element) Set(a *Element) *Element {
	dst.m = a.m
	return dst
}

// Add sets dst = a+b and returns dst.
func (dst *Element) Add(a, b *Element) *Element {
	limbs4.AddMod(&dst.m, &a.m, &b.m, &modulus)
	return dst
}

// Subtract sets dst = a-b and returns dst.
func (dst *Element) Subtract(a, b *Element) *Element {
	limbs4.SubMod(&dst.m, &a.m, &b.m, &modulus)
	return dst
}

// Negate sets dst = -a and returns dst.
func (dst *Element) Negate(a *Element) *Element {
	limbs4.NegMod(&dst.m, &a.m, &modulus)
	return dst
}

// Multiply sets dst = a*b and returns dst.
func (dst *Element) Multiply(a, b *Element) *Element {
	limbs4.MontMul(&dst.m, &a.m, &b.m, &modulus, m0inv)
	return dst
}

// Square sets dst = a*a and returns dst.
func (dst *Element) Square(a *Element) *Element {
	limbs4.MontSquare(&dst.m, &a.m, &modulus, m0inv)
	return dst
}

// Pow2k sets dst = a^(2^k) via k repeated squarings, and returns dst.
func (dst *Element) Pow2k(a *Element, k int) *Element {
	dst.Set(a)
	for i := 0; i < k; i++ {
		dst.Square(dst)
	}
	return dst
}

// Invert sets dst = a^-1 via constant-time Fermat exponentiation (a^(m-2)),
// and returns dst.  Invert(0) is defined to be 0.
func (dst *Element) Invert(a *Element) *Element {
	limbs4.Pow(&dst.m, &a.m, &modulus, m0inv, &invExponent, invExponentBits, &montOne)
	return dst
}

// InvertVartime sets dst = a^-1 using a variable-time extended-Euclidean
// inverse, for use only on public values.  Returns false if a is zero.
func (dst *Element) InvertVartime(a *Element) bool {
	var aSat, invSat, mSat limbs4.Limbs
	limbs4.FromMont(&aSat, &a.m, &modulus, m0inv)
	mSat = modulus
	if !limbs4.InvModVartime(&invSat, &aSat, &mSat) {
		return false
	}
	limbs4.ToMont(&dst.m, &invSat, &modulus, m0inv, &r2ModM)
	return true
}

// ConditionalSelect sets dst = a iff ctrl == 0, dst = b otherwise, and
// returns dst.  ctrl MUST be 0 or 1.
func (dst *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	limbs4.CSelect(&dst.m, &a.m, &b.m, ctrl)
	return dst
}

// Equal returns 1 iff dst == a, 0 otherwise, in constant time.
func (dst *Element) Equal(a *Element) uint64 {
	return limbs4.AreEqual(&dst.m, &a.m)
}

// IsZero returns 1 iff dst == 0, 0 otherwise, in constant time.
func (dst *Element) IsZero() uint64 {
	return limbs4.IsZeroLimbs(&dst.m)
}

// IsOdd returns 1 iff the canonical (non-Montgomery) representative of dst
// is odd, 0 otherwise.
func (dst *Element) IsOdd() uint64 {
	var sat limbs4.Limbs
	limbs4.FromMont(&sat, &dst.m, &modulus, m0inv)
	return sat[0] & 1
}

// Bytes returns the big-endian canonical encoding of dst.
func (dst *Element) Bytes() [ByteLength]byte {
	var sat limbs4.Limbs
	limbs4.FromMont(&sat, &dst.m, &modulus, m0inv)
	var out [ByteLength]byte
	for i := 0; i < 4; i++ {
		limb := sat[i]
		for j := 0; j < 8; j++ {
			idx := ByteLength - 1 - (i*8 + j)
			if idx < 0 {
				break
			}
			out[idx] = byte(limb >> (8 * uint(j)))
		}
	}
	return out
}

// ErrInvalidEncoding is returned by SetCanonicalBytes when the input is not
// the canonical encoding of an element in [0, m).
var ErrInvalidEncoding = errors.New("fp: invalid encoding")

// SetCanonicalBytes sets dst from its big-endian canonical encoding,
// rejecting non-canonical (>= m) inputs.
func (dst *Element) SetCanonicalBytes(src *[ByteLength]byte) (*Element, error) {
	var sat limbs4.Limbs
	for i := 0; i < 4; i++ {
		var limb limbs4.Word
		for j := 0; j < 8; j++ {
			idx := ByteLength - 1 - (i*8 + j)
			if idx < 0 {
				break
			}
			limb |= limbs4.Word(src[idx]) << (8 * uint(j))
		}
		sat[i] = limb
	}

	var reduced limbs4.Limbs
	borrow := limbs4.Sub(&reduced, &sat, &modulus)
	if borrow == 0 {
		return nil, ErrInvalidEncoding
	}

	limbs4.ToMont(&dst.m, &sat, &modulus, m0inv, &r2ModM)
	return dst, nil
}

// MustRandomize sets dst to a uniformly random element, reading entropy
// from rand.Reader, and panics on read failure.
func (dst *Element) MustRandomize() *Element {
	var buf [ByteLength]byte
	for {
		if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
			panic("fp: entropy source failure: " + err.Error())
		}
		buf[0] &= 0x7f
		if _, err := dst.SetCanonicalBytes(&buf); err == nil {
			return dst
		}
	}
}

// NewElement returns a new element set to zero.
func NewElement() *Element {
	return new(Element).Zero()
}

// NewElementFromCanonicalBytes returns a new element set from its
// canonical big-endian encoding.
func NewElementFromCanonicalBytes(src *[ByteLength]byte) (*Element, error) {
	return new(Element).SetCanonicalBytes(src)
}
