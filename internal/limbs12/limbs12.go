// Package limbs12 implements constant-time multi-precision arithmetic over
// 12-word (768-bit) little-endian limb vectors, and the Montgomery-form
// modular arithmetic built on top of them.  It is the shared L0/L1
// implementation for 12-word moduli such as the 761-bit base field of
// BW6-761; no curve package in this module uses it.
//
// Every routine here is constant-time with respect to its inputs unless
// its name ends in Vartime.  The modulus and its Montgomery helper
// constant (m0inv, R2) are passed in explicitly rather than baked into
// the type system, since Go generics cannot range/index over a type
// parameter shared between array types of different lengths.
package limbs12

import (
	"math/big"
	"math/bits"

	"gitlab.com/ctcurve/ctcurve/internal/helpers"
)

// N is the limb count this package operates on.
const N = 12

// Word is a single limb.
type Word = uint64

// Limbs is a little-endian 768-bit value.
type Limbs = [N]Word

// Wide is a little-endian 1536-bit value, used as the double-width
// accumulator between a multiplication and its reduction.
type Wide = [24]Word

// IsZero returns 1 iff v == 0, 0 otherwise, in constant time.
func IsZero(v Word) Word {
	return helpers.Uint64IsZero(v)
}

// IsNonzero returns 1 iff v != 0, 0 otherwise, in constant time.
func IsNonzero(v Word) Word {
	return helpers.Uint64IsNonzero(v)
}

// mac computes lo,hi = a*b + c + carry without overflow.
func mac(a, b, c, carry Word) (lo, hi Word) {
	hi, lo = bits.Mul64(a, b)
	var c1, c2 Word
	lo, c1 = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, c1)
	lo, c2 = bits.Add64(lo, carry, 0)
	hi, _ = bits.Add64(hi, 0, c2)
	return lo, hi
}

// AddWithCarry returns a+b+carryIn and the carry-out, each a single bit.
func AddWithCarry(a, b, carryIn Word) (sum, carryOut Word) {
	return bits.Add64(a, b, carryIn)
}

// SubWithBorrow returns a-b-borrowIn and the borrow-out, each a single bit.
func SubWithBorrow(a, b, borrowIn Word) (diff, borrowOut Word) {
	return bits.Sub64(a, b, borrowIn)
}

// Add sets dst = a+b and returns the carry-out.
func Add(dst, a, b *Limbs) Word {
	var carry Word
	for i := 0; i < N; i++ {
		dst[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// Sub sets dst = a-b and returns the borrow-out.
func Sub(dst, a, b *Limbs) Word {
	var borrow Word
	for i := 0; i < N; i++ {
		dst[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// CSelect sets dst = a iff choice == 0, dst = b otherwise.  choice MUST be
// 0 or 1; the selection is branchless.
func CSelect(dst, a, b *Limbs, choice Word) {
	mask := -choice
	for i := 0; i < N; i++ {
		dst[i] = a[i] ^ (mask & (a[i] ^ b[i]))
	}
}

// CSwap swaps a and b iff choice == 1, in constant time.
func CSwap(a, b *Limbs, choice Word) {
	mask := -choice
	for i := 0; i < N; i++ {
		t := mask & (a[i] ^ b[i])
		a[i] ^= t
		b[i] ^= t
	}
}

// IsZeroLimbs returns 1 iff v is all-zero, 0 otherwise.
func IsZeroLimbs(v *Limbs) Word {
	acc := v[0] | v[1] | v[2] | v[3]
	return IsZero(acc)
}

// AreEqual returns 1 iff a == b, 0 otherwise.
func AreEqual(a, b *Limbs) Word {
	return IsZeroLimbs(&Limbs{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]})
}

// MulWide computes the full double-width product a*b.
func MulWide(a, b Word) (hi, lo Word) {
	hi, lo = bits.Mul64(a, b)
	return
}

// Mul computes dst = a*b as a double-width (8-limb) schoolbook product.
func Mul(dst *Wide, a, b *Limbs) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < N; i++ {
		var carry Word
		for j := 0; j < N; j++ {
			var lo, hi Word
			lo, hi = mac(a[i], b[j], dst[i+j], carry)
			dst[i+j] = lo
			carry = hi
		}
		dst[i+N] = carry
	}
}

// AddMod sets dst = (a+b) mod m, via addition followed by a constant-time
// conditional subtraction.  a and b MUST already be in [0, m).
func AddMod(dst, a, b, m *Limbs) {
	var sum Limbs
	carry := Add(&sum, a, b)

	var reduced Limbs
	borrow := Sub(&reduced, &sum, m)

	// If the subtraction borrowed and there was no carry out of the
	// addition, sum < m already: keep sum.  Otherwise (carry==1, or
	// borrow==0) the reduced value is correct.
	useReduced := IsNonzero(carry) | IsZero(borrow)
	CSelect(dst, &sum, &reduced, useReduced)
}

// SubMod sets dst = (a-b) mod m, via subtraction followed by a
// constant-time conditional addition of m.
func SubMod(dst, a, b, m *Limbs) {
	var diff Limbs
	borrow := Sub(&diff, a, b)

	var adjusted Limbs
	Add(&adjusted, &diff, m)

	CSelect(dst, &diff, &adjusted, borrow)
}

// NegMod sets dst = (m-a) mod m, mapping a=0 to 0 (not m).
func NegMod(dst, a, m *Limbs) {
	var neg Limbs
	Sub(&neg, m, a)

	isZero := IsZeroLimbs(a)
	var zero Limbs
	CSelect(dst, &neg, &zero, isZero)
}

// Redc performs Montgomery reduction of a double-width value, producing a
// value in [0, m): the final conditional subtraction from [0, 2m) is done
// here.
func Redc(dst *Limbs, wide *Wide, m *Limbs, m0inv Word) {
	var t Wide
	copy(t[:], wide[:])

	for i := 0; i < N; i++ {
		mu := t[i] * m0inv
		var carry Word
		for j := 0; j < N; j++ {
			var lo, hi Word
			lo, hi = mac(mu, m[j], t[i+j], carry)
			t[i+j] = lo
			carry = hi
		}
		// Propagate carry into the remaining high limbs. This always
		// runs to len(t), never stopping early on carry == 0: the
		// iteration count of Montgomery reduction must not depend on
		// limb values, only on N, or it leaks information about the
		// operands through timing. Adding a zero carry is a no-op, so
		// running the full width costs nothing but fixed extra adds.
		for k := i + N; k < len(t); k++ {
			var c Word
			t[k], c = bits.Add64(t[k], carry, 0)
			carry = c
		}
	}

	var result Limbs
	copy(result[:], t[N:])

	var reduced Limbs
	borrow := Sub(&reduced, &result, m)
	CSelect(dst, &result, &reduced, IsZero(borrow))
}

// MontMul sets dst = a*b*R^-1 mod m (Montgomery multiplication, CIOS-style
// via a schoolbook multiply followed by Redc).
func MontMul(dst, a, b, m *Limbs, m0inv Word) {
	var wide Wide
	Mul(&wide, a, b)
	Redc(dst, &wide, m, m0inv)
}

// MontSquare sets dst = a*a*R^-1 mod m.
func MontSquare(dst, a, m *Limbs, m0inv Word) {
	MontMul(dst, a, a, m, m0inv)
}

// ToMont sets dst = a*R mod m, given r2 = R^2 mod m.
func ToMont(dst, a, m *Limbs, m0inv Word, r2 *Limbs) {
	MontMul(dst, a, r2, m, m0inv)
}

// FromMont sets dst = a*R^-1 mod m (i.e. converts out of Montgomery form).
func FromMont(dst, a, m *Limbs, m0inv Word) {
	var wide Wide
	copy(wide[:N], a[:])
	Redc(dst, &wide, m, m0inv)
}

// Pow sets dst = base^exp mod m (all values in Montgomery form), using a
// fixed-iteration square-and-multiply whose trace depends only on the
// bit-length of exp, never its value.  exp MUST be a public exponent
// (e.g. m-2 for Fermat inversion, or a fixed addition-chain exponent);
// this routine is constant-time with respect to base, not exp.
func Pow(dst, base, m *Limbs, m0inv Word, exp *Limbs, expBits int, one *Limbs) {
	acc := *one
	for i := expBits - 1; i >= 0; i-- {
		MontSquare(&acc, &acc, m, m0inv)
		limb := exp[i/64]
		bit := (limb >> uint(i%64)) & 1
		var withMul Limbs
		MontMul(&withMul, &acc, base, m, m0inv)
		CSelect(&acc, &acc, &withMul, bit)
	}
	*dst = acc
}

// ToBig converts a saturated (non-Montgomery) limb vector to a *big.Int,
// for use only by Vartime routines.
func ToBig(a *Limbs) *big.Int {
	n := new(big.Int)
	for i := N - 1; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(a[i]))
	}
	return n
}

// FromBig converts a *big.Int in [0, 2^768) to a saturated limb vector,
// for use only by Vartime routines.
func FromBig(dst *Limbs, n *big.Int) {
	bz := n.Bits()
	for i := range dst {
		dst[i] = 0
	}
	for i, w := range bz {
		if i >= N*64/bits.UintSize {
			break
		}
		setWord(dst, i, uint64(w))
	}
}

func setWord(dst *Limbs, wordIdx int, w uint64) {
	if bits.UintSize == 64 {
		dst[wordIdx] = w
		return
	}
	// 32-bit big.Word platforms: pack two words per limb.
	limbIdx := wordIdx / 2
	if wordIdx%2 == 0 {
		dst[limbIdx] |= w
	} else {
		dst[limbIdx] |= w << 32
	}
}

// InvModVartime computes dst = a^-1 mod m using big.Int, for public
// inputs only.  Returns false if a is not invertible (a == 0 mod m).
func InvModVartime(dst *Limbs, a, m *Limbs) bool {
	aBig := ToBig(a)
	mBig := ToBig(m)
	if aBig.Sign() == 0 {
		return false
	}
	inv := new(big.Int).ModInverse(aBig, mBig)
	if inv == nil {
		return false
	}
	FromBig(dst, inv)
	return true
}
