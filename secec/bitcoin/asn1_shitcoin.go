// SPDX-License-Identifier: BSD-3-Clause

package bitcoin

// IsValidSignatureEncodingBIP0066 reports whether `sig` is a strict
// DER encoded ECDSA signature as required by BIP-0066, with a trailing
// sighash type byte appended.
//
// This follows Bitcoin Core's script/interpreter.cpp
// IsValidSignatureEncoding check byte-for-byte:
//
//	0x30 [total-length] 0x02 [R-length] [R] 0x02 [S-length] [S] [sighash]
func IsValidSignatureEncodingBIP0066(sig []byte) bool {
	// Minimum and maximum size constraints.
	if len(sig) < 9 || len(sig) > 73 {
		return false
	}

	// A signature is of type 0x30 (compound).
	if sig[0] != 0x30 {
		return false
	}

	// Make sure the length covers the entire signature.
	if int(sig[1]) != len(sig)-3 {
		return false
	}

	// Extract the length of the R element.
	lenR := int(sig[3])

	// Make sure the length of the S element is still inside the signature.
	if 5+lenR >= len(sig) {
		return false
	}

	// Extract the length of the S element.
	lenS := int(sig[5+lenR])

	// Verify that the length of the signature matches the sum of the
	// length of the elements.
	if lenR+lenS+7 != len(sig) {
		return false
	}

	// Check whether the R element is an integer.
	if sig[2] != 0x02 {
		return false
	}

	// Zero-length integers are not allowed for R.
	if lenR == 0 {
		return false
	}

	// Negative numbers are not allowed for R.
	if sig[4]&0x80 != 0 {
		return false
	}

	// Null bytes at the start of R are not allowed, unless R would
	// otherwise be interpreted as a negative number.
	if lenR > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return false
	}

	// Check whether the S element is an integer.
	if sig[lenR+4] != 0x02 {
		return false
	}

	// Zero-length integers are not allowed for S.
	if lenS == 0 {
		return false
	}

	// Negative numbers are not allowed for S.
	if sig[lenR+6]&0x80 != 0 {
		return false
	}

	// Null bytes at the start of S are not allowed, unless S would
	// otherwise be interpreted as a negative number.
	if lenS > 1 && sig[lenR+6] == 0x00 && sig[lenR+7]&0x80 == 0 {
		return false
	}

	return true
}
