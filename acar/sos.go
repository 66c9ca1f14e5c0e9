package acar

import "math/bits"

// addMulInto adds a*b into t starting at offset, propagating carry as far
// as necessary beyond the 4-word column. This is the same shape as the
// teacher library's mulAddScalar, generalized to a two-operand multiply
// (school_method) and reused, with a scalar multiplicand, by the
// reduction step below.
func addMulInto(t []uint64, offset int, a [4]uint64, scalar uint64) {
	var carry uint64
	for j := 0; j < 4; j++ {
		hi, lo := bits.Mul64(a[j], scalar)
		var c0, c1 uint64
		lo, c0 = bits.Add64(lo, t[offset+j], 0)
		lo, c1 = bits.Add64(lo, carry, 0)
		t[offset+j] = lo
		carry = hi + c0 + c1
	}
	k := offset + 4
	for carry != 0 {
		sum, c := bits.Add64(t[k], carry, 0)
		t[k] = sum
		carry = c
		k++
	}
}

// Sos computes the Montgomery product of a and b modulo p using Separated
// Operand Scanning: a full 8-word schoolbook product is formed first, then
// reduced one column at a time against a 9-word scratch (the 9th word
// absorbs carry out of the reduction, mirroring spec's documented 8-limb
// product width plus the carry accounted for separately).
func Sos(a, b, p [4]uint64, np0 uint64) [4]uint64 {
	var t [9]uint64
	for i := 0; i < 4; i++ {
		addMulInto(t[:], i, b, a[i])
	}

	for i := 0; i < 4; i++ {
		m := t[i] * np0
		addMulInto(t[:], i, p, m)
	}

	var top [5]uint64
	copy(top[:], t[4:9])
	return finalSub5(top, p)
}
