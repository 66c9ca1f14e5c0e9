package acar

import "math/bits"

// Cios computes the Montgomery product of a and b modulo p using Coarsely
// Integrated Operand Scanning: each outer iteration runs a full multiply
// column over all four limbs of b, then a full reduce column over all four
// limbs of p, against a 6-word scratch (s+2 for s=4).
func Cios(a, b, p [4]uint64, np0 uint64) [4]uint64 {
	var t [6]uint64

	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, t[j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			t[j] = lo
			carry = hi + c1 + c2
		}
		var c uint64
		t[4], c = bits.Add64(t[4], carry, 0)
		t[5] = c

		m := t[0] * np0

		hi, lo := bits.Mul64(m, p[0])
		_, c1 := bits.Add64(lo, t[0], 0)
		carry = hi + c1

		for j := 1; j < 4; j++ {
			hi, lo := bits.Mul64(m, p[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, t[j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			t[j-1] = lo
			carry = hi + c1 + c2
		}
		t[3], c = bits.Add64(t[4], carry, 0)
		t[4] = t[5] + c
		t[5] = 0
	}

	var top [5]uint64
	copy(top[:], t[:5])
	return finalSub5(top, p)
}
