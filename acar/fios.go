package acar

import "math/bits"

// Fios computes the Montgomery product of a and b modulo p using Finely
// Integrated Operand Scanning: unlike Cios, the multiply-by-a[i] term and
// the reduce-by-m term for a given column j are folded into the same pass,
// with two independently-bounded carry chains (carryAB, carryMN) that are
// only combined once, at the end of each outer iteration. Keeping the
// chains separate avoids ever summing two 64-bit high words directly, which
// could exceed 64 bits; each chain alone cannot, by the same bound that
// makes mulAddCarry safe.
func Fios(a, b, p [4]uint64, np0 uint64) [4]uint64 {
	var t [6]uint64

	for i := 0; i < 4; i++ {
		var carryAB, carryMN, m uint64

		for j := 0; j < 4; j++ {
			hiAB, loAB := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			loAB, c1 = bits.Add64(loAB, t[j], 0)
			loAB, c2 = bits.Add64(loAB, carryAB, 0)
			t[j] = loAB
			carryAB = hiAB + c1 + c2

			if j == 0 {
				m = t[0] * np0
			}

			hiMN, loMN := bits.Mul64(m, p[j])
			var c3, c4 uint64
			var s uint64
			s, c3 = bits.Add64(loMN, t[j], 0)
			s, c4 = bits.Add64(s, carryMN, 0)
			carryMN = hiMN + c3 + c4
			if j > 0 {
				t[j-1] = s
			}
			// j == 0: s is the low word of t[0]+m*p[0], which is
			// congruent to 0 mod 2^64 by construction of m; only
			// carryMN carries forward.
		}

		sum, c := bits.Add64(carryAB, carryMN, 0)
		var c2 uint64
		t[3], c2 = bits.Add64(t[4], sum, 0)
		t[4], _ = bits.Add64(t[5], c+c2, 0)
		t[5] = 0
	}

	var top [5]uint64
	copy(top[:], t[:5])
	return finalSub5(top, p)
}
