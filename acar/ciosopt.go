package acar

import "math/bits"

// CiosOpt is Cios with the row of 64x64 products computed before any of
// them are folded into the running accumulator, so the four multiplies in
// a column no longer sit behind each other's carry-out on the critical
// path. It is mathematically identical to Cios.
func CiosOpt(a, b, p [4]uint64, np0 uint64) [4]uint64 {
	var t [6]uint64

	for i := 0; i < 4; i++ {
		var abHi, abLo [4]uint64
		for j := 0; j < 4; j++ {
			abHi[j], abLo[j] = bits.Mul64(a[i], b[j])
		}
		var carry uint64
		for j := 0; j < 4; j++ {
			lo, c1 := bits.Add64(abLo[j], t[j], 0)
			lo, c2 := bits.Add64(lo, carry, 0)
			t[j] = lo
			carry = abHi[j] + c1 + c2
		}
		var c uint64
		t[4], c = bits.Add64(t[4], carry, 0)
		t[5] = c

		m := t[0] * np0

		var mnHi, mnLo [4]uint64
		for j := 0; j < 4; j++ {
			mnHi[j], mnLo[j] = bits.Mul64(m, p[j])
		}
		_, c1 := bits.Add64(mnLo[0], t[0], 0)
		carry = mnHi[0] + c1
		for j := 1; j < 4; j++ {
			lo, c1 := bits.Add64(mnLo[j], t[j], 0)
			lo, c2 := bits.Add64(lo, carry, 0)
			t[j-1] = lo
			carry = mnHi[j] + c1 + c2
		}
		t[3], c = bits.Add64(t[4], carry, 0)
		t[4] = t[5] + c
		t[5] = 0
	}

	var top [5]uint64
	copy(top[:], t[:5])
	return finalSub5(top, p)
}

// CiosOptSeq is CiosOpt run as a single, standalone pair, the baseline
// schedule CiosOptSat interleaves two copies of. It exists as its own
// entry point (rather than callers using CiosOpt directly) so a single
// scalar stream benchmarks against the same schedule the saturated
// two-stream variant uses.
func CiosOptSeq(a, b, p [4]uint64, np0 uint64) [4]uint64 {
	return CiosOpt(a, b, p, np0)
}

// CiosOptSat runs two independent (a, b) pairs through the Cios schedule
// at once, alternating between the two pairs one whole column pass at a
// time (both multiply passes, then both reduce passes, per limb of a), to
// keep the CPU's multiplier pipeline saturated with two unrelated streams
// of work instead of one.
func CiosOptSat(a0, b0, a1, b1, p [4]uint64, np0 uint64) ([4]uint64, [4]uint64) {
	a := [2][4]uint64{a0, a1}
	b := [2][4]uint64{b0, b1}
	var t [2][6]uint64

	for i := 0; i < 4; i++ {
		var carry [2]uint64
		var m [2]uint64

		for lane := 0; lane < 2; lane++ {
			for j := 0; j < 4; j++ {
				hi, lo := bits.Mul64(a[lane][i], b[lane][j])
				var c1, c2 uint64
				lo, c1 = bits.Add64(lo, t[lane][j], 0)
				lo, c2 = bits.Add64(lo, carry[lane], 0)
				t[lane][j] = lo
				carry[lane] = hi + c1 + c2
			}
			var c uint64
			t[lane][4], c = bits.Add64(t[lane][4], carry[lane], 0)
			t[lane][5] = c
			m[lane] = t[lane][0] * np0
		}

		for lane := 0; lane < 2; lane++ {
			hi, lo := bits.Mul64(m[lane], p[0])
			_, c1 := bits.Add64(lo, t[lane][0], 0)
			carry[lane] = hi + c1

			for j := 1; j < 4; j++ {
				hi, lo := bits.Mul64(m[lane], p[j])
				var c1, c2 uint64
				lo, c1 = bits.Add64(lo, t[lane][j], 0)
				lo, c2 = bits.Add64(lo, carry[lane], 0)
				t[lane][j-1] = lo
				carry[lane] = hi + c1 + c2
			}
			var c uint64
			t[lane][3], c = bits.Add64(t[lane][4], carry[lane], 0)
			t[lane][4] = t[lane][5] + c
			t[lane][5] = 0
		}
	}

	var out [2][4]uint64
	for lane := 0; lane < 2; lane++ {
		var top [5]uint64
		copy(top[:], t[lane][:5])
		out[lane] = finalSub5(top, p)
	}
	return out[0], out[1]
}
