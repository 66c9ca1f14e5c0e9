package emmart

import "github.com/blck-snwmn/fieldmul/fpu"

// FiosOptSubSimd runs FiosOptSub for two independent (a, b, n) triples at
// once, with the two lanes' column loops interleaved step by step. This
// models a 128-bit paired-double FMA lane computing both lanes' products
// in lockstep, the way a real vector unit would.
func FiosOptSubSimd(tok fpu.Token, a, b, n [2][5]uint64, np0 [2]uint64) [2][6]uint64 {
	_ = tok
	var t [2][6]uint64
	for lane := 0; lane < 2; lane++ {
		for i := 0; i < 5; i++ {
			t[lane][i] = MakeInitial(2+2*i, 2*i)
		}
	}

	for i := 0; i < 5; i++ {
		var m [2]float64
		for lane := 0; lane < 2; lane++ {
			t[lane][5] = MakeInitial(2*(5-1-i), 2*(5-i))

			hi0, lo0 := MulFmaRaw(float64(a[lane][i]), float64(b[lane][0]))
			t[lane][0] += lo0
			t[lane][1] += hi0

			m[lane] = float64(t[lane][0] * np0[lane] & Mask52)
			hiM0, loM0 := MulFmaRaw(m[lane], float64(n[lane][0]))
			carryT0 := (t[lane][0] + loM0) >> 52
			t[lane][1] += hiM0 + carryT0
		}

		for j := 1; j < 5; j++ {
			for lane := 0; lane < 2; lane++ {
				abHi, abLo := MulFmaRaw(float64(a[lane][i]), float64(b[lane][j]))
				mnHi, mnLo := MulFmaRaw(m[lane], float64(n[lane][j]))
				t[lane][j+1] += abHi + mnHi
				t[lane][j-1] = t[lane][j] + abLo + mnLo
			}
		}

		for lane := 0; lane < 2; lane++ {
			t[lane][4] = t[lane][5]
		}
	}

	return [2][6]uint64{Resolve(t[0]), Resolve(t[1])}
}

// FiosOptSubSimdSeq runs FiosOptSub once per lane, given as flat operands
// rather than a packed pair, with lane 0's column loop run to completion
// before lane 1's starts. This is the single-stream baseline
// FiosOptSubSimdSat interleaves two copies of.
func FiosOptSubSimdSeq(
	tok fpu.Token,
	a0, b0, n0 [5]uint64, np0_0 uint64,
	a1, b1, n1 [5]uint64, np0_1 uint64,
) ([6]uint64, [6]uint64) {
	return FiosOptSub(tok, a0, b0, n0, np0_0), FiosOptSub(tok, a1, b1, n1, np0_1)
}

// FiosOptSubSimdSat runs FiosOptSub's schedule for two independent (a, b,
// n) triples given as flat operands, interleaving their column loops step
// by step, to keep the FMA pipeline saturated with two unrelated streams
// of work rather than one.
func FiosOptSubSimdSat(
	tok fpu.Token,
	a0, b0, n0 [5]uint64, np0_0 uint64,
	a1, b1, n1 [5]uint64, np0_1 uint64,
) ([6]uint64, [6]uint64) {
	_ = tok
	a := [2][5]uint64{a0, a1}
	b := [2][5]uint64{b0, b1}
	n := [2][5]uint64{n0, n1}
	np0 := [2]uint64{np0_0, np0_1}

	var t [2][6]uint64
	for lane := 0; lane < 2; lane++ {
		for i := 0; i < 5; i++ {
			t[lane][i] = MakeInitial(2+2*i, 2*i)
		}
	}

	for i := 0; i < 5; i++ {
		var m [2]float64
		for lane := 0; lane < 2; lane++ {
			t[lane][5] = MakeInitial(2*(5-1-i), 2*(5-i))

			hi0, lo0 := MulFmaRaw(float64(a[lane][i]), float64(b[lane][0]))
			t[lane][0] += lo0
			t[lane][1] += hi0

			m[lane] = float64(t[lane][0] * np0[lane] & Mask52)
			hiM0, loM0 := MulFmaRaw(m[lane], float64(n[lane][0]))
			carryT0 := (t[lane][0] + loM0) >> 52
			t[lane][1] += hiM0 + carryT0
		}

		for j := 1; j < 5; j++ {
			for lane := 0; lane < 2; lane++ {
				abHi, abLo := MulFmaRaw(float64(a[lane][i]), float64(b[lane][j]))
				mnHi, mnLo := MulFmaRaw(m[lane], float64(n[lane][j]))
				t[lane][j+1] += abHi + mnHi
				t[lane][j-1] = t[lane][j] + abLo + mnLo
			}
		}

		for lane := 0; lane < 2; lane++ {
			t[lane][4] = t[lane][5]
		}
	}

	return Resolve(t[0]), Resolve(t[1])
}
