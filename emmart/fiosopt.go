package emmart

import "github.com/blck-snwmn/fieldmul/fpu"

// FiosOpt fuses CiosOpt's two inner loops: for each column j the a*b and
// m*n products are both folded into t before shifting down to t[j-1].
func FiosOpt(tok fpu.Token, a, b, n [5]uint64, np0 uint64) [6]uint64 {
	_ = tok
	var t [6]uint64
	for i := 0; i < 5; i++ {
		hi0, lo0 := mulFma(float64(a[i]), float64(b[0]))
		t[0] += lo0
		t[1] += hi0

		m := float64(t[0] * np0 & Mask52)
		hiM0, loM0 := mulFma(m, float64(n[0]))
		carryT0 := (t[0] + loM0) >> 52
		t[1] += hiM0 + carryT0

		for j := 1; j < 5; j++ {
			abHi, abLo := mulFma(float64(a[i]), float64(b[j]))
			mnHi, mnLo := mulFma(m, float64(n[j]))
			t[j+1] += abHi + mnHi
			t[j-1] = t[j] + abLo + mnLo
		}
		t[4] = t[5]
		t[5] = 0
	}
	return Resolve(t)
}

// FiosOptSub is FiosOpt with the bias preloaded via MakeInitial, the
// highest-throughput schedule of the four, batching every subtraction on
// a scratch word into one MakeInitial call per outer iteration instead of
// one per product.
func FiosOptSub(tok fpu.Token, a, b, n [5]uint64, np0 uint64) [6]uint64 {
	_ = tok
	var t [6]uint64
	for i := 0; i < 5; i++ {
		t[i] = MakeInitial(2+2*i, 2*i)
	}

	for i := 0; i < 5; i++ {
		t[5] = MakeInitial(2*(5-1-i), 2*(5-i))

		hi0, lo0 := MulFmaRaw(float64(a[i]), float64(b[0]))
		t[0] += lo0
		t[1] += hi0

		m := float64(t[0] * np0 & Mask52)
		hiM0, loM0 := MulFmaRaw(m, float64(n[0]))
		carryT0 := (t[0] + loM0) >> 52
		t[1] += hiM0 + carryT0

		for j := 1; j < 5; j++ {
			abHi, abLo := MulFmaRaw(float64(a[i]), float64(b[j]))
			mnHi, mnLo := MulFmaRaw(m, float64(n[j]))
			t[j+1] += abHi + mnHi
			t[j-1] = t[j] + abLo + mnLo
		}
		t[4] = t[5]
	}
	return Resolve(t)
}
