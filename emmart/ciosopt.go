package emmart

import "github.com/blck-snwmn/fieldmul/fpu"

// CiosOpt is Acar's CIOS schedule ported onto float64 FMA multipliers,
// working over the 5x52-bit redundant representation. tok proves the
// caller already pinned the rounding mode to round-toward-zero; it is
// otherwise unused.
func CiosOpt(tok fpu.Token, a, b, n [5]uint64, np0 uint64) [6]uint64 {
	_ = tok
	var t [6]uint64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			hi, lo := mulFma(float64(a[i]), float64(b[j]))
			t[j+1] += hi
			t[j] += lo
		}

		m := float64(t[0] * np0 & Mask52)
		hi0, lo0 := mulFma(m, float64(n[0]))
		t[0] += lo0
		t[1] += hi0 + (t[0] >> 52)

		for j := 1; j < 5; j++ {
			hi, lo := mulFma(m, float64(n[j]))
			t[j+1] += hi
			t[j-1] = t[j] + lo
		}
		t[4] = t[5]
		t[5] = 0
	}
	return Resolve(t)
}

// CiosOptSub is CiosOpt with the carry-absorbing bias preloaded via
// MakeInitial, so the per-product bias subtraction CiosOpt performs is
// never needed.
func CiosOptSub(tok fpu.Token, a, b, n [5]uint64, np0 uint64) [6]uint64 {
	_ = tok
	var t [6]uint64
	for i := 0; i < 5; i++ {
		t[i] = MakeInitial(2+2*i, 2*i)
	}

	for i := 0; i < 5; i++ {
		t[5] = MakeInitial(10-2-2*i, 10-2*i)

		for j := 0; j < 5; j++ {
			hiBits, loBits := MulFmaRaw(float64(a[i]), float64(b[j]))
			t[j+1] += hiBits
			t[j] += loBits
		}

		m := float64(t[0] * np0 & Mask52)
		hi0, lo0 := MulFmaRaw(m, float64(n[0]))
		t[0] += lo0
		t[1] += hi0 + (t[0] >> 52)

		for j := 1; j < 5; j++ {
			hiBits, loBits := MulFmaRaw(m, float64(n[j]))
			t[j+1] += hiBits
			t[j-1] = t[j] + loBits
		}
		t[4] = t[5]
	}
	return Resolve(t)
}
