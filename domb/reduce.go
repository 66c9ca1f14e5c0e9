// Package domb implements the Domb-style parallel Montgomery reduction:
// instead of a serial REDC chain, the four low words of a product are
// each multiplied by a fixed rho constant and summed into the high words, collapsing the
// reduction's critical path to one round of independent multiplies.
package domb

import (
	"github.com/blck-snwmn/fieldmul/emmart"
	"github.com/blck-snwmn/fieldmul/field"
	"github.com/blck-snwmn/fieldmul/fpu"
)

// mult is the scalar FMA hi/lo kernel, carrying the emmart bias rather
// than subtracting it, exactly like emmart.MulFmaRaw but returning (lo, hi)
// to match this package's calling convention.
func mult(a, b uint64) (lo, hi uint64) {
	hiBits, loBits := emmart.MulFmaRaw(float64(a), float64(b))
	return loBits, hiBits
}

func heaviside(x int) uint64 {
	if x >= 0 {
		return 1
	}
	return 0
}

// vmultAddNoInit accumulates a*b into the caller-supplied 10-word biased
// scratch, without re-biasing it first.
func vmultAddNoInit(a, b [5]uint64, t [10]uint64) [10]uint64 {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			hiBits, loBits := emmart.MulFmaRaw(float64(a[i]), float64(b[j]))
			t[i+j+1] += hiBits
			t[i+j] += loBits
		}
	}
	return t
}

// smultNoInit multiplies the 5-limb vector v by the scalar s into a fresh
// 6-word scratch, without preloading a bias.
func smultNoInit(s uint64, v [5]uint64) [6]uint64 {
	var t [6]uint64
	for i := 0; i < 5; i++ {
		lo, hi := mult(s, v[i])
		t[i] += lo
		t[i+1] += hi
	}
	return t
}

func addv6(a, b [6]uint64) [6]uint64 {
	var out [6]uint64
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// ParallelSub computes a*b*R^-1 mod p in the redundant 5x52-bit form,
// using field.Rho1..Rho4 to fold the low four words of the product in
// parallel instead of a serial REDC chain. The caller must already hold
// an fpu.Token proving round-toward-zero is in effect.
func ParallelSub(tok fpu.Token, a, b [5]uint64) [5]uint64 {
	_ = tok
	var t [10]uint64
	for i := 0; i < 5; i++ {
		t[i] = emmart.MakeInitial(i+1+5*int(heaviside(i-4)), i)
		j := 10 - 1 - i
		t[j] = emmart.MakeInitial(i+5*(1-int(heaviside(j-9))), i+1+5)
	}

	t = vmultAddNoInit(a, b, t)

	t[1] += t[0] >> 52
	t[2] += t[1] >> 52
	t[3] += t[2] >> 52
	t[4] += t[3] >> 52

	r0 := smultNoInit(t[0]&emmart.Mask52, field.Rho4)
	r1 := smultNoInit(t[1]&emmart.Mask52, field.Rho3)
	r2 := smultNoInit(t[2]&emmart.Mask52, field.Rho2)
	r3 := smultNoInit(t[3]&emmart.Mask52, field.Rho1)

	var s [6]uint64
	copy(s[:], t[4:10])
	s = addv6(r3, addv6(addv6(s, r0), addv6(r1, r2)))

	m := s[0] * field.U52NP0 & emmart.Mask52
	resolved := emmart.Resolve(addv6(s, smultNoInit(m, field.U52P)))

	var out [5]uint64
	copy(out[:], resolved[1:6])
	return out
}

// ParallelSubR256 is ParallelSub for the plain 4x64-bit limb
// representation: it repacks a and b into the redundant 52-bit form
// (shifted left two bits for headroom), manages its own round-to-zero
// token, and repacks the result back to 4x64.
func ParallelSubR256(a, b [4]uint64) [4]uint64 {
	tok := fpu.AcquireRoundToZero()
	defer tok.Release()

	a52 := field.To5x52Shl2(a)
	b52 := field.To5x52Shl2(b)
	res := ParallelSub(tok, a52, b52)
	return field.To4x64(res)
}

// ParallelSubSimdR256 runs ParallelSubR256 over two independent residues,
// modelling the paired-lane vector unit spec.md describes. It manages its
// own round-to-zero token once for both lanes.
func ParallelSubSimdR256(a, b [2][4]uint64) [2][4]uint64 {
	tok := fpu.AcquireRoundToZero()
	defer tok.Release()

	var out [2][4]uint64
	for lane := 0; lane < 2; lane++ {
		a52 := field.To5x52Shl2(a[lane])
		b52 := field.To5x52Shl2(b[lane])
		out[lane] = field.To4x64(ParallelSub(tok, a52, b52))
	}
	return out
}
