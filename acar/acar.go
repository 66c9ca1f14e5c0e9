// Package acar implements the classical Montgomery multiplication
// schedules — Separated Operand Scanning (SOS), Finely Integrated Operand
// Scanning (FIOS), Coarsely Integrated Operand Scanning (CIOS), and Acar's
// optimized CIOS variants — over 4x64-bit-limb integers using the CPU's
// native 64x64->128 multiplier.
//
// Every function here takes the modulus and its Montgomery constant as
// explicit parameters rather than reaching for package field directly, so
// the algorithms can be exercised (and property-tested) against moduli
// other than the BN254 scalar field.
package acar

import "math/bits"

// mulAddCarry computes lo,hi such that lo + hi*2^64 = a*b + add + carry,
// i.e. a 64x64 multiply fused with a two-word accumulate. This is the
// widening-multiply contract every scalar engine in this package assumes
// the target provides natively; see DESIGN.md for why a software emulation
// of bits.Mul64 would defeat the point of this package on a target without
// one.
func mulAddCarry(a, b, add, carry uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(a, b)
	var c0, c1 uint64
	lo, c0 = bits.Add64(lo, add, 0)
	lo, c1 = bits.Add64(lo, carry, 0)
	hi += c0 + c1
	return lo, hi
}

// finalSub conditionally subtracts p from t, returning t unchanged if
// t < p and t-p otherwise. t and p are both interpreted as little-endian
// limb sequences of the same length.
func finalSub(t, p [4]uint64) [4]uint64 {
	var diff [4]uint64
	var borrow uint64
	for i := 0; i < 4; i++ {
		d, b := bits.Sub64(t[i], p[i], borrow)
		diff[i] = d
		borrow = b
	}
	if borrow != 0 {
		return t
	}
	return diff
}

// finalSub5 is finalSub for the 5-limb scratch width used by Sos and Fios
// before the top word has been confirmed zero.
func finalSub5(t [5]uint64, p [4]uint64) [4]uint64 {
	var p5 [5]uint64
	copy(p5[:4], p[:])
	var diff [5]uint64
	var borrow uint64
	for i := 0; i < 5; i++ {
		d, b := bits.Sub64(t[i], p5[i], borrow)
		diff[i] = d
		borrow = b
	}
	if borrow != 0 {
		var out [4]uint64
		copy(out[:], t[:4])
		return out
	}
	var out [4]uint64
	copy(out[:], diff[:4])
	return out
}
