package field

// To5x52 repacks a 4x64 little-endian big integer into the redundant 5x52
// form: each output word nominally holds a 52-bit digit, with the 256 bits
// spread across ceil(256/52) = 5 words.
func To5x52(a [4]uint64) [5]uint64 {
	return [5]uint64{
		a[0] & Mask52,
		((a[0] >> 52) | (a[1] << 12)) & Mask52,
		((a[1] >> 40) | (a[2] << 24)) & Mask52,
		((a[2] >> 28) | (a[3] << 36)) & Mask52,
		a[3] >> 16,
	}
}

// To5x52Shl2 repacks a 4x64 big integer into 5x52 form after first
// left-shifting the value by 2 bits, so that the full 256 bits land with 2
// bits of headroom in the top of the fifth limb (5*52 = 260). The headroom
// is what domb.ParallelSub's carry-absorbing accumulator relies on.
func To5x52Shl2(a [4]uint64) [5]uint64 {
	l0, l1, l2, l3 := a[0], a[1], a[2], a[3]
	return [5]uint64{
		(l0 << 2) & Mask52,
		((l0 >> 50) | (l1 << 14)) & Mask52,
		((l1 >> 38) | (l2 << 26)) & Mask52,
		((l2 >> 26) | (l3 << 38)) & Mask52,
		l3 >> 14,
	}
}

// To4x64 repacks a resolved 5x52 redundant value (every word in [0, 2^52))
// back into the canonical 4x64 little-endian form. It is the inverse of
// To5x52 whenever the input is resolved.
func To4x64(a [5]uint64) [4]uint64 {
	l0, l1, l2, l3, l4 := a[0], a[1], a[2], a[3], a[4]
	return [4]uint64{
		l0 | (l1 << 52),
		(l1 >> 12) | (l2 << 40),
		(l2 >> 24) | (l3 << 28),
		(l3 >> 36) | (l4 << 16),
	}
}
