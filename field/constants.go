// Package field defines the fixed prime modulus this module is built
// around, its Montgomery constants in both limb representations, and the
// conversions between those representations.
//
// Everything here is compile-time data. The acar and emmart engines take
// the modulus and its Montgomery constant as parameters; package domb reads
// the constants defined here directly.
package field

// P is the BN254/BLS-style scalar field modulus, little-endian as four
// 64-bit limbs.
var P = [4]uint64{
	0x43e1f593f0000001,
	0x2833e84879b97091,
	0xb85045b68181585d,
	0x30644e72e131a029,
}

// R2 is R² mod P where R = 2^256, the Montgomery radix for the 64-bit-limb
// engines in package acar.
var R2 = [4]uint64{
	0x1bb8e645ae216da7,
	0x53fe3ab1e35c59e3,
	0x8c49833d53bb8085,
	0x0216d0b17f4e44a5,
}

// NP0 is -P^-1 mod 2^64, the Montgomery reduction constant for the
// 64-bit-limb engines.
const NP0 uint64 = 0xc2e1f593efffffff

// U52P is P repacked into the redundant 5-limb, 52-bit-per-limb form used
// by package emmart and package domb.
var U52P = [5]uint64{
	0x1f593f0000001,
	0x4879b9709143e,
	0x181585d2833e8,
	0xa029b85045b68,
	0x30644e72e131,
}

// U52R2 is R² mod P where R = 2^260, the Montgomery radix for the
// 52-bit-limb engines.
var U52R2 = [5]uint64{
	0xb852d16da6f5,
	0xc621620cddce3,
	0xaf1b95343ffb6,
	0xc3c15e103e7c2,
	0x281528fa122,
}

// U52NP0 is -P^-1 mod 2^52, the Montgomery reduction constant for the
// 52-bit-limb engines.
const U52NP0 uint64 = 0x1f593efffffff

// Rho1..Rho4 are the four Domb partial-reduction constants consumed by
// package domb. Rho_k encodes 2^(-52k) mod P so that
// ParallelSub needs one single-limb multiply per round instead of a full
// serial REDC chain. They are derived offline from P and are not
// recomputed at runtime.
var (
	Rho1 = [5]uint64{
		0x82e644ee4c3d2,
		0xf93893c98b1de,
		0xd46fe04d0a4c7,
		0x8f0aad55e2a1f,
		0x005ed0447de83,
	}
	Rho2 = [5]uint64{
		0x74eccce9a797a,
		0x16ddcc30bd8a4,
		0x49ecd3539499e,
		0xb23a6fcc592b8,
		0x00e3bd49f6ee5,
	}
	Rho3 = [5]uint64{
		0x0e8c656567d77,
		0x430d05713ae61,
		0xea3ba6b167128,
		0xa7dae55c5a296,
		0x01b4afd513572,
	}
	Rho4 = [5]uint64{
		0x22e2400e2f27d,
		0x323b46ea19686,
		0xe6c43f0df672d,
		0x7824014c39e8b,
		0x00c6b48afe1b8,
	}
)

// Mask52 extracts the low 52 bits of a redundant-form word.
const Mask52 uint64 = (1 << 52) - 1
