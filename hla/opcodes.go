package hla

// Mov loads an immediate into a fresh scalar register.
func Mov(dst TypedReg, val uint64) AtomicInstruction {
	return AtomicInstruction{{Opcode: "mov", Dest: dst, Mod: ModImmediate{Value: val}}}
}

// Mul is a 64x64->64 (low-word) multiply: dst = a*b.
func Mul(dst, a, b TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "mul", Dest: dst, Src: []TypedReg{a, b}, Mod: ModNone{}}}
}

// Umulh is the high-word counterpart to Mul: dst = (a*b) >> 64.
func Umulh(dst, a, b TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "umulh", Dest: dst, Src: []TypedReg{a, b}, Mod: ModNone{}}}
}

// Adds computes dst = a+b and sets the carry flag.
func Adds(dst, a, b TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "adds", Dest: dst, Src: []TypedReg{a, b}, Mod: ModNone{}}}
}

// Adcs computes dst = a+b+carry and sets the carry flag.
func Adcs(dst, a, b TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "adcs", Dest: dst, Src: []TypedReg{a, b}, Mod: ModNone{}}}
}

// Cinc sets dst to src+1 if condition holds, otherwise to src; used to
// fold a carry flag into the next limb.
func Cinc(dst, src TypedReg, condition string) AtomicInstruction {
	return AtomicInstruction{{Opcode: "cinc", Dest: dst, Src: []TypedReg{src}, Mod: ModCondition{Cond: condition}}}
}

// MovV16B copies all 16 bytes of a vector register.
func MovV16B(dst, src TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "mov.16b", Dest: dst, Src: []TypedReg{src}, Mod: ModNone{}}}
}

// Ucvtf2D converts two packed unsigned 64-bit integers to float64 lanes.
func Ucvtf2D(dst, src TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "ucvtf.2d", Dest: dst, Src: []TypedReg{src}, Mod: ModNone{}}}
}

// Dup2D broadcasts a scalar register into both lanes of a vector
// register.
func Dup2D(dst, src TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "dup.2d", Dest: dst, Src: []TypedReg{src}, Mod: ModNone{}}}
}

// Ucvtf converts a single scalar register to a float64 register.
func Ucvtf(dst, src TypedReg) AtomicInstruction {
	return AtomicInstruction{{Opcode: "ucvtf", Dest: dst, Src: []TypedReg{src}, Mod: ModNone{}}}
}

// Fmla2D is a fused multiply-add over packed lanes, multiplying src_b's
// lane idx (broadcast) by src_a and accumulating into dst.
func Fmla2D(dst, a, b TypedReg, idx uint64) AtomicInstruction {
	return AtomicInstruction{{Opcode: "fmla.2d", Dest: dst, Src: []TypedReg{a, b}, Mod: ModIndex{Value: idx}}}
}
