package hla

import (
	"fmt"
	"strings"
)

// Modifier is the sum type of instruction suffixes: a bare instruction
// carries ModNone, an immediate-form instruction (mov) carries
// ModImmediate, a vector-lane instruction (fmla.2d) carries ModIndex, and
// a conditional instruction (cinc) carries ModCondition.
type Modifier interface {
	isModifier()
}

type ModNone struct{}
type ModImmediate struct{ Value uint64 }
type ModIndex struct{ Value uint64 }
type ModCondition struct{ Cond string }

func (ModNone) isModifier()      {}
func (ModImmediate) isModifier() {}
func (ModIndex) isModifier()     {}
func (ModCondition) isModifier() {}

// Instruction is a single operation over typed registers, parameterized
// by whether its registers are fresh (pre-allocation) or physical
// (post-allocation) — both stages use the same struct, since Go has no
// need for the teacher's generic InstructionF<R> to get that reuse.
type Instruction struct {
	Opcode string
	Dest   TypedReg
	Src    []TypedReg
	Mod    Modifier
}

// AtomicInstruction is a run of instructions that scheduling must never
// split apart — e.g. a multiply paired with the umulh that reads the same
// operands, or an add immediately followed by the carry-propagating cinc.
type AtomicInstruction = []Instruction

// registers returns every register this instruction reads or writes, in
// src-then-dest order.
func (i Instruction) registers() []TypedReg {
	out := make([]TypedReg, 0, len(i.Src)+1)
	out = append(out, i.Src...)
	out = append(out, i.Dest)
	return out
}

// FormatInstruction renders an instruction the way the generated assembly
// prints it: "opcode dest, src..." followed by a modifier-specific
// suffix.
func FormatInstruction(i Instruction) string {
	regs := make([]string, 0, len(i.Src)+1)
	regs = append(regs, i.Dest.String())
	for _, s := range i.Src {
		regs = append(regs, s.String())
	}
	joined := strings.Join(regs, ", ")

	var extra string
	switch m := i.Mod.(type) {
	case ModNone:
	case ModImmediate:
		extra = fmt.Sprintf(", #%d", m.Value)
	case ModCondition:
		extra = fmt.Sprintf(", %s", m.Cond)
	case ModIndex:
		extra = fmt.Sprintf("[%d]", m.Value)
	default:
		panic(fmt.Sprintf("hla: unknown modifier %T", i.Mod))
	}
	return fmt.Sprintf("%s %s%s", i.Opcode, joined, extra)
}
