// Command genasm prints the scalar and SIMD multiply-accumulate kernels
// used by the field-multiplication engines, after running liveness
// analysis and register allocation over their instruction streams.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/blck-snwmn/fieldmul/hla"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("genasm: %v", r)
		}
	}()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, instr := range generate() {
		fmt.Fprintln(w, hla.FormatInstruction(instr))
	}
}

// generate builds the scalar smult kernel and the SIMD splat-multiply
// kernel, interleaves their instruction streams, and runs liveness
// analysis followed by register allocation over the combined stream.
// Every register the kernels only ever read, never write, is pinned to a
// physical register with Input before the kernel body runs — Allocate's
// strict check on source registers requires every input to be bound this
// way rather than picked up lazily on first read.
func generate() []hla.Instruction {
	alloc := hla.NewAllocator()
	mapping := hla.NewRegisterMapping()
	bank := hla.NewRegisterBank()

	scalarAtoms, scalarOut := smult(alloc, mapping, bank)
	simdAtoms, simdOut := smultNoinitSimd(alloc, mapping, bank)

	liveOut := hla.NewSeenSet()
	for _, r := range scalarOut {
		liveOut.OutputInterface(r)
	}
	for _, r := range simdOut {
		liveOut.OutputInterface(r)
	}

	woven := hla.Interleave(scalarAtoms, simdAtoms)
	k := min(len(scalarAtoms), len(simdAtoms))
	for _, atom := range scalarAtoms[k:] {
		woven = append(woven, atom...)
	}
	for _, atom := range simdAtoms[k:] {
		woven = append(woven, atom...)
	}
	cmds := hla.LivenessAnalysis(liveOut, woven)
	return hla.Allocate(mapping, bank, cmds)
}

// smult builds a 4-limb x 1-limb widening multiply with carry
// propagation: result = a[0..3] * b, a 5-limb product. b is pinned to x0
// and a[0..3] to x1..x4, mirroring the fixed calling convention the
// generated assembly is meant to slot into.
func smult(alloc *hla.Allocator, mapping *hla.RegisterMapping, bank *hla.RegisterBank) ([]hla.AtomicInstruction, []hla.TypedReg) {
	b := hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 0)
	a := [4]hla.TypedReg{
		hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 1),
		hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 2),
		hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 3),
		hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 4),
	}

	var atoms []hla.AtomicInstruction

	var lo, hi [4]hla.TypedReg
	for i := 0; i < 4; i++ {
		lo[i] = alloc.Fresh(hla.ClassScalar, 0)
		hi[i] = alloc.Fresh(hla.ClassScalar, 0)
		atoms = append(atoms, carryMul(lo[i], hi[i], a[i], b))
	}

	result := make([]hla.TypedReg, 5)
	result[0] = lo[0]

	acc := alloc.Fresh(hla.ClassScalar, 0)
	atoms = append(atoms, hla.Adds(acc, hi[0], lo[1]))
	result[1] = acc

	prevHi := hi[1]
	for i := 2; i < 4; i++ {
		next := alloc.Fresh(hla.ClassScalar, 0)
		atoms = append(atoms, hla.Adcs(next, prevHi, lo[i]))
		result[i] = next
		prevHi = hi[i]
	}

	final := alloc.Fresh(hla.ClassScalar, 0)
	atoms = append(atoms, hla.Cinc(final, prevHi, "cs"))
	result[4] = final

	return atoms, result
}

// carryMul emits the mul/umulh pair computing the full 128-bit product
// of a and b as a single atomic instruction, since a scheduler must
// never separate them (both read the same two operands).
func carryMul(lo, hi, a, b hla.TypedReg) hla.AtomicInstruction {
	return hla.AtomicInstruction{
		hla.Mul(lo, a, b)[0],
		hla.Umulh(hi, a, b)[0],
	}
}

// smultNoinitSimd builds the FMA-based splat-multiply kernel: a scalar
// operand is broadcast across a vector register and converted to
// float64 lanes via ucvtf/dup, then fused-multiply-added against a
// vector operand already in float64 form. aLo is pinned to x5 (the next
// free scalar register after smult's x0..x4) and vB to v0.
func smultNoinitSimd(alloc *hla.Allocator, mapping *hla.RegisterMapping, bank *hla.RegisterBank) ([]hla.AtomicInstruction, []hla.TypedReg) {
	aLo := hla.Input(alloc, mapping, bank, hla.ClassScalar, 0, 5)
	vA := alloc.Fresh(hla.ClassVector, hla.SizeV)
	fA := alloc.Fresh(hla.ClassVector, hla.SizeV)

	vB := hla.Input(alloc, mapping, bank, hla.ClassVector, hla.SizeV, 0)

	var atoms []hla.AtomicInstruction
	atoms = append(atoms, hla.Dup2D(vA, aLo))
	atoms = append(atoms, hla.Ucvtf2D(fA, vA))

	acc := alloc.Fresh(hla.ClassVector, hla.SizeV)
	atoms = append(atoms, hla.Mov(acc, 0))
	atoms = append(atoms, hla.Fmla2D(acc, fA, vB, 0))

	return atoms, []hla.TypedReg{acc}
}
