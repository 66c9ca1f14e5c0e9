package hla

import (
	"regexp"
	"testing"
)

func TestTypedRegString(t *testing.T) {
	cases := []struct {
		reg  TypedReg
		want string
	}{
		{Scalar(3), "x3"},
		{Vector(2, SizeV), "v2"},
		{Vector(2, SizeD), "d2"},
	}
	for _, c := range cases {
		if got := c.reg.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestFormatInstruction(t *testing.T) {
	cases := []struct {
		instr Instruction
		want  string
	}{
		{Mov(Scalar(0), 7)[0], "mov x0, #7"},
		{Mul(Scalar(2), Scalar(0), Scalar(1))[0], "mul x2, x0, x1"},
		{Cinc(Scalar(1), Scalar(1), "cs")[0], "cinc x1, x1, cs"},
		{Fmla2D(Vector(3, SizeV), Vector(0, SizeV), Vector(1, SizeV), 0)[0], "fmla.2d v3, v0, v1[0]"},
	}
	for _, c := range cases {
		if got := FormatInstruction(c.instr); got != c.want {
			t.Errorf("FormatInstruction = %q, want %q", got, c.want)
		}
	}
}

var regPattern = regexp.MustCompile(`^[xvd]\d+$`)

func buildSmult(alloc *Allocator, mapping *RegisterMapping, bank *RegisterBank) (instrs []Instruction, a [4]TypedReg, b, out []TypedReg) {
	bReg := Input(alloc, mapping, bank, ClassScalar, 0, 0)
	a = [4]TypedReg{
		Input(alloc, mapping, bank, ClassScalar, 0, 1),
		Input(alloc, mapping, bank, ClassScalar, 0, 2),
		Input(alloc, mapping, bank, ClassScalar, 0, 3),
		Input(alloc, mapping, bank, ClassScalar, 0, 4),
	}

	var lo, hi [4]TypedReg
	for i := 0; i < 4; i++ {
		lo[i] = alloc.Fresh(ClassScalar, 0)
		hi[i] = alloc.Fresh(ClassScalar, 0)
		instrs = append(instrs, Mul(lo[i], a[i], bReg)[0])
		instrs = append(instrs, Umulh(hi[i], a[i], bReg)[0])
	}

	result := make([]TypedReg, 5)
	result[0] = lo[0]
	carry := alloc.Fresh(ClassScalar, 0)
	instrs = append(instrs, Adds(carry, hi[0], lo[1])[0])
	result[1] = carry
	for i := 2; i < 4; i++ {
		next := alloc.Fresh(ClassScalar, 0)
		instrs = append(instrs, Adcs(next, hi[i-1], lo[i])[0])
		result[i] = next
	}
	final := alloc.Fresh(ClassScalar, 0)
	instrs = append(instrs, Cinc(final, hi[3], "cs")[0])
	result[4] = final

	return instrs, a, []TypedReg{bReg}, result
}

func TestLivenessAndAllocateEndToEnd(t *testing.T) {
	alloc := NewAllocator()
	mapping := NewRegisterMapping()
	bank := NewRegisterBank()
	instrs, _, _, outputs := buildSmult(alloc, mapping, bank)

	liveOut := NewSeenSet()
	for _, r := range outputs {
		liveOut.OutputInterface(r)
	}

	cmds := LivenessAnalysis(liveOut, instrs)

	dropCount := 0
	instrCount := 0
	for _, c := range cmds {
		switch c.(type) {
		case CmdDrop:
			dropCount++
		case CmdInstr:
			instrCount++
		}
	}
	if instrCount != len(instrs) {
		t.Fatalf("instrCount = %d, want %d", instrCount, len(instrs))
	}

	out := Allocate(mapping, bank, cmds)

	if len(out) != len(instrs) {
		t.Fatalf("Allocate produced %d instructions, want %d", len(out), len(instrs))
	}
	for _, i := range out {
		if !regPattern.MatchString(i.Dest.String()) {
			t.Errorf("dest %q does not match expected register pattern", i.Dest.String())
		}
		for _, s := range i.Src {
			if !regPattern.MatchString(s.String()) {
				t.Errorf("src %q does not match expected register pattern", s.String())
			}
		}
	}

	// Every fresh register not in the output interface must have been
	// dropped exactly once; none of those drops should exceed the number
	// of distinct non-output registers used.
	if dropCount == 0 {
		t.Fatal("expected at least one register to be dropped")
	}
}

func TestInterleaveTruncatesToShorter(t *testing.T) {
	lhs := []AtomicInstruction{
		Mov(Scalar(0), 1),
		Mov(Scalar(1), 2),
		Mov(Scalar(2), 3),
	}
	rhs := []AtomicInstruction{
		Mov(Scalar(3), 4),
		Mov(Scalar(4), 5),
	}
	got := Interleave(lhs, rhs)
	if len(got) != 4 {
		t.Fatalf("Interleave length = %d, want 4", len(got))
	}
	want := []string{"mov x0, #1", "mov x3, #4", "mov x1, #2", "mov x4, #5"}
	for i, w := range want {
		if FormatInstruction(got[i]) != w {
			t.Errorf("got[%d] = %q, want %q", i, FormatInstruction(got[i]), w)
		}
	}
}

func TestInputPinsPhysicalRegister(t *testing.T) {
	alloc := NewAllocator()
	mapping := NewRegisterMapping()
	bank := NewRegisterBank()

	fresh := Input(alloc, mapping, bank, ClassScalar, 0, 5)
	phys := mapping.getRegister(fresh)
	if phys.Reg != 5 || phys.Class != ClassScalar {
		t.Fatalf("Input bound to %v, want x5", phys)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reserving an already-reserved register")
		}
	}()
	Input(alloc, mapping, bank, ClassScalar, 0, 5)
}

func TestRegisterBankExhaustion(t *testing.T) {
	bank := NewRegisterBank()
	for i := 0; i < 31; i++ {
		bank.popSmallest(ClassScalar)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on exhausted register bank")
		}
	}()
	bank.popSmallest(ClassScalar)
}

func TestGetRegisterPanicsBeforeAssignment(t *testing.T) {
	mapping := NewRegisterMapping()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading an unassigned register")
		}
	}()
	mapping.getRegister(Scalar(9))
}

// TestAllocatePanicsOnUnboundSource exercises the exact invariant the
// liveness/allocation pipeline depends on: a malformed stream that reads
// a register no instruction ever wrote (and that was never pinned with
// Input) must panic, not silently mint it a fresh physical register.
func TestAllocatePanicsOnUnboundSource(t *testing.T) {
	alloc := NewAllocator()
	mapping := NewRegisterMapping()
	bank := NewRegisterBank()

	unbound := alloc.Fresh(ClassScalar, 0)
	dest := alloc.Fresh(ClassScalar, 0)
	cmds := []LivenessCommand{
		CmdInstr{Instr: Mov(dest, 0)[0]},
		CmdInstr{Instr: Mul(dest, dest, unbound)[0]},
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic allocating an instruction that reads an unbound source")
		}
	}()
	Allocate(mapping, bank, cmds)
}
