package hla

import "fmt"

// RegisterBank is the pool of free physical registers available to the
// allocator, one pool per class, each holding ids [0, 30].
type RegisterBank struct {
	free [2]map[uint64]struct{}
}

// NewRegisterBank returns a bank with every physical register in [0, 30]
// free, for both classes.
func NewRegisterBank() *RegisterBank {
	b := &RegisterBank{}
	for c := 0; c < 2; c++ {
		b.free[c] = make(map[uint64]struct{}, 31)
		for i := uint64(0); i <= 30; i++ {
			b.free[c][i] = struct{}{}
		}
	}
	return b
}

// popSmallest removes and returns the smallest free register id in the
// given class, panicking if the pool is exhausted.
func (b *RegisterBank) popSmallest(class RegClass) uint64 {
	pool := b.free[class]
	if len(pool) == 0 {
		panic(fmt.Sprintf("hla: register bank exhausted for class %v", class))
	}
	best := uint64(1<<64 - 1)
	for id := range pool {
		if id < best {
			best = id
		}
	}
	delete(pool, best)
	return best
}

// reserve removes id from the free pool, panicking if it is already in
// use. Used by Input to pin a specific physical register.
func (b *RegisterBank) reserve(class RegClass, id uint64) {
	pool := b.free[class]
	if _, ok := pool[id]; !ok {
		panic(fmt.Sprintf("hla: register %d (class %v) is already in use", id, class))
	}
	delete(pool, id)
}

// release returns id to the free pool of the given class.
func (b *RegisterBank) release(class RegClass, id uint64) {
	b.free[class][id] = struct{}{}
}

type regState int

const (
	stateUnassigned regState = iota
	stateAssigned
	stateDropped
)

type mappingEntry struct {
	state regState
	phys  TypedReg
}

// RegisterMapping tracks, for every fresh register id the Allocator has
// issued, whether it has been bound to a physical register yet, and if
// so which one. It grows on demand since Go has no fixed-capacity
// sparse-vector equivalent of the teacher's preallocated slot table.
type RegisterMapping struct {
	entries map[uint64]mappingEntry
}

// NewRegisterMapping returns an empty mapping.
func NewRegisterMapping() *RegisterMapping {
	return &RegisterMapping{entries: make(map[uint64]mappingEntry)}
}

func (m *RegisterMapping) entry(fresh uint64) mappingEntry {
	e, ok := m.entries[fresh]
	if !ok {
		return mappingEntry{state: stateUnassigned}
	}
	return e
}

// getRegister resolves a fresh register to its physical binding,
// panicking if it was never assigned or has already been dropped.
func (m *RegisterMapping) getRegister(fresh TypedReg) TypedReg {
	e := m.entry(fresh.Reg)
	switch e.state {
	case stateAssigned:
		return e.phys
	case stateDropped:
		panic(fmt.Sprintf("hla: register %v used after drop", fresh))
	default:
		panic(fmt.Sprintf("hla: register %v read before assignment", fresh))
	}
}

// getOrAllocate resolves fresh to a physical register, allocating one
// from bank on first use.
func (m *RegisterMapping) getOrAllocate(bank *RegisterBank, fresh TypedReg) TypedReg {
	e := m.entry(fresh.Reg)
	switch e.state {
	case stateAssigned:
		return e.phys
	case stateDropped:
		panic(fmt.Sprintf("hla: register %v used after drop", fresh))
	}
	id := bank.popSmallest(fresh.Class)
	phys := TypedReg{Reg: id, Class: fresh.Class, Size: fresh.Size}
	m.entries[fresh.Reg] = mappingEntry{state: stateAssigned, phys: phys}
	return phys
}

// free returns fresh's physical register to bank and marks it dropped,
// panicking on a double drop or a drop before assignment.
func (m *RegisterMapping) free(bank *RegisterBank, fresh TypedReg) {
	e := m.entry(fresh.Reg)
	switch e.state {
	case stateAssigned:
		bank.release(e.phys.Class, e.phys.Reg)
		m.entries[fresh.Reg] = mappingEntry{state: stateDropped}
	case stateDropped:
		panic(fmt.Sprintf("hla: register %v dropped twice", fresh))
	default:
		panic(fmt.Sprintf("hla: register %v dropped before assignment", fresh))
	}
}

// bind directly assigns fresh to phys without touching the bank, used by
// Input to pin an already-reserved physical register.
func (m *RegisterMapping) bind(fresh, phys TypedReg) {
	m.entries[fresh.Reg] = mappingEntry{state: stateAssigned, phys: phys}
}

// Allocate runs the forward pass: it walks a liveness-annotated command
// stream, assigning each fresh destination register a physical one from
// bank the first time it is written, and returns the physical-register
// instruction stream ready to print. Source registers are resolved with
// the strict getRegister instead: a liveness-correct stream always
// assigns a register before reading it, so a source that is still
// Unassigned (or already Dropped) means the stream itself is malformed,
// and that must panic rather than silently mint a fresh physical
// register. CmdDrop commands return their register to the pool and
// produce no output.
func Allocate(mapping *RegisterMapping, bank *RegisterBank, cmds []LivenessCommand) []Instruction {
	out := make([]Instruction, 0, len(cmds))
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case CmdInstr:
			i := c.Instr
			src := make([]TypedReg, len(i.Src))
			for j, s := range i.Src {
				src[j] = mapping.getRegister(s)
			}
			dest := mapping.getOrAllocate(bank, i.Dest)
			out = append(out, Instruction{Opcode: i.Opcode, Dest: dest, Src: src, Mod: i.Mod})
		case CmdDrop:
			mapping.free(bank, c.Reg)
		default:
			panic(fmt.Sprintf("hla: unknown liveness command %T", cmd))
		}
	}
	return out
}

// Input pins a specific physical register (e.g. an incoming function
// argument) to a freshly issued register, so later instructions can
// refer to it through the ordinary fresh-register machinery.
func Input(alloc *Allocator, mapping *RegisterMapping, bank *RegisterBank, class RegClass, size VectorSize, phys uint64) TypedReg {
	bank.reserve(class, phys)
	fresh := alloc.Fresh(class, size)
	mapping.bind(fresh, TypedReg{Reg: phys, Class: class, Size: size})
	return fresh
}

// Interleave zips two atomic-instruction streams one atomic group at a
// time, truncating to the shorter stream, the way two independent
// computations get woven together to hide instruction latency.
func Interleave(lhs, rhs []AtomicInstruction) []Instruction {
	n := len(lhs)
	if len(rhs) < n {
		n = len(rhs)
	}
	out := make([]Instruction, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, lhs[i]...)
		out = append(out, rhs[i]...)
	}
	return out
}
