package emmart

import (
	"testing"
	"testing/quick"

	"github.com/blck-snwmn/fieldmul/field"
	"github.com/blck-snwmn/fieldmul/fpu"
)

var one5 = [5]uint64{1, 0, 0, 0, 0}

func maskTo52(a [5]uint64) [5]uint64 {
	for i := range a {
		a[i] &= Mask52
	}
	return a
}

// roundTrip puts a into and back out of Montgomery form through engine,
// the same two-call pattern the original implementation's tests used to
// check a full REDC round trip against a reference modulus reduction.
func roundTrip(t *testing.T, engine func(fpu.Token, [5]uint64, [5]uint64, [5]uint64, uint64) [6]uint64, a [5]uint64) {
	t.Helper()
	tok := fpu.AcquireRoundToZero()
	defer tok.Release()

	aTilde := engine(tok, a, field.U52R2, field.U52P, field.U52NP0)
	var aTilde5 [5]uint64
	copy(aTilde5[:], aTilde[:5])

	aRound := engine(tok, aTilde5, one5, field.U52P, field.U52NP0)
	var aRound5 [5]uint64
	copy(aRound5[:], aRound[:5])

	want := Modulus(a, field.U52P)
	got := SubtractionStep(aRound5, field.U52P)
	if got != want {
		t.Fatalf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestCiosOptSubRoundTrip(t *testing.T) {
	f := func(a0, a1, a2, a3, a4 uint64) bool {
		a := maskTo52([5]uint64{a0, a1, a2, a3, a4})
		roundTrip(t, CiosOptSub, a)
		return !t.Failed()
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}

func TestFiosOptSubRoundTrip(t *testing.T) {
	f := func(a0, a1, a2, a3, a4 uint64) bool {
		a := maskTo52([5]uint64{a0, a1, a2, a3, a4})
		roundTrip(t, FiosOptSub, a)
		return !t.Failed()
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}

func TestCiosOptAndFiosOptAgree(t *testing.T) {
	tok := fpu.AcquireRoundToZero()
	defer tok.Release()

	a := maskTo52([5]uint64{1, 2, 3, 4, 5})
	got1 := CiosOpt(tok, a, field.U52R2, field.U52P, field.U52NP0)
	got2 := FiosOpt(tok, a, field.U52R2, field.U52P, field.U52NP0)
	if got1 != got2 {
		t.Fatalf("CiosOpt = %v, FiosOpt = %v", got1, got2)
	}
}

func TestResolveClearsCarry(t *testing.T) {
	t6 := [6]uint64{Mask52 + 5, 0, 0, 0, 0, 0}
	r := Resolve(t6)
	if r[0] != 4 || r[1] != 1 {
		t.Fatalf("Resolve(%v) = %v, expected carry folded into word 1", t6, r)
	}
}

func TestSubtractionStepBorrowReturnsA(t *testing.T) {
	a := [5]uint64{0, 0, 0, 0, 0}
	b := [5]uint64{1, 0, 0, 0, 0}
	got := SubtractionStep(a, b)
	if got != a {
		t.Fatalf("SubtractionStep(0,1) = %v, want a unchanged (%v)", got, a)
	}
}

func TestFiosOptSubSimdMatchesScalar(t *testing.T) {
	tok := fpu.AcquireRoundToZero()
	defer tok.Release()

	a0 := maskTo52([5]uint64{1, 2, 3, 4, 5})
	a1 := maskTo52([5]uint64{5, 4, 3, 2, 1})

	want0 := FiosOptSub(tok, a0, field.U52R2, field.U52P, field.U52NP0)
	want1 := FiosOptSub(tok, a1, field.U52R2, field.U52P, field.U52NP0)

	got := FiosOptSubSimd(tok, [2][5]uint64{a0, a1}, [2][5]uint64{field.U52R2, field.U52R2}, [2][5]uint64{field.U52P, field.U52P}, [2]uint64{field.U52NP0, field.U52NP0})
	if got[0] != want0 || got[1] != want1 {
		t.Fatalf("FiosOptSubSimd = %v, want [%v %v]", got, want0, want1)
	}

	gotSeq0, gotSeq1 := FiosOptSubSimdSeq(tok, a0, field.U52R2, field.U52P, field.U52NP0, a1, field.U52R2, field.U52P, field.U52NP0)
	if gotSeq0 != want0 || gotSeq1 != want1 {
		t.Fatalf("FiosOptSubSimdSeq = (%v,%v), want (%v,%v)", gotSeq0, gotSeq1, want0, want1)
	}

	got0, got1 := FiosOptSubSimdSat(tok, a0, field.U52R2, field.U52P, field.U52NP0, a1, field.U52R2, field.U52P, field.U52NP0)
	if got0 != want0 || got1 != want1 {
		t.Fatalf("FiosOptSubSimdSat = (%v,%v), want (%v,%v)", got0, got1, want0, want1)
	}
}
