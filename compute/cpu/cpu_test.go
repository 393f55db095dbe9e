package cpu

import (
	"math/rand/v2"
	"testing"

	"github.com/voidcluster/dither/compute"
)

func randomBitset(n, k int, seed uint64) *compute.Bitset {
	b := compute.NewBitset(n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	for i := 0; i < k; i++ {
		b.Set(order[i])
	}
	return b
}

func TestSingleAndParallelEvaluateAgree(t *testing.T) {
	dims := compute.Dims{Width: 16, Height: 16}
	k := compute.BuildKernel(compute.KernelRadius(dims.Width, dims.Height))
	p := randomBitset(dims.N(), 90, 1)

	single := &SingleBackend{dims: dims, kernel: k}
	par, err := newParallelBackend(compute.Config{Dims: dims, Kernel: k, Threads: 4})
	if err != nil {
		t.Fatalf("newParallelBackend: %v", err)
	}
	defer par.Close()

	eSingle := make([]float64, dims.N())
	eParallel := make([]float64, dims.N())

	if err := single.Evaluate(p, eSingle, false); err != nil {
		t.Fatalf("single Evaluate: %v", err)
	}
	if err := par.Evaluate(p, eParallel, false); err != nil {
		t.Fatalf("parallel Evaluate: %v", err)
	}

	for i := range eSingle {
		if eSingle[i] != eParallel[i] {
			t.Fatalf("E[%d] differs: single=%v parallel=%v", i, eSingle[i], eParallel[i])
		}
	}
}

func TestSingleAndParallelExtremaAgree(t *testing.T) {
	dims := compute.Dims{Width: 16, Height: 16}
	k := compute.BuildKernel(compute.KernelRadius(dims.Width, dims.Height))
	p := randomBitset(dims.N(), 90, 2)

	single := &SingleBackend{dims: dims, kernel: k}
	e := make([]float64, dims.N())
	if err := single.Evaluate(p, e, false); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	minZ, maxO, err := single.Extrema(e, p)
	if err != nil {
		t.Fatalf("Extrema: %v", err)
	}
	if p.Get(minZ) {
		t.Errorf("minZero index %d is a one-cell", minZ)
	}
	if !p.Get(maxO) {
		t.Errorf("maxOne index %d is a zero-cell", maxO)
	}

	par, err := newParallelBackend(compute.Config{Dims: dims, Kernel: k, Threads: 4})
	if err != nil {
		t.Fatalf("newParallelBackend: %v", err)
	}
	defer par.Close()
	parMinZ, parMaxO, err := par.Extrema(e, p)
	if err != nil {
		t.Fatalf("parallel Extrema: %v", err)
	}
	if parMinZ != minZ || parMaxO != maxO {
		t.Errorf("parallel Extrema = (%d, %d), single = (%d, %d)", parMinZ, parMaxO, minZ, maxO)
	}
}

func TestReversedEvaluateMatchesComplement(t *testing.T) {
	dims := compute.Dims{Width: 16, Height: 16}
	k := compute.BuildKernel(compute.KernelRadius(dims.Width, dims.Height))
	p := randomBitset(dims.N(), 90, 3)
	pc := p.Complement()

	single := &SingleBackend{dims: dims, kernel: k}
	eReversed := make([]float64, dims.N())
	eComplement := make([]float64, dims.N())

	if err := single.Evaluate(p, eReversed, true); err != nil {
		t.Fatalf("Evaluate(p, reversed=true): %v", err)
	}
	if err := single.Evaluate(pc, eComplement, false); err != nil {
		t.Fatalf("Evaluate(complement(p), reversed=false): %v", err)
	}

	for i := range eReversed {
		if eReversed[i] != eComplement[i] {
			t.Fatalf("E[%d] differs: reversed=%v complement=%v", i, eReversed[i], eComplement[i])
		}
	}
}

func TestExtremaTieBreaksSmallestIndex(t *testing.T) {
	p := compute.NewBitset(16)
	p.Set(1)
	p.Set(2)
	e := make([]float64, 16)
	// Ones at 1 and 2 share the max energy; zeros at 0,3..15 share the min.
	e[1] = 5
	e[2] = 5
	minZ, maxO, err := extrema(e, p)
	if err != nil {
		t.Fatalf("extrema: %v", err)
	}
	if maxO != 1 {
		t.Errorf("maxOne = %d, want 1 (smallest tied index)", maxO)
	}
	if minZ != 0 {
		t.Errorf("minZero = %d, want 0 (smallest tied index)", minZ)
	}
}

func TestExtremaAllOneClassFails(t *testing.T) {
	p := compute.NewBitset(8)
	for i := 0; i < 8; i++ {
		p.Set(i)
	}
	e := make([]float64, 8)
	if _, _, err := extrema(e, p); err == nil {
		t.Fatal("expected error when pattern has no minority/majority split")
	}
}

func TestResolveThreadsDefaultClampedToTen(t *testing.T) {
	if got := resolveThreads(0); got > 10 || got < 1 {
		t.Errorf("resolveThreads(0) = %d, want in [1, 10]", got)
	}
	if got := resolveThreads(3); got != 3 {
		t.Errorf("resolveThreads(3) = %d, want 3", got)
	}
}
