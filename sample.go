package dither

import (
	"math/rand/v2"

	"github.com/voidcluster/dither/compute"
)

// initialOnesFraction pins the k = (width*height*2)/5 convention (spec.md
// 4.5), integer division.
func initialOnesFraction(n int) int {
	return (n * 2) / 5
}

// newDeterministicRand returns the PCG-backed source keyed from
// Preferences.Seed. math/rand/v2's legacy global source is never used:
// determinism (testable property 1) requires a source that is not shared
// mutable state across concurrent Generate calls.
func newDeterministicRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// sampleInitial returns a bitset of length n with exactly k bits set to
// one, their positions drawn uniformly via a Fisher-Yates shuffle of the
// identity permutation.
func sampleInitial(n, k int, rng *rand.Rand) *compute.Bitset {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	b := compute.NewBitset(n)
	for i := 0; i < k; i++ {
		b.Set(order[i])
	}
	return b
}
