// Package cpu implements compute.Backend on the CPU, in both a sequential
// (SingleBackend) and worker-pool-parallel (ParallelBackend) form. Both
// share the same minority-aware extrema reduction; only Evaluate differs in
// how it fans out across goroutines.
package cpu

import "github.com/voidcluster/dither/compute"

// extrema implements C4: the minority-aware argmin-over-zeros /
// argmax-over-ones reduction, shared by SingleBackend and ParallelBackend
// since neither backend's spec calls for parallelizing the reducer itself.
func extrema(e []float64, p *compute.Bitset) (minZero, maxOne int, err error) {
	n := p.Len()
	ones := p.PopCount()
	flip := ones*2 >= n // minority class: treat zeros as target when ones dominate

	minZero, maxOne = -1, -1
	var minVal, maxVal float64

	for i := 0; i < n; i++ {
		bit := p.Get(i)
		inTarget := bit
		if flip {
			inTarget = !bit
		}
		if inTarget {
			if maxOne == -1 || e[i] > maxVal {
				maxOne = i
				maxVal = e[i]
			}
		} else {
			if minZero == -1 || e[i] < minVal {
				minZero = i
				minVal = e[i]
			}
		}
	}

	if minZero == -1 || maxOne == -1 {
		return 0, 0, errAllOneClass
	}
	return minZero, maxOne, nil
}
