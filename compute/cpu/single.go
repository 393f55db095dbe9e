package cpu

import (
	"github.com/voidcluster/dither/compute"
)

func init() {
	compute.Register(compute.NameCPUSingle, newSingleBackend)
}

func newSingleBackend(cfg compute.Config) (compute.Backend, error) {
	return &SingleBackend{dims: cfg.Dims, kernel: cfg.Kernel}, nil
}

// SingleBackend evaluates the energy field and reduces extrema on a single
// goroutine. It is the back-end of last resort: it never fails to
// initialize and has no resources to release.
type SingleBackend struct {
	dims   compute.Dims
	kernel compute.Kernel
}

// Name implements compute.Backend.
func (b *SingleBackend) Name() string { return compute.NameCPUSingle }

// Evaluate implements compute.Backend by iterating every cell sequentially.
func (b *SingleBackend) Evaluate(p *compute.Bitset, e []float64, reversed bool) error {
	n := b.dims.N()
	for i := 0; i < n; i++ {
		e[i] = cellEnergy(b.dims, b.kernel, p, i, reversed)
	}
	return nil
}

// Extrema implements compute.Backend.
func (b *SingleBackend) Extrema(e []float64, p *compute.Bitset) (minZero, maxOne int, err error) {
	return extrema(e, p)
}

// Close implements compute.Backend. SingleBackend holds no resources.
func (b *SingleBackend) Close() {}
