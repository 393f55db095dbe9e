package dither

import (
	"context"
	"fmt"

	"github.com/voidcluster/dither/compute"
)

// Ranker produces the final dither array D from a homogenized occupancy
// grid, in three phases (spec.md 4.7).
type Ranker struct {
	backend compute.Backend
	p       *compute.Bitset
	e       []float64
	d       []uint32
	written []bool
}

// NewRanker returns a Ranker that will rank p (expected to already be a
// homogenized prototype) using backend.
func NewRanker(backend compute.Backend, p *compute.Bitset) *Ranker {
	n := p.Len()
	r := &Ranker{backend: backend, p: p, e: make([]float64, n), d: make([]uint32, n)}
	if debugAssertions {
		r.written = make([]bool, n)
	}
	return r
}

// Run assigns every rank in [0, N) exactly once and returns D.
func (r *Ranker) Run(ctx context.Context) ([]uint32, error) {
	n := r.p.Len()
	k := r.p.PopCount()
	half := (n + 1) / 2 // ceil(N/2)

	saved := r.p.Clone()

	// Phase A: rank the minority pixels, ranks k-1 down to 0.
	for i := k - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.backend.Evaluate(r.p, r.e, false); err != nil {
			return nil, fmt.Errorf("%w: rank phase A evaluate: %v", ErrBackendFailure, err)
		}
		_, c, err := r.backend.Extrema(r.e, r.p)
		if err != nil {
			return nil, fmt.Errorf("%w: rank phase A extrema: %v", ErrBackendFailure, err)
		}
		if err := r.assign(c, i); err != nil {
			return nil, err
		}
		r.p.Clear(c)
	}

	r.p.CopyFrom(saved)

	// Phase B: rank ranks k .. half-1 by repeatedly filling the largest void.
	for i := k; i < half; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.backend.Evaluate(r.p, r.e, false); err != nil {
			return nil, fmt.Errorf("%w: rank phase B evaluate: %v", ErrBackendFailure, err)
		}
		v, _, err := r.backend.Extrema(r.e, r.p)
		if err != nil {
			return nil, fmt.Errorf("%w: rank phase B extrema: %v", ErrBackendFailure, err)
		}
		if err := r.assign(v, i); err != nil {
			return nil, err
		}
		r.p.Set(v)
	}

	// Phase C: rank half .. N-1. Rather than threading a reversed flag
	// through Evaluate's hot loop, maintain the bitwise complement of P and
	// evaluate that directly (spec.md 9's "Tri-state occupancy" note);
	// pc stays in sync by clearing the bit Set on p. Extrema still takes
	// r.p (not pc) as its polarity argument: p's popcount is majority-ones
	// throughout this phase, so the minority-flip it applies consistently
	// targets p's unranked zero-class, which is what phase C ranks.
	pc := r.p.Complement()
	for i := half; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.backend.Evaluate(pc, r.e, false); err != nil {
			return nil, fmt.Errorf("%w: rank phase C evaluate: %v", ErrBackendFailure, err)
		}
		_, c, err := r.backend.Extrema(r.e, r.p)
		if err != nil {
			return nil, fmt.Errorf("%w: rank phase C extrema: %v", ErrBackendFailure, err)
		}
		if err := r.assign(c, i); err != nil {
			return nil, err
		}
		r.p.Set(c)
		pc.Clear(c)
	}

	return r.d, nil
}

// assign records rank at index idx, checking under the debug build tag
// that no index is ranked twice (spec.md 4.7 closing paragraph).
func (r *Ranker) assign(idx, rank int) error {
	if debugAssertions {
		if r.written[idx] {
			return fmt.Errorf("%w: rank written twice at index %d", ErrInternalInvariantViolation, idx)
		}
		r.written[idx] = true
	}
	r.d[idx] = uint32(rank)
	return nil
}
