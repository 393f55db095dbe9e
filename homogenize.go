package dither

import (
	"context"
	"fmt"

	"github.com/voidcluster/dither/compute"
)

// Homogenizer transforms a randomly sampled occupancy grid into a
// homogeneous prototype: one in which no tight cluster of ones sits next
// to a large void, under the Gaussian energy functional implemented by its
// back-end.
type Homogenizer struct {
	backend compute.Backend
	p       *compute.Bitset
	e       []float64
}

// NewHomogenizer returns a Homogenizer operating on p in place, using
// backend to evaluate the energy field and reduce extrema.
func NewHomogenizer(backend compute.Backend, p *compute.Bitset) *Homogenizer {
	return &Homogenizer{backend: backend, p: p, e: make([]float64, p.Len())}
}

// Run repeatedly swaps the tightest cluster for the largest void until the
// move would undo itself (spec.md 4.6). p's popcount is unchanged on
// return.
func (h *Homogenizer) Run(ctx context.Context) error {
	var prevSum float64
	havePrev := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := h.backend.Evaluate(h.p, h.e, false); err != nil {
			return fmt.Errorf("%w: homogenize evaluate: %v", ErrBackendFailure, err)
		}

		if debugAssertions {
			sum := sumOverOnes(h.e, h.p)
			if havePrev && sum > prevSum {
				return fmt.Errorf("%w: homogenizer energy increased: %v -> %v", ErrInternalInvariantViolation, prevSum, sum)
			}
			prevSum, havePrev = sum, true
		}

		_, c, err := h.backend.Extrema(h.e, h.p)
		if err != nil {
			return fmt.Errorf("%w: homogenize extrema: %v", ErrBackendFailure, err)
		}

		h.p.Clear(c)

		if err := h.backend.Evaluate(h.p, h.e, false); err != nil {
			return fmt.Errorf("%w: homogenize evaluate: %v", ErrBackendFailure, err)
		}
		vNext, _, err := h.backend.Extrema(h.e, h.p)
		if err != nil {
			return fmt.Errorf("%w: homogenize extrema: %v", ErrBackendFailure, err)
		}

		if vNext == c {
			h.p.Set(c)
			return nil
		}
		h.p.Set(vNext)
	}
}

// sumOverOnes computes Σ E[i] for every one-cell, the quantity testable
// property 8 requires to be non-increasing across iterations.
func sumOverOnes(e []float64, p *compute.Bitset) float64 {
	var sum float64
	for i, v := range e {
		if p.Get(i) {
			sum += v
		}
	}
	return sum
}
