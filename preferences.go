package dither

import "github.com/voidcluster/dither/compute"

// BackEnd selects which compute back-end Generate prefers.
type BackEnd int

const (
	// BackEndAuto tries GPU first, then CPU-parallel, then CPU-single.
	BackEndAuto BackEnd = iota
	// BackEndCPU restricts selection to CPU-parallel, then CPU-single.
	BackEndCPU
	// BackEndGPU prefers GPU, falling back to CPU-parallel, then
	// CPU-single, if unavailable (GPU is never forced at the cost of
	// failing outright; see compute.Select).
	BackEndGPU
)

// Preferences configures a single Generate call. Every field is meaningful
// on its own: there is no partial configuration to build up incrementally,
// so Preferences is a plain struct rather than functional options.
type Preferences struct {
	// BackEnd selects the compute back-end preference order.
	BackEnd BackEnd
	// Threads is the worker count for compute/cpu.ParallelBackend. Zero
	// means GOMAXPROCS(0), clamped to 10.
	Threads uint32
	// Seed keys the deterministic PCG source used by the initial-pattern
	// sampler.
	Seed uint64
}

func (p Preferences) computeKind() compute.Kind {
	switch p.BackEnd {
	case BackEndCPU:
		return compute.KindCPU
	case BackEndGPU:
		return compute.KindGPU
	default:
		return compute.KindAuto
	}
}
