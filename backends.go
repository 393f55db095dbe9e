//go:build !nogpu

package dither

import (
	// Registers the CPU back-ends unconditionally: compute/cpu has no
	// optional dependencies, so it is always available as the fallback of
	// last resort.
	_ "github.com/voidcluster/dither/compute/cpu"

	// Registers the GPU back-end when the build does not use the nogpu
	// tag. Unlike the teacher's GPURenderTarget accelerators (opt-in via a
	// blank import the caller adds), Generate's documented default
	// behavior is "try GPU, fall back to CPU" with no extra wiring, so the
	// import lives here rather than being left to callers.
	_ "github.com/voidcluster/dither/compute/gpu"
)
