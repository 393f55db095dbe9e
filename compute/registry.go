package compute

import (
	"fmt"
	"sync"
)

// Kind selects which family of back-ends Select is willing to try.
type Kind int

const (
	// KindAuto tries the GPU back-end first, falling back to CPU.
	KindAuto Kind = iota
	// KindCPU never attempts the GPU back-end.
	KindCPU
	// KindGPU prefers the GPU back-end but still falls back to CPU on
	// initialization failure, per the propagation policy: back-end
	// unavailability at init time is never surfaced while a CPU back-end
	// remains.
	KindGPU
)

// Config bundles the parameters every back-end factory needs to
// initialize: the grid dimensions, the precomputed kernel table, and the
// requested CPU worker count (0 meaning "use a reasonable default").
type Config struct {
	Dims    Dims
	Kernel  Kernel
	Threads uint32
}

// Factory constructs a Backend instance. Returning ErrBackendUnavailable
// signals Select to fall through to the next candidate in preference
// order; any other error is treated the same way during Select (since
// failures at this stage are, by definition, initialization failures).
type Factory func(cfg Config) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Names of the well-known back-ends, used both as registry keys and as the
// fixed fallback order GPU -> CPU-parallel -> CPU-single.
const (
	NameGPU         = "wgpu"
	NameCPUParallel = "cpu-parallel"
	NameCPUSingle   = "cpu-single"
)

// Register registers a back-end factory under name. Typically called from
// an init() function in the package implementing that back-end (compute/gpu
// registers itself under NameGPU when built without the nogpu tag).
// Re-registering a name replaces the previous factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// IsRegistered reports whether a factory is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

func getFactory(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// preferenceOrder returns the candidate back-end names for kind, in the
// order Select should try them.
func preferenceOrder(kind Kind) []string {
	switch kind {
	case KindCPU:
		return []string{NameCPUParallel, NameCPUSingle}
	case KindGPU:
		return []string{NameGPU, NameCPUParallel, NameCPUSingle}
	default: // KindAuto
		return []string{NameGPU, NameCPUParallel, NameCPUSingle}
	}
}

// Select tries each registered back-end in the preference order implied by
// kind, skipping any that is not registered (e.g. compute/gpu was never
// imported, or the build used the nogpu tag) and catching
// ErrBackendUnavailable from a factory's own Init step. A back-end that
// fails to initialize for any reason is logged once at Warn and skipped;
// the first back-end that initializes successfully is returned.
//
// Select returns ErrBackendUnavailable if no candidate back-end initializes.
func Select(kind Kind, cfg Config) (Backend, error) {
	var lastErr error
	for _, name := range preferenceOrder(kind) {
		factory, ok := getFactory(name)
		if !ok {
			continue
		}
		b, err := factory(cfg)
		if err != nil {
			Logger().Warn("compute: backend init failed, falling back",
				"backend", name, "error", err)
			lastErr = err
			continue
		}
		Logger().Info("compute: backend selected", "backend", b.Name())
		return b, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("compute: no backend registered for preference order")
	}
	return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, lastErr)
}
