package compute

import "errors"

// ErrBackendUnavailable indicates a back-end could not be initialized (no
// device, kernel compilation failure, allocation failure). Select catches
// this and falls through to the next back-end in preference order; it is
// never returned to a caller that has a working back-end available.
var ErrBackendUnavailable = errors.New("compute: backend unavailable")

// ErrBackendFailure indicates an already-initialized back-end failed during
// Evaluate or Extrema (device lost, submit failure). Unlike
// ErrBackendUnavailable this is never retried: it is fatal and bubbles to
// the caller.
var ErrBackendFailure = errors.New("compute: backend failure")
