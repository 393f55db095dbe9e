package dither

import "errors"

// Package errors for dither.
var (
	// ErrInvalidInput is returned when width, height, or another argument
	// violates Generate's documented constraints.
	ErrInvalidInput = errors.New("dither: invalid input")

	// ErrBackendUnavailable is returned when no compute back-end could be
	// initialized at all (should not normally surface: compute/cpu's
	// single-threaded back-end never fails to initialize).
	ErrBackendUnavailable = errors.New("dither: backend unavailable")

	// ErrBackendFailure is returned when a selected back-end fails at
	// runtime, after initialization succeeded. Not retried.
	ErrBackendFailure = errors.New("dither: backend failure")

	// ErrInternalInvariantViolation is returned by debug-build assertions
	// that catch a violated algorithmic invariant (non-monotone energy
	// during homogenization, a rank written twice).
	ErrInternalInvariantViolation = errors.New("dither: internal invariant violation")
)
