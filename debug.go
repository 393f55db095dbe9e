//go:build debug

package dither

// debugAssertions gates the energy-monotonicity check in Homogenizer.Run
// and the no-rank-written-twice check in Ranker.Run (testable properties
// 8 and the closing paragraph of spec.md 4.7). Both scan all N cells per
// iteration, so they are opt-in via this build tag rather than always on.
const debugAssertions = true
