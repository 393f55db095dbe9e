// Package dither generates blue-noise dither arrays using the
// void-and-cluster algorithm: an initial random pattern is homogenized by
// repeatedly swapping its tightest cluster for its largest void under a
// toroidal Gaussian energy field, then ranked cell-by-cell into a dense
// ordering usable as an ordered-dither threshold map.
//
// The energy field evaluation and extrema reduction that dominate runtime
// are delegated to a compute.Backend (see the compute package), selected
// automatically in GPU -> CPU-parallel -> CPU-single preference order.
package dither
