// Package compute defines the uniform interface over which the
// void-and-cluster kernel evaluates its toroidal Gaussian energy field and
// reduces it to extrema, plus the back-ends that implement it (compute/cpu,
// compute/gpu).
//
// A Backend is selected once per generation run via Select and reused for
// every evaluate/extrema call of that run; back-ends never alias P or E, and
// Close releases any resources (worker pools, GPU handles) the back-end
// holds.
package compute
