package compute

// Backend is the uniform interface over which the energy evaluator (C3) and
// minority-aware extrema reducer (C4) run, independent of whether the
// underlying device is a CPU worker pool or a GPU compute pipeline.
type Backend interface {
	// Name identifies the back-end for logging ("cpu-single", "cpu-parallel",
	// "wgpu").
	Name() string

	// Evaluate overwrites e[i] for every cell with the sum of kernel weights
	// from every contributing cell within the kernel radius, toroidally
	// wrapped. When reversed is true, zero-cells of p contribute instead of
	// one-cells; the result must be identical to evaluating the complement
	// of p with reversed false.
	Evaluate(p *Bitset, e []float64, reversed bool) error

	// Extrema returns the linear index of the minority-class cell with
	// maximal energy (maxOne) and the majority-class cell with minimal
	// energy (minZero), per the minority-aware predicate of C4. Ties break
	// toward the smallest linear index.
	Extrema(e []float64, p *Bitset) (minZero, maxOne int, err error)

	// Close releases any resources the back-end holds (worker pool, GPU
	// device). Safe to call once after the back-end is no longer in use.
	Close()
}
