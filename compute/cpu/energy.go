package cpu

import "github.com/voidcluster/dither/compute"

// cellEnergy computes E[i] per C3: the sum of kernel weights from every
// contributing cell within radius R of i, toroidally wrapped. When reversed
// is true, zero-cells of p contribute instead of one-cells.
func cellEnergy(dims compute.Dims, k compute.Kernel, p *compute.Bitset, i int, reversed bool) float64 {
	x, y := dims.To2D(i)
	r := k.R
	sum := 0.0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			j := dims.ToLinear(x+dx, y+dy)
			bit := p.Get(j)
			if reversed {
				bit = !bit
			}
			if bit {
				sum += k.At(dx, dy)
			}
		}
	}
	return sum
}
