package compute

import "testing"

func TestBuildKernelSymmetry(t *testing.T) {
	k := BuildKernel(5)
	r := k.R
	for p := -r; p <= r; p++ {
		for q := -r; q <= r; q++ {
			want := k.At(p, q)
			if got := k.At(-p, q); got != want {
				t.Errorf("K(%d,%d)=%v != K(%d,%d)=%v", -p, q, got, p, q, want)
			}
			if got := k.At(p, -q); got != want {
				t.Errorf("K(%d,%d)=%v != K(%d,%d)=%v", p, -q, got, p, q, want)
			}
		}
	}
}

func TestBuildKernelEvenRadiusPromoted(t *testing.T) {
	k := BuildKernel(4)
	if k.R != 5 {
		t.Errorf("BuildKernel(4).R = %d, want 5 (even radius promoted to R+1)", k.R)
	}
}

func TestBuildKernelPositive(t *testing.T) {
	k := BuildKernel(3)
	for i, w := range k.Weights {
		if w <= 0 {
			t.Errorf("Weights[%d] = %v, want strictly positive", i, w)
		}
	}
}

func TestBuildKernelPeakAtCenter(t *testing.T) {
	k := BuildKernel(3)
	center := k.At(0, 0)
	if center != 1.0 {
		t.Errorf("K(0,0) = %v, want 1.0 (exp(0))", center)
	}
	for p := -k.R; p <= k.R; p++ {
		for q := -k.R; q <= k.R; q++ {
			if k.At(p, q) > center {
				t.Errorf("K(%d,%d) = %v exceeds center weight %v", p, q, k.At(p, q), center)
			}
		}
	}
}

func TestKernelRadiusConvention(t *testing.T) {
	// Pinned convention: R = (width+height)/4, integer division, then
	// promoted to R+1 by BuildKernel if even.
	tests := []struct {
		width, height int
		wantR         int
	}{
		{16, 16, 9},  // (16+16)/4 = 8, even -> promoted to 9
		{32, 32, 17}, // (32+32)/4 = 16, even -> promoted to 17
		{20, 12, 9},  // (20+12)/4 = 8, even -> promoted to 9
		{21, 11, 9},  // (21+11)/4 = 8 (integer division), even -> promoted to 9
	}
	for _, tt := range tests {
		r := KernelRadius(tt.width, tt.height)
		k := BuildKernel(r)
		if k.R != tt.wantR {
			t.Errorf("KernelRadius(%d,%d)=%d -> BuildKernel.R=%d, want %d",
				tt.width, tt.height, r, k.R, tt.wantR)
		}
	}
}
