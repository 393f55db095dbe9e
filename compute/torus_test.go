package compute

import "testing"

func TestToLinearWrap(t *testing.T) {
	d := Dims{Width: 16, Height: 16}

	tests := []struct {
		x, y int
		want int
	}{
		{-1, 0, 15},
		{16, 0, 0},
		{0, -1, 15 * 16},
		{0, 0, 0},
		{15, 15, 15*16 + 15},
		{-16, -16, 0},
	}

	for _, tt := range tests {
		if got := d.ToLinear(tt.x, tt.y); got != tt.want {
			t.Errorf("ToLinear(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTo2DRoundTrip(t *testing.T) {
	d := Dims{Width: 13, Height: 7}
	for i := 0; i < d.N(); i++ {
		x, y := d.To2D(i)
		if got := d.ToLinear(x, y); got != i {
			t.Errorf("To2D(%d) -> (%d,%d) -> ToLinear = %d, want %d", i, x, y, got, i)
		}
	}
}

func TestToLinearNegativeMultiWrap(t *testing.T) {
	d := Dims{Width: 10, Height: 10}
	if got := d.ToLinear(-11, 0); got != 9 {
		t.Errorf("ToLinear(-11, 0) = %d, want 9", got)
	}
}
