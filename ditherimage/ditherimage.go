// Package ditherimage renders a dither array's rank map to a grayscale PNG.
package ditherimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Write encodes d (a row-major rank array of length width*height, every
// value in [0, width*height)) as an 8-bit grayscale PNG, mapping
// rank*255/(N-1) to pixel intensity per the threshold-map convention.
func Write(w io.Writer, d []uint32, width, height int) error {
	n := width * height
	if len(d) != n {
		return fmt.Errorf("ditherimage: len(d)=%d does not match %dx%d", len(d), width, height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, rank := range d {
		img.Pix[i] = byte(uint64(rank) * 255 / uint64(n-1))
	}

	return png.Encode(w, img)
}

// Save is a convenience wrapper around Write that creates path and encodes
// d to it, closing the file on return.
func Save(path string, d []uint32, width, height int) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return Write(f, d, width, height)
}

// At returns the pixel color the rank map assigns to cell (x, y), without
// needing a fully materialized image.Gray. Exposed for callers that want to
// preview a single pixel or build a custom image.Image.
func At(d []uint32, width, x, y int) color.Gray {
	n := len(d)
	rank := d[y*width+x]
	return color.Gray{Y: byte(uint64(rank) * 255 / uint64(n-1))}
}
