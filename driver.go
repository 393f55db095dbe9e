package dither

import (
	"bytes"
	"context"
	"fmt"

	"github.com/voidcluster/dither/compute"
	"github.com/voidcluster/dither/ditherimage"
)

// maxCells caps N at 2^24, the limit spec.md 4.9 places on a single
// Generate call (a 4096x4096 grid).
const maxCells = 1 << 24

// Generate runs the full void-and-cluster pipeline (C5 -> C6 -> C7) and
// returns the rank array D, one entry per cell in row-major order, each
// value in [0, width*height).
func Generate(ctx context.Context, width, height int, prefs Preferences) ([]uint32, error) {
	if width < 16 || height < 16 {
		return nil, fmt.Errorf("%w: width and height must each be >= 16, got %dx%d", ErrInvalidInput, width, height)
	}
	n := width * height
	if n > maxCells {
		return nil, fmt.Errorf("%w: %dx%d grid has %d cells, exceeds the %d limit", ErrInvalidInput, width, height, n, maxCells)
	}

	dims := compute.Dims{Width: width, Height: height}
	kernel := compute.BuildKernel(compute.KernelRadius(width, height))

	backend, err := compute.Select(prefs.computeKind(), compute.Config{
		Dims:    dims,
		Kernel:  kernel,
		Threads: prefs.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer backend.Close()

	rng := newDeterministicRand(prefs.Seed)
	p := sampleInitial(n, initialOnesFraction(n), rng)

	if err := NewHomogenizer(backend, p).Run(ctx); err != nil {
		return nil, err
	}

	d, err := NewRanker(backend, p).Run(ctx)
	if err != nil {
		return nil, err
	}

	Logger().Info("dither: generated", "width", width, "height", height, "backend", backend.Name())
	return d, nil
}

// GenerateImage runs Generate and encodes D as a grayscale PNG, mapping
// D[i]*255/(N-1) to pixel intensity per spec.md §6.
func GenerateImage(ctx context.Context, width, height int, prefs Preferences) ([]byte, error) {
	d, err := Generate(ctx, width, height, prefs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ditherimage.Write(&buf, d, width, height); err != nil {
		return nil, fmt.Errorf("dither: encode image: %w", err)
	}
	return buf.Bytes(), nil
}
