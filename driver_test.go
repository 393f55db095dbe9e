package dither

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
)

func TestGenerateRejectsUndersizedGrid(t *testing.T) {
	if _, err := Generate(context.Background(), 8, 32, Preferences{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Generate(8,32,...) error = %v, want ErrInvalidInput", err)
	}
	if _, err := Generate(context.Background(), 32, 8, Preferences{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Generate(32,8,...) error = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateRejectsOversizedGrid(t *testing.T) {
	// 5000x5000 exceeds the 2^24 cell limit.
	if _, err := Generate(context.Background(), 5000, 5000, Preferences{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Generate(5000,5000,...) error = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateProducesAPermutation(t *testing.T) {
	const w, h = 16, 16
	d, err := Generate(context.Background(), w, h, Preferences{BackEnd: BackEndCPU, Seed: 123})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	n := w * h
	if len(d) != n {
		t.Fatalf("len(D) = %d, want %d", len(d), n)
	}
	seen := make([]bool, n)
	for _, rank := range d {
		if seen[rank] {
			t.Fatalf("rank %d assigned twice", rank)
		}
		seen[rank] = true
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	const w, h = 16, 16
	prefs := Preferences{BackEnd: BackEndCPU, Seed: 99}

	a, err := Generate(context.Background(), w, h, prefs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(context.Background(), w, h, prefs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("D[%d] differs between two runs with the same seed", i)
		}
	}
}

func TestGenerateImageProducesDecodablePNGSpanningByteRange(t *testing.T) {
	const w, h = 16, 16
	raw, err := GenerateImage(context.Background(), w, h, Preferences{BackEnd: BackEndCPU, Seed: 7})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("decoded image type = %T, want *image.Gray", img)
	}
	if gray.Bounds().Dx() != w || gray.Bounds().Dy() != h {
		t.Fatalf("decoded bounds = %v, want %dx%d", gray.Bounds(), w, h)
	}

	var sawZero, sawMax bool
	for _, v := range gray.Pix {
		if v == 0 {
			sawZero = true
		}
		if v == 255 {
			sawMax = true
		}
	}
	if !sawZero || !sawMax {
		t.Errorf("expected the byte range to span [0,255], sawZero=%v sawMax=%v", sawZero, sawMax)
	}
}
