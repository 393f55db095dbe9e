//go:build nogpu

package dither

import (
	// compute/gpu's own files all carry the !nogpu build tag, so it must
	// not be imported here: with nogpu set, that package has no buildable
	// files and the import would fail at compile time.
	_ "github.com/voidcluster/dither/compute/cpu"
)
