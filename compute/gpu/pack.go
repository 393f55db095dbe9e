//go:build !nogpu

package gpu

import "math"

// packDims encodes the uniform consumed by energy.wgsl's Dims struct:
// width, height, radius, reversed (all u32, 16 bytes total).
func packDims(width, height, radius uint32, reversed bool) []byte {
	buf := make([]byte, 16)
	putU32(buf[0:4], width)
	putU32(buf[4:8], height)
	putU32(buf[8:12], radius)
	r := uint32(0)
	if reversed {
		r = 1
	}
	putU32(buf[12:16], r)
	return buf
}

// packU32Pair encodes reduce.wgsl's ReduceState struct: active_len, mode.
func packU32Pair(a, b uint32) []byte {
	buf := make([]byte, 8)
	putU32(buf[0:4], a)
	putU32(buf[4:8], b)
	return buf
}

// packU32Single encodes seed_extrema.wgsl's Params struct: n.
func packU32Single(v uint32) []byte {
	buf := make([]byte, 4)
	putU32(buf, v)
	return buf
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

func getU32(src []byte) uint32 {
	return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
}

func getF32(src []byte) float32 {
	return math.Float32frombits(getU32(src))
}

// packFloat32s converts a []float64 slice (the kernel weight table, or the
// energy field uploaded by Extrema) to a packed little-endian f32 buffer,
// the layout kernel_weights and energy expect in the shaders.
func packFloat32s(values []float64) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		putU32(buf[i*4:i*4+4], math.Float32bits(float32(v)))
	}
	return buf
}

// packWords32 converts a packed-u32 occupancy slice to bytes for upload.
func packWords32(words []uint32) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		putU32(buf[i*4:i*4+4], w)
	}
	return buf
}

// unpackFloat64s reads back a packed f32 energy buffer into a []float64,
// matching compute.Backend.Evaluate's output slice type.
func unpackFloat64s(data []byte, dst []float64) {
	for i := range dst {
		dst[i] = float64(getF32(data[i*4 : i*4+4]))
	}
}
