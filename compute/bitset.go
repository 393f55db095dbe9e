package compute

import "math/bits"

// Bitset is a dense bit-vector of length N, addressed in row-major order.
// It represents the occupancy grid P: bit i is one if cell i is a minority
// or majority pixel depending on context.
//
// Bitset carries a Complement operation so callers can flip polarity at a
// phase boundary instead of threading a reversed flag through every hot
// loop that reads P (see Ranker, which complements its working copy once
// per phase rather than branching per cell).
type Bitset struct {
	words []uint64
	n     int
}

// NewBitset returns a zero-valued bitset of length n.
func NewBitset(n int) *Bitset {
	return &Bitset{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the number of addressable bits.
func (b *Bitset) Len() int { return b.n }

// Get reports whether bit i is set.
func (b *Bitset) Get(i int) bool {
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Set sets bit i to one.
func (b *Bitset) Set(i int) {
	b.words[i/64] |= 1 << uint(i%64)
}

// Clear sets bit i to zero.
func (b *Bitset) Clear(i int) {
	b.words[i/64] &^= 1 << uint(i%64)
}

// SetTo sets bit i to the given value.
func (b *Bitset) SetTo(i int, v bool) {
	if v {
		b.Set(i)
	} else {
		b.Clear(i)
	}
}

// PopCount returns the number of set bits.
func (b *Bitset) PopCount() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Complement returns a new bitset with every bit flipped, trailing padding
// bits (beyond n) cleared so PopCount and iteration remain correct.
func (b *Bitset) Complement() *Bitset {
	out := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	for i, w := range b.words {
		out.words[i] = ^w
	}
	out.clearPadding()
	return out
}

// clearPadding zeroes bits beyond n in the final word.
func (b *Bitset) clearPadding() {
	if b.n%64 == 0 {
		return
	}
	last := len(b.words) - 1
	mask := uint64(1)<<uint(b.n%64) - 1
	b.words[last] &= mask
}

// Clone returns an independent copy of the bitset.
func (b *Bitset) Clone() *Bitset {
	out := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(out.words, b.words)
	return out
}

// CopyFrom overwrites the receiver's bits with src's. Both must share the
// same length.
func (b *Bitset) CopyFrom(src *Bitset) {
	copy(b.words, src.words)
}

// PackedWords32 returns the bitset packed as 32-bit little-endian words,
// the layout the GPU back-end uploads directly into a storage buffer (WGSL
// has no native u64 storage type).
func (b *Bitset) PackedWords32() []uint32 {
	out := make([]uint32, (b.n+31)/32)
	for i := range out {
		word := b.words[i/2]
		if i%2 == 1 {
			word >>= 32
		}
		out[i] = uint32(word)
	}
	return out
}
