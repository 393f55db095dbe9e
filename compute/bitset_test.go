package compute

import "testing"

func TestBitsetSetClearGet(t *testing.T) {
	b := NewBitset(100)
	if b.Get(50) {
		t.Fatal("new bitset should be all zero")
	}
	b.Set(50)
	if !b.Get(50) {
		t.Fatal("Set(50) did not stick")
	}
	b.Clear(50)
	if b.Get(50) {
		t.Fatal("Clear(50) did not stick")
	}
}

func TestBitsetPopCount(t *testing.T) {
	b := NewBitset(256)
	for i := 0; i < 100; i++ {
		b.Set(i * 2)
	}
	if got := b.PopCount(); got != 100 {
		t.Errorf("PopCount() = %d, want 100", got)
	}
}

func TestBitsetComplement(t *testing.T) {
	n := 130 // spans a partial final word
	b := NewBitset(n)
	for i := 0; i < n; i += 3 {
		b.Set(i)
	}
	want := n - b.PopCount()
	c := b.Complement()
	if got := c.PopCount(); got != want {
		t.Errorf("Complement().PopCount() = %d, want %d", got, want)
	}
	for i := 0; i < n; i++ {
		if c.Get(i) == b.Get(i) {
			t.Fatalf("bit %d not flipped: original=%v complement=%v", i, b.Get(i), c.Get(i))
		}
	}
}

func TestBitsetCloneIndependence(t *testing.T) {
	b := NewBitset(64)
	b.Set(10)
	c := b.Clone()
	c.Set(20)
	if b.Get(20) {
		t.Fatal("mutating clone affected original")
	}
	if !c.Get(10) {
		t.Fatal("clone lost original bit")
	}
}

func TestBitsetCopyFrom(t *testing.T) {
	a := NewBitset(64)
	a.Set(5)
	b := NewBitset(64)
	b.Set(40)
	b.CopyFrom(a)
	if b.Get(40) {
		t.Fatal("CopyFrom did not overwrite stale bit")
	}
	if !b.Get(5) {
		t.Fatal("CopyFrom did not copy source bit")
	}
}
