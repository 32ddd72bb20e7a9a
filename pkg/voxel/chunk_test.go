package voxel

import "testing"

func TestFromFuncVisitsEveryCellOnce(t *testing.T) {
	shape := NewMortonShape(4)
	counts := make(map[Point3U16]int)
	chunk := FromFunc[uint8](shape, func(p Point3U16) uint8 {
		counts[p]++
		return uint8(p.X + p.Y + p.Z)
	})

	for _, p := range allPoints(4) {
		if counts[p] != 1 {
			t.Fatalf("cell %v visited %d times, want 1", p, counts[p])
		}
		want := uint8(p.X + p.Y + p.Z)
		if got := chunk.At(p); got != want {
			t.Fatalf("At(%v) = %d, want %d", p, got, want)
		}
	}
}

func TestUniformChunk(t *testing.T) {
	shape := NewMortonShape(8)
	chunk := Uniform[uint8](shape, 42)
	for _, p := range allPoints(8) {
		if got := chunk.At(p); got != 42 {
			t.Fatalf("At(%v) = %d, want 42", p, got)
		}
	}
}

func TestCloneSharesBackingArray(t *testing.T) {
	shape := NewMortonShape(2)
	chunk := FromFunc[uint8](shape, func(p Point3U16) uint8 { return 1 })
	clone := chunk.Clone()

	if &chunk.AsSlice()[0] != &clone.AsSlice()[0] {
		t.Fatalf("Clone() did not share the backing array")
	}
}

func TestByteSize(t *testing.T) {
	shape := NewMortonShape(4)
	chunk := Uniform[uint8](shape, 0)
	if got, want := chunk.ByteSize(), 4*4*4; got != want {
		t.Fatalf("ByteSize() = %d, want %d", got, want)
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("At() with out-of-range coordinate did not panic")
		}
	}()
	shape := NewMortonShape(4)
	chunk := Uniform[uint8](shape, 0)
	_ = chunk.At(Point3U16{X: 100, Y: 0, Z: 0})
}
