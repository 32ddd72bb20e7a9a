package voxel

import "testing"

func allPoints(n int) []Point3U16 {
	pts := make([]Point3U16, 0, n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				pts = append(pts, Point3U16{X: uint16(x), Y: uint16(y), Z: uint16(z)})
			}
		}
	}
	return pts
}

func TestMortonShapeRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16, 32} {
		s := NewMortonShape(n)
		if s.NumVoxels() != n*n*n {
			t.Fatalf("n=%d: NumVoxels() = %d, want %d", n, s.NumVoxels(), n*n*n)
		}
		for _, p := range allPoints(n) {
			i := s.Encode(p)
			if i < 0 || i >= s.NumVoxels() {
				t.Fatalf("n=%d: Encode(%v) = %d out of range", n, p, i)
			}
			if got := s.Decode(i); got != p {
				t.Fatalf("n=%d: Decode(Encode(%v)) = %v", n, p, got)
			}
		}
	}
}

func TestLinearShapeRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		s := NewLinearShape(n)
		for _, p := range allPoints(n) {
			i := s.Encode(p)
			if got := s.Decode(i); got != p {
				t.Fatalf("n=%d: Decode(Encode(%v)) = %v", n, p, got)
			}
		}
	}
}

func TestShapePanicsOnNonPowerOfTwo(t *testing.T) {
	for _, n := range []int{0, -1, 3, 5, 6, 17} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewMortonShape(%d) did not panic", n)
				}
			}()
			NewMortonShape(n)
		}()
	}
}

func TestShapesAgreeOnIndexRange(t *testing.T) {
	n := 8
	morton := NewMortonShape(n)
	linear := NewLinearShape(n)
	seenMorton := make(map[int]bool)
	seenLinear := make(map[int]bool)
	for _, p := range allPoints(n) {
		seenMorton[morton.Encode(p)] = true
		seenLinear[linear.Encode(p)] = true
	}
	if len(seenMorton) != n*n*n || len(seenLinear) != n*n*n {
		t.Fatalf("shape encodings are not bijective: morton=%d linear=%d want %d",
			len(seenMorton), len(seenLinear), n*n*n)
	}
}
