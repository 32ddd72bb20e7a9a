package bitmatrix

import "testing"

// bit returns a matrix row value with bit j set (LSB-numbered), the
// convention this package transposes under: row i bit j <-> row j bit i.
func bit(j int) uint64 { return uint64(1) << uint(j) }

func TestTransposeSingleBit(t *testing.T) {
	// M[1][3] = 1, all else 0. Transpose must move it to M[3][1].
	m := SliceMatrix{0, bit(3), 0, 0}
	Transpose(m)

	want := SliceMatrix{0, 0, 0, bit(1)}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("row %d = %#b, want %#b (full: %v)", i, m[i], want[i], m)
		}
	}
}

func TestTransposeInvolution(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 32, 64} {
		m := make(SliceMatrix, n)
		for i := range m {
			// A reproducible, non-trivial pattern: every row gets a
			// different bit pattern derived from its index.
			m[i] = uint64(i)*0x9E3779B97F4A7C15 + uint64(i+1)
			if n < 64 {
				m[i] &= (uint64(1) << uint(n)) - 1
			}
		}

		original := make(SliceMatrix, n)
		copy(original, m)

		Transpose(m)
		Transpose(m)

		for i := range m {
			if m[i] != original[i] {
				t.Fatalf("n=%d: transpose(transpose(m))[%d] = %#x, want %#x", n, i, m[i], original[i])
			}
		}
	}
}

func TestTransposeLenLessThanTwoIsNoop(t *testing.T) {
	m := SliceMatrix{0b1}
	Transpose(m)
	if m[0] != 0b1 {
		t.Fatalf("1x1 transpose mutated the matrix: %v", m)
	}

	var empty SliceMatrix
	Transpose(empty) // must not panic
}

func TestTransposePanicsOnNonPowerOfTwoLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Transpose with length 3 did not panic")
		}
	}()
	Transpose(SliceMatrix{0, 0, 0})
}

func TestViewMatrixTransposesThroughIndirection(t *testing.T) {
	// Transpose a 4-row view embedded at stride 2 inside a larger buffer,
	// mirroring how OpacityMasks.Fill reuses one backing array for a
	// single row or column of a bigger 2-D layout.
	backing := make([]uint64, 8)
	backing[1*2+1] = bit(3) // logical row 1 (index(1) == 3)
	view := ViewMatrix{
		Mask:       backing,
		SideLength: 4,
		Index:      func(row int) int { return row*2 + 1 },
	}
	Transpose(view)

	if backing[1*2+1] != 0 || backing[3*2+1] != bit(1) {
		t.Fatalf("view transpose did not move the bit correctly: %v", backing)
	}
}
