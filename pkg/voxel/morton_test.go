package voxel

import "testing"

func TestMortonEncode3Example(t *testing.T) {
	// encode([1, 2, 3]) with 3 bits per axis yields 0b110101 = 53.
	got := MortonEncode3(1, 2, 3, 3)
	if got != 53 {
		t.Fatalf("MortonEncode3(1, 2, 3, 3) = %d, want 53", got)
	}

	x, y, z := MortonDecode3(53, 3)
	if x != 1 || y != 2 || z != 3 {
		t.Fatalf("MortonDecode3(53, 3) = (%d, %d, %d), want (1, 2, 3)", x, y, z)
	}
}

func TestMortonRoundTrip3(t *testing.T) {
	for _, bits := range []uint{1, 2, 3, 4, 5, 6} {
		n := uint16(1) << bits
		for x := uint16(0); x < n; x++ {
			for y := uint16(0); y < n; y++ {
				for z := uint16(0); z < n; z++ {
					code := MortonEncode3(x, y, z, bits)
					dx, dy, dz := MortonDecode3(code, bits)
					if dx != x || dy != y || dz != z {
						t.Fatalf("bits=%d: round trip (%d,%d,%d) -> %d -> (%d,%d,%d)",
							bits, x, y, z, code, dx, dy, dz)
					}
				}
			}
		}
	}
}

func TestMortonRoundTrip2(t *testing.T) {
	for _, bits := range []uint{1, 2, 3, 4, 5, 6} {
		n := uint16(1) << bits
		for a := uint16(0); a < n; a++ {
			for b := uint16(0); b < n; b++ {
				code := MortonEncode2(a, b, bits)
				da, db := MortonDecode2(code, bits)
				if da != a || db != b {
					t.Fatalf("bits=%d: round trip (%d,%d) -> %d -> (%d,%d)", bits, a, b, code, da, db)
				}
			}
		}
	}
}

func TestMortonIgnoresHighBits(t *testing.T) {
	// Bits beyond position `bits` in any component are ignored by the
	// encoder.
	bits := uint(3)
	base := MortonEncode3(1, 2, 3, bits)
	withHighBits := MortonEncode3(1|0b1000, 2|0b1000, 3|0b1000, bits)
	if base != withHighBits {
		t.Fatalf("high bits should be ignored: %d != %d", base, withHighBits)
	}
}
