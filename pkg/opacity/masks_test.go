package opacity

import (
	"math/rand"
	"testing"

	"github.com/leterax/voxelcore/pkg/voxel"
)

type testVoxel uint8

type testData struct{}

func (testData) IsOpaque(v testVoxel) bool { return v != 0 }
func (testData) Texture(v testVoxel, face voxel.Face) (voxel.TextureID, bool) {
	return voxel.TextureID(v), v != 0
}
func (testData) CanMerge(a, b testVoxel) bool { return a == b }

func TestOpacityMaskConsistency(t *testing.T) {
	n := 8
	shape := voxel.NewMortonShape(n)
	rng := rand.New(rand.NewSource(1))

	chunk := voxel.FromFunc[testVoxel](shape, func(p voxel.Point3U16) testVoxel {
		if rng.Intn(2) == 0 {
			return 1
		}
		return 0
	})

	masks := New(n)
	Fill[testVoxel](masks, chunk, testData{})

	for x := uint16(0); x < uint16(n); x++ {
		for y := uint16(0); y < uint16(n); y++ {
			for z := uint16(0); z < uint16(n); z++ {
				opaque := chunk.At(voxel.Point3U16{X: x, Y: y, Z: z}) != 0

				gotXY := masks.OpacityXY(x, y).Get(z)
				gotZY := masks.OpacityZY(z, y).Get(x)
				gotXZ := masks.OpacityXZ(x, z).Get(y)

				if gotXY != opaque {
					t.Fatalf("opacity_xy(%d,%d) bit %d = %v, want %v", x, y, z, gotXY, opaque)
				}
				if gotZY != opaque {
					t.Fatalf("opacity_zy(%d,%d) bit %d = %v, want %v", z, y, x, gotZY, opaque)
				}
				if gotXZ != opaque {
					t.Fatalf("opacity_xz(%d,%d) bit %d = %v, want %v", x, z, y, gotXZ, opaque)
				}
			}
		}
	}
}

func TestOpacityMaskAllOpaque(t *testing.T) {
	n := 4
	shape := voxel.NewMortonShape(n)
	chunk := voxel.Uniform[testVoxel](shape, 1)

	masks := New(n)
	Fill[testVoxel](masks, chunk, testData{})

	full := uint64(1)<<uint(n) - 1
	for x := uint16(0); x < uint16(n); x++ {
		for y := uint16(0); y < uint16(n); y++ {
			if got := uint64(masks.OpacityXY(x, y)); got != full {
				t.Fatalf("OpacityXY(%d,%d) = %#b, want %#b", x, y, got, full)
			}
		}
	}
}

func TestFrontAndBackFaceMask(t *testing.T) {
	// Three consecutive opaque bits (0b0111): front face exposed at the
	// lowest bit (no neighbor below), back face exposed at the highest
	// bit (no neighbor above).
	m := Mask(0b0111)
	if got, want := m.FrontFaceMask(), uint64(0b0001); got != want {
		t.Fatalf("FrontFaceMask() = %#b, want %#b", got, want)
	}
	if got, want := m.BackFaceMask(), uint64(0b0100); got != want {
		t.Fatalf("BackFaceMask() = %#b, want %#b", got, want)
	}
}

func TestFaceMaskOnlyRunBoundariesExposed(t *testing.T) {
	// A contiguous opaque run exposes only its two boundary bits; the
	// interior of the run has opaque neighbors on both sides.
	m := Mask(0xFF)
	if got, want := m.FrontFaceMask(), uint64(0x01); got != want {
		t.Fatalf("FrontFaceMask() = %#b, want %#b", got, want)
	}
	if got, want := m.BackFaceMask(), uint64(0x80); got != want {
		t.Fatalf("BackFaceMask() = %#b, want %#b", got, want)
	}
}
