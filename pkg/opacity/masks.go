// Package opacity builds the three orthogonal opacity bit-planes a chunk
// needs for greedy meshing: one N^2 array of u64 per axis pair, with the
// third axis packed into the bits. Grounded on
// original_source/sandvox/src/voxel/mesh/opacity_mask.rs.
package opacity

import (
	"github.com/leterax/voxelcore/pkg/bitmatrix"
	"github.com/leterax/voxelcore/pkg/voxel"
)

// Mask is one N-bit opacity column: bit i set means the voxel at position
// i along the packed axis is opaque.
type Mask uint64

// Get reports whether bit i is set.
func (m Mask) Get(i uint16) bool {
	return m&(1<<i) != 0
}

// FrontFaceMask returns the bits with an opaque voxel and a transparent
// neighbor on the negative side of the packed axis.
func (m Mask) FrontFaceMask() uint64 {
	return uint64(m) &^ (uint64(m) << 1)
}

// BackFaceMask returns the bits with an opaque voxel and a transparent
// neighbor on the positive side of the packed axis.
func (m Mask) BackFaceMask() uint64 {
	return uint64(m) &^ (uint64(m) >> 1)
}

// Masks holds the three opacity bit-planes of one chunk: xy (z packed
// into bits), zy (x packed into bits), xz (y packed into bits). All three
// are derived from the same opacity data; only the storage axis differs.
//
// Bit-ordering convention (resolves spec's open question): row i bit j of
// an input bit-matrix maps to row j bit i of its transpose — standard
// matrix transpose, with bit i of a row counted from the LSB. This is
// verified, not merely assumed, by the opacity-mask-consistency property
// this package's tests check directly: bit z of xy[x,y] must equal bit x
// of zy[z,y] and bit y of xz[x,z] for every voxel in the chunk.
type Masks struct {
	sideLength int
	bits       uint

	xy []uint64
	zy []uint64
	xz []uint64
}

// New allocates the three bit-planes for a chunk of the given side
// length. The buffers are reused across jobs via Fill, so one Masks can
// serve any number of meshing jobs of that side length.
func New(sideLength int) *Masks {
	n2 := sideLength * sideLength
	return &Masks{
		sideLength: sideLength,
		bits:       bitsFor(sideLength),
		xy:         make([]uint64, n2),
		zy:         make([]uint64, n2),
		xz:         make([]uint64, n2),
	}
}

func bitsFor(n int) uint {
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	return bits
}

// Fill builds all three bit-planes from chunk, using data.IsOpaque to
// classify each voxel. Safe to call repeatedly on the same Masks to
// reuse its backing arrays across meshing jobs.
func Fill[V voxel.Voxel](m *Masks, chunk voxel.Chunk[V], data voxel.Data[V]) {
	n := chunk.SideLength()
	if n != m.sideLength {
		panic("opacity: chunk side length does not match Masks")
	}

	for i := 0; i < n*n; i++ {
		x, y := voxel.MortonDecode2(uint64(i), m.bits)
		var col uint64
		for z := uint16(0); z < uint16(n); z++ {
			if data.IsOpaque(chunk.At(voxel.Point3U16{X: x, Y: y, Z: z})) {
				col |= 1 << z
			}
		}
		m.xy[i] = col
	}

	copy(m.zy, m.xy)
	for y := uint16(0); y < uint16(n); y++ {
		bitmatrix.Transpose(rowView(m.zy, n, m.bits, y))
	}

	copy(m.xz, m.xy)
	for x := uint16(0); x < uint16(n); x++ {
		bitmatrix.Transpose(columnView(m.xz, n, m.bits, x))
	}
}

// rowView addresses the N rows of the xy-shaped buffer with y held
// fixed, so transposing it swaps x and z for that one y-slice.
func rowView(mask []uint64, sideLength int, bits uint, y uint16) bitmatrix.ViewMatrix {
	return bitmatrix.ViewMatrix{
		Mask:       mask,
		SideLength: sideLength,
		Index: func(row int) int {
			return int(voxel.MortonEncode2(uint16(row), y, bits))
		},
	}
}

// columnView addresses the N rows of the xy-shaped buffer with x held
// fixed, so transposing it swaps y and z for that one x-slice.
func columnView(mask []uint64, sideLength int, bits uint, x uint16) bitmatrix.ViewMatrix {
	return bitmatrix.ViewMatrix{
		Mask:       mask,
		SideLength: sideLength,
		Index: func(row int) int {
			return int(voxel.MortonEncode2(x, uint16(row), bits))
		},
	}
}

// OpacityXY returns the z-opacity column at local (x, y).
func (m *Masks) OpacityXY(x, y uint16) Mask {
	return Mask(m.xy[voxel.MortonEncode2(x, y, m.bits)])
}

// OpacityZY returns the x-opacity column at local (z, y).
func (m *Masks) OpacityZY(z, y uint16) Mask {
	return Mask(m.zy[voxel.MortonEncode2(z, y, m.bits)])
}

// OpacityXZ returns the y-opacity column at local (x, z).
func (m *Masks) OpacityXZ(x, z uint16) Mask {
	return Mask(m.xz[voxel.MortonEncode2(x, z, m.bits)])
}
