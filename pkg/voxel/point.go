// Package voxel holds the chunk container, its index encodings, and the
// voxel/voxel-data contracts meshing and generation are built against.
package voxel

import (
	"fmt"
	"math"
)

// Point3U16 is a local in-chunk coordinate. Each component must be in
// [0, N) for a chunk of side length N.
type Point3U16 struct {
	X, Y, Z uint16
}

func (p Point3U16) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// ChunkPosition identifies one chunk in world space. World coordinate =
// N * ChunkPosition + local.
type ChunkPosition struct {
	X, Y, Z int32
}

func (p ChunkPosition) Add(d ChunkPosition) ChunkPosition {
	return ChunkPosition{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
}

func (p ChunkPosition) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// FloorDivInt32 is floored integer division, so that chunk coordinates
// stay monotonic across the origin for negative world positions.
func FloorDivInt32(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// WorldToChunkPosition converts a floating-point world position to the
// chunk position the viewer is inside, given a chunk side length.
func WorldToChunkPosition(worldX, worldY, worldZ float64, sideLength int) ChunkPosition {
	n := int32(sideLength)
	return ChunkPosition{
		X: floorDivFloat(worldX, n),
		Y: floorDivFloat(worldY, n),
		Z: floorDivFloat(worldZ, n),
	}
}

func floorDivFloat(v float64, n int32) int32 {
	return FloorDivInt32(int32(math.Floor(v)), n)
}
