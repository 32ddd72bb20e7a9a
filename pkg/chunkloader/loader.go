// Package chunkloader turns a viewer's world position into the set of
// chunk positions it wants loaded, over an axis-aligned radius box.
// Grounded on the floored-division convention in pkg/voxel
// (original_source/sandvox/src/world/mod.rs's chunk-position
// derivation).
package chunkloader

import "github.com/leterax/voxelcore/pkg/voxel"

// Loader is a per-viewer policy object: a radius in chunks on each axis.
type Loader struct {
	Radius voxel.ChunkPosition
}

// New builds a Loader with the given per-axis radius.
func New(rx, ry, rz int32) Loader {
	return Loader{Radius: voxel.ChunkPosition{X: rx, Y: ry, Z: rz}}
}

// State caches the last observed chunk position for one viewer, so
// Update can detect movement and stay idempotent when nothing changed.
type State struct {
	attached bool
	last     voxel.ChunkPosition
}

// Update computes the chunk position the viewer is currently inside and,
// if it moved (or this is the first call), returns the positions newly
// wanted in its load radius that aren't already registered in present.
// Calling Update twice in a row with an unchanged viewer position returns
// no new positions the second time.
func (l Loader) Update(state *State, viewerWorldPosition [3]float64, sideLength int, present func(voxel.ChunkPosition) bool) []voxel.ChunkPosition {
	p := voxel.WorldToChunkPosition(viewerWorldPosition[0], viewerWorldPosition[1], viewerWorldPosition[2], sideLength)

	if state.attached && p == state.last {
		return nil
	}

	wanted := make([]voxel.ChunkPosition, 0, l.boxVolume())
	for dx := -l.Radius.X; dx <= l.Radius.X; dx++ {
		for dy := -l.Radius.Y; dy <= l.Radius.Y; dy++ {
			for dz := -l.Radius.Z; dz <= l.Radius.Z; dz++ {
				q := p.Add(voxel.ChunkPosition{X: dx, Y: dy, Z: dz})
				if !present(q) {
					wanted = append(wanted, q)
				}
			}
		}
	}

	state.attached = true
	state.last = p
	return wanted
}

func (l Loader) boxVolume() int {
	return int(2*l.Radius.X+1) * int(2*l.Radius.Y+1) * int(2*l.Radius.Z+1)
}
