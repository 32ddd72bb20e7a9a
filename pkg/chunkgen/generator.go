// Package chunkgen declares the contract a procedural chunk producer
// must satisfy. This package ships no algorithm of its own;
// pkg/terrain supplies one concrete implementation.
package chunkgen

import "github.com/leterax/voxelcore/pkg/voxel"

// Generator produces chunks for a ChunkPosition, deterministically in
// (position, generator state). Implementations are shared among workers
// behind a single pointer/interface value and must be safe to call
// concurrently from multiple worker goroutines.
type Generator[V voxel.Voxel] interface {
	// EarlyDiscard is a cheap, pure filter based only on the position: if
	// true, GenerateChunk is never called for it (e.g. "no terrain is
	// ever generated above this height"). Must not allocate.
	EarlyDiscard(position voxel.ChunkPosition, shape voxel.Shape) bool

	// GenerateChunk produces the chunk at position, or false if this
	// generator declines to materialize one (e.g. it would be entirely
	// empty and the caller should simply not register anything there).
	GenerateChunk(position voxel.ChunkPosition, shape voxel.Shape) (voxel.Chunk[V], bool)
}
