package voxel

// Chunk is a fixed-size N^3 grid of voxels, grounded on
// original_source/sandvox/src/voxel/chunk.rs's `Chunk<V, S>`. The
// source reference-counts the backing array with `Arc<[V]>` so that
// cloning a handed-off chunk is cheap; a Go slice already shares its
// backing array on copy, so Clone just copies the slice header (3
// words) without touching the data, the same cost as the source's
// Arc clone.
type Chunk[V Voxel] struct {
	voxels []V
	shape  Shape
}

// FromFunc allocates one contiguous buffer of N^3 voxels and calls f
// once per index in the shape's native order, matching the source's
// `from_fn`. Every cell is written exactly once; since Go
// slice allocation zero-initializes and f is called synchronously
// before the Chunk is returned, a panic inside f never hands out a
// partially-built Chunk to a caller (it unwinds through FromFunc
// instead).
func FromFunc[V Voxel](shape Shape, f func(Point3U16) V) Chunk[V] {
	n := shape.NumVoxels()
	voxels := make([]V, n)
	for i := 0; i < n; i++ {
		voxels[i] = f(shape.Decode(i))
	}
	return Chunk[V]{voxels: voxels, shape: shape}
}

// Uniform builds a chunk where every voxel is the same value, without
// invoking a per-cell callback. Grounded on a mono-type chunk fast
// path (pkg/game/chunk_manager.go's handleMonoChunk /
// processMonoChunk): a ChunkGenerator can return this instead of
// FromFunc when it already knows a chunk is homogeneous (all air high
// above the terrain height, all stone deep below it).
func Uniform[V Voxel](shape Shape, value V) Chunk[V] {
	n := shape.NumVoxels()
	voxels := make([]V, n)
	for i := range voxels {
		voxels[i] = value
	}
	return Chunk[V]{voxels: voxels, shape: shape}
}

// At returns the voxel at local coordinate p. p must satisfy
// 0 <= p.{x,y,z} < N; an out-of-range coordinate is a programmer
// error and panics rather than returning an error.
func (c Chunk[V]) At(p Point3U16) V {
	return c.voxels[c.shape.Encode(p)]
}

// Shape returns the chunk's index encoding.
func (c Chunk[V]) Shape() Shape { return c.shape }

// SideLength returns N.
func (c Chunk[V]) SideLength() int { return c.shape.SideLength() }

// ByteSize returns the size in bytes of the backing voxel buffer.
func (c Chunk[V]) ByteSize() int {
	var zero V
	return int(sizeOf(zero)) * len(c.voxels)
}

// Clone returns a Chunk sharing the same backing array; cheap, matches
// the source's Arc<[V]> clone semantics. Safe because Chunk never
// exposes mutable access to its voxels (copy-on-write or exclusive
// ownership would be required before any in-place mutation is
// introduced).
func (c Chunk[V]) Clone() Chunk[V] {
	return c
}

// AsSlice exposes the backing buffer in the chunk's native (shape)
// order, read-only by convention.
func (c Chunk[V]) AsSlice() []V {
	return c.voxels
}

// sizeOf reports the in-memory size of a value using unsafe.Sizeof,
// isolated to its own tiny function so Chunk's exported surface stays
// unsafe-free.
func sizeOf[V any](v V) uintptr {
	return sizeOfImpl(v)
}
