package voxel

// TextureID identifies a face texture in the host's texture atlas.
// The core never interprets the value; it only threads it through to
// the mesh sink.
type TextureID uint32

// Face names the six cube directions a voxel can expose. Meshing
// needs these to ask Data.Texture for a per-face texture id (a voxel
// can be e.g. grass on top and dirt on the sides); the concrete
// direction type with its geometry lives in pkg/mesh to avoid an
// import cycle (mesh depends on voxel, not the reverse).
type Face uint8

const (
	FaceLeft Face = iota
	FaceRight
	FaceDown
	FaceUp
	FaceFront
	FaceBack
)

// Voxel is the capability set a cell value needs: clonable and
// copyable. Any comparable Go value type (an enum of block ids, a
// small struct of plain fields) satisfies this for free; comparability
// also lets a Data implementation answer CanMerge with a plain ==
// without forcing a particular representation.
type Voxel interface {
	comparable
}

// Data is the per-chunk-job context object that answers the three
// queries meshing needs. A single
// implementation is shared read-only across worker threads.
type Data[V Voxel] interface {
	// IsOpaque reports whether a voxel occludes its neighbors. Must be
	// pure.
	IsOpaque(v V) bool
	// Texture returns the texture id to use for one face of a voxel,
	// or false if that face should not be meshed at all (e.g. a
	// decorative, non-cubical voxel that opts out of greedy meshing).
	Texture(v V, face Face) (TextureID, bool)
	// CanMerge reports whether two voxels may be merged into the same
	// quad across a shared face. Must be pure and should be reflexive
	// (CanMerge(v, v) == true) for IsOpaque(v) == true voxels; otherwise
	// their faces are never merged and each becomes its own 1x1 quad.
	CanMerge(a, b V) bool
}
