// Package mesh turns a chunk's opacity masks into a minimal stream of
// textured quads via greedy merging, one pass per face direction.
// Grounded on original_source/sandvox/src/voxel/mesh/greedy_quads.rs and
// .../mesh/mod.rs (UnorientedQuad, BlockFace geometry tables).
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/voxelcore/pkg/voxel"
)

// BlockFace names one of the six cube directions a quad can face. Reuses
// voxel.Face (the Data[V].Texture contract already needs that enum) under
// the name it's known by at the meshing boundary.
type BlockFace = voxel.Face

const (
	Left  = voxel.FaceLeft
	Right = voxel.FaceRight
	Down  = voxel.FaceDown
	Up    = voxel.FaceUp
	Front = voxel.FaceFront
	Back  = voxel.FaceBack
)

// Quad is one emitted rectangle of coplanar unit faces, in local chunk
// coordinates, not yet oriented into world-space vertices. (I0, J0) and
// (I1, J1) are the half-open in-plane extent; K is the fixed stacking
// coordinate. Matches original_source's `UnorientedQuad`.
type Quad struct {
	I0, J0 uint16
	I1, J1 uint16
	K      uint16
}

var frontIndices = [2][3]uint32{{0, 1, 2}, {0, 2, 3}}
var backIndices = [2][3]uint32{{2, 1, 0}, {3, 2, 0}}

func (q Quad) xyVertices() [4]mgl32.Vec3 {
	i0, j0, i1, j1, k := float32(q.I0), float32(q.J0), float32(q.I1), float32(q.J1), float32(q.K)
	return [4]mgl32.Vec3{
		{i0, j0, k},
		{i1, j0, k},
		{i1, j1, k},
		{i0, j1, k},
	}
}

func (q Quad) zyVertices() [4]mgl32.Vec3 {
	i0, j0, i1, j1, k := float32(q.I0), float32(q.J0), float32(q.I1), float32(q.J1), float32(q.K)
	return [4]mgl32.Vec3{
		{k, j1, i0},
		{k, j1, i1},
		{k, j0, i1},
		{k, j0, i0},
	}
}

func (q Quad) xzVertices() [4]mgl32.Vec3 {
	i0, j0, i1, j1, k := float32(q.I0), float32(q.J0), float32(q.I1), float32(q.J1), float32(q.K)
	return [4]mgl32.Vec3{
		{i0, k, j1},
		{i1, k, j1},
		{i1, k, j0},
		{i0, k, j0},
	}
}

func (q Quad) uvs(face BlockFace) [4]mgl32.Vec2 {
	dx := float32(q.I1 - q.I0)
	dy := float32(q.J1 - q.J0)

	switch face {
	case Left:
		return [4]mgl32.Vec2{{dx, 0}, {0, 0}, {0, dy}, {dx, dy}}
	case Right, Down, Up:
		return [4]mgl32.Vec2{{0, 0}, {dx, 0}, {dx, dy}, {0, dy}}
	case Front:
		return [4]mgl32.Vec2{{0, dy}, {dx, dy}, {dx, 0}, {0, 0}}
	default: // Back
		return [4]mgl32.Vec2{{dx, dy}, {0, dy}, {0, 0}, {dx, 0}}
	}
}

// Geometry computes the world-space (chunk-local, unit-voxel-scaled)
// vertex positions, shared face normal, triangle indices, and per-vertex
// UVs for this quad oriented toward face. Positions are in the anchor
// chunk's local coordinate frame; the caller is expected to translate by
// the chunk's world offset.
func (q Quad) Geometry(face BlockFace) (positions [4]mgl32.Vec3, normal mgl32.Vec3, indices [2][3]uint32, uvs [4]mgl32.Vec2) {
	uvs = q.uvs(face)

	var verts [4]mgl32.Vec3
	var offset mgl32.Vec3

	switch face {
	case Left:
		verts, normal, indices, offset = q.zyVertices(), mgl32.Vec3{-1, 0, 0}, frontIndices, mgl32.Vec3{}
	case Right:
		verts, normal, indices, offset = q.zyVertices(), mgl32.Vec3{1, 0, 0}, backIndices, mgl32.Vec3{1, 0, 0}
	case Down:
		verts, normal, indices, offset = q.xzVertices(), mgl32.Vec3{0, -1, 0}, frontIndices, mgl32.Vec3{}
	case Up:
		verts, normal, indices, offset = q.xzVertices(), mgl32.Vec3{0, 1, 0}, backIndices, mgl32.Vec3{0, 1, 0}
	case Front:
		verts, normal, indices, offset = q.xyVertices(), mgl32.Vec3{0, 0, -1}, frontIndices, mgl32.Vec3{}
	default: // Back
		verts, normal, indices, offset = q.xyVertices(), mgl32.Vec3{0, 0, 1}, backIndices, mgl32.Vec3{0, 0, 1}
	}

	for i, v := range verts {
		positions[i] = v.Add(offset)
	}
	return positions, normal, indices, uvs
}

// MeshSink receives one emitted quad at a time. Kept abstract so the
// meshing core has no GPU dependency: a concrete sink turns this into
// vertex/index buffers (or whatever the host's render layer needs) using
// Quad.Geometry.
type MeshSink[V voxel.Voxel] interface {
	PushQuad(face BlockFace, quad Quad, voxel V, textureID voxel.TextureID)
}
