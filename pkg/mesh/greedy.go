package mesh

import (
	"math/bits"

	"github.com/leterax/voxelcore/pkg/bitmatrix"
	"github.com/leterax/voxelcore/pkg/opacity"
	"github.com/leterax/voxelcore/pkg/voxel"
)

// activeQuad is a quad still eligible to grow into the next row.
// Mirrors original_source's `GreedyQuad<V>`.
type activeQuad[V voxel.Voxel] struct {
	voxel             V
	i0, j0, i1, j1, k uint16
	mask              uint64
}

// GreedyMesher holds the per-job scratch buffers reused across meshing
// calls: the opacity masks, one row of face masks, and the active-quad
// list. Not safe for concurrent use; each concurrent caller needs its
// own instance (the demo command's generation task allocates one per
// task).
type GreedyMesher[V voxel.Voxel] struct {
	n         int
	opacity   *opacity.Masks
	faceMasks []uint64
	active    []activeQuad[V]
}

// New allocates a GreedyMesher sized for chunks of the given side length.
func New[V voxel.Voxel](sideLength int) *GreedyMesher[V] {
	return &GreedyMesher[V]{
		n:         sideLength,
		opacity:   opacity.New(sideLength),
		faceMasks: make([]uint64, sideLength),
		active:    make([]activeQuad[V], 0, sideLength),
	}
}

// Mesh meshes chunk into sink, running the greedy algorithm once per face
// direction. data answers opacity/texture/merge queries;
// it is shared read-only across concurrent callers with distinct
// GreedyMesher instances.
func (g *GreedyMesher[V]) Mesh(chunk voxel.Chunk[V], data voxel.Data[V], sink MeshSink[V]) {
	opacity.Fill[V](g.opacity, chunk, data)
	n := uint16(g.n)

	identity := func(i, j, k uint16) voxel.Point3U16 { return voxel.Point3U16{X: i, Y: j, Z: k} }
	zyxPerm := func(i, j, k uint16) voxel.Point3U16 { return voxel.Point3U16{X: k, Y: j, Z: i} }
	xzyPerm := func(i, j, k uint16) voxel.Point3U16 { return voxel.Point3U16{X: i, Y: k, Z: j} }

	getVoxel := func(perm func(i, j, k uint16) voxel.Point3U16) func(i, j, k uint16) V {
		return func(i, j, k uint16) V { return chunk.At(perm(i, j, k)) }
	}

	g.meshFaces(n, Front, getVoxel(identity),
		func(i, j uint16) uint64 { return g.opacity.OpacityXY(i, j).FrontFaceMask() },
		data, sink)
	g.meshFaces(n, Back, getVoxel(identity),
		func(i, j uint16) uint64 { return g.opacity.OpacityXY(i, j).BackFaceMask() },
		data, sink)
	g.meshFaces(n, Left, getVoxel(zyxPerm),
		func(i, j uint16) uint64 { return g.opacity.OpacityZY(i, j).FrontFaceMask() },
		data, sink)
	g.meshFaces(n, Right, getVoxel(zyxPerm),
		func(i, j uint16) uint64 { return g.opacity.OpacityZY(i, j).BackFaceMask() },
		data, sink)
	g.meshFaces(n, Down, getVoxel(xzyPerm),
		func(i, j uint16) uint64 { return g.opacity.OpacityXZ(i, j).FrontFaceMask() },
		data, sink)
	g.meshFaces(n, Up, getVoxel(xzyPerm),
		func(i, j uint16) uint64 { return g.opacity.OpacityXZ(i, j).BackFaceMask() },
		data, sink)
}

// meshFaces runs the row-by-row growth/emission pass for one face
// direction. i is the in-plane axis whose bits are packed into
// face_masks, j is the row axis iterated outer-to-inner, k is the
// stacking axis face_masks is indexed by after the transpose. Naming and
// control flow mirror original_source's `MeshFaceBuffer::mesh_faces`.
func (g *GreedyMesher[V]) meshFaces(
	n uint16,
	face BlockFace,
	getVoxel func(i, j, k uint16) V,
	faceMask func(i, j uint16) uint64,
	data voxel.Data[V],
	sink MeshSink[V],
) {
	g.active = g.active[:0]

	for j := uint16(0); j < n; j++ {
		for i := uint16(0); i < n; i++ {
			g.faceMasks[i] = faceMask(i, j)
		}

		transposeFaceMasks(g.faceMasks)

		quadIndex := 0
		for quadIndex < len(g.active) {
			quad := &g.active[quadIndex]
			mask := &g.faceMasks[quad.k]
			grown := false

			if quad.mask&*mask == quad.mask {
				canMerge := true
				for i := quad.i0; i < quad.i1; i++ {
					if !data.CanMerge(quad.voxel, getVoxel(i, j, quad.k)) {
						canMerge = false
						break
					}
				}
				if canMerge {
					*mask &^= quad.mask
					quad.j1 = j + 1
					grown = true
				}
			}

			if grown {
				quadIndex++
			} else {
				g.emit(*quad, face, data, sink)
				last := len(g.active) - 1
				g.active[quadIndex] = g.active[last]
				g.active = g.active[:last]
			}
		}

		for k := uint16(0); k < n; k++ {
			faceMask := g.faceMasks[k]
			var i0 uint16

			for faceMask != 0 {
				firstFace := uint16(bits.TrailingZeros64(faceMask))
				faceMask >>= firstFace
				i0 += firstFace

				numFaces := uint16(bits.TrailingZeros64(^faceMask))

				v := getVoxel(i0, j, k)
				for x := uint16(1); x < numFaces; x++ {
					if !data.CanMerge(v, getVoxel(i0+x, j, k)) {
						numFaces = x
						break
					}
				}

				faceMask >>= numFaces
				i1 := i0 + numFaces

				g.active = append(g.active, activeQuad[V]{
					voxel: v,
					i0:    i0, j0: j,
					i1: i1, j1: j + 1,
					k:    k,
					mask: bitmaskRange(i1) ^ bitmaskRange(i0),
				})

				i0 = i1
			}
		}
	}

	for _, quad := range g.active {
		g.emit(quad, face, data, sink)
	}
	g.active = g.active[:0]
}

func (g *GreedyMesher[V]) emit(quad activeQuad[V], face BlockFace, data voxel.Data[V], sink MeshSink[V]) {
	textureID, ok := data.Texture(quad.voxel, face)
	if !ok {
		return
	}
	sink.PushQuad(face, Quad{I0: quad.i0, J0: quad.j0, I1: quad.i1, J1: quad.j1, K: quad.k}, quad.voxel, textureID)
}

func bitmaskRange(n uint16) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// transposeFaceMasks re-indexes an N-row, N-bit-per-row matrix from rows
// indexed by the in-plane axis i (bits over stacking axis k) to rows
// indexed by k (bits over i), via pkg/bitmatrix's swap-based transpose.
func transposeFaceMasks(rows []uint64) {
	bitmatrix.Transpose(bitmatrix.SliceMatrix(rows))
}
