// Package terrain is a concrete voxel.Data/chunkgen.Generator pair: a
// small block-type table plus a layered-noise heightmap generator,
// exercising the chunk-generator contract without pulling in a full
// terrain system. Grounded on
// original_source/sandvox/src/world/terrain.rs (TerrainVoxel,
// TerrainGenerator) and block types from
// _examples/Leterax-go-voxels/pkg/voxel/block.go, trimmed to the
// handful this generator actually produces.
package terrain

import "github.com/leterax/voxelcore/pkg/voxel"

// BlockType is the small enum this generator's output is built from.
// Voxel itself is just BlockType: a bare, comparable value type
// satisfies voxel.Voxel without a wrapper struct.
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
)

// Voxel is the concrete voxel value this package's Generator and Data
// operate on.
type Voxel = BlockType

type blockProperties struct {
	opaque   bool
	textures [6]voxel.TextureID
}

// Texture ids are the numbers given by the constants below; the host's
// texture atlas is free to lay out its own id space as long as it
// agrees with this numbering. Faces are indexed Left, Right, Down, Up,
// Front, Back, matching voxel.Face's iota order.
const (
	texGrassTop  voxel.TextureID = 0
	texGrassSide voxel.TextureID = 1
	texDirt      voxel.TextureID = 2
	texStone     voxel.TextureID = 3
)

var properties = [...]blockProperties{
	Air: {opaque: false},
	Grass: {opaque: true, textures: [6]voxel.TextureID{
		texGrassSide, texGrassSide, texDirt, texGrassTop, texGrassSide, texGrassSide,
	}},
	Dirt:  {opaque: true, textures: [6]voxel.TextureID{texDirt, texDirt, texDirt, texDirt, texDirt, texDirt}},
	Stone: {opaque: true, textures: [6]voxel.TextureID{texStone, texStone, texStone, texStone, texStone, texStone}},
}

// Data implements voxel.Data[BlockType]: the per-job query object
// GreedyMesher consults while meshing this generator's output.
type Data struct{}

func (Data) IsOpaque(v BlockType) bool {
	return properties[v].opaque
}

func (Data) Texture(v BlockType, face voxel.Face) (voxel.TextureID, bool) {
	if !properties[v].opaque {
		return 0, false
	}
	return properties[v].textures[face], true
}

func (Data) CanMerge(a, b BlockType) bool {
	return a == b
}
