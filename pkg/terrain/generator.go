package terrain

import (
	"time"

	"github.com/leterax/voxelcore/internal/logging"
	"github.com/leterax/voxelcore/pkg/voxel"
)

// Generator is a concrete chunkgen.Generator[BlockType]: a surface
// height field plus a dirt-depth field, both layered opensimplex noise,
// producing a grass/dirt/stone column per (x, z) and air above it.
// Grounded on original_source/sandvox/src/world/terrain.rs's
// TerrainGenerator.
type Generator struct {
	surfaceHeight scaledNoise
	dirtDepth     scaledNoise
	logger        *logging.Logger
}

// NewGenerator builds a Generator from a single world seed, deriving
// the two noise fields' seeds from it the way the original seeds a
// Xoroshiro128PlusPlus RNG once and draws each octave's seed from it.
func NewGenerator(seed int64, logger *logging.Logger) *Generator {
	return &Generator{
		surfaceHeight: scaledNoise{
			inner:     newFractalNoise(seed, 4, 1.0/128.0, 2.0, 0.5),
			amplitude: 32.0,
		},
		dirtDepth: scaledNoise{
			inner:     newFractalNoise(seed^0x2545f4914f6cdd1d, 2, 1.0/32.0, 2.0, 0.5),
			amplitude: 2.0,
			bias:      2.0,
		},
		logger: logger,
	}
}

// EarlyDiscard skips every chunk more than 4 chunks below y=0
// (position.Y < -4), giving the world a floor: no chunk is generated
// beneath it and the noise fields are never evaluated there, even though
// GenerateChunk would fill such a chunk with stone. Chunks above the
// terrain are not discarded here; GenerateChunk declines them itself.
func (g *Generator) EarlyDiscard(position voxel.ChunkPosition, shape voxel.Shape) bool {
	return position.Y < -4
}

type column struct {
	surfaceHeight int64
	dirtDepth     int64
}

// GenerateChunk evaluates the noise fields once per (x, z) column,
// caching the result, then builds the chunk from that cache rather than
// resampling noise per voxel — the original's `cells` vec. Returns
// false when every column in this chunk is entirely air (chunk_y above
// every column's surface height); "don't register empty chunks" is left
// to the caller, so this generator simply declines outright, matching
// the original's `Option<Chunk>` return.
func (g *Generator) GenerateChunk(position voxel.ChunkPosition, shape voxel.Shape) (voxel.Chunk[BlockType], bool) {
	start := time.Now()
	n := shape.SideLength()
	bits := bitsFor(n)
	chunkY := int64(position.Y) * int64(n)

	cells := make([]column, n*n)
	anyBlocks := false
	minSurface := int64(1) << 62
	maxSurface := -(int64(1) << 62)
	maxDirt := int64(0)

	for i := range cells {
		x, z := voxel.MortonDecode2(uint64(i), bits)
		worldX := float64(position.X)*float64(n) + float64(x)
		worldZ := float64(position.Z)*float64(n) + float64(z)

		surfaceHeight := int64(g.surfaceHeight.eval2(worldX, worldZ))
		dirtDepth := int64(g.dirtDepth.eval2(worldX, worldZ))
		if dirtDepth < 0 {
			dirtDepth = 0
		}

		if chunkY <= surfaceHeight {
			anyBlocks = true
		}
		if surfaceHeight < minSurface {
			minSurface = surfaceHeight
		}
		if surfaceHeight > maxSurface {
			maxSurface = surfaceHeight
		}
		if dirtDepth > maxDirt {
			maxDirt = dirtDepth
		}

		cells[i] = column{surfaceHeight: surfaceHeight, dirtDepth: dirtDepth}
	}

	if !anyBlocks {
		return voxel.Chunk[BlockType]{}, false
	}

	// Mono-type fast path: if even the topmost voxel in this chunk is
	// still strictly below every column's dirt layer, the whole chunk
	// is solid stone and FromFunc's per-cell callback would just
	// recompute the same answer N^3 times.
	if chunkY+int64(n)-1 < minSurface-maxDirt {
		if g.logger != nil {
			g.logger.ChunkGenerated(position, n*n*n, time.Since(start))
		}
		return voxel.Uniform[BlockType](shape, Stone), true
	}

	chunk := voxel.FromFunc[BlockType](shape, func(p voxel.Point3U16) BlockType {
		cell := cells[voxel.MortonEncode2(p.X, p.Z, bits)]
		y := chunkY + int64(p.Y)

		switch {
		case y > cell.surfaceHeight:
			return Air
		case y == cell.surfaceHeight && cell.dirtDepth >= 1:
			return Grass
		case y < cell.surfaceHeight && y >= cell.surfaceHeight-cell.dirtDepth:
			return Dirt
		default:
			return Stone
		}
	})

	if g.logger != nil {
		g.logger.ChunkGenerated(position, chunk.ByteSize(), time.Since(start))
	}
	return chunk, true
}

// bitsFor returns ceil(log2(n)) for a power-of-two n, duplicated from
// pkg/voxel's unexported helper of the same name since this package
// sits outside it.
func bitsFor(n int) uint {
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	return bits
}
