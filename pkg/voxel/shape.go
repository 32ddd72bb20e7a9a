package voxel

// Shape maps between a local in-chunk coordinate and a flat index into
// the chunk's voxel buffer. Grounded on
// original_source/sandvox/src/voxel/chunk.rs's `ChunkShape` trait;
// Go has no const generics, so the side length is a runtime field
// instead of `MortonShape<const CHUNK_SIZE: usize>` (see DESIGN.md
// Open Question).
type Shape interface {
	// SideLength returns N, the chunk's side length. Must be a power
	// of two.
	SideLength() int
	// NumVoxels returns N^3.
	NumVoxels() int
	// Encode maps a point with every component in [0, N) to an index
	// in [0, N^3).
	Encode(p Point3U16) int
	// Decode is the inverse of Encode.
	Decode(i int) Point3U16
}

// MortonShape interleaves the three axis bits, so cells in a 2x2x2
// cube stay close together in memory. This is the default shape used
// for meshing, since GreedyMesher and OpacityMasks lean on Morton
// order internally to transpose strided bit-matrix views cheaply.
type MortonShape struct {
	N int
}

func NewMortonShape(sideLength int) MortonShape {
	if sideLength <= 0 || sideLength&(sideLength-1) != 0 {
		panic("voxel: chunk side length must be a power of two")
	}
	return MortonShape{N: sideLength}
}

func (s MortonShape) SideLength() int { return s.N }
func (s MortonShape) NumVoxels() int  { return s.N * s.N * s.N }

func (s MortonShape) Encode(p Point3U16) int {
	checkBounds(s.N, p)
	bits := bitsFor(s.N)
	return int(MortonEncode3(p.X, p.Y, p.Z, bits))
}

func (s MortonShape) Decode(i int) Point3U16 {
	bits := bitsFor(s.N)
	x, y, z := MortonDecode3(uint64(i), bits)
	return Point3U16{X: x, Y: y, Z: z}
}

// LinearShape lays voxels out z-major, then y, then x: the simplest
// possible encoding, useful as a baseline to compare cache behavior
// against MortonShape.
type LinearShape struct {
	N int
}

func NewLinearShape(sideLength int) LinearShape {
	if sideLength <= 0 || sideLength&(sideLength-1) != 0 {
		panic("voxel: chunk side length must be a power of two")
	}
	return LinearShape{N: sideLength}
}

func (s LinearShape) SideLength() int { return s.N }
func (s LinearShape) NumVoxels() int  { return s.N * s.N * s.N }

func (s LinearShape) Encode(p Point3U16) int {
	checkBounds(s.N, p)
	n := s.N
	return int(p.Z)*n*n + int(p.Y)*n + int(p.X)
}

// checkBounds panics when p falls outside [0, n) on any axis. Encode is
// called on every voxel lookup, so an out-of-range coordinate is a
// programmer error rather than a condition callers are expected to
// recover from.
func checkBounds(n int, p Point3U16) {
	if int(p.X) >= n || int(p.Y) >= n || int(p.Z) >= n {
		panic("voxel: coordinate out of chunk bounds")
	}
}

func (s LinearShape) Decode(i int) Point3U16 {
	n := s.N
	z := i / (n * n)
	r := i % (n * n)
	y := r / n
	x := r % n
	return Point3U16{X: uint16(x), Y: uint16(y), Z: uint16(z)}
}
