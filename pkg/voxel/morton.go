package voxel

// Morton (Z-order) encoding for 3-D and 2-D points over uint16
// components. Grounded on the source's morton crate
// (morton/src/lib.rs, morton/src/bitops.rs): that crate picks between a
// BMI2 PDEP/PEXT intrinsic and a portable bit-deposit/extract fallback
// at compile time. Go has no portable PDEP/PEXT intrinsic without
// cgo or hand-written assembly (see DESIGN.md), so this always uses
// the portable shift-and-mask interleave; correctness, not the
// intrinsic, is what matters here.

// MortonEncode3 interleaves the low bits of x, y, z so that adjacent
// cells in a 2x2x2 cube land close together in linear memory. Only the
// low `bits` bits of each component participate; higher bits are
// ignored, matching the source's masked semantics.
func MortonEncode3(x, y, z uint16, bits uint) uint64 {
	return depositBits3(uint64(x), 0, bits) |
		depositBits3(uint64(y), 1, bits) |
		depositBits3(uint64(z), 2, bits)
}

// MortonDecode3 is the inverse of MortonEncode3.
func MortonDecode3(code uint64, bits uint) (x, y, z uint16) {
	x = uint16(extractBits3(code, 0, bits))
	y = uint16(extractBits3(code, 1, bits))
	z = uint16(extractBits3(code, 2, bits))
	return
}

// MortonEncode2 is the 2-D analogue used by OpacityMasks to index an
// (x, y) (or (z, y), or (x, z)) pair into a flat N^2 array.
func MortonEncode2(a, b uint16, bits uint) uint64 {
	return depositBits2(uint64(a), 0, bits) | depositBits2(uint64(b), 1, bits)
}

// MortonDecode2 is the inverse of MortonEncode2.
func MortonDecode2(code uint64, bits uint) (a, b uint16) {
	a = uint16(extractBits2(code, 0, bits))
	b = uint16(extractBits2(code, 1, bits))
	return
}

// depositBits3 spreads the low `bits` bits of v into every 3rd bit of
// the result, starting at bit offset `offset`.
func depositBits3(v uint64, offset uint, bits uint) uint64 {
	var out uint64
	for i := uint(0); i < bits; i++ {
		if v&(1<<i) != 0 {
			out |= 1 << (3*i + offset)
		}
	}
	return out
}

// extractBits3 is the inverse of depositBits3: it gathers every 3rd bit
// starting at `offset` back into a contiguous low-order value.
func extractBits3(code uint64, offset uint, bits uint) uint64 {
	var out uint64
	for i := uint(0); i < bits; i++ {
		if code&(1<<(3*i+offset)) != 0 {
			out |= 1 << i
		}
	}
	return out
}

func depositBits2(v uint64, offset uint, bits uint) uint64 {
	var out uint64
	for i := uint(0); i < bits; i++ {
		if v&(1<<i) != 0 {
			out |= 1 << (2*i + offset)
		}
	}
	return out
}

func extractBits2(code uint64, offset uint, bits uint) uint64 {
	var out uint64
	for i := uint(0); i < bits; i++ {
		if code&(1<<(2*i+offset)) != 0 {
			out |= 1 << i
		}
	}
	return out
}

// bitsFor returns ceil(log2(n)) for a power-of-two n, the number of
// bits needed to address [0, n).
func bitsFor(n int) uint {
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	return bits
}
