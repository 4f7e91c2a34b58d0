package voxmesh

// MortonCoordLimit bounds the chunk coordinates a Morton key can order:
// each component must lie in [-MortonCoordLimit, MortonCoordLimit).
const MortonCoordLimit = 1 << 20

// InMortonRange reports whether every component of c fits a Morton key.
func InMortonRange(c ChunkCoord) bool {
	for _, v := range [3]int{c.X, c.Y, c.Z} {
		if v < -MortonCoordLimit || v >= MortonCoordLimit {
			return false
		}
	}
	return true
}

// MortonKey orders chunk coordinates along a Z-order curve so spatially
// close chunks sit close together in a pack. Coordinates outside
// InMortonRange wrap and lose that ordering.
func MortonKey(c ChunkCoord) uint64 {
	return Morton3D64(uint32(c.X+MortonCoordLimit), uint32(c.Y+MortonCoordLimit), uint32(c.Z+MortonCoordLimit))
}

// CoordFromMortonKey inverts MortonKey for coordinates in range.
func CoordFromMortonKey(key uint64) ChunkCoord {
	x, y, z := MortonDecode3D64(key)
	return ChunkCoord{int(x) - MortonCoordLimit, int(y) - MortonCoordLimit, int(z) - MortonCoordLimit}
}

// Morton3D64 interleaves the low 21 bits of x, y and z, x in bit 0.
func Morton3D64(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

// MortonDecode3D64 splits an interleaved key back into x, y and z.
func MortonDecode3D64(index uint64) (x, y, z uint32) {
	x = uint32(compact1By2(index))
	y = uint32(compact1By2(index >> 1))
	z = uint32(compact1By2(index >> 2))
	return
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

func compact1By2(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x ^ (x >> 2)) & 0x10c30c30c30c30c3
	x = (x ^ (x >> 4)) & 0x100f00f00f00f00f
	x = (x ^ (x >> 8)) & 0x1f0000ff0000ff
	x = (x ^ (x >> 16)) & 0x1f00000000ffff
	x = (x ^ (x >> 32)) & 0x1fffff
	return x
}
