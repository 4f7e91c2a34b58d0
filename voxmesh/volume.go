package voxmesh

import (
	"encoding/binary"
	"fmt"
)

// LatticeVolume holds one packed RGBA8 color per lattice cell, red in the
// low byte. Cells are stored x fastest, then z, then y, which is the order
// a lattice shader indexes them in.
type LatticeVolume struct {
	Dims  [3]int
	Cells []uint32
}

// NewLatticeVolume allocates a zeroed volume of dims cells.
func NewLatticeVolume(dims [3]int) (*LatticeVolume, error) {
	n := 1
	for axis, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: volume dimension %d is %d", ErrInvalidArgument, axis, d)
		}
		n *= d
	}
	return &LatticeVolume{Dims: dims, Cells: make([]uint32, n)}, nil
}

// Index is the cell offset of (x, y, z): x + z*dx + y*dx*dz.
func (v *LatticeVolume) Index(x, y, z int) int {
	return x + z*v.Dims[0] + y*v.Dims[0]*v.Dims[2]
}

func (v *LatticeVolume) inside(x, y, z int) bool {
	return x >= 0 && x < v.Dims[0] && y >= 0 && y < v.Dims[1] && z >= 0 && z < v.Dims[2]
}

func (v *LatticeVolume) Set(x, y, z int, rgba uint32) error {
	if !v.inside(x, y, z) {
		return fmt.Errorf("%w: cell (%d,%d,%d) outside %v", ErrInvalidArgument, x, y, z, v.Dims)
	}
	v.Cells[v.Index(x, y, z)] = rgba
	return nil
}

// At returns the packed color of a cell, or 0 outside the volume.
func (v *LatticeVolume) At(x, y, z int) uint32 {
	if !v.inside(x, y, z) {
		return 0
	}
	return v.Cells[v.Index(x, y, z)]
}

// Fill paints every cell with c.
func (v *LatticeVolume) Fill(c Color) {
	packed := PackRGBA8(c)
	for i := range v.Cells {
		v.Cells[i] = packed
	}
}

// FillCheckerboard paints alpha 0xBB with full red on even x, green on
// even y and blue on even z.
func (v *LatticeVolume) FillCheckerboard() {
	for x := 0; x < v.Dims[0]; x++ {
		for y := 0; y < v.Dims[1]; y++ {
			for z := 0; z < v.Dims[2]; z++ {
				c := uint32(0xBB000000)
				if x%2 == 0 {
					c |= 0x000000FF
				}
				if y%2 == 0 {
					c |= 0x0000FF00
				}
				if z%2 == 0 {
					c |= 0x00FF0000
				}
				v.Cells[v.Index(x, y, z)] = c
			}
		}
	}
}

// Bytes is the host upload layout: dx, dy, dz as little-endian uint32
// followed by every cell as little-endian uint32.
func (v *LatticeVolume) Bytes() []byte {
	out := make([]byte, 0, 12+4*len(v.Cells))
	for _, d := range v.Dims {
		out = binary.LittleEndian.AppendUint32(out, uint32(d))
	}
	for _, c := range v.Cells {
		out = binary.LittleEndian.AppendUint32(out, c)
	}
	return out
}

// PackRGBA8 quantises c to 8 bits per channel, red in the low byte.
func PackRGBA8(c Color) uint32 {
	var out uint32
	for i, f := range c {
		f = min(max(f, 0), 1)
		out |= uint32(f*255+0.5) << (8 * i)
	}
	return out
}

// UnpackRGBA8 inverts PackRGBA8.
func UnpackRGBA8(v uint32) Color {
	var c Color
	for i := range c {
		c[i] = float32((v>>(8*i))&0xFF) / 255
	}
	return c
}
