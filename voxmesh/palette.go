package voxmesh

import (
	"fmt"
	"strconv"
)

// Color is linear RGBA in [0,1].
type Color [4]float32

// Palette is the ordered set of colors a cube may be painted with.
type Palette []Color

// DefaultPalette returns the eight corner colors of the RGB cube
// (black, blue, green, cyan, red, magenta, yellow, white) with the given alpha.
func DefaultPalette(alpha float32) Palette {
	return Palette{
		{0, 0, 0, alpha},
		{0, 0, 1, alpha},
		{0, 1, 0, alpha},
		{0, 1, 1, alpha},
		{1, 0, 0, alpha},
		{1, 0, 1, alpha},
		{1, 1, 0, alpha},
		{1, 1, 1, alpha},
	}
}

// Opaque reports whether every entry has alpha 1.
func (p Palette) Opaque() bool {
	for _, c := range p {
		if c[3] < 1 {
			return false
		}
	}
	return true
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(hex string) (Color, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color length %q", hex)
	}
	var c Color
	c[3] = 1
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// ParsePalette parses a list of hex colors. An empty list is an error.
func ParsePalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidArgument)
	}
	p := make(Palette, len(hex))
	for i, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}
