package voxmesh

import (
	"fmt"
	"math"
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Origin is the world position of local cell (0,0,0) for chunks of the given size.
func (c ChunkCoord) Origin(size int) [3]float32 {
	return [3]float32{float32(c.X * size), float32(c.Y * size), float32(c.Z * size)}
}

// Layout selects how local cell coordinates are numbered inside a chunk.
type Layout uint8

const (
	// LayoutZeroBased numbers cells 0..size-1 on every axis.
	LayoutZeroBased Layout = iota
	// LayoutCentered numbers cells -size/2..size/2-1 and needs an even size.
	LayoutCentered
)

func (l Layout) String() string {
	switch l {
	case LayoutZeroBased:
		return "zero"
	case LayoutCentered:
		return "centered"
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

// ParseLayout accepts the names produced by Layout.String.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "zero":
		return LayoutZeroBased, nil
	case "centered":
		return LayoutCentered, nil
	}
	return 0, fmt.Errorf("%w: unknown layout %q", ErrInvalidArgument, s)
}

func (l Layout) first(size int) int {
	if l == LayoutCentered {
		return -size / 2
	}
	return 0
}

// ChunkOptions configures GenerateChunkWithOptions.
type ChunkOptions struct {
	Size    int
	Layout  Layout
	Palette Palette
}

func (o ChunkOptions) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidArgument, o.Size)
	}
	if o.Layout != LayoutZeroBased && o.Layout != LayoutCentered {
		return fmt.Errorf("%w: unknown layout %d", ErrInvalidArgument, o.Layout)
	}
	if o.Layout == LayoutCentered && o.Size%2 != 0 {
		return fmt.Errorf("%w: centered layout needs an even chunk size, got %d", ErrInvalidArgument, o.Size)
	}
	if int64(o.Size)*int64(o.Size)*int64(o.Size)*VerticesPerCube > math.MaxUint32 {
		return fmt.Errorf("%w: chunk size %d overflows 32-bit indices", ErrInvalidArgument, o.Size)
	}
	if len(o.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidArgument)
	}
	return nil
}

// GenerateCubeAt builds one unit cube centred at center: 24 vertices in
// face order and 36 indices addressing 0..23.
func GenerateCubeAt(center [3]float32, color Color) *Mesh {
	mesh := newMesh(VerticesPerCube, IndicesPerCube)
	appendCube(mesh, center, color)
	return mesh
}

func appendCube(mesh *Mesh, center [3]float32, color Color) {
	for _, f := range Faces {
		appendFace(mesh, f, center, unitScale, color, 0)
	}
}

// GenerateChunk meshes a zero-based chunk of size³ unit cubes.
func GenerateChunk(coord ChunkCoord, size int, palette Palette, rng RandomSource) (*Mesh, error) {
	return GenerateChunkWithOptions(coord, ChunkOptions{Size: size, Palette: palette}, rng)
}

// GenerateChunkWithOptions meshes every cell of the chunk at coord.
//
// Cells are visited x outermost, then y, then z. Each cell draws one
// palette index from rng and emits its six faces, so cube k occupies
// vertices [24k, 24k+24) and indices [36k, 36k+36). Exactly size³ draws
// are consumed. On error no mesh is returned.
func GenerateChunkWithOptions(coord ChunkCoord, opts ChunkOptions, rng RandomSource) (*Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	n := opts.Size
	cubes := n * n * n
	mesh := newMesh(cubes*VerticesPerCube, cubes*IndicesPerCube)
	origin := coord.Origin(n)
	lo := opts.Layout.first(n)
	colors := len(opts.Palette)

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				k := rng.IntN(colors)
				if k < 0 || k >= colors {
					return nil, fmt.Errorf("%w: palette draw %d outside [0,%d)", ErrInvalidArgument, k, colors)
				}
				center := [3]float32{
					origin[0] + float32(lo+x),
					origin[1] + float32(lo+y),
					origin[2] + float32(lo+z),
				}
				appendCube(mesh, center, opts.Palette[k])
			}
		}
	}
	return mesh, nil
}

// RecordChunk generates a chunk and captures its palette draws as a
// ChunkRecord that can rebuild the identical mesh later.
func RecordChunk(coord ChunkCoord, opts ChunkOptions, rng RandomSource) (*Mesh, ChunkRecord, error) {
	if len(opts.Palette) > MaxPackPalette {
		return nil, ChunkRecord{}, fmt.Errorf("%w: palette of %d colors exceeds %d", ErrInvalidArgument, len(opts.Palette), MaxPackPalette)
	}
	if err := opts.validate(); err != nil {
		return nil, ChunkRecord{}, err
	}
	if rng == nil {
		return nil, ChunkRecord{}, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	rec := &recordingSource{src: rng, draws: make([]uint8, 0, opts.Size*opts.Size*opts.Size)}
	mesh, err := GenerateChunkWithOptions(coord, opts, rec)
	if err != nil {
		return nil, ChunkRecord{}, err
	}
	return mesh, ChunkRecord{
		Name:   fmt.Sprintf("chunk_%d_%d_%d", coord.X, coord.Y, coord.Z),
		Coord:  coord,
		Size:   opts.Size,
		Layout: opts.Layout,
		Colors: rec.draws,
		Digest: mesh.Digest(),
	}, nil
}
