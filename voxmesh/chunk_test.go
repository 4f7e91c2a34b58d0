package voxmesh

import (
	"errors"
	"testing"
)

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func TestGenerateChunkSingleCube(t *testing.T) {
	palette := DefaultPalette(0.5)
	mesh, err := GenerateChunk(ChunkCoord{}, 1, palette, FixedSource(4))
	if err != nil {
		t.Fatalf("GenerateChunk failed: %v", err)
	}
	if len(mesh.Vertices) != 24 || len(mesh.Indices) != 36 {
		t.Fatalf("got %d vertices, %d indices, want 24, 36", len(mesh.Vertices), len(mesh.Indices))
	}
	seen := make(map[uint32]bool)
	for _, idx := range mesh.Indices {
		if idx > 23 {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 24 {
		t.Fatalf("indices reference %d distinct vertices, want 24", len(seen))
	}
	for i, v := range mesh.Vertices {
		if v.Color != palette[4] {
			t.Fatalf("vertex %d color %v, want %v", i, v.Color, palette[4])
		}
		for axis, p := range v.Position {
			if p != 0.5 && p != -0.5 {
				t.Fatalf("vertex %d axis %d at %v, want ±0.5", i, axis, p)
			}
		}
	}
}

func TestGenerateChunkCounts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		mesh, err := GenerateChunk(ChunkCoord{X: 1, Y: -2, Z: 3}, n, DefaultPalette(1), NewSeededSource(7))
		if err != nil {
			t.Fatalf("size %d: %v", n, err)
		}
		cubes := n * n * n
		if len(mesh.Vertices) != cubes*VerticesPerCube {
			t.Fatalf("size %d: %d vertices, want %d", n, len(mesh.Vertices), cubes*VerticesPerCube)
		}
		if len(mesh.Indices) != cubes*IndicesPerCube {
			t.Fatalf("size %d: %d indices, want %d", n, len(mesh.Indices), cubes*IndicesPerCube)
		}
		if err := mesh.Validate(); err != nil {
			t.Fatalf("size %d: %v", n, err)
		}
	}
}

func TestGenerateChunkFaceBlocks(t *testing.T) {
	mesh, err := GenerateChunk(ChunkCoord{}, 2, DefaultPalette(1), NewSeededSource(1))
	if err != nil {
		t.Fatalf("GenerateChunk failed: %v", err)
	}
	for cube := 0; cube < 8; cube++ {
		normals := make(map[[3]float32]bool)
		for f := 0; f < FacesPerCube; f++ {
			base := cube*VerticesPerCube + f*VerticesPerFace
			n := mesh.Vertices[base].Normal
			for k := 1; k < VerticesPerFace; k++ {
				if mesh.Vertices[base+k].Normal != n {
					t.Fatalf("cube %d face %d: mixed normals", cube, f)
				}
			}
			if n != Faces[f].Normal() {
				t.Fatalf("cube %d face %d: normal %v, want %v", cube, f, n, Faces[f].Normal())
			}
			normals[n] = true

			ib := cube*IndicesPerCube + f*IndicesPerFace
			for k, tmpl := range quadTemplate {
				if mesh.Indices[ib+k] != uint32(base)+tmpl {
					t.Fatalf("cube %d face %d: index %d is %d, want %d", cube, f, k, mesh.Indices[ib+k], uint32(base)+tmpl)
				}
			}
		}
		if len(normals) != 6 {
			t.Fatalf("cube %d has %d distinct normals", cube, len(normals))
		}
	}
}

func TestGenerateChunkWinding(t *testing.T) {
	mesh, err := GenerateChunk(ChunkCoord{}, 1, DefaultPalette(1), FixedSource(0))
	if err != nil {
		t.Fatalf("GenerateChunk failed: %v", err)
	}
	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]]
		b := mesh.Vertices[mesh.Indices[i+1]]
		c := mesh.Vertices[mesh.Indices[i+2]]
		n := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
		if dot(n, a.Normal) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", i/3, a.Normal)
		}
	}
}

func TestGenerateChunkPositions(t *testing.T) {
	mesh, err := GenerateChunk(ChunkCoord{X: 1}, 2, DefaultPalette(1), FixedSource(0))
	if err != nil {
		t.Fatalf("GenerateChunk failed: %v", err)
	}
	// x outermost: the first four cubes share x = 2, the last four x = 3.
	for cube := 0; cube < 8; cube++ {
		verts := mesh.Vertices[cube*VerticesPerCube : (cube+1)*VerticesPerCube]
		lo, hi := verts[0].Position, verts[0].Position
		for _, v := range verts {
			for axis := range lo {
				lo[axis] = min(lo[axis], v.Position[axis])
				hi[axis] = max(hi[axis], v.Position[axis])
			}
		}
		var c [3]float32
		for axis := range c {
			c[axis] = (lo[axis] + hi[axis]) / 2
		}
		want := [3]float32{float32(2 + cube/4), float32(cube / 2 % 2), float32(cube % 2)}
		if c != want {
			t.Fatalf("cube %d centred at %v, want %v", cube, c, want)
		}
	}
}

func TestGenerateChunkCentered(t *testing.T) {
	opts := ChunkOptions{Size: 2, Layout: LayoutCentered, Palette: DefaultPalette(1)}
	mesh, err := GenerateChunkWithOptions(ChunkCoord{}, opts, FixedSource(1))
	if err != nil {
		t.Fatalf("GenerateChunkWithOptions failed: %v", err)
	}
	lo, hi := mesh.Vertices[0].Position[0], mesh.Vertices[0].Position[0]
	for _, v := range mesh.Vertices {
		for _, p := range v.Position {
			lo = min(lo, p)
			hi = max(hi, p)
		}
	}
	// Cells -1 and 0 on every axis.
	if lo != -1.5 || hi != 0.5 {
		t.Fatalf("centered chunk spans [%v,%v], want [-1.5,0.5]", lo, hi)
	}
}

func TestGenerateChunkErrors(t *testing.T) {
	palette := DefaultPalette(1)
	cases := []struct {
		name string
		opts ChunkOptions
		rng  RandomSource
	}{
		{"zero size", ChunkOptions{Size: 0, Palette: palette}, FixedSource(0)},
		{"negative size", ChunkOptions{Size: -3, Palette: palette}, FixedSource(0)},
		{"odd centered", ChunkOptions{Size: 3, Layout: LayoutCentered, Palette: palette}, FixedSource(0)},
		{"unknown layout", ChunkOptions{Size: 2, Layout: Layout(9), Palette: palette}, FixedSource(0)},
		{"empty palette", ChunkOptions{Size: 2}, FixedSource(0)},
		{"nil source", ChunkOptions{Size: 2, Palette: palette}, nil},
		{"draw past palette", ChunkOptions{Size: 2, Palette: palette}, FixedSource(8)},
		{"negative draw", ChunkOptions{Size: 2, Palette: palette}, FixedSource(-1)},
	}
	for _, tc := range cases {
		mesh, err := GenerateChunkWithOptions(ChunkCoord{}, tc.opts, tc.rng)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: got %v, want ErrInvalidArgument", tc.name, err)
		}
		if mesh != nil {
			t.Fatalf("%s: got a mesh alongside the error", tc.name)
		}
	}
}

func TestGenerateChunkDeterministic(t *testing.T) {
	gen := func(seed uint64) *Mesh {
		mesh, err := GenerateChunk(ChunkCoord{X: 2, Z: -1}, 4, DefaultPalette(0.5), NewSeededSource(seed))
		if err != nil {
			t.Fatalf("GenerateChunk failed: %v", err)
		}
		return mesh
	}
	a, b := gen(42), gen(42)
	if a.Digest() != b.Digest() {
		t.Fatalf("same seed gave digests %016x and %016x", a.Digest(), b.Digest())
	}
	if c := gen(43); c.Digest() == a.Digest() {
		t.Fatalf("seeds 42 and 43 gave the same mesh")
	}
}

func TestChunkSeed(t *testing.T) {
	a := ChunkSeed(1, ChunkCoord{X: 1})
	if a != ChunkSeed(1, ChunkCoord{X: 1}) {
		t.Fatalf("ChunkSeed is not stable")
	}
	if a == ChunkSeed(1, ChunkCoord{Y: 1}) || a == ChunkSeed(2, ChunkCoord{X: 1}) {
		t.Fatalf("ChunkSeed collides across coordinates or seeds")
	}
}

func TestRecordChunkReplay(t *testing.T) {
	opts := ChunkOptions{Size: 3, Palette: DefaultPalette(1)}
	mesh, rec, err := RecordChunk(ChunkCoord{Y: 1}, opts, NewSeededSource(9))
	if err != nil {
		t.Fatalf("RecordChunk failed: %v", err)
	}
	if len(rec.Colors) != 27 || rec.Name != "chunk_0_1_0" {
		t.Fatalf("record %s has %d colors", rec.Name, len(rec.Colors))
	}
	replayed, err := GenerateChunkWithOptions(rec.Coord, opts, NewReplaySource(rec.Colors))
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if replayed.Digest() != mesh.Digest() || rec.Digest != mesh.Digest() {
		t.Fatalf("replayed mesh differs from the recorded one")
	}

	_, err = GenerateChunkWithOptions(rec.Coord, opts, NewReplaySource(rec.Colors[:10]))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("short replay: got %v, want ErrInvalidArgument", err)
	}
}

func TestGenerateCubeAt(t *testing.T) {
	mesh := GenerateCubeAt([3]float32{10, 0, -4}, Color{1, 1, 1, 1})
	if mesh.Faces() != 6 {
		t.Fatalf("cube has %d faces", mesh.Faces())
	}
	for _, v := range mesh.Vertices {
		if v.Position[0] != 9.5 && v.Position[0] != 10.5 {
			t.Fatalf("vertex x %v not on the cube at x=10", v.Position[0])
		}
	}
}

func TestMeshValidate(t *testing.T) {
	mesh := GenerateCubeAt([3]float32{}, Color{})
	if err := mesh.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	mesh.Indices[5] = 24
	if err := mesh.Validate(); err == nil {
		t.Fatalf("expected out-of-range index error")
	}
	mesh = GenerateCubeAt([3]float32{}, Color{})
	mesh.Indices = mesh.Indices[:30]
	if err := mesh.Validate(); err == nil {
		t.Fatalf("expected mismatched block error")
	}
}

func TestBufferLayout(t *testing.T) {
	mesh := GenerateCubeAt([3]float32{}, Color{})
	if got := len(VertexBytes(mesh.Vertices)); got != 24*VertexStride {
		t.Fatalf("vertex buffer %d bytes, want %d", got, 24*VertexStride)
	}
	if got := len(IndexBytes(mesh.Indices)); got != 36*4 {
		t.Fatalf("index buffer %d bytes, want %d", got, 36*4)
	}
}
