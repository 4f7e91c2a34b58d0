package voxmesh

// Vertex is one interleaved vertex as uploaded to the GPU:
// position, normal and RGBA color, in that field order.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Host vertex buffer layout (bytes, tightly packed float32 little-endian).
const (
	PositionOffset = 0
	NormalOffset   = 12
	ColorOffset    = 24
	VertexStride   = 40
)

const (
	VerticesPerFace = 4
	IndicesPerFace  = 6
	FacesPerCube    = 6
	VerticesPerCube = FacesPerCube * VerticesPerFace // 24
	IndicesPerCube  = FacesPerCube * IndicesPerFace  // 36
)

// Mesh is a vertex buffer plus the uint32 index buffer addressing it.
// A Mesh returned by this package is owned by the caller.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func newMesh(vertices, indices int) *Mesh {
	return &Mesh{
		Vertices: make([]Vertex, 0, vertices),
		Indices:  make([]uint32, 0, indices),
	}
}

// Faces returns the number of quads in the mesh.
func (m *Mesh) Faces() int {
	return len(m.Vertices) / VerticesPerFace
}
