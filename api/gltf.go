package api

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/cubemesh/transform"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// sceneBuilder collects chunk meshes under one root node carrying the
// world transform.
type sceneBuilder struct {
	doc      *gltf.Document
	root     *gltf.Node
	hasAlpha bool
}

func newScene(generator string, world transform.Transform) *sceneBuilder {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	// Colors come from the per-vertex COLOR_0 attribute.
	pbr := &gltf.PBRMetallicRoughness{MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{Name: "VertexColor", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	root := &gltf.Node{Name: "World"}
	setMatrix(&root.Matrix, world.ToMatrix())
	doc.Nodes = []*gltf.Node{root}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return &sceneBuilder{doc: doc, root: root}
}

// setMatrix copies a column-major mgl32 matrix into a glTF node matrix,
// which is column-major as well.
func setMatrix[F float32 | float64](dst *[16]F, m mgl32.Mat4) {
	for i, v := range m {
		dst[i] = F(v)
	}
}

// add writes mesh as a child of the root node and returns its mesh index.
func (s *sceneBuilder) add(name string, mesh *voxmesh.Mesh) int {
	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		colors[i] = v.Color
		if v.Color[3] < 1 {
			s.hasAlpha = true
		}
	}

	posAccessor := modeler.WritePosition(s.doc, positions)
	normalAccessor := modeler.WriteNormal(s.doc, normals)
	colorAccessor := modeler.WriteColor(s.doc, colors)
	indicesAccessor := modeler.WriteIndices(s.doc, mesh.Indices)

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	s.doc.Meshes = append(s.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	s.doc.Nodes = append(s.doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(s.doc.Meshes) - 1)})
	s.root.Children = append(s.root.Children, len(s.doc.Nodes)-1)
	return len(s.doc.Meshes) - 1
}

// attachVolume appends the volume's host bytes to the binary buffer and
// points the mesh's extras at them.
func (s *sceneBuilder) attachVolume(mesh int, vol *voxmesh.LatticeVolume) {
	buf := s.doc.Buffers[0]
	for len(buf.Data)%4 != 0 {
		buf.Data = append(buf.Data, 0)
	}
	data := vol.Bytes()
	s.doc.BufferViews = append(s.doc.BufferViews, &gltf.BufferView{
		Name:       "LatticeVolume",
		Buffer:     0,
		ByteOffset: len(buf.Data),
		ByteLength: len(data),
	})
	buf.Data = append(buf.Data, data...)
	buf.ByteLength = len(buf.Data)
	s.doc.Meshes[mesh].Extras = map[string]any{
		"latticeVolume": map[string]any{
			"bufferView": len(s.doc.BufferViews) - 1,
			"dims":       vol.Dims,
		},
	}
}

func (s *sceneBuilder) encode() ([]byte, error) {
	if s.hasAlpha {
		s.doc.Materials[0].AlphaMode = gltf.AlphaBlend
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(s.doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
