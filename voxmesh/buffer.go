package voxmesh

import (
	"encoding/binary"
	"fmt"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
)

// VertexBytes serialises vertices in the host upload layout
// (VertexStride bytes each, little-endian float32).
func VertexBytes(vs []Vertex) []byte {
	out := make([]byte, 0, len(vs)*VertexStride)
	for _, v := range vs {
		for _, f := range v.Position {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
		for _, f := range v.Normal {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
		for _, f := range v.Color {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
	}
	return out
}

// IndexBytes serialises indices as little-endian uint32.
func IndexBytes(is []uint32) []byte {
	out := make([]byte, 0, len(is)*4)
	for _, i := range is {
		out = binary.LittleEndian.AppendUint32(out, i)
	}
	return out
}

// Digest is the xxhash64 of the vertex buffer followed by the index buffer.
func (m *Mesh) Digest() uint64 {
	d := xxhash.New()
	_, _ = d.Write(VertexBytes(m.Vertices))
	_, _ = d.Write(IndexBytes(m.Indices))
	return d.Sum64()
}

// Validate checks the buffers are made of whole faces and every index is in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%VerticesPerFace != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of faces", ErrInvalidArgument, len(m.Vertices))
	}
	if len(m.Indices)%IndicesPerFace != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of faces", ErrInvalidArgument, len(m.Indices))
	}
	if len(m.Indices)/IndicesPerFace != len(m.Vertices)/VerticesPerFace {
		return fmt.Errorf("%w: %d index blocks for %d vertex blocks", ErrInvalidArgument,
			len(m.Indices)/IndicesPerFace, len(m.Vertices)/VerticesPerFace)
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidArgument, idx, i, n)
		}
	}
	return nil
}
