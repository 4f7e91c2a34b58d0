package voxmesh

import "fmt"

// LatticeOptions describes a box of Dims cells drawn as slabs: every cell
// column along an axis gets its minus and plus face, stretched over the
// whole cross-section of the box.
type LatticeOptions struct {
	Dims  [3]int
	Color Color
	// Inset pulls each slab face inside along its normal so coincident
	// faces of neighbouring slabs do not z-fight.
	Inset float32
}

type slabAxis struct {
	axis        int
	minus, plus Face
}

var slabAxes = [3]slabAxis{
	{0, FaceLeft, FaceRight},
	{1, FaceBottom, FaceTop},
	{2, FaceBack, FaceFront},
}

// GenerateLattice builds the slab lattice. Cells are zero-based like
// LayoutZeroBased chunks, so slab i along an axis is centred on i. The
// result holds 2*(dx+dy+dz) faces.
func GenerateLattice(opts LatticeOptions) (*Mesh, error) {
	for axis, d := range opts.Dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: lattice dimension %d is %d", ErrInvalidArgument, axis, d)
		}
	}
	if opts.Inset < 0 {
		return nil, fmt.Errorf("%w: negative lattice inset %v", ErrInvalidArgument, opts.Inset)
	}
	faces := 2 * (opts.Dims[0] + opts.Dims[1] + opts.Dims[2])
	mesh := newMesh(faces*VerticesPerFace, faces*IndicesPerFace)

	var mid [3]float32
	for axis, d := range opts.Dims {
		mid[axis] = float32(d-1) / 2
	}
	for _, s := range slabAxes {
		scale := [3]float32{float32(opts.Dims[0]), float32(opts.Dims[1]), float32(opts.Dims[2])}
		scale[s.axis] = 1
		for i := 0; i < opts.Dims[s.axis]; i++ {
			center := mid
			center[s.axis] = float32(i)
			appendFace(mesh, s.minus, center, scale, opts.Color, opts.Inset)
			appendFace(mesh, s.plus, center, scale, opts.Color, opts.Inset)
		}
	}
	return mesh, nil
}
