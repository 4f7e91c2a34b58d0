package voxmesh

// Face identifies one side of a unit cube. The numeric order is the order
// in which a cube emits its faces.
type Face uint8

const (
	FaceFront  Face = iota // +z
	FaceBack               // -z
	FaceBottom             // -y
	FaceTop                // +y
	FaceLeft               // -x
	FaceRight              // +x
)

// Faces lists every face in emission order.
var Faces = [FacesPerCube]Face{FaceFront, FaceBack, FaceBottom, FaceTop, FaceLeft, FaceRight}

var faceNames = [FacesPerCube]string{"front", "back", "bottom", "top", "left", "right"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "invalid"
}

// Corners of a unit cube centred on the origin. Names read
// x (left/right), y (bottom/top), z (back/front).
const (
	cornerLeftBottomFront = iota
	cornerRightBottomFront
	cornerLeftTopFront
	cornerRightTopFront
	cornerLeftBottomBack
	cornerRightBottomBack
	cornerLeftTopBack
	cornerRightTopBack
)

var cubeCorners = [8][3]float32{
	cornerLeftBottomFront:  {-0.5, -0.5, 0.5},
	cornerRightBottomFront: {0.5, -0.5, 0.5},
	cornerLeftTopFront:     {-0.5, 0.5, 0.5},
	cornerRightTopFront:    {0.5, 0.5, 0.5},
	cornerLeftBottomBack:   {-0.5, -0.5, -0.5},
	cornerRightBottomBack:  {0.5, -0.5, -0.5},
	cornerLeftTopBack:      {-0.5, 0.5, -0.5},
	cornerRightTopBack:     {0.5, 0.5, -0.5},
}

// quadTemplate splits a face's 4 vertices into two triangles. With the
// corner order in faceSpecs both triangles wind counter-clockwise when seen
// from outside the cube.
var quadTemplate = [IndicesPerFace]uint32{0, 1, 2, 1, 3, 2}

type faceSpec struct {
	normal  [3]float32
	corners [VerticesPerFace]int
}

var faceSpecs = [FacesPerCube]faceSpec{
	FaceFront: {
		[3]float32{0, 0, 1},
		[4]int{cornerLeftBottomFront, cornerRightBottomFront, cornerLeftTopFront, cornerRightTopFront},
	},
	FaceBack: {
		[3]float32{0, 0, -1},
		[4]int{cornerRightBottomBack, cornerLeftBottomBack, cornerRightTopBack, cornerLeftTopBack},
	},
	FaceBottom: {
		[3]float32{0, -1, 0},
		[4]int{cornerLeftBottomBack, cornerRightBottomBack, cornerLeftBottomFront, cornerRightBottomFront},
	},
	FaceTop: {
		[3]float32{0, 1, 0},
		[4]int{cornerLeftTopFront, cornerRightTopFront, cornerLeftTopBack, cornerRightTopBack},
	},
	FaceLeft: {
		[3]float32{-1, 0, 0},
		[4]int{cornerLeftBottomBack, cornerLeftBottomFront, cornerLeftTopBack, cornerLeftTopFront},
	},
	FaceRight: {
		[3]float32{1, 0, 0},
		[4]int{cornerRightBottomFront, cornerRightBottomBack, cornerRightTopFront, cornerRightTopBack},
	},
}

// Normal returns the outward unit normal of f.
func (f Face) Normal() [3]float32 {
	return faceSpecs[f].normal
}

var unitScale = [3]float32{1, 1, 1}

// appendFace emits one quad of the box centred at center with edge lengths
// scale. inset moves the quad against its normal. The face's indices are
// based on the vertex count before the append, so index blocks can never
// drift from vertex blocks.
func appendFace(mesh *Mesh, f Face, center, scale [3]float32, color Color, inset float32) {
	fs := &faceSpecs[f]
	base := uint32(len(mesh.Vertices))
	for _, c := range fs.corners {
		corner := cubeCorners[c]
		var p [3]float32
		for axis := 0; axis < 3; axis++ {
			p[axis] = center[axis] + corner[axis]*scale[axis] - fs.normal[axis]*inset
		}
		mesh.Vertices = append(mesh.Vertices, Vertex{Position: p, Normal: fs.normal, Color: color})
	}
	for _, i := range quadTemplate {
		mesh.Indices = append(mesh.Indices, base+i)
	}
}
