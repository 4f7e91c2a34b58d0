// Package transform composes translation, rotation and scale into the
// model matrix a vertex stage multiplies local positions by.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// UnitTolerance is how far |Rotation| may drift from 1 before IsUnit fails.
const UnitTolerance = 1e-4

// Transform places geometry: scale first, then rotation, then translation.
// Rotation is expected to be a unit quaternion; nothing here renormalises it.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

var (
	zero = mgl32.Vec3{0, 0, 0}
	one  = mgl32.Vec3{1, 1, 1}
)

// FromIdentity leaves points where they are.
func FromIdentity() Transform {
	return Transform{Translation: zero, Rotation: mgl32.QuatIdent(), Scale: one}
}

// FromTranslation moves points by t.
func FromTranslation(t mgl32.Vec3) Transform {
	return Transform{Translation: t, Rotation: mgl32.QuatIdent(), Scale: one}
}

// FromRotation rotates points about the origin by r.
func FromRotation(r mgl32.Quat) Transform {
	return Transform{Translation: zero, Rotation: r, Scale: one}
}

// FromTranslationRotation rotates by r, then moves by t.
func FromTranslationRotation(t mgl32.Vec3, r mgl32.Quat) Transform {
	return Transform{Translation: t, Rotation: r, Scale: one}
}

// FromTranslationRotationScale scales by s, rotates by r, then moves by t.
func FromTranslationRotationScale(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) Transform {
	return Transform{Translation: t, Rotation: r, Scale: s}
}

// ApplyToPoint returns Translation + Rotation * (Scale ⊙ p).
func (t Transform) ApplyToPoint(p mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{t.Scale[0] * p[0], t.Scale[1] * p[1], t.Scale[2] * p[2]}
	return t.Translation.Add(t.Rotation.Rotate(scaled))
}

// Compose returns the transform that applies other first and then t.
//
// Scales multiply component-wise, which matches full affine composition
// only when t's scale is uniform or other has no rotation.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Translation: t.ApplyToPoint(other.Translation),
		Rotation:    t.Rotation.Mul(other.Rotation),
		Scale: mgl32.Vec3{
			t.Scale[0] * other.Scale[0],
			t.Scale[1] * other.Scale[1],
			t.Scale[2] * other.Scale[2],
		},
	}
}

// Forward is the +z axis after rotation.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

// ToMatrix returns T * R * S in column-major order, for column vectors
// multiplied on the right.
func (t Transform) ToMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// IsUnit reports whether the rotation's length is within tol of 1.
func (t Transform) IsUnit(tol float32) bool {
	return mgl32.Abs(t.Rotation.Len()-1) <= tol
}

// ApproxEqual compares component-wise with absolute tolerance eps.
// Rotations q and -q are treated as equal; neither side is normalised, so
// a drifted rotation never matches a unit one.
func (t Transform) ApproxEqual(other Transform, eps float32) bool {
	return VecNear(t.Translation, other.Translation, eps) &&
		VecNear(t.Scale, other.Scale, eps) &&
		(quatNear(t.Rotation, other.Rotation, eps) || quatNear(t.Rotation, other.Rotation.Scale(-1), eps))
}

func quatNear(a, b mgl32.Quat, eps float32) bool {
	return mgl32.Abs(a.W-b.W) <= eps && VecNear(a.V, b.V, eps)
}

// VecNear reports whether every component of a and b differs by at most eps.
func VecNear(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
