package transform

import "github.com/go-gl/mathgl/mgl32"

var worldUp = mgl32.Vec3{0, 1, 0}

// FreelookMove advances pos along dir by forward and sideways by right,
// where sideways is dir × up.
func FreelookMove(pos, dir mgl32.Vec3, forward, right float32) mgl32.Vec3 {
	side := dir.Cross(worldUp)
	return pos.Add(dir.Mul(forward)).Add(side.Mul(right))
}

// FreelookRotate turns dir by around radians about the world up axis and
// then by updown radians about the axis to its left. The result is unit length.
func FreelookRotate(dir mgl32.Vec3, updown, around float32) mgl32.Vec3 {
	yaw := mgl32.QuatRotate(around, worldUp)
	d := yaw.Rotate(dir).Normalize()
	left := worldUp.Cross(d)
	if left.LenSqr() == 0 {
		// looking straight up or down: pitch axis is undefined
		return d
	}
	pitch := mgl32.QuatRotate(updown, left.Normalize())
	return pitch.Rotate(d).Normalize()
}

// LookRotation returns the rotation whose Forward is dir.
func LookRotation(dir mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, dir.Normalize())
}
