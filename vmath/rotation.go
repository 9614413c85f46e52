package vmath

import "github.com/go-gl/mathgl/mgl64"

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// RotX returns a rotation of angle radians about +X
func RotX(angle float64) mgl64.Quat { return mgl64.QuatRotate(angle, AxisX) }

// RotY returns a rotation of angle radians about +Y
func RotY(angle float64) mgl64.Quat { return mgl64.QuatRotate(angle, AxisY) }

// RotZ returns a rotation of angle radians about +Z
func RotZ(angle float64) mgl64.Quat { return mgl64.QuatRotate(angle, AxisZ) }

// SafeSlerp interpolates along the shortest arc
// Negates a when the quaternions lie in opposite hemispheres
func SafeSlerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		a = a.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// QuatFromBasis builds the rotation whose columns are the given body axes in the parent frame
func QuatFromBasis(x, y, z mgl64.Vec3) mgl64.Quat {
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// NormalizeOr returns v normalized, or fallback when v is shorter than Epsilon
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}
