package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/vmath"
)

// LtpBasis returns the north, east and down unit vectors of the local tangent plane at p
// Zero-length p yields down -X, a pole yields east +Y
func LtpBasis(p mgl64.Vec3) (north, east, down mgl64.Vec3) {
	down = vmath.NormalizeOr(p.Mul(-1), mgl64.Vec3{-1, 0, 0})
	east = vmath.NormalizeOr(down.Cross(vmath.AxisZ), vmath.AxisY)
	north = east.Cross(down)
	return north, east, down
}

// GeocentricToLtpOrientation returns the rotation from the NED frame at p to the geocentric frame
func GeocentricToLtpOrientation(p mgl64.Vec3) mgl64.Quat {
	n, e, d := LtpBasis(p)
	return vmath.QuatFromBasis(n, e, d)
}

// LatLonToGeocentricLtpOrientation returns the NED-to-geocentric rotation at a geographic point
// Agrees with GeocentricToLtpOrientation everywhere except exactly at the poles
func LatLonToGeocentricLtpOrientation(ll LatLon) mgl64.Quat {
	return vmath.RotZ(ll.Lon).Mul(vmath.RotY(-ll.Lat - math.Pi/2))
}

// OrthonormalBasis returns two unit vectors perpendicular to normal and to each other
// normal is normalized first, a zero-length normal is treated as +X
// The reference axis switches from +Y to +Z near ±Y
func OrthonormalBasis(normal mgl64.Vec3) (tangent, bitangent mgl64.Vec3) {
	n := vmath.NormalizeOr(normal, vmath.AxisX)
	d := n.Dot(vmath.AxisY)
	if d > -0.95 && d < 0.95 {
		bitangent = vmath.NormalizeOr(n.Cross(vmath.AxisY), n.Cross(vmath.AxisZ).Normalize())
	} else {
		bitangent = vmath.NormalizeOr(n.Cross(vmath.AxisZ), n.Cross(vmath.AxisY).Normalize())
	}
	tangent = bitangent.Cross(n)
	return tangent, bitangent
}
