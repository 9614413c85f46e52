package spatial

import "github.com/go-gl/mathgl/mgl64"

// NedFrame converts between geocentric coordinates and the NED frame anchored at an origin
type NedFrame struct {
	origin      mgl64.Vec3
	orientation mgl64.Quat
	inverse     mgl64.Quat
}

// NewNedFrame anchors a frame at a geographic point
func NewNedFrame(origin LatLonAlt, planetRadius float64) NedFrame {
	return NewNedFrameAt(LlaToGeocentric(origin, planetRadius))
}

// NewNedFrameAt anchors a frame at a geocentric point
func NewNedFrameAt(origin mgl64.Vec3) NedFrame {
	q := GeocentricToLtpOrientation(origin)
	return NedFrame{origin: origin, orientation: q, inverse: q.Inverse()}
}

// Origin returns the geocentric anchor point
func (f NedFrame) Origin() mgl64.Vec3 { return f.origin }

// Orientation returns the NED-to-geocentric rotation
func (f NedFrame) Orientation() mgl64.Quat { return f.orientation }

// FromGeocentric expresses a geocentric point in this frame
func (f NedFrame) FromGeocentric(p mgl64.Vec3) mgl64.Vec3 {
	return f.inverse.Rotate(p.Sub(f.origin))
}

// ToGeocentric converts a point in this frame to geocentric
func (f NedFrame) ToGeocentric(ned mgl64.Vec3) mgl64.Vec3 {
	return f.origin.Add(f.orientation.Rotate(ned))
}

// OrientationFromGeocentric expresses a geocentric orientation relative to the frame axes
func (f NedFrame) OrientationFromGeocentric(q mgl64.Quat) mgl64.Quat {
	return f.inverse.Mul(q).Normalize()
}

// OrientationToGeocentric converts a frame-relative orientation to geocentric
func (f NedFrame) OrientationToGeocentric(q mgl64.Quat) mgl64.Quat {
	return f.orientation.Mul(q).Normalize()
}
