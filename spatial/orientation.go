package spatial

import "github.com/go-gl/mathgl/mgl64"

// Orientation is a rotation expressed relative to one of the supported frames
type Orientation interface {
	orientation()
}

// GeocentricOrientation maps body axes to geocentric axes
type GeocentricOrientation struct {
	Orientation mgl64.Quat
}

// LtpNedOrientation maps body axes to the NED axes at LatLon
type LtpNedOrientation struct {
	Orientation mgl64.Quat
	LatLon      LatLon
}

func (GeocentricOrientation) orientation() {}
func (LtpNedOrientation) orientation()     {}

// ToGeocentricOrientation converts any orientation to geocentric
// A nil orientation converts to identity
func ToGeocentricOrientation(o Orientation) mgl64.Quat {
	switch v := o.(type) {
	case GeocentricOrientation:
		return v.Orientation
	case LtpNedOrientation:
		return LatLonToGeocentricLtpOrientation(v.LatLon).Mul(v.Orientation).Normalize()
	}
	return mgl64.QuatIdent()
}

// ToLtpNedOrientation expresses any orientation relative to the NED axes at ll
func ToLtpNedOrientation(o Orientation, ll LatLon) LtpNedOrientation {
	if v, ok := o.(LtpNedOrientation); ok && v.LatLon == ll {
		return v
	}
	ltp := LatLonToGeocentricLtpOrientation(ll)
	rel := ltp.Inverse().Mul(ToGeocentricOrientation(o)).Normalize()
	return LtpNedOrientation{Orientation: rel, LatLon: ll}
}
