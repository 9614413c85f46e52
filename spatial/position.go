package spatial

import "github.com/go-gl/mathgl/mgl64"

// Position is a point expressed in one of the supported frames
// Convert with ToGeocentric, ToLatLonAlt and ToNed
type Position interface {
	position()
}

// GeocentricPosition is a point in planet-centered cartesian coordinates
type GeocentricPosition struct {
	Position mgl64.Vec3
}

// LatLonAltPosition is a geographic point
type LatLonAltPosition struct {
	Position LatLonAlt
}

// NedPosition is a point in the local NED frame anchored at Origin
type NedPosition struct {
	Position mgl64.Vec3
	Origin   LatLonAlt
}

func (GeocentricPosition) position() {}
func (LatLonAltPosition) position()  {}
func (NedPosition) position()        {}

// ToGeocentric converts any position to geocentric coordinates
// A nil position converts to the planet center
func ToGeocentric(p Position, planetRadius float64) mgl64.Vec3 {
	switch v := p.(type) {
	case GeocentricPosition:
		return v.Position
	case LatLonAltPosition:
		return LlaToGeocentric(v.Position, planetRadius)
	case NedPosition:
		return NewNedFrame(v.Origin, planetRadius).ToGeocentric(v.Position)
	}
	return mgl64.Vec3{}
}

// ToLatLonAlt converts any position to geographic coordinates
func ToLatLonAlt(p Position, planetRadius float64) LatLonAlt {
	if v, ok := p.(LatLonAltPosition); ok {
		return v.Position
	}
	return GeocentricToLla(ToGeocentric(p, planetRadius), planetRadius)
}

// ToNed expresses any position in the NED frame anchored at origin
func ToNed(p Position, origin LatLonAlt, planetRadius float64) NedPosition {
	if v, ok := p.(NedPosition); ok && v.Origin == origin {
		return v
	}
	frame := NewNedFrame(origin, planetRadius)
	return NedPosition{Position: frame.FromGeocentric(ToGeocentric(p, planetRadius)), Origin: origin}
}
