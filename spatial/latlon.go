package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EarthRadius is the default planet radius (WGS84 equatorial)
const EarthRadius = 6378137.0

// LatLon is a geographic coordinate in radians
type LatLon struct {
	Lat float64
	Lon float64
}

// LatLonAlt is a geographic coordinate with altitude above the planet surface
type LatLonAlt struct {
	Lat float64
	Lon float64
	Alt float64
}

// LatLon drops the altitude
func (l LatLonAlt) LatLon() LatLon {
	return LatLon{Lat: l.Lat, Lon: l.Lon}
}

// WithAlt attaches an altitude
func (l LatLon) WithAlt(alt float64) LatLonAlt {
	return LatLonAlt{Lat: l.Lat, Lon: l.Lon, Alt: alt}
}

// Deg builds a LatLon from degrees
func Deg(latDeg, lonDeg float64) LatLon {
	return LatLon{Lat: latDeg * math.Pi / 180, Lon: lonDeg * math.Pi / 180}
}

// LlaToGeocentric converts a geographic position to geocentric cartesian
func LlaToGeocentric(lla LatLonAlt, planetRadius float64) mgl64.Vec3 {
	r := planetRadius + lla.Alt
	cosLat := math.Cos(lla.Lat)
	return mgl64.Vec3{
		r * cosLat * math.Cos(lla.Lon),
		r * cosLat * math.Sin(lla.Lon),
		r * math.Sin(lla.Lat),
	}
}

// GeocentricToLla converts a geocentric position to geographic
// The planet center maps to lat 0, lon 0, alt -planetRadius
func GeocentricToLla(p mgl64.Vec3, planetRadius float64) LatLonAlt {
	horizontal := math.Hypot(p[0], p[1])
	return LatLonAlt{
		Lat: math.Atan2(p[2], horizontal),
		Lon: math.Atan2(p[1], p[0]),
		Alt: p.Len() - planetRadius,
	}
}
