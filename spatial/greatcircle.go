package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance returns the great-circle distance between two points (haversine)
func Distance(a, b LatLon, planetRadius float64) float64 {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	h := sLat*sLat + math.Cos(a.Lat)*math.Cos(b.Lat)*sLon*sLon
	return 2 * planetRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial bearing from a to b, clockwise from north in (-pi, pi]
func Bearing(a, b LatLon) float64 {
	dLon := b.Lon - a.Lon
	y := math.Sin(dLon) * math.Cos(b.Lat)
	x := math.Cos(a.Lat)*math.Sin(b.Lat) - math.Sin(a.Lat)*math.Cos(b.Lat)*math.Cos(dLon)
	return math.Atan2(y, x)
}

// MoveDistanceAndBearing returns the point reached by travelling distance along bearing from start
func MoveDistanceAndBearing(start LatLon, distance, bearing, planetRadius float64) LatLon {
	ang := distance / planetRadius
	sinLat := math.Sin(start.Lat)*math.Cos(ang) + math.Cos(start.Lat)*math.Sin(ang)*math.Cos(bearing)
	lat := math.Asin(math.Max(-1, math.Min(1, sinLat)))
	lon := start.Lon + math.Atan2(
		math.Sin(bearing)*math.Sin(ang)*math.Cos(start.Lat),
		math.Cos(ang)-math.Sin(start.Lat)*sinLat,
	)
	return LatLon{Lat: lat, Lon: lon}
}

// LatLonToCartesianNe returns the flat north/east offset of p from origin
// Small-area approximation: east is scaled by cos(origin latitude)
func LatLonToCartesianNe(origin, p LatLon, planetRadius float64) mgl64.Vec2 {
	return mgl64.Vec2{
		(p.Lat - origin.Lat) * planetRadius,
		(p.Lon - origin.Lon) * planetRadius * math.Cos(origin.Lat),
	}
}

// CartesianNeToLatLon inverts LatLonToCartesianNe
func CartesianNeToLatLon(origin LatLon, ne mgl64.Vec2, planetRadius float64) LatLon {
	cosLat := math.Cos(origin.Lat)
	ll := LatLon{Lat: origin.Lat + ne[0]/planetRadius, Lon: origin.Lon}
	if math.Abs(cosLat) > 1e-12 {
		ll.Lon += ne[1] / (planetRadius * cosLat)
	}
	return ll
}
