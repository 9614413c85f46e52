// Package spatial converts positions and orientations between geocentric,
// geographic (latitude, longitude, altitude) and local tangent plane
// north-east-down frames on a spherical planet.
//
// Geocentric frame: origin at planet center, +X through lat 0 lon 0,
// +Y through lat 0 lon 90°E, +Z through the north pole.
// Body frame convention is x forward, y right, z down, so an identity
// LTP orientation looks north with level wings.
//
// All angles are radians, all distances meters. Functions are pure and total.
package spatial
