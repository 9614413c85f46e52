package parameter

import "math"

// Orbit controller
const (
	OrbitYawRate   = 0.01
	OrbitPitchRate = 0.01
	OrbitZoomRate  = 0.001

	OrbitMinDistance = 1.0
	OrbitMaxDistance = 250.0

	// OrbitSmoothingTime is the first-order lag time constant for target orientation smoothing
	OrbitSmoothingTime = 0.5
)

// Planet controller
const (
	PlanetYawRate   = 0.01
	PlanetPitchRate = 0.01
	PlanetZoomRate  = 0.0002

	// PlanetInitialPitch looks straight down at the surface
	PlanetInitialPitch = math.Pi / 2

	// PlanetForwardZoomGain scales forward input into zoom
	PlanetForwardZoomGain = 1000.0

	// PlanetMinDistance is the closest altitude above the surface in meters
	PlanetMinDistance = 1.0

	// PlanetMaxDistanceOnRadius is the farthest distance from center as a multiple of radius
	PlanetMaxDistanceOnRadius = 3.0
)

// Free controller
const (
	FreeYawRate   = 0.01
	FreePitchRate = 0.01
	FreeZoomRate  = 0.001

	FreeSpeed     = 1000.0
	FreeFastSpeed = 10000.0 // modifier 1
	FreeSlowSpeed = 100.0   // modifier 2

	// FreeZoomFovFactor is the fov multiplier at full zoom
	FreeZoomFovFactor = 0.1
)

// Attached controller
const (
	AttachedYawRate   = 1.0
	AttachedPitchRate = 1.0
	AttachedZoomRate  = 1.0

	AttachedInitialZoom = 0.5
	AttachedNearClip    = 0.5
	AttachedMinFovY     = 10 * math.Pi / 180
	AttachedMaxFovY     = 90 * math.Pi / 180
)

// Camera defaults
const (
	DefaultFovY     = 60 * math.Pi / 180
	DefaultNearClip = 1.0
	DefaultFarClip  = 1e8
)
