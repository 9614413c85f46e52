package physics

// Exponential standard atmosphere
const (
	// SeaLevelDensity in kg/m³
	SeaLevelDensity = 1.225
	// AtmosphereScaleHeight in meters
	AtmosphereScaleHeight = 8500.0
)
