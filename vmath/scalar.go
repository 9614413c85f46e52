package vmath

import "math"

// Epsilon is the tolerance used for degenerate-length checks
const Epsilon = 1e-8

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b
// t: 0 returns a, 1 returns b, values outside extrapolate
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FirstOrderLagFactor returns the blend weight for a first-order low-pass filter
// dt: time since last sample
// tau: filter time constant, non-positive tau yields 1 (no filtering)
func FirstOrderLagFactor(dt, tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	return 1 - math.Exp(-dt/tau)
}

// WrapAngle maps an angle into (-pi, pi]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
