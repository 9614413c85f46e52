package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/vmath"
)

// GravitationalConstant in m³/(kg·s²)
const GravitationalConstant = 6.6726e-11

// EarthMass in kg
const EarthMass = 5.9722e24

// OrbitalElements are classical Keplerian elements relative to the geocentric frame
// Angles are radians; SemiMajorAxis is negative for hyperbolic orbits
type OrbitalElements struct {
	SemiMajorAxis       float64
	Eccentricity        float64
	Inclination         float64
	RightAscension      float64 // of the ascending node
	ArgumentOfPeriapsis float64
	TrueAnomaly         float64
	// SemiLatusRectum is h²/mu, the radius at true anomaly ±90°
	SemiLatusRectum float64
	Mu              float64
}

// StandardGravitationalParameter returns G(M+m)
func StandardGravitationalParameter(centralMass, bodyMass float64) float64 {
	return GravitationalConstant * (centralMass + bodyMass)
}

// CircularOrbitSpeed returns the speed for a circular orbit of radius r
func CircularOrbitSpeed(mu, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(mu / r)
}

// GravitationalAcceleration returns the inverse-square acceleration at p toward the origin
// Distances under minDistance are clamped to avoid the singularity
func GravitationalAcceleration(p mgl64.Vec3, mu, minDistance float64) mgl64.Vec3 {
	r := p.Len()
	if r < vmath.Epsilon {
		return mgl64.Vec3{}
	}
	rc := math.Max(r, minDistance)
	return p.Mul(-mu / (rc * rc * r))
}

// ComputeOrbitalElements derives elements from a geocentric state vector
// Zero angular momentum (radial or stationary motion) yields inclination 0,
// right ascension 0 and argument of periapsis and true anomaly of pi
// A position at the central body's center takes the same angles with zero shape elements
func ComputeOrbitalElements(position, velocity mgl64.Vec3, centralMass, bodyMass float64) OrbitalElements {
	mu := StandardGravitationalParameter(centralMass, bodyMass)
	r := position.Len()
	v2 := velocity.Dot(velocity)

	el := OrbitalElements{Mu: mu}
	if r < vmath.Epsilon {
		return degenerateElements(el)
	}

	energy := v2/2 - mu/r
	if energy != 0 {
		el.SemiMajorAxis = -mu / (2 * energy)
	} else {
		el.SemiMajorAxis = math.Inf(1)
	}

	h := position.Cross(velocity)
	hLen := h.Len()

	eVec := position.Mul(v2 - mu/r).Sub(velocity.Mul(position.Dot(velocity))).Mul(1 / mu)
	el.Eccentricity = eVec.Len()
	el.SemiLatusRectum = hLen * hLen / mu

	if hLen < vmath.Epsilon {
		return degenerateElements(el)
	}

	el.Inclination = math.Acos(vmath.Clamp(h[2]/hLen, -1, 1))

	node := vmath.AxisZ.Cross(h)
	nLen := node.Len()
	equatorial := nLen < vmath.Epsilon*hLen
	circular := el.Eccentricity < 1e-10

	if !equatorial {
		el.RightAscension = math.Acos(vmath.Clamp(node[0]/nLen, -1, 1))
		if node[1] < 0 {
			el.RightAscension = 2*math.Pi - el.RightAscension
		}
	}

	switch {
	case circular && equatorial:
		// true longitude
		el.TrueAnomaly = math.Atan2(position[1], position[0])
		if h[2] < 0 {
			el.TrueAnomaly = -el.TrueAnomaly
		}
	case circular:
		// argument of latitude
		el.TrueAnomaly = angleBetween(node, position)
		if position[2] < 0 {
			el.TrueAnomaly = 2*math.Pi - el.TrueAnomaly
		}
	case equatorial:
		el.ArgumentOfPeriapsis = math.Atan2(eVec[1], eVec[0])
		if h[2] < 0 {
			el.ArgumentOfPeriapsis = -el.ArgumentOfPeriapsis
		}
		el.TrueAnomaly = trueAnomaly(eVec, position, velocity)
	default:
		el.ArgumentOfPeriapsis = angleBetween(node, eVec)
		if eVec[2] < 0 {
			el.ArgumentOfPeriapsis = 2*math.Pi - el.ArgumentOfPeriapsis
		}
		el.TrueAnomaly = trueAnomaly(eVec, position, velocity)
	}
	el.RightAscension = wrapPositive(el.RightAscension)
	el.ArgumentOfPeriapsis = wrapPositive(el.ArgumentOfPeriapsis)
	el.TrueAnomaly = wrapPositive(el.TrueAnomaly)
	return el
}

func degenerateElements(el OrbitalElements) OrbitalElements {
	el.Inclination = 0
	el.RightAscension = 0
	el.ArgumentOfPeriapsis = math.Pi
	el.TrueAnomaly = math.Pi
	return el
}

func trueAnomaly(eVec, position, velocity mgl64.Vec3) float64 {
	nu := angleBetween(eVec, position)
	if position.Dot(velocity) < 0 {
		nu = 2*math.Pi - nu
	}
	return nu
}

func angleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < vmath.Epsilon || lb < vmath.Epsilon {
		return 0
	}
	return math.Acos(vmath.Clamp(a.Dot(b)/(la*lb), -1, 1))
}

func wrapPositive(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Period returns the orbital period, +Inf for open orbits
func (el OrbitalElements) Period() float64 {
	if el.Eccentricity >= 1 || el.SemiMajorAxis <= 0 || math.IsInf(el.SemiMajorAxis, 0) {
		return math.Inf(1)
	}
	a := el.SemiMajorAxis
	return 2 * math.Pi * math.Sqrt(a*a*a/el.Mu)
}

// Periapsis returns the closest approach distance from the center
func (el OrbitalElements) Periapsis() float64 {
	return el.SemiLatusRectum / (1 + el.Eccentricity)
}

// Apoapsis returns the farthest distance, +Inf for open orbits
func (el OrbitalElements) Apoapsis() float64 {
	if el.Eccentricity >= 1 {
		return math.Inf(1)
	}
	return el.SemiLatusRectum / (1 - el.Eccentricity)
}
