package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/vmath"
)

// OrbitTraverser samples points along the conic described by a set of elements
type OrbitTraverser struct {
	elements OrbitalElements
	// perifocal to geocentric
	rotation mgl64.Quat
}

// NewOrbitTraverser prepares sampling for el
func NewOrbitTraverser(el OrbitalElements) *OrbitTraverser {
	rot := vmath.RotZ(el.RightAscension).
		Mul(vmath.RotX(el.Inclination)).
		Mul(vmath.RotZ(el.ArgumentOfPeriapsis))
	return &OrbitTraverser{elements: el, rotation: rot.Normalize()}
}

// Elements returns the traversed elements
func (t *OrbitTraverser) Elements() OrbitalElements { return t.elements }

// Radius returns the distance from the center at true anomaly nu
// Returns -1 where the conic does not reach (beyond a hyperbolic asymptote)
func (t *OrbitTraverser) Radius(nu float64) float64 {
	denom := 1 + t.elements.Eccentricity*math.Cos(nu)
	if denom <= 0 {
		return -1
	}
	return t.elements.SemiLatusRectum / denom
}

// Position returns the geocentric position at true anomaly nu
func (t *OrbitTraverser) Position(nu float64) (mgl64.Vec3, bool) {
	r := t.Radius(nu)
	if r < 0 {
		return mgl64.Vec3{}, false
	}
	perifocal := mgl64.Vec3{r * math.Cos(nu), r * math.Sin(nu), 0}
	return t.rotation.Rotate(perifocal), true
}

// Sample returns up to n geocentric points evenly spaced in true anomaly
// Unreachable anomalies are skipped
func (t *OrbitTraverser) Sample(n int) []mgl64.Vec3 {
	if n <= 0 {
		return nil
	}
	out := make([]mgl64.Vec3, 0, n)
	for i := range n {
		nu := 2 * math.Pi * float64(i) / float64(n)
		if p, ok := t.Position(nu); ok {
			out = append(out, p)
		}
	}
	return out
}
