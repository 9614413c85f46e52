package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestCircularEquatorialOrbit(t *testing.T) {
	r := 7e6
	mu := StandardGravitationalParameter(EarthMass, 0)
	vc := CircularOrbitSpeed(mu, r)
	el := ComputeOrbitalElements(mgl64.Vec3{r, 0, 0}, mgl64.Vec3{0, vc, 0}, EarthMass, 0)

	if !near(el.SemiMajorAxis, r, 1e-3) {
		t.Errorf("a = %v, want %v", el.SemiMajorAxis, r)
	}
	if el.Eccentricity > 1e-9 {
		t.Errorf("e = %v, want 0", el.Eccentricity)
	}
	if !near(el.Inclination, 0, 1e-12) {
		t.Errorf("i = %v", el.Inclination)
	}
	if !near(el.Periapsis(), r, 1e-3) || !near(el.Apoapsis(), r, 1e-3) {
		t.Errorf("apsides = %v %v", el.Periapsis(), el.Apoapsis())
	}
	wantPeriod := 2 * math.Pi * math.Sqrt(r*r*r/mu)
	if !near(el.Period(), wantPeriod, 1e-6) {
		t.Errorf("period = %v, want %v", el.Period(), wantPeriod)
	}
}

func TestPolarOrbitInclination(t *testing.T) {
	r := 7e6
	vc := CircularOrbitSpeed(StandardGravitationalParameter(EarthMass, 0), r)
	el := ComputeOrbitalElements(mgl64.Vec3{r, 0, 0}, mgl64.Vec3{0, 0, vc}, EarthMass, 0)
	if !near(el.Inclination, math.Pi/2, 1e-9) {
		t.Errorf("i = %v, want pi/2", el.Inclination)
	}
}

func TestEllipticalOrbitAnomaly(t *testing.T) {
	r := 7e6
	mu := StandardGravitationalParameter(EarthMass, 0)
	v := CircularOrbitSpeed(mu, r) * 1.1 // at periapsis
	el := ComputeOrbitalElements(mgl64.Vec3{r, 0, 0}, mgl64.Vec3{0, v, 0}, EarthMass, 0)
	if el.Eccentricity <= 0 || el.Eccentricity >= 1 {
		t.Fatalf("e = %v, want elliptical", el.Eccentricity)
	}
	if !near(el.Periapsis(), r, 1e-2) {
		t.Errorf("periapsis = %v, want %v", el.Periapsis(), r)
	}
	if !(near(el.TrueAnomaly, 0, 1e-6) || near(el.TrueAnomaly, 2*math.Pi, 1e-6)) {
		t.Errorf("true anomaly at periapsis = %v", el.TrueAnomaly)
	}

	tr := NewOrbitTraverser(el)
	if !near(tr.Radius(0), r, 1e-2) {
		t.Errorf("radius(0) = %v", tr.Radius(0))
	}
	p, ok := tr.Position(0)
	if !ok || !p.ApproxEqualThreshold(mgl64.Vec3{r, 0, 0}, 1e-2) {
		t.Errorf("position(0) = %v", p)
	}
	if pts := tr.Sample(16); len(pts) != 16 {
		t.Errorf("samples = %d", len(pts))
	}
}

func TestDegenerateOrbit(t *testing.T) {
	tests := []struct {
		name          string
		pos, vel      mgl64.Vec3
		semiMajorZero bool
	}{
		{"radial", mgl64.Vec3{7e6, 0, 0}, mgl64.Vec3{100, 0, 0}, false},
		{"at center", mgl64.Vec3{}, mgl64.Vec3{0, 7000, 0}, true},
		{"at center at rest", mgl64.Vec3{}, mgl64.Vec3{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := ComputeOrbitalElements(tt.pos, tt.vel, EarthMass, 0)
			if el.Inclination != 0 || el.RightAscension != 0 || el.ArgumentOfPeriapsis != math.Pi || el.TrueAnomaly != math.Pi {
				t.Errorf("fallback elements = %+v", el)
			}
			for _, v := range []float64{el.SemiMajorAxis, el.Eccentricity, el.SemiLatusRectum} {
				if math.IsNaN(v) {
					t.Fatalf("NaN in %+v", el)
				}
			}
			if tt.semiMajorZero && (el.SemiMajorAxis != 0 || el.Eccentricity != 0) {
				t.Errorf("center state shape = a %v e %v, want 0", el.SemiMajorAxis, el.Eccentricity)
			}
		})
	}
}

func TestHyperbolicRadius(t *testing.T) {
	tr := NewOrbitTraverser(OrbitalElements{Eccentricity: 2, SemiLatusRectum: 1e7})
	if r := tr.Radius(math.Pi); r != -1 {
		t.Errorf("radius beyond asymptote = %v, want -1", r)
	}
	if _, ok := tr.Position(math.Pi); ok {
		t.Error("position beyond asymptote should be unreachable")
	}
	if r := tr.Radius(0); !near(r, 1e7/3, 1e-6) {
		t.Errorf("radius(0) = %v", r)
	}
}

func TestGravitationalAcceleration(t *testing.T) {
	mu := 4.0
	a := GravitationalAcceleration(mgl64.Vec3{2, 0, 0}, mu, 0)
	if !a.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-12) {
		t.Errorf("accel = %v", a)
	}
	clamped := GravitationalAcceleration(mgl64.Vec3{0.1, 0, 0}, mu, 1)
	if !clamped.ApproxEqualThreshold(mgl64.Vec3{-4, 0, 0}, 1e-12) {
		t.Errorf("clamped accel = %v", clamped)
	}
	if z := GravitationalAcceleration(mgl64.Vec3{}, mu, 1); z != (mgl64.Vec3{}) {
		t.Errorf("accel at center = %v", z)
	}
}

func TestOrbitTracker(t *testing.T) {
	w := engine.NewWorld(engine.WorldConfig{ApplicationID: 1})
	r := 7e6
	body := component.NewSimpleDynamicBody(component.BodyProperties{Mass: 1000})
	body.SetVelocity(mgl64.Vec3{0, CircularOrbitSpeed(StandardGravitationalParameter(EarthMass, 1000), r), 0})
	tracker := NewOrbitTracker(EarthMass)
	w.CreateEntity("sat", component.NewNode(mgl64.Vec3{r, 0, 0}, mgl64.QuatIdent()), body, tracker)

	if _, ok := tracker.Elements(); ok {
		t.Fatal("elements valid before first update")
	}
	tracker.Update(engine.StageEndStateUpdate)
	el, ok := tracker.Elements()
	if !ok || el.Eccentricity > 1e-9 {
		t.Errorf("tracked elements = %+v, %v", el, ok)
	}
}
