package physics

import (
	"github.com/lixenwraith/skykernel/engine"
)

// OrbitTracker recomputes its entity's orbital elements at EndStateUpdate
type OrbitTracker struct {
	centralMass float64
	owner       *engine.Entity
	elements    OrbitalElements
	valid       bool
}

// NewOrbitTracker tracks orbits around a body of centralMass
func NewOrbitTracker(centralMass float64) *OrbitTracker {
	return &OrbitTracker{centralMass: centralMass}
}

func (o *OrbitTracker) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapOrbitTracker}
}

func (o *OrbitTracker) Attach(owner *engine.Entity) { o.owner = owner }

func (o *OrbitTracker) Update(stage engine.Stage) {
	if stage != engine.StageEndStateUpdate {
		return
	}
	pos, okPos := engine.Position(o.owner)
	vel, okVel := engine.Velocity(o.owner)
	if !okPos || !okVel || pos.Len() == 0 {
		o.valid = false
		return
	}
	mass := 0.0
	if b, ok := engine.FirstComponent[engine.DynamicBody](o.owner, engine.CapDynamicBody); ok {
		mass = b.Mass()
	}
	o.elements = ComputeOrbitalElements(pos, vel, o.centralMass, mass)
	o.valid = true
}

// Elements returns the latest elements, false before the first valid update
func (o *OrbitTracker) Elements() (OrbitalElements, bool) {
	return o.elements, o.valid
}
