package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
)

// DragConfig parameterizes quadratic aerodynamic drag
type DragConfig struct {
	// Coefficient is Cd times reference area, m²
	Coefficient float64
	// SeaLevelDensity in kg/m³
	SeaLevelDensity float64
	// ScaleHeight of an exponential atmosphere, 0 keeps density constant
	ScaleHeight  float64
	PlanetRadius float64
}

// Drag opposes its entity's velocity during each dynamics substep
type Drag struct {
	config DragConfig
	owner  *engine.Entity
}

func NewDrag(cfg DragConfig) *Drag {
	return &Drag{config: cfg}
}

func (d *Drag) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapDrag}
}

func (d *Drag) Attach(owner *engine.Entity) { d.owner = owner }

func (d *Drag) Update(stage engine.Stage) {
	if stage != engine.StagePreDynamicsSubStep {
		return
	}
	body, ok := engine.FirstComponent[engine.DynamicBody](d.owner, engine.CapDynamicBody)
	if !ok {
		return
	}
	pos, _ := engine.Position(d.owner)
	body.ApplyCentralForce(d.Force(pos, body.Velocity()))
}

// Density returns atmospheric density at a geocentric position
func (d *Drag) Density(position mgl64.Vec3) float64 {
	if d.config.ScaleHeight <= 0 {
		return d.config.SeaLevelDensity
	}
	alt := math.Max(0, position.Len()-d.config.PlanetRadius)
	return d.config.SeaLevelDensity * math.Exp(-alt/d.config.ScaleHeight)
}

// Force returns the drag force, zero when stationary
func (d *Drag) Force(position, velocity mgl64.Vec3) mgl64.Vec3 {
	speed := velocity.Len()
	if speed <= 0 {
		return mgl64.Vec3{}
	}
	mag := 0.5 * d.Density(position) * d.config.Coefficient * speed * speed
	return velocity.Mul(-mag / speed)
}
