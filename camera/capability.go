package camera

import (
	"math"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/vmath"
)

// Targetable controllers follow an entity by id
type Targetable interface {
	SetTarget(id engine.EntityID)
	Target() engine.EntityID
}

// Yawable controllers expose a heading angle
type Yawable interface {
	Yaw() float64
	SetYaw(yaw float64)
}

// Pitchable controllers expose a tilt angle
type Pitchable interface {
	Pitch() float64
	SetPitch(pitch float64)
}

// Zoomable controllers expose a normalized zoom in [0, 1]
type Zoomable interface {
	Zoom() float64
	SetZoom(zoom float64)
}

// Targeting stores a target id and resolves it through the world
type Targeting struct {
	world  *engine.World
	target engine.EntityID
}

func NewTargeting(w *engine.World) Targeting {
	return Targeting{world: w}
}

func (t *Targeting) SetTarget(id engine.EntityID) { t.target = id }
func (t *Targeting) Target() engine.EntityID      { return t.target }

// TargetEntity resolves the target, false when unset or deleted
func (t *Targeting) TargetEntity() (*engine.Entity, bool) {
	if t.world == nil || t.target.IsNull() {
		return nil, false
	}
	return t.world.EntityByID(t.target)
}

// YawControl integrates a heading from a rate input
type YawControl struct {
	yaw  float64
	rate float64
}

func NewYawControl(rate float64) YawControl { return YawControl{rate: rate} }

func (c *YawControl) Yaw() float64         { return c.yaw }
func (c *YawControl) SetYaw(yaw float64)   { c.yaw = vmath.WrapAngle(yaw) }
func (c *YawControl) YawRate() float64     { return c.rate }
func (c *YawControl) SetYawRate(r float64) { c.rate = r }

// yawDelta scales an input rate over dt by the gain
func (c *YawControl) yawDelta(inputRate, dt float64) float64 { return inputRate * dt * c.rate }

// PitchControl integrates a clamped tilt angle
type PitchControl struct {
	pitch    float64
	rate     float64
	min, max float64
}

// NewPitchControl creates a pitch limited to ±pi/2
func NewPitchControl(rate, initial float64) PitchControl {
	c := PitchControl{rate: rate, min: -math.Pi / 2, max: math.Pi / 2}
	c.SetPitch(initial)
	return c
}

func (c *PitchControl) Pitch() float64         { return c.pitch }
func (c *PitchControl) SetPitch(pitch float64) { c.pitch = vmath.Clamp(pitch, c.min, c.max) }
func (c *PitchControl) PitchRate() float64     { return c.rate }
func (c *PitchControl) SetPitchRate(r float64) { c.rate = r }

// SetPitchLimits narrows the allowed range and re-clamps the current pitch
func (c *PitchControl) SetPitchLimits(min, max float64) {
	c.min, c.max = min, max
	c.SetPitch(c.pitch)
}

func (c *PitchControl) pitchDelta(inputRate, dt float64) float64 { return inputRate * dt * c.rate }

// ZoomControl integrates a normalized zoom clamped to [0, 1]
type ZoomControl struct {
	zoom float64
	rate float64
}

func NewZoomControl(rate, initial float64) ZoomControl {
	c := ZoomControl{rate: rate}
	c.SetZoom(initial)
	return c
}

func (c *ZoomControl) Zoom() float64         { return c.zoom }
func (c *ZoomControl) SetZoom(zoom float64)  { c.zoom = vmath.Clamp(zoom, 0, 1) }
func (c *ZoomControl) ZoomRate() float64     { return c.rate }
func (c *ZoomControl) SetZoomRate(r float64) { c.rate = r }

func (c *ZoomControl) zoomDelta(inputRate, dt float64) float64 { return inputRate * dt * c.rate }
