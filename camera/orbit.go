package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/vmath"
)

// OrbitConfig parameterizes an orbit controller
type OrbitConfig struct {
	MinDistance float64
	MaxDistance float64
	// Offset is added to the boom in rig axes
	Offset        mgl64.Vec3
	SmoothingTime float64
	FovY          float64
	YawRate       float64
	PitchRate     float64
	ZoomRate      float64
}

// DefaultOrbitConfig returns the standard chase-orbit settings
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		MinDistance:   parameter.OrbitMinDistance,
		MaxDistance:   parameter.OrbitMaxDistance,
		SmoothingTime: parameter.OrbitSmoothingTime,
		FovY:          parameter.DefaultFovY,
		YawRate:       parameter.OrbitYawRate,
		PitchRate:     parameter.OrbitPitchRate,
		ZoomRate:      parameter.OrbitZoomRate,
	}
}

// Orbit circles the target on a boom whose length is set by zoom
// The boom frame follows the target orientation through a first-order lag
type Orbit struct {
	rig
	Targeting
	YawControl
	PitchControl
	ZoomControl

	config        OrbitConfig
	smoothed      mgl64.Quat
	smoothedValid bool
	lastTarget    engine.EntityID
}

// NewOrbit binds an orbit controller to a rig with node and camera components
func NewOrbit(w *engine.World, rigEntity *engine.Entity, cfg OrbitConfig) *Orbit {
	return &Orbit{
		rig:          newRig(rigEntity),
		Targeting:    NewTargeting(w),
		YawControl:   NewYawControl(cfg.YawRate),
		PitchControl: NewPitchControl(cfg.PitchRate, 0),
		ZoomControl:  NewZoomControl(cfg.ZoomRate, 0),
		config:       cfg,
		smoothed:     mgl64.QuatIdent(),
	}
}

// Config returns the controller settings
func (o *Orbit) Config() OrbitConfig { return o.config }

// SetTarget retargets, an active controller places the rig immediately
func (o *Orbit) SetTarget(id engine.EntityID) {
	o.Targeting.SetTarget(id)
	if o.active {
		o.Update(0)
	}
}

// SetActive resets orientation smoothing on activation
func (o *Orbit) SetActive(active bool) {
	if active && !o.active {
		o.resetSmoothing()
	}
	o.active = active
}

// Distance returns the boom length for the current zoom
func (o *Orbit) Distance() float64 {
	return o.config.MaxDistance + o.Zoom()*(o.config.MinDistance-o.config.MaxDistance)
}

func (o *Orbit) resetSmoothing() {
	o.smoothedValid = false
}

// UpdatePostDynamicsSubstep blends the smoothed frame toward the target orientation
func (o *Orbit) UpdatePostDynamicsSubstep(dt float64) {
	if !o.smoothedValid {
		return
	}
	target, ok := o.TargetEntity()
	if !ok {
		return
	}
	ori, ok := engine.Orientation(target)
	if !ok {
		return
	}
	o.smoothed = vmath.SafeSlerp(o.smoothed, ori, vmath.FirstOrderLagFactor(dt, o.config.SmoothingTime))
}

func (o *Orbit) Update(dt float64) {
	if o.Target() != o.lastTarget {
		o.resetSmoothing()
		o.lastTarget = o.Target()
	}

	o.camera.FovY = o.config.FovY

	in := o.input
	o.SetYaw(o.Yaw() + o.yawDelta(in.YawRate, dt))
	o.SetPitch(o.Pitch() + o.pitchDelta(in.TiltRate, dt))
	o.SetZoom(o.Zoom() + o.zoomDelta(in.ZoomRate, dt))

	target, ok := o.TargetEntity()
	if !ok {
		return
	}
	targetPos, ok := engine.Position(target)
	if !ok {
		return
	}
	if !o.smoothedValid {
		o.smoothed, _ = engine.Orientation(target)
		o.smoothedValid = true
	}

	rigOri := o.smoothed.Mul(vmath.RotZ(o.Yaw())).Mul(vmath.RotY(o.Pitch())).Normalize()
	boom := mgl64.Vec3{-o.Distance(), 0, 0}.Add(o.config.Offset)
	o.node.SetPosition(targetPos.Add(rigOri.Rotate(boom)))
	o.node.SetOrientation(rigOri)
}
