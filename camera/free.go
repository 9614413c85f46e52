package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/spatial"
	"github.com/lixenwraith/skykernel/vmath"
)

// FreeConfig parameterizes a free-fly controller
type FreeConfig struct {
	Speed     float64
	FastSpeed float64 // modifier 1
	SlowSpeed float64 // modifier 2
	FovY      float64
	// ZoomFovFactor is the fov multiplier at full zoom
	ZoomFovFactor float64
	YawRate       float64
	PitchRate     float64
	ZoomRate      float64
}

func DefaultFreeConfig() FreeConfig {
	return FreeConfig{
		Speed:         parameter.FreeSpeed,
		FastSpeed:     parameter.FreeFastSpeed,
		SlowSpeed:     parameter.FreeSlowSpeed,
		FovY:          parameter.DefaultFovY,
		ZoomFovFactor: parameter.FreeZoomFovFactor,
		YawRate:       parameter.FreeYawRate,
		PitchRate:     parameter.FreePitchRate,
		ZoomRate:      parameter.FreeZoomRate,
	}
}

// Free flies the rig level with the local horizon, heading and pitch relative to NED
type Free struct {
	rig
	YawControl
	PitchControl
	ZoomControl

	config FreeConfig
}

func NewFree(rigEntity *engine.Entity, cfg FreeConfig) *Free {
	return &Free{
		rig:          newRig(rigEntity),
		YawControl:   NewYawControl(cfg.YawRate),
		PitchControl: NewPitchControl(cfg.PitchRate, 0),
		ZoomControl:  NewZoomControl(cfg.ZoomRate, 0),
		config:       cfg,
	}
}

func (f *Free) Config() FreeConfig { return f.config }

func (f *Free) SetActive(active bool) { f.active = active }

func (f *Free) UpdatePostDynamicsSubstep(float64) {}

// Speed returns the translation speed selected by the modifiers
func (f *Free) Speed() float64 {
	switch {
	case f.input.Modifier1Pressed:
		return f.config.FastSpeed
	case f.input.Modifier2Pressed:
		return f.config.SlowSpeed
	}
	return f.config.Speed
}

func (f *Free) Update(dt float64) {
	in := f.input
	f.SetYaw(f.Yaw() + f.yawDelta(in.YawRate, dt))
	f.SetPitch(f.Pitch() + f.pitchDelta(in.TiltRate, dt))
	f.SetZoom(f.Zoom() + f.zoomDelta(in.ZoomRate, dt))
	f.camera.FovY = vmath.Lerp(f.config.FovY, f.config.FovY*f.config.ZoomFovFactor, f.Zoom())

	pos := f.node.Position()
	ori := spatial.GeocentricToLtpOrientation(pos).
		Mul(vmath.RotZ(f.Yaw())).
		Mul(vmath.RotY(f.Pitch())).
		Normalize()
	vel := mgl64.Vec3{in.ForwardSpeed, in.RightSpeed, 0}.Mul(f.Speed())

	f.node.SetPosition(pos.Add(ori.Rotate(vel).Mul(dt)))
	f.node.SetOrientation(ori)
}
