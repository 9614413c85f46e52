package camera

import (
	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/vmath"
)

// AttachedConfig parameterizes a cockpit-style controller
type AttachedConfig struct {
	// Point names the attachment point on the target, empty or missing uses the target origin
	Point     string
	MinFovY   float64
	MaxFovY   float64
	NearClip  float64
	YawRate   float64
	PitchRate float64
	ZoomRate  float64
}

func DefaultAttachedConfig() AttachedConfig {
	return AttachedConfig{
		MinFovY:   parameter.AttachedMinFovY,
		MaxFovY:   parameter.AttachedMaxFovY,
		NearClip:  parameter.AttachedNearClip,
		YawRate:   parameter.AttachedYawRate,
		PitchRate: parameter.AttachedPitchRate,
		ZoomRate:  parameter.AttachedZoomRate,
	}
}

// Attached rides an attachment point of the target with a free look on top
// The point is looked up every update so replaced or removed points take effect immediately
type Attached struct {
	rig
	Targeting
	YawControl
	PitchControl
	ZoomControl

	config AttachedConfig
}

func NewAttached(w *engine.World, rigEntity *engine.Entity, cfg AttachedConfig) *Attached {
	return &Attached{
		rig:          newRig(rigEntity),
		Targeting:    NewTargeting(w),
		YawControl:   NewYawControl(cfg.YawRate),
		PitchControl: NewPitchControl(cfg.PitchRate, 0),
		ZoomControl:  NewZoomControl(cfg.ZoomRate, parameter.AttachedInitialZoom),
		config:       cfg,
	}
}

func (a *Attached) Config() AttachedConfig { return a.config }

// SetPoint selects another attachment point
func (a *Attached) SetPoint(name string) { a.config.Point = name }

func (a *Attached) SetTarget(id engine.EntityID) {
	a.Targeting.SetTarget(id)
	if a.active {
		a.Update(0)
	}
}

func (a *Attached) SetActive(active bool) { a.active = active }

func (a *Attached) UpdatePostDynamicsSubstep(float64) {}

func (a *Attached) Update(dt float64) {
	in := a.input
	a.SetYaw(a.Yaw() + a.yawDelta(in.YawRate, dt))
	a.SetPitch(a.Pitch() + a.pitchDelta(in.TiltRate, dt))
	a.SetZoom(a.Zoom() + a.zoomDelta(in.ZoomRate, dt))
	a.camera.FovY = vmath.Lerp(a.config.MaxFovY, a.config.MinFovY, a.Zoom())
	a.camera.NearClip = a.config.NearClip

	target, ok := a.TargetEntity()
	if !ok {
		return
	}
	pos, okPos := component.CalcAttachmentPointPosition(target, a.config.Point)
	ori, okOri := component.CalcAttachmentPointOrientation(target, a.config.Point)
	if !okPos || !okOri {
		if pos, okPos = engine.Position(target); !okPos {
			return
		}
		ori, _ = engine.Orientation(target)
	}

	a.node.SetPosition(pos)
	a.node.SetOrientation(ori.Mul(vmath.RotZ(a.Yaw())).Mul(vmath.RotY(a.Pitch())))
}
