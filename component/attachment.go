package component

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
)

// AttachmentPoint is a named pose in its entity's body frame
type AttachmentPoint struct {
	Name        string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// AttachmentPoints holds an entity's named mounting poses (cockpit, hardpoints, cameras)
type AttachmentPoints struct {
	points []AttachmentPoint
}

func NewAttachmentPoints(points ...AttachmentPoint) *AttachmentPoints {
	a := &AttachmentPoints{}
	for _, p := range points {
		a.Set(p)
	}
	return a
}

func (a *AttachmentPoints) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapAttachmentPoints}
}

// Set adds or replaces a point by name
func (a *AttachmentPoints) Set(p AttachmentPoint) {
	if p.Orientation == (mgl64.Quat{}) {
		p.Orientation = mgl64.QuatIdent()
	}
	if i := a.index(p.Name); i >= 0 {
		a.points[i] = p
		return
	}
	a.points = append(a.points, p)
}

// Get returns the named point
func (a *AttachmentPoints) Get(name string) (AttachmentPoint, bool) {
	if i := a.index(name); i >= 0 {
		return a.points[i], true
	}
	return AttachmentPoint{}, false
}

// Names returns point names in insertion order
func (a *AttachmentPoints) Names() []string {
	names := make([]string, len(a.points))
	for i, p := range a.points {
		names[i] = p.Name
	}
	return names
}

func (a *AttachmentPoints) index(name string) int {
	return slices.IndexFunc(a.points, func(p AttachmentPoint) bool { return p.Name == name })
}

// CalcAttachmentPointPosition returns the geocentric position of a named point on e
func CalcAttachmentPointPosition(e *engine.Entity, name string) (mgl64.Vec3, bool) {
	pt, ori, pos, ok := attachmentPose(e, name)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return pos.Add(ori.Rotate(pt.Position)), true
}

// CalcAttachmentPointOrientation returns the geocentric orientation of a named point on e
func CalcAttachmentPointOrientation(e *engine.Entity, name string) (mgl64.Quat, bool) {
	pt, ori, _, ok := attachmentPose(e, name)
	if !ok {
		return mgl64.QuatIdent(), false
	}
	return ori.Mul(pt.Orientation).Normalize(), true
}

func attachmentPose(e *engine.Entity, name string) (AttachmentPoint, mgl64.Quat, mgl64.Vec3, bool) {
	points, ok := engine.FirstComponent[*AttachmentPoints](e, engine.CapAttachmentPoints)
	if !ok {
		return AttachmentPoint{}, mgl64.Quat{}, mgl64.Vec3{}, false
	}
	pt, ok := points.Get(name)
	if !ok {
		return AttachmentPoint{}, mgl64.Quat{}, mgl64.Vec3{}, false
	}
	pos, ok := engine.Position(e)
	if !ok {
		return AttachmentPoint{}, mgl64.Quat{}, mgl64.Vec3{}, false
	}
	ori, _ := engine.Orientation(e)
	return pt, ori, pos, true
}

// AttacherConfig describes how an entity rides on a parent
type AttacherConfig struct {
	Parent engine.EntityID
	// Point names an attachment point on the parent, empty attaches to the parent origin
	Point             string
	PositionOffset    mgl64.Vec3
	OrientationOffset mgl64.Quat
	// CopyVelocity takes the parent's velocities, otherwise they are zeroed
	CopyVelocity bool
}

// Attacher snaps its own entity onto a parent at the Attachments stage
// The parent is resolved by id every frame; a missing parent leaves the pose untouched
type Attacher struct {
	config AttacherConfig
	owner  *engine.Entity
}

func NewAttacher(cfg AttacherConfig) *Attacher {
	if cfg.OrientationOffset == (mgl64.Quat{}) {
		cfg.OrientationOffset = mgl64.QuatIdent()
	}
	return &Attacher{config: cfg}
}

func (a *Attacher) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapAttacher}
}

func (a *Attacher) Attach(owner *engine.Entity) { a.owner = owner }

func (a *Attacher) Config() AttacherConfig { return a.config }

// SetParent retargets the attacher
func (a *Attacher) SetParent(id engine.EntityID, point string) {
	a.config.Parent = id
	a.config.Point = point
}

func (a *Attacher) Update(stage engine.Stage) {
	if stage == engine.StageAttachments {
		a.apply()
	}
}

func (a *Attacher) apply() {
	if a.owner == nil || a.owner.World() == nil {
		return
	}
	parent, ok := a.owner.World().EntityByID(a.config.Parent)
	if !ok || parent == a.owner {
		return
	}

	var pos mgl64.Vec3
	var ori mgl64.Quat
	if a.config.Point != "" {
		if pos, ok = CalcAttachmentPointPosition(parent, a.config.Point); !ok {
			return
		}
		ori, _ = CalcAttachmentPointOrientation(parent, a.config.Point)
	} else {
		if pos, ok = engine.Position(parent); !ok {
			return
		}
		ori, _ = engine.Orientation(parent)
	}

	engine.SetPosition(a.owner, pos.Add(ori.Rotate(a.config.PositionOffset)))
	engine.SetOrientation(a.owner, ori.Mul(a.config.OrientationOffset))

	var vel, angVel mgl64.Vec3
	if a.config.CopyVelocity {
		vel, _ = engine.Velocity(parent)
		angVel, _ = engine.AngularVelocity(parent)
	}
	engine.SetVelocity(a.owner, vel)
	engine.SetAngularVelocity(a.owner, angVel)
}
