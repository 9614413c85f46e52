package engine

import "github.com/go-gl/mathgl/mgl64"

// recorder logs every stage callback it receives
type recorder struct {
	caps  []Capability
	log   *[]string
	tag   string
	hooks map[Stage]func()
	simTs []float64
}

func newRecorder(tag string, log *[]string) *recorder {
	return &recorder{caps: []Capability{CapUser}, log: log, tag: tag, hooks: map[Stage]func(){}}
}

func (r *recorder) Capabilities() []Capability { return r.caps }

func (r *recorder) Update(stage Stage) {
	if r.log != nil {
		*r.log = append(*r.log, r.tag+":"+stage.String())
	}
	if h := r.hooks[stage]; h != nil {
		h()
	}
}

func (r *recorder) AdvanceSimTime(t, _ float64) { r.simTs = append(r.simTs, t) }

// pointBody is a minimal positionable dynamic body
type pointBody struct {
	pos    mgl64.Vec3
	ori    mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3
	mass   float64
	force  mgl64.Vec3
}

func newPointBody(pos mgl64.Vec3, mass float64) *pointBody {
	return &pointBody{pos: pos, ori: mgl64.QuatIdent(), mass: mass}
}

func (b *pointBody) Capabilities() []Capability {
	return []Capability{CapNode, CapDynamicBody}
}
func (b *pointBody) Position() mgl64.Vec3            { return b.pos }
func (b *pointBody) SetPosition(p mgl64.Vec3)        { b.pos = p }
func (b *pointBody) Orientation() mgl64.Quat         { return b.ori }
func (b *pointBody) SetOrientation(q mgl64.Quat)     { b.ori = q }
func (b *pointBody) Velocity() mgl64.Vec3            { return b.vel }
func (b *pointBody) SetVelocity(v mgl64.Vec3)        { b.vel = v }
func (b *pointBody) AngularVelocity() mgl64.Vec3     { return b.angVel }
func (b *pointBody) SetAngularVelocity(w mgl64.Vec3) { b.angVel = w }
func (b *pointBody) Mass() float64                   { return b.mass }
func (b *pointBody) ApplyCentralForce(f mgl64.Vec3)  { b.force = b.force.Add(f) }
func (b *pointBody) ApplyForce(f, _ mgl64.Vec3)      { b.force = b.force.Add(f) }
func (b *pointBody) ApplyTorque(mgl64.Vec3)            {}

// stageLog is a system recording stage order
type stageLog struct {
	SystemBase
	stages []Stage
	simTs  []float64
}

func (s *stageLog) Update(stage Stage)          { s.stages = append(s.stages, stage) }
func (s *stageLog) AdvanceSimTime(t, _ float64) { s.simTs = append(s.simTs, t) }
