package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
)

func newTestWorld() *engine.World {
	return engine.NewWorld(engine.WorldConfig{ApplicationID: 1})
}

func TestSimpleDynamicBodyLinear(t *testing.T) {
	w := newTestWorld()
	node := NewNode(mgl64.Vec3{}, mgl64.QuatIdent())
	body := NewSimpleDynamicBody(BodyProperties{Mass: 2})
	w.CreateEntity("body", node, body)

	body.SetVelocity(mgl64.Vec3{1, 0, 0})
	body.ApplyCentralForce(mgl64.Vec3{0, 4, 0}) // a = (0,2,0)
	body.AdvanceSimTime(0, 0.5)
	body.Update(engine.StageDynamicsSubStep)

	// pos = v*dt + a*dt²/2
	if got := node.Position(); !got.ApproxEqualThreshold(mgl64.Vec3{0.5, 0.25, 0}, 1e-12) {
		t.Errorf("position = %v", got)
	}
	if got := body.Velocity(); !got.ApproxEqualThreshold(mgl64.Vec3{1, 1, 0}, 1e-12) {
		t.Errorf("velocity = %v", got)
	}
	if body.AccumulatedForce() != (mgl64.Vec3{}) {
		t.Error("force should reset after integration")
	}

	// without accumulated time nothing moves
	body.ApplyCentralForce(mgl64.Vec3{100, 0, 0})
	body.Update(engine.StageDynamicsSubStep)
	if got := node.Position(); !got.ApproxEqualThreshold(mgl64.Vec3{0.5, 0.25, 0}, 1e-12) {
		t.Errorf("position moved without time: %v", got)
	}
}

func TestSimpleDynamicBodyAngular(t *testing.T) {
	w := newTestWorld()
	node := NewNode(mgl64.Vec3{}, mgl64.QuatIdent())
	body := NewSimpleDynamicBody(BodyProperties{Mass: 1, Inertia: mgl64.Vec3{1, 1, 1}})
	w.CreateEntity("spinner", node, body)

	body.SetAngularVelocity(mgl64.Vec3{0, 0, 1})
	for range 1000 {
		body.AdvanceSimTime(0, 0.001*math.Pi/2)
		body.Update(engine.StageDynamicsSubStep)
	}
	// quarter turn about +Z maps +X to +Y
	got := node.Orientation().Rotate(mgl64.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-3) {
		t.Errorf("rotated x = %v", got)
	}
	if l := node.Orientation().Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("orientation not normalized: %v", l)
	}
}

func TestSimpleDynamicBodyOffsetForceTorque(t *testing.T) {
	w := newTestWorld()
	body := NewSimpleDynamicBody(BodyProperties{Mass: 1})
	w.CreateEntity("lever", NewNode(mgl64.Vec3{}, mgl64.QuatIdent()), body)

	body.ApplyForce(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{2, 0, 0})
	body.AdvanceSimTime(0, 1)
	body.Update(engine.StageDynamicsSubStep)
	// torque (2,0,0)x(0,1,0) = (0,0,2), unit inertia
	if got := body.AngularVelocity(); !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, 2}, 1e-12) {
		t.Errorf("angular velocity = %v", got)
	}
}

func TestBodyDefaults(t *testing.T) {
	b := NewSimpleDynamicBody(BodyProperties{})
	if b.Mass() != 1 || b.Properties().Inertia != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("defaults = %+v", b.Properties())
	}
	b.ApplyCentralForce(mgl64.Vec3{1, 0, 0})
	b.SetDynamicsEnabled(false)
	if b.AccumulatedForce() != (mgl64.Vec3{}) {
		t.Error("disabling dynamics should drop pending force")
	}
}

func TestAttachmentPoints(t *testing.T) {
	w := newTestWorld()
	ori := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	points := NewAttachmentPoints(AttachmentPoint{Name: "cockpit", Position: mgl64.Vec3{2, 0, 0}})
	e := w.CreateEntity("ship", NewNode(mgl64.Vec3{10, 0, 0}, ori), points)

	pos, ok := CalcAttachmentPointPosition(e, "cockpit")
	if !ok || !pos.ApproxEqualThreshold(mgl64.Vec3{10, 2, 0}, 1e-12) {
		t.Errorf("cockpit position = %v, %v", pos, ok)
	}
	q, ok := CalcAttachmentPointOrientation(e, "cockpit")
	if !ok || !q.Rotate(mgl64.Vec3{1, 0, 0}).ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("cockpit orientation = %v", q)
	}
	if _, ok := CalcAttachmentPointPosition(e, "missing"); ok {
		t.Error("missing point should not resolve")
	}

	points.Set(AttachmentPoint{Name: "cockpit", Position: mgl64.Vec3{3, 0, 0}})
	if names := points.Names(); len(names) != 1 {
		t.Errorf("Set should replace by name, names = %v", names)
	}
}

func TestAttacher(t *testing.T) {
	w := newTestWorld()
	parentBody := NewSimpleDynamicBody(BodyProperties{Mass: 1})
	parent := w.CreateEntity("carrier",
		NewNode(mgl64.Vec3{100, 0, 0}, mgl64.QuatIdent()),
		parentBody,
		NewAttachmentPoints(AttachmentPoint{Name: "deck", Position: mgl64.Vec3{0, 0, -5}}),
	)
	parentBody.SetVelocity(mgl64.Vec3{0, 7, 0})

	childMotion := NewMotion()
	childMotion.SetVelocity(mgl64.Vec3{1, 1, 1})
	att := NewAttacher(AttacherConfig{Parent: parent.ID(), Point: "deck", PositionOffset: mgl64.Vec3{1, 0, 0}, CopyVelocity: true})
	child := w.CreateEntity("plane", NewNode(mgl64.Vec3{}, mgl64.QuatIdent()), childMotion, att)

	att.Update(engine.StageAttachments)
	if p, _ := engine.Position(child); !p.ApproxEqualThreshold(mgl64.Vec3{101, 0, -5}, 1e-12) {
		t.Errorf("attached position = %v", p)
	}
	if v, _ := engine.Velocity(child); v != (mgl64.Vec3{0, 7, 0}) {
		t.Errorf("copied velocity = %v", v)
	}

	// parent gone: pose is left untouched
	w.RemoveEntity(parent.ID())
	engine.SetPosition(child, mgl64.Vec3{5, 5, 5})
	att.Update(engine.StageAttachments)
	if p, _ := engine.Position(child); p != (mgl64.Vec3{5, 5, 5}) {
		t.Errorf("pose changed with missing parent: %v", p)
	}
}

func TestAttacherZeroesVelocity(t *testing.T) {
	w := newTestWorld()
	parent := w.CreateEntity("p", NewNode(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent()))
	m := NewMotion()
	m.SetVelocity(mgl64.Vec3{9, 9, 9})
	att := NewAttacher(AttacherConfig{Parent: parent.ID()})
	w.CreateEntity("c", NewNode(mgl64.Vec3{}, mgl64.QuatIdent()), m, att)

	att.Update(engine.StageAttachments)
	if m.Velocity() != (mgl64.Vec3{}) {
		t.Errorf("velocity = %v, want zero", m.Velocity())
	}
}

func TestDrag(t *testing.T) {
	d := NewDrag(DragConfig{Coefficient: 2, SeaLevelDensity: 1.2, ScaleHeight: 8000, PlanetRadius: 1000})

	if f := d.Force(mgl64.Vec3{1000, 0, 0}, mgl64.Vec3{}); f != (mgl64.Vec3{}) {
		t.Errorf("stationary drag = %v", f)
	}
	f := d.Force(mgl64.Vec3{1000, 0, 0}, mgl64.Vec3{10, 0, 0})
	if !f.ApproxEqualThreshold(mgl64.Vec3{-120, 0, 0}, 1e-9) {
		t.Errorf("sea level drag = %v, want -120", f)
	}
	high := d.Density(mgl64.Vec3{1000 + 8000, 0, 0})
	if math.Abs(high-1.2/math.E) > 1e-12 {
		t.Errorf("density at one scale height = %v", high)
	}
}

func TestDragInStepper(t *testing.T) {
	w := newTestWorld()
	body := NewSimpleDynamicBody(BodyProperties{Mass: 1})
	body.SetVelocity(mgl64.Vec3{10, 0, 0})
	w.CreateEntity("d", NewNode(mgl64.Vec3{}, mgl64.QuatIdent()), body, NewDrag(DragConfig{Coefficient: 0.1, SeaLevelDensity: 1}))

	s := engine.NewStepper(engine.StepperConfig{StepSize: 0.1, DynamicsEnabled: true}, engine.NewEntitySystem(w))
	s.Step(1)
	if v := body.Velocity()[0]; v >= 10 || v <= 0 {
		t.Errorf("drag should slow the body, v = %v", v)
	}
}
