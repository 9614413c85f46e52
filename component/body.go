package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
)

// BodyProperties are the mass properties of a rigid body
type BodyProperties struct {
	Mass float64
	// Inertia holds the principal moments of inertia in body axes
	Inertia mgl64.Vec3
	// CenterOfMass is the body-frame offset from the entity origin
	CenterOfMass mgl64.Vec3
}

// SimpleDynamicBody integrates its entity's node with velocity Verlet
// Forces and torques accumulate during a substep and reset after integration
type SimpleDynamicBody struct {
	props BodyProperties
	owner *engine.Entity

	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3
	dt     float64
}

// NewSimpleDynamicBody creates a body, non-positive mass or inertia components default to 1
func NewSimpleDynamicBody(props BodyProperties) *SimpleDynamicBody {
	if props.Mass <= 0 {
		props.Mass = 1
	}
	for i := range 3 {
		if props.Inertia[i] <= 0 {
			props.Inertia[i] = 1
		}
	}
	return &SimpleDynamicBody{props: props}
}

func (b *SimpleDynamicBody) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapDynamicBody, engine.CapSimpleDynamicBody}
}

func (b *SimpleDynamicBody) Attach(owner *engine.Entity) { b.owner = owner }

func (b *SimpleDynamicBody) Properties() BodyProperties      { return b.props }
func (b *SimpleDynamicBody) Mass() float64                   { return b.props.Mass }
func (b *SimpleDynamicBody) Velocity() mgl64.Vec3            { return b.velocity }
func (b *SimpleDynamicBody) SetVelocity(v mgl64.Vec3)        { b.velocity = v }
func (b *SimpleDynamicBody) AngularVelocity() mgl64.Vec3     { return b.angularVelocity }
func (b *SimpleDynamicBody) SetAngularVelocity(w mgl64.Vec3) { b.angularVelocity = w }
func (b *SimpleDynamicBody) ApplyCentralForce(f mgl64.Vec3)  { b.force = b.force.Add(f) }
func (b *SimpleDynamicBody) ApplyTorque(t mgl64.Vec3)        { b.torque = b.torque.Add(t) }

// ApplyForce applies f at a world-aligned offset from the entity origin
// The lever arm is measured from the rotated center of mass
func (b *SimpleDynamicBody) ApplyForce(f, relPosition mgl64.Vec3) {
	b.force = b.force.Add(f)
	arm := relPosition.Sub(b.orientation().Rotate(b.props.CenterOfMass))
	b.torque = b.torque.Add(arm.Cross(f))
}

// AccumulatedForce returns the force applied so far this substep
func (b *SimpleDynamicBody) AccumulatedForce() mgl64.Vec3 { return b.force }

// AdvanceSimTime accumulates the time to integrate at the next dynamics stage
func (b *SimpleDynamicBody) AdvanceSimTime(_, dt float64) { b.dt += dt }

// SetDynamicsEnabled drops pending forces when dynamics are switched off
func (b *SimpleDynamicBody) SetDynamicsEnabled(enabled bool) {
	if !enabled {
		b.resetAccumulators()
	}
}

func (b *SimpleDynamicBody) Update(stage engine.Stage) {
	if stage == engine.StageDynamicsSubStep {
		b.integrate()
	}
}

func (b *SimpleDynamicBody) orientation() mgl64.Quat {
	if q, ok := engine.Orientation(b.owner); ok {
		return q
	}
	return mgl64.QuatIdent()
}

func (b *SimpleDynamicBody) integrate() {
	dt := b.dt
	if dt <= 0 {
		b.resetAccumulators()
		return
	}
	node, ok := engine.FirstComponent[engine.Positionable](b.owner, engine.CapNode)

	// linear
	acc := b.force.Mul(1 / b.props.Mass)
	if ok {
		node.SetPosition(node.Position().Add(b.velocity.Mul(dt)).Add(acc.Mul(0.5 * dt * dt)))
	}
	b.velocity = b.velocity.Add(acc.Mul(dt))

	// angular, inertia is diagonal in body axes
	ori := b.orientation()
	bodyTorque := ori.Inverse().Rotate(b.torque)
	bodyAlpha := mgl64.Vec3{
		bodyTorque[0] / b.props.Inertia[0],
		bodyTorque[1] / b.props.Inertia[1],
		bodyTorque[2] / b.props.Inertia[2],
	}
	alpha := ori.Rotate(bodyAlpha)
	disp := b.angularVelocity.Mul(dt).Add(alpha.Mul(0.5 * dt * dt))
	if ok && disp.Len() > 0 {
		spin := mgl64.Quat{W: 0, V: disp}.Mul(ori).Scale(0.5)
		node.SetOrientation(ori.Add(spin).Normalize())
	}
	b.angularVelocity = b.angularVelocity.Add(alpha.Mul(dt))

	b.resetAccumulators()
}

func (b *SimpleDynamicBody) resetAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
	b.dt = 0
}

// DynamicBodyOf returns the entity's dynamic body
func DynamicBodyOf(e *engine.Entity) (engine.DynamicBody, bool) {
	return engine.FirstComponent[engine.DynamicBody](e, engine.CapDynamicBody)
}
