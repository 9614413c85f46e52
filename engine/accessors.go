package engine

import "github.com/go-gl/mathgl/mgl64"

// Positionable components place their entity in the geocentric frame
type Positionable interface {
	Component
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Orientation() mgl64.Quat
	SetOrientation(q mgl64.Quat)
}

// Moving components carry linear and angular velocity
type Moving interface {
	Component
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(w mgl64.Vec3)
}

// DynamicBody components accept forces for the next dynamics substep
type DynamicBody interface {
	Moving
	Mass() float64
	ApplyCentralForce(f mgl64.Vec3)
	// ApplyForce applies f at a world-aligned offset from the entity origin
	ApplyForce(f, relPosition mgl64.Vec3)
	ApplyTorque(t mgl64.Vec3)
}

// Position returns the entity position, false if it has no positionable component
func Position(e *Entity) (mgl64.Vec3, bool) {
	if p, ok := FirstComponent[Positionable](e, CapNode); ok {
		return p.Position(), true
	}
	return mgl64.Vec3{}, false
}

// Orientation returns the entity orientation, false if it has no positionable component
func Orientation(e *Entity) (mgl64.Quat, bool) {
	if p, ok := FirstComponent[Positionable](e, CapNode); ok {
		return p.Orientation(), true
	}
	return mgl64.QuatIdent(), false
}

// Transform returns the body-to-geocentric matrix
func Transform(e *Entity) (mgl64.Mat4, bool) {
	p, ok := FirstComponent[Positionable](e, CapNode)
	if !ok {
		return mgl64.Ident4(), false
	}
	pos := p.Position()
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).Mul4(p.Orientation().Mat4()), true
}

// Velocity returns the linear velocity from the dynamic body, else from a motion component
func Velocity(e *Entity) (mgl64.Vec3, bool) {
	if m, ok := movingOf(e); ok {
		return m.Velocity(), true
	}
	return mgl64.Vec3{}, false
}

// AngularVelocity returns the angular velocity from the dynamic body, else from a motion component
func AngularVelocity(e *Entity) (mgl64.Vec3, bool) {
	if m, ok := movingOf(e); ok {
		return m.AngularVelocity(), true
	}
	return mgl64.Vec3{}, false
}

// SetPosition is a no-op when the entity has no positionable component
func SetPosition(e *Entity, p mgl64.Vec3) {
	if c, ok := FirstComponent[Positionable](e, CapNode); ok {
		c.SetPosition(p)
	}
}

// SetOrientation is a no-op when the entity has no positionable component
func SetOrientation(e *Entity, q mgl64.Quat) {
	if c, ok := FirstComponent[Positionable](e, CapNode); ok {
		c.SetOrientation(q)
	}
}

// SetVelocity is a no-op when the entity has no moving component
func SetVelocity(e *Entity, v mgl64.Vec3) {
	if m, ok := movingOf(e); ok {
		m.SetVelocity(v)
	}
}

// SetAngularVelocity is a no-op when the entity has no moving component
func SetAngularVelocity(e *Entity, w mgl64.Vec3) {
	if m, ok := movingOf(e); ok {
		m.SetAngularVelocity(w)
	}
}

func movingOf(e *Entity) (Moving, bool) {
	if b, ok := FirstComponent[Moving](e, CapDynamicBody); ok {
		return b, true
	}
	return FirstComponent[Moving](e, CapMotion)
}

// FindNearestEntityWithCapability returns the entity exposing cp closest to position
// Entities without a position are ignored
func FindNearestEntityWithCapability(w *World, position mgl64.Vec3, cp Capability) (*Entity, bool) {
	var best *Entity
	bestDist := 0.0
	for _, e := range w.entities {
		if !e.HasCapability(cp) {
			continue
		}
		p, ok := Position(e)
		if !ok {
			continue
		}
		d := p.Sub(position).Len()
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}
