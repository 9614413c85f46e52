package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/engine"
)

// Node places an entity in the geocentric frame
type Node struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

// NewNode creates a node at the given pose
func NewNode(position mgl64.Vec3, orientation mgl64.Quat) *Node {
	return &Node{position: position, orientation: orientation.Normalize()}
}

func (n *Node) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapNode}
}

func (n *Node) Position() mgl64.Vec3        { return n.position }
func (n *Node) SetPosition(p mgl64.Vec3)    { n.position = p }
func (n *Node) Orientation() mgl64.Quat     { return n.orientation }
func (n *Node) SetOrientation(q mgl64.Quat) { n.orientation = q.Normalize() }

// Transform returns the body-to-geocentric matrix
func (n *Node) Transform() mgl64.Mat4 {
	p := n.position
	return mgl64.Translate3D(p[0], p[1], p[2]).Mul4(n.orientation.Mat4())
}

// NodeOf returns the entity's node
func NodeOf(e *engine.Entity) (*Node, bool) {
	return engine.FirstComponent[*Node](e, engine.CapNode)
}

// Motion carries velocities for entities without a dynamic body
type Motion struct {
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3
}

func NewMotion() *Motion { return &Motion{} }

func (m *Motion) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapMotion}
}

func (m *Motion) Velocity() mgl64.Vec3            { return m.velocity }
func (m *Motion) SetVelocity(v mgl64.Vec3)        { m.velocity = v }
func (m *Motion) AngularVelocity() mgl64.Vec3     { return m.angularVelocity }
func (m *Motion) SetAngularVelocity(w mgl64.Vec3) { m.angularVelocity = w }
