// Package camera drives camera rig entities from per-frame input.
//
// Controllers are composed from capability structs (Targeting, YawControl,
// PitchControl, ZoomControl) and write the rig entity's node and camera
// state. Targets are held as entity ids and resolved through the World on
// every use, so a deleted target degrades to "no target".
package camera

import (
	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
)

// Input is one frame of camera commands
// Rates are per second of wall time; the controller scales them by its own gains
type Input struct {
	ForwardSpeed     float64
	RightSpeed       float64
	YawRate          float64
	TiltRate         float64
	ZoomRate         float64
	Modifier1Pressed bool
	Modifier2Pressed bool
}

// Controller is a camera state machine bound to one rig entity
type Controller interface {
	// Update runs once per frame with wall-clock dt
	Update(dt float64)
	// UpdatePostDynamicsSubstep runs after each dynamics substep with sim dt
	UpdatePostDynamicsSubstep(dt float64)
	SetActive(active bool)
	Active() bool
	SetInput(in Input)
	Input() Input
	// Rig returns the camera entity the controller drives
	Rig() *engine.Entity
}

// rig holds the mandatory components of a camera entity plus shared controller state
type rig struct {
	entity *engine.Entity
	node   engine.Positionable
	camera *component.Camera
	active bool
	input  Input
}

// newRig panics when the entity lacks a node or camera
func newRig(e *engine.Entity) rig {
	return rig{
		entity: e,
		node:   engine.MustFirstComponent[engine.Positionable](e, engine.CapNode),
		camera: engine.MustFirstComponent[*component.Camera](e, engine.CapCamera),
	}
}

func (r *rig) Rig() *engine.Entity       { return r.entity }
func (r *rig) Active() bool              { return r.active }
func (r *rig) Input() Input              { return r.input }
func (r *rig) SetInput(in Input)         { r.input = in }
func (r *rig) Camera() *component.Camera { return r.camera }
