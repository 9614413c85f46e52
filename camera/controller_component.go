package camera

import (
	"github.com/lixenwraith/skykernel/engine"
)

// ControllerComponent runs a Selector inside the stage sequence
// Substep updates receive the sim time accumulated since the previous substep,
// the frame update at Attachments receives the wall time since the previous frame
type ControllerComponent struct {
	selector *Selector
	simDt    float64
	wallDt   float64
}

func NewControllerComponent(s *Selector) *ControllerComponent {
	if s == nil {
		s = NewSelector()
	}
	return &ControllerComponent{selector: s}
}

func (c *ControllerComponent) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapCameraController}
}

func (c *ControllerComponent) Selector() *Selector { return c.selector }

// SetInput stages input for the next frame update
func (c *ControllerComponent) SetInput(in Input) { c.selector.SetInput(in) }

func (c *ControllerComponent) AdvanceSimTime(_, dt float64)  { c.simDt += dt }
func (c *ControllerComponent) AdvanceWallTime(_, dt float64) { c.wallDt += dt }

func (c *ControllerComponent) Update(stage engine.Stage) {
	switch stage {
	case engine.StagePostDynamicsSubStep:
		c.selector.UpdatePostDynamicsSubstep(c.simDt)
		c.simDt = 0
	case engine.StageAttachments:
		c.selector.Update(c.wallDt)
		c.wallDt = 0
		c.selector.SetInput(Input{})
	}
}

// ControllerComponentOf returns the entity's camera controller component
func ControllerComponentOf(e *engine.Entity) (*ControllerComponent, bool) {
	return engine.FirstComponent[*ControllerComponent](e, engine.CapCameraController)
}
