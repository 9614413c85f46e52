package camera

import (
	"sync"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
)

// InputSystem collects host input between frames and hands it to a camera controller
//
// Pointer and zoom deltas accumulate and become per-second rates at
// BeginStateUpdate by dividing by the frame's wall dt. Axis values and
// modifiers are taken as last set. Everything resets once delivered.
// Feed methods are safe from any goroutine.
type InputSystem struct {
	engine.SystemBase
	world *engine.World

	mu         sync.Mutex
	controller engine.EntityID
	yawDelta   float64
	tiltDelta  float64
	zoomDelta  float64
	forward    float64
	right      float64
	mod1, mod2 bool
	wallDt     float64
}

// NewInputSystem routes input to the ControllerComponent on entity controller
func NewInputSystem(w *engine.World, controller engine.EntityID) *InputSystem {
	return &InputSystem{
		SystemBase: engine.NewSystemBase(parameter.PriorityCameraInput),
		world:      w,
		controller: controller,
	}
}

// SetController changes the receiving entity
func (s *InputSystem) SetController(id engine.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller = id
}

// AddPointerDelta accumulates look movement, dx turns and dy tilts
func (s *InputSystem) AddPointerDelta(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.yawDelta += dx
	s.tiltDelta += dy
}

// AddZoomDelta accumulates wheel movement
func (s *InputSystem) AddZoomDelta(dz float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoomDelta += dz
}

// SetAxes sets the translation axes in [-1, 1]
func (s *InputSystem) SetAxes(forward, right float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forward, s.right = forward, right
}

// SetModifiers sets the modifier key state
func (s *InputSystem) SetModifiers(mod1, mod2 bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mod1, s.mod2 = mod1, mod2
}

func (s *InputSystem) AdvanceWallTime(_, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallDt = dt
}

func (s *InputSystem) Update(stage engine.Stage) {
	if stage != engine.StageBeginStateUpdate {
		return
	}
	in, id := s.drain()
	e, ok := s.world.EntityByID(id)
	if !ok {
		return
	}
	if cc, ok := ControllerComponentOf(e); ok {
		cc.SetInput(in)
	}
}

// drain converts accumulated input to rates and resets it
func (s *InputSystem) drain() (Input, engine.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := Input{
		ForwardSpeed:     s.forward,
		RightSpeed:       s.right,
		Modifier1Pressed: s.mod1,
		Modifier2Pressed: s.mod2,
	}
	if s.wallDt > 0 {
		in.YawRate = s.yawDelta / s.wallDt
		in.TiltRate = s.tiltDelta / s.wallDt
		in.ZoomRate = s.zoomDelta / s.wallDt
	}
	s.yawDelta, s.tiltDelta, s.zoomDelta = 0, 0, 0
	s.forward, s.right = 0, 0
	s.mod1, s.mod2 = false, false
	return in, s.controller
}
