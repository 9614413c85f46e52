package camera

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/logger"
)

// Selector owns a set of named controllers with at most one active
type Selector struct {
	controllers map[string]Controller
	order       []string

	selected string
	active   Controller
	target   engine.EntityID

	onSelect []func(name string, c Controller)
}

func NewSelector() *Selector {
	return &Selector{controllers: make(map[string]Controller)}
}

// AddController registers c under name, replacing any previous controller of that name
// The new controller receives the current target
func (s *Selector) AddController(name string, c Controller) {
	if old, ok := s.controllers[name]; ok {
		if old == s.active {
			old.SetActive(false)
			s.active = nil
			s.selected = ""
		}
	} else {
		s.order = append(s.order, name)
	}
	s.controllers[name] = c
	if t, ok := c.(Targetable); ok && !s.target.IsNull() {
		t.SetTarget(s.target)
	}
}

// Names returns controller names in registration order
func (s *Selector) Names() []string { return slices.Clone(s.order) }

// Controller returns the named controller
func (s *Selector) Controller(name string) (Controller, bool) {
	c, ok := s.controllers[name]
	return c, ok
}

// Selected returns the active controller and its name, false when none is active
func (s *Selector) Selected() (string, Controller, bool) {
	return s.selected, s.active, s.active != nil
}

// SelectController activates the named controller
// The previously active controller is deactivated exactly once; an unknown name
// leaves no controller active without error
func (s *Selector) SelectController(name string) {
	next, ok := s.controllers[name]
	if ok && next == s.active {
		return
	}
	if s.active != nil {
		s.active.SetActive(false)
	}
	if !ok {
		if s.active != nil {
			logger.Log.WithField("controller", name).Debug("unknown camera controller, selection cleared")
		}
		s.active = nil
		s.selected = ""
		s.notify()
		return
	}

	s.active = next
	s.selected = name
	next.SetActive(true)
	s.forwardTarget()

	logger.Log.WithFields(logrus.Fields{"controller": name, "target": s.target.String()}).Debug("camera controller selected")
	s.notify()
}

// Cycle selects the controller after the current one in registration order
func (s *Selector) Cycle() string {
	if len(s.order) == 0 {
		return ""
	}
	i := slices.Index(s.order, s.selected)
	next := s.order[(i+1)%len(s.order)]
	s.SelectController(next)
	return next
}

// SetTarget stores id and forwards it to every targetable controller
func (s *Selector) SetTarget(id engine.EntityID) {
	s.target = id
	s.forwardTarget()
}

func (s *Selector) Target() engine.EntityID { return s.target }

func (s *Selector) forwardTarget() {
	for _, name := range s.order {
		if t, ok := s.controllers[name].(Targetable); ok {
			t.SetTarget(s.target)
		}
	}
}

// OnSelect registers fn to run after every selection change
func (s *Selector) OnSelect(fn func(name string, c Controller)) {
	s.onSelect = append(s.onSelect, fn)
}

func (s *Selector) notify() {
	for _, fn := range slices.Clone(s.onSelect) {
		fn(s.selected, s.active)
	}
}

// SetInput hands frame input to the active controller
func (s *Selector) SetInput(in Input) {
	if s.active != nil {
		s.active.SetInput(in)
	}
}

// Update runs the active controller's frame update
func (s *Selector) Update(dt float64) {
	if s.active != nil {
		s.active.Update(dt)
	}
}

// UpdatePostDynamicsSubstep runs the active controller's substep update
func (s *Selector) UpdatePostDynamicsSubstep(dt float64) {
	if s.active != nil {
		s.active.UpdatePostDynamicsSubstep(dt)
	}
}

// FindController returns the first registered controller of type T
func FindController[T Controller](s *Selector) (T, bool) {
	for _, name := range s.order {
		if c, ok := s.controllers[name].(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}
