package engine

import "github.com/lixenwraith/skykernel/parameter"

// EntitySystem fans stages out to every entity's components
//
// The entity list is captured at Input and held until Output, so entities
// added mid-frame are first seen next frame. Each stage skips entities
// removed before it began; an entity removed during a stage finishes it.
type EntitySystem struct {
	SystemBase
	world    *World
	snapshot []*Entity
}

// NewEntitySystem creates a system driving all entities of w
func NewEntitySystem(w *World) *EntitySystem {
	return &EntitySystem{
		SystemBase: NewSystemBase(parameter.PriorityEntities),
		world:      w,
	}
}

// Update dispatches stage to live entities of the frame snapshot
func (s *EntitySystem) Update(stage Stage) {
	if stage == StageInput || s.snapshot == nil {
		s.snapshot = s.world.Entities()
	}

	for _, le := range s.live(stage) {
		if stage == StagePreDynamicsSubStep {
			s.applyGravity(le.entity)
		}
		for _, c := range le.components {
			if u, ok := c.(Updatable); ok {
				u.Update(stage)
			}
		}
	}

	if stage == StageOutput {
		s.snapshot = nil
	}
}

// AdvanceSimTime forwards the substep clock to dynamics-enabled entities
func (s *EntitySystem) AdvanceSimTime(t, dt float64) {
	for _, le := range s.live(StageDynamicsSubStep) {
		for _, c := range le.components {
			if a, ok := c.(SimTimeAdvancer); ok {
				a.AdvanceSimTime(t, dt)
			}
		}
	}
}

// AdvanceWallTime forwards frame time to every registered entity
func (s *EntitySystem) AdvanceWallTime(t, dt float64) {
	for _, e := range s.world.Entities() {
		for _, c := range e.components {
			if a, ok := c.(WallTimeAdvancer); ok {
				a.AdvanceWallTime(t, dt)
			}
		}
	}
}

// liveEntity pins an entity's component list for the duration of one stage
type liveEntity struct {
	entity     *Entity
	components []Component
}

// live filters the snapshot at the start of a stage
func (s *EntitySystem) live(stage Stage) []liveEntity {
	if s.snapshot == nil {
		s.snapshot = s.world.Entities()
	}
	out := make([]liveEntity, 0, len(s.snapshot))
	for _, e := range s.snapshot {
		if !e.Alive() || e.world != s.world {
			continue
		}
		if stage.IsDynamics() && !e.dynamicsEnabled {
			continue
		}
		out = append(out, liveEntity{entity: e, components: e.components})
	}
	return out
}

func (s *EntitySystem) applyGravity(e *Entity) {
	if s.world.config.Gravity == 0 {
		return
	}
	body, ok := FirstComponent[DynamicBody](e, CapDynamicBody)
	if !ok {
		return
	}
	pos, ok := Position(e)
	if !ok {
		return
	}
	body.ApplyCentralForce(s.world.CalcGravity(pos, body.Mass()))
}
