package engine

// Component is the unit of simulated state owned by exactly one Entity
type Component interface {
	// Capabilities lists the tags the component is indexed under, fixed for its lifetime
	Capabilities() []Capability
}

// Updatable components receive stage callbacks from the EntitySystem
type Updatable interface {
	Update(stage Stage)
}

// SimTimeAdvancer components receive the canonical simulation clock once per substep
type SimTimeAdvancer interface {
	AdvanceSimTime(t, dt float64)
}

// WallTimeAdvancer components receive wall-clock frame time before the Input stage
type WallTimeAdvancer interface {
	AdvanceWallTime(t, dt float64)
}

// DynamicsToggler components are told when their entity's dynamics flag changes
type DynamicsToggler interface {
	SetDynamicsEnabled(enabled bool)
}

// Attachable components are bound to their owner when added and released when removed
type Attachable interface {
	Attach(owner *Entity)
}

// Disposer components release resources when destroyed with their entity
type Disposer interface {
	Dispose()
}
