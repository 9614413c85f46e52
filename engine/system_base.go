package engine

// System receives the stage sequence from a Stepper
type System interface {
	Update(stage Stage)
	AdvanceSimTime(t, dt float64)
	AdvanceWallTime(t, dt float64)
	// Priority orders systems within a stage, lower runs first
	Priority() int
}

// SystemBase provides no-op hooks for all stages
// Embed in system struct and override only what is needed
type SystemBase struct {
	Order int
}

// NewSystemBase creates a base running at the given priority
func NewSystemBase(priority int) SystemBase {
	return SystemBase{Order: priority}
}

func (SystemBase) Update(Stage)                 {}
func (SystemBase) AdvanceSimTime(_, _ float64)  {}
func (SystemBase) AdvanceWallTime(_, _ float64) {}
func (b SystemBase) Priority() int              { return b.Order }
