package parameter

import "time"

// Stepper timing
const (
	// DefaultStepSize is the fixed dynamics substep (60 Hz)
	DefaultStepSize = 1.0 / 60.0

	// DefaultMaxSubsteps bounds catch-up work per frame
	// Frames owing more substeps discard the excess simulation time
	DefaultMaxSubsteps = 10

	// StepRoundingTolerance is added in substep units before flooring the owed substep count
	StepRoundingTolerance = 1e-9

	// FrameInterval is the host frame loop interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// MaxFrameDelta clamps a single frame delta after host stalls
	MaxFrameDelta = 250 * time.Millisecond
)

// World defaults
const (
	// DefaultApplicationID partitions the entity id space for a standalone process
	DefaultApplicationID = 1

	// StandardGravity is the central gravity magnitude in m/s²
	StandardGravity = 9.81
)
