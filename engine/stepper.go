package engine

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/status"
)

// StepperConfig holds fixed-step scheduling settings
type StepperConfig struct {
	// StepSize is the fixed dynamics substep in seconds, must be positive
	StepSize float64
	// MaxSubsteps caps substeps per frame, 0 means unbounded
	MaxSubsteps int
	// DynamicsEnabled gates substep execution
	DynamicsEnabled bool
}

// DefaultStepperConfig returns 60 Hz dynamics capped at parameter.DefaultMaxSubsteps
func DefaultStepperConfig() StepperConfig {
	return StepperConfig{
		StepSize:        parameter.DefaultStepSize,
		MaxSubsteps:     parameter.DefaultMaxSubsteps,
		DynamicsEnabled: true,
	}
}

// StepStats describes the most recent Step call
type StepStats struct {
	Frame    uint64
	Substeps int
	// Behind is set when the substep cap discarded simulation time
	Behind      bool
	DroppedTime float64
	SimTime     float64
	WallTime    float64
	WallDt      float64
}

// Stepper converts wall-clock frame time into fixed dynamics substeps
// and drives the stage sequence across its systems
type Stepper struct {
	config  StepperConfig
	systems []System

	simTime   float64
	wallTime  float64
	remainder float64
	frame     uint64
	last      StepStats
	behind    bool

	onBehind []func(StepStats)

	// Cached metric pointers, nil until UseStatus
	statFrames   *atomic.Int64
	statSubsteps *atomic.Int64
	statBehind   *atomic.Int64
	statIsBehind *atomic.Bool
	statDropped  *status.Gauge
	statSimTime  *status.Gauge
}

// NewStepper creates a stepper, panics on a non-positive step size or negative cap
func NewStepper(cfg StepperConfig, systems ...System) *Stepper {
	if !(cfg.StepSize > 0) || math.IsInf(cfg.StepSize, 0) {
		panic(fmt.Sprintf("engine: invalid step size %v", cfg.StepSize))
	}
	if cfg.MaxSubsteps < 0 {
		panic(fmt.Sprintf("engine: invalid max substeps %d", cfg.MaxSubsteps))
	}
	s := &Stepper{config: cfg}
	for _, sys := range systems {
		s.AddSystem(sys)
	}
	return s
}

// UseStatus publishes stepper metrics into reg
func (s *Stepper) UseStatus(reg *status.Registry) {
	s.statFrames = reg.Ints.Get("stepper.frames")
	s.statSubsteps = reg.Ints.Get("stepper.substeps")
	s.statBehind = reg.Ints.Get("stepper.behind_frames")
	s.statIsBehind = reg.Bools.Get("stepper.behind")
	s.statDropped = reg.Floats.Get("stepper.dropped_seconds")
	s.statSimTime = reg.Floats.Get("stepper.sim_time")
}

// AddSystem inserts sys keeping systems sorted by priority, stable for equal priorities
func (s *Stepper) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	slices.SortStableFunc(s.systems, func(a, b System) int {
		return a.Priority() - b.Priority()
	})
}

// RemoveSystem drops sys, effective from the next Step
func (s *Stepper) RemoveSystem(sys System) bool {
	i := slices.Index(s.systems, sys)
	if i < 0 {
		return false
	}
	s.systems = slices.Delete(slices.Clone(s.systems), i, i+1)
	return true
}

// Systems returns a copy of the system list in dispatch order
func (s *Stepper) Systems() []System { return slices.Clone(s.systems) }

// OnBehindSchedule registers fn to run after any frame whose substeps were capped
func (s *Stepper) OnBehindSchedule(fn func(StepStats)) { s.onBehind = append(s.onBehind, fn) }

// Config returns the current settings
func (s *Stepper) Config() StepperConfig { return s.config }

// StepSize returns the fixed substep duration
func (s *Stepper) StepSize() float64 { return s.config.StepSize }

// SetDynamicsEnabled toggles substep execution, pending remainder is kept
func (s *Stepper) SetDynamicsEnabled(enabled bool) { s.config.DynamicsEnabled = enabled }

// DynamicsEnabled reports whether substeps run
func (s *Stepper) DynamicsEnabled() bool { return s.config.DynamicsEnabled }

// SimTime returns the canonical simulation clock
func (s *Stepper) SimTime() float64 { return s.simTime }

// SetSimTime moves the simulation clock, used when loading a scenario
func (s *Stepper) SetSimTime(t float64) { s.simTime = t }

// WallTime returns the accumulated wall-clock time
func (s *Stepper) WallTime() float64 { return s.wallTime }

// Remainder returns sub-step time carried to the next frame
func (s *Stepper) Remainder() float64 { return s.remainder }

// LastStep returns statistics of the latest frame, valid from EndStateUpdate onward
func (s *Stepper) LastStep() StepStats { return s.last }

// Step runs one frame for wallDt seconds of elapsed wall-clock time
func (s *Stepper) Step(wallDt float64) {
	systems := slices.Clone(s.systems)
	if wallDt < 0 || math.IsNaN(wallDt) {
		wallDt = 0
	}

	s.frame++
	s.wallTime += wallDt
	for _, sys := range systems {
		sys.AdvanceWallTime(s.wallTime, wallDt)
	}

	dispatch(systems, StageInput)
	dispatch(systems, StageBeginStateUpdate)

	substeps, dropped := s.plan(wallDt)
	step := s.config.StepSize
	for range substeps {
		dispatch(systems, StagePreDynamicsSubStep)
		for _, sys := range systems {
			sys.AdvanceSimTime(s.simTime, step)
		}
		dispatch(systems, StageDynamicsSubStep)
		dispatch(systems, StagePostDynamicsSubStep)
		s.simTime += step
	}

	s.last = StepStats{
		Frame:       s.frame,
		Substeps:    substeps,
		Behind:      dropped > 0,
		DroppedTime: dropped,
		SimTime:     s.simTime,
		WallTime:    s.wallTime,
		WallDt:      wallDt,
	}
	s.publish()

	dispatch(systems, StageEndStateUpdate)
	dispatch(systems, StageAttachments)
	dispatch(systems, StageOutput)

	if s.last.Behind {
		for _, fn := range slices.Clone(s.onBehind) {
			fn(s.last)
		}
	}
}

// plan consumes wallDt into whole substeps and updates the remainder
// When the cap is hit the remainder from before this frame is kept and the excess is returned as dropped
func (s *Stepper) plan(wallDt float64) (substeps int, dropped float64) {
	if !s.config.DynamicsEnabled || wallDt <= 0 {
		return 0, 0
	}
	step := s.config.StepSize
	pending := s.remainder + wallDt
	// tolerance keeps exact multiples of step from losing a substep to rounding
	owed := int(math.Floor(pending/step + parameter.StepRoundingTolerance))

	if limit := s.config.MaxSubsteps; limit > 0 && owed > limit {
		kept := s.remainder + float64(limit)*step
		dropped = pending - kept
		pending = kept
		owed = limit
	}
	s.remainder = math.Max(0, pending-float64(owed)*step)
	return owed, dropped
}

func (s *Stepper) publish() {
	st := s.last
	if st.Behind != s.behind {
		fields := logrus.Fields{"frame": st.Frame, "dropped": st.DroppedTime, "substeps": st.Substeps}
		if st.Behind {
			logger.Log.WithFields(fields).Warn("stepper behind schedule, discarding simulation time")
		} else {
			logger.Log.WithFields(fields).Info("stepper caught up")
		}
		s.behind = st.Behind
	}

	if s.statFrames == nil {
		return
	}
	s.statFrames.Add(1)
	s.statSubsteps.Add(int64(st.Substeps))
	s.statIsBehind.Store(st.Behind)
	if st.Behind {
		s.statBehind.Add(1)
		s.statDropped.Add(st.DroppedTime)
	}
	s.statSimTime.Store(st.SimTime)
}

func dispatch(systems []System, stage Stage) {
	for _, sys := range systems {
		sys.Update(stage)
	}
}
