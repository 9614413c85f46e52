package engine

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/status"
)

func TestStepperStageOrder(t *testing.T) {
	log := &stageLog{}
	s := NewStepper(StepperConfig{StepSize: 0.5, DynamicsEnabled: true}, log)
	s.Step(1.0)

	want := []Stage{
		StageInput, StageBeginStateUpdate,
		StagePreDynamicsSubStep, StageDynamicsSubStep, StagePostDynamicsSubStep,
		StagePreDynamicsSubStep, StageDynamicsSubStep, StagePostDynamicsSubStep,
		StageEndStateUpdate, StageAttachments, StageOutput,
	}
	if !reflect.DeepEqual(log.stages, want) {
		t.Errorf("stages = %v, want %v", log.stages, want)
	}
	if !reflect.DeepEqual(log.simTs, []float64{0, 0.5}) {
		t.Errorf("sim times = %v", log.simTs)
	}
	if s.SimTime() != 1.0 {
		t.Errorf("SimTime = %v", s.SimTime())
	}
}

func TestStepperAccumulator(t *testing.T) {
	tests := []struct {
		name      string
		step      float64
		max       int
		frames    []float64
		substeps  []int
		remainder float64
		behind    bool
	}{
		{"exact multiples", 0.25, 0, []float64{0.5, 0.25}, []int{2, 1}, 0, false},
		{"carry remainder", 0.25, 0, []float64{0.375, 0.125}, []int{1, 1}, 0, false},
		{"short frames accumulate", 0.5, 0, []float64{0.125, 0.125, 0.125, 0.125}, []int{0, 0, 0, 1}, 0, false},
		{"cap discards excess", 0.25, 2, []float64{2.0}, []int{2}, 0, true},
		{"cap keeps old remainder", 0.25, 2, []float64{0.125, 2.0}, []int{0, 2}, 0.125, true},
		{"zero frame", 0.25, 0, []float64{0}, []int{0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(StepperConfig{StepSize: tt.step, MaxSubsteps: tt.max, DynamicsEnabled: true})
			var got []int
			for _, dt := range tt.frames {
				s.Step(dt)
				got = append(got, s.LastStep().Substeps)
			}
			if !reflect.DeepEqual(got, tt.substeps) {
				t.Errorf("substeps = %v, want %v", got, tt.substeps)
			}
			if math.Abs(s.Remainder()-tt.remainder) > 1e-12 {
				t.Errorf("remainder = %v, want %v", s.Remainder(), tt.remainder)
			}
			if s.LastStep().Behind != tt.behind {
				t.Errorf("behind = %v, want %v", s.LastStep().Behind, tt.behind)
			}
		})
	}
}

func TestStepperCapReportsDroppedTime(t *testing.T) {
	reg := status.NewRegistry()
	s := NewStepper(StepperConfig{StepSize: 0.25, MaxSubsteps: 2, DynamicsEnabled: true})
	s.UseStatus(reg)

	var notified []StepStats
	s.OnBehindSchedule(func(st StepStats) { notified = append(notified, st) })

	s.Step(2.0)
	st := s.LastStep()
	if math.Abs(st.DroppedTime-1.5) > 1e-12 {
		t.Errorf("dropped = %v, want 1.5", st.DroppedTime)
	}
	if s.SimTime() != 0.5 {
		t.Errorf("SimTime = %v, want 0.5", s.SimTime())
	}
	if len(notified) != 1 || !notified[0].Behind {
		t.Errorf("behind listener calls = %v", notified)
	}
	if reg.Ints.Get("stepper.behind_frames").Load() != 1 || !reg.Bools.Get("stepper.behind").Load() {
		t.Error("behind metrics not published")
	}

	s.Step(0.25)
	if s.LastStep().Behind || reg.Bools.Get("stepper.behind").Load() {
		t.Error("stepper should have caught up")
	}
	if len(notified) != 1 {
		t.Error("listener should not fire for on-time frames")
	}
	if reg.Ints.Get("stepper.frames").Load() != 2 || reg.Ints.Get("stepper.substeps").Load() != 3 {
		t.Error("frame/substep counters wrong")
	}
}

func TestStepperDynamicsDisabled(t *testing.T) {
	log := &stageLog{}
	s := NewStepper(StepperConfig{StepSize: 0.1}, log)
	s.Step(1)
	for _, st := range log.stages {
		if st.IsDynamics() {
			t.Fatalf("dynamics stage %v ran with dynamics disabled", st)
		}
	}
	if len(log.stages) != 5 {
		t.Errorf("stages = %v", log.stages)
	}
	if s.Remainder() != 0 {
		t.Errorf("remainder accumulated while disabled: %v", s.Remainder())
	}
}

func TestStepperInvalidConfig(t *testing.T) {
	mustPanic(t, "zero step", func() { NewStepper(StepperConfig{}) })
	mustPanic(t, "negative cap", func() { NewStepper(StepperConfig{StepSize: 1, MaxSubsteps: -1}) })
	mustPanic(t, "nan step", func() { NewStepper(StepperConfig{StepSize: math.NaN()}) })
}

func TestStepperPriorityAndSnapshot(t *testing.T) {
	var order []string
	late := &namedSystem{SystemBase: NewSystemBase(20), name: "late", order: &order}
	early := &namedSystem{SystemBase: NewSystemBase(10), name: "early", order: &order}
	s := NewStepper(DefaultStepperConfig(), late, early)

	// systems added during a step take effect next step
	early.onInput = func() { s.AddSystem(&namedSystem{name: "added", order: &order}) }
	s.Step(0)
	if got := strings.Join(order, ","); got != "early,late" {
		t.Errorf("first step order = %s", got)
	}
	early.onInput = nil
	order = nil
	s.Step(0)
	if got := strings.Join(order, ","); got != "added,early,late" {
		t.Errorf("second step order = %s", got)
	}
}

type namedSystem struct {
	SystemBase
	name    string
	order   *[]string
	onInput func()
}

func (n *namedSystem) Update(stage Stage) {
	if stage != StageInput {
		return
	}
	*n.order = append(*n.order, n.name)
	if n.onInput != nil {
		n.onInput()
	}
}

// runScenario steps a falling body and returns its trajectory
func runScenario(frames []float64) []mgl64.Vec3 {
	w := NewWorld(DefaultWorldConfig())
	body := newPointBody(mgl64.Vec3{0, 0, 7e6}, 3)
	integ := &integrator{body: body}
	w.CreateEntity("faller", body, integ)
	s := NewStepper(StepperConfig{StepSize: 0.02, MaxSubsteps: 5, DynamicsEnabled: true}, NewEntitySystem(w))
	var path []mgl64.Vec3
	for _, dt := range frames {
		s.Step(dt)
		path = append(path, body.pos)
	}
	return path
}

// integrator is semi-implicit euler over the pointBody force accumulator
type integrator struct {
	body *pointBody
	dt   float64
}

func (i *integrator) Capabilities() []Capability   { return []Capability{CapUser} }
func (i *integrator) AdvanceSimTime(_, dt float64) { i.dt = dt }
func (i *integrator) Update(stage Stage) {
	if stage != StageDynamicsSubStep {
		return
	}
	b := i.body
	b.vel = b.vel.Add(b.force.Mul(i.dt / b.mass))
	b.pos = b.pos.Add(b.vel.Mul(i.dt))
	b.force = mgl64.Vec3{}
}

func TestStepperDeterminism(t *testing.T) {
	frames := []float64{0.016, 0.017, 0.033, 0.2, 0.001, 0.05, 0.016}
	a := runScenario(frames)
	b := runScenario(frames)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("trajectories differ:\n%v\n%v", a, b)
	}
	last := a[len(a)-1]
	if last[2] >= 7e6 {
		t.Errorf("body should fall toward planet, z = %v", last[2])
	}
}
