package engine

// Stage is one phase of a frame update
type Stage uint8

const (
	StageInput Stage = iota
	StageBeginStateUpdate
	StagePreDynamicsSubStep
	StageDynamicsSubStep
	StagePostDynamicsSubStep
	StageEndStateUpdate
	StageAttachments
	StageOutput
)

// StageCount is the number of distinct stages
const StageCount = int(StageOutput) + 1

var stageNames = [StageCount]string{
	"input",
	"begin_state_update",
	"pre_dynamics_substep",
	"dynamics_substep",
	"post_dynamics_substep",
	"end_state_update",
	"attachments",
	"output",
}

func (s Stage) String() string {
	if int(s) < StageCount {
		return stageNames[s]
	}
	return "invalid"
}

// IsDynamics reports whether the stage runs once per fixed substep
func (s Stage) IsDynamics() bool {
	return s == StagePreDynamicsSubStep || s == StageDynamicsSubStep || s == StagePostDynamicsSubStep
}
