package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityCameraInput = 10 // Before entities so camera input is staged for BeginStateUpdate
	PriorityEntities    = 50
	PriorityTelemetry   = 90 // After entities, reads committed state at Output
)
