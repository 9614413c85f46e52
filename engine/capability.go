package engine

// Capability tags the roles a component can be looked up by
// One component may expose several capabilities
type Capability uint16

const (
	CapNode Capability = iota + 1
	CapMotion
	CapDynamicBody
	CapSimpleDynamicBody
	CapCamera
	CapPlanet
	CapAttachmentPoints
	CapAttacher
	CapCameraController
	CapDrag
	CapOrbitTracker

	// CapUser is the first value free for host-defined capabilities
	CapUser Capability = 1024
)

var capabilityNames = map[Capability]string{
	CapNode:              "node",
	CapMotion:            "motion",
	CapDynamicBody:       "dynamic_body",
	CapSimpleDynamicBody: "simple_dynamic_body",
	CapCamera:            "camera",
	CapPlanet:            "planet",
	CapAttachmentPoints:  "attachment_points",
	CapAttacher:          "attacher",
	CapCameraController:  "camera_controller",
	CapDrag:              "drag",
	CapOrbitTracker:      "orbit_tracker",
}

func (c Capability) String() string {
	if n, ok := capabilityNames[c]; ok {
		return n
	}
	if c >= CapUser {
		return "user"
	}
	return "unknown"
}
