package component

import (
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
)

// CameraState is the projection state consumed by the renderer
type CameraState struct {
	FovY     float64 // vertical field of view, radians
	NearClip float64
	FarClip  float64
}

// DefaultCameraState returns the standard projection
func DefaultCameraState() CameraState {
	return CameraState{
		FovY:     parameter.DefaultFovY,
		NearClip: parameter.DefaultNearClip,
		FarClip:  parameter.DefaultFarClip,
	}
}

// Camera marks an entity as a viewpoint, its pose comes from the entity's node
type Camera struct {
	CameraState
}

func NewCamera(state CameraState) *Camera {
	return &Camera{CameraState: state}
}

func (c *Camera) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapCamera}
}

// CameraOf returns the entity's camera
func CameraOf(e *engine.Entity) (*Camera, bool) {
	return engine.FirstComponent[*Camera](e, engine.CapCamera)
}

// Planet marks a spherical celestial body centered on its entity's node
type Planet struct {
	Radius float64
}

func NewPlanet(radius float64) *Planet {
	return &Planet{Radius: radius}
}

func (p *Planet) Capabilities() []engine.Capability {
	return []engine.Capability{engine.CapPlanet}
}

// PlanetOf returns the entity's planet
func PlanetOf(e *engine.Entity) (*Planet, bool) {
	return engine.FirstComponent[*Planet](e, engine.CapPlanet)
}
