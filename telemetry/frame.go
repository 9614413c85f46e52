// Package telemetry snapshots simulation state each frame and serves it over HTTP and websocket
package telemetry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityFrame is one entity's committed state, angles in degrees
type EntityFrame struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Position    [3]float64 `json:"position"`
	Orientation [4]float64 `json:"orientation"` // w, x, y, z
	Velocity    [3]float64 `json:"velocity"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Alt         float64    `json:"alt"`
}

// CameraFrame is the active camera rig pose
type CameraFrame struct {
	Controller  string     `json:"controller"`
	Target      string     `json:"target,omitempty"`
	Position    [3]float64 `json:"position"`
	Orientation [4]float64 `json:"orientation"`
	FovY        float64    `json:"fov_y"`
}

// Frame is a full snapshot taken at the Output stage
type Frame struct {
	Frame    uint64  `json:"frame"`
	SimTime  float64 `json:"sim_time"`
	WallTime float64 `json:"wall_time"`
	Substeps int     `json:"substeps"`
	Behind   bool    `json:"behind"`
	Dropped  float64 `json:"dropped"`

	Entities []EntityFrame  `json:"entities"`
	Camera   *CameraFrame   `json:"camera,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty"`
}

// Entity returns the named entity frame
func (f *Frame) Entity(name string) (EntityFrame, bool) {
	for _, e := range f.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return EntityFrame{}, false
}

func vec3(v mgl64.Vec3) [3]float64 { return [3]float64(v) }

func quat(q mgl64.Quat) [4]float64 { return [4]float64{q.W, q.V[0], q.V[1], q.V[2]} }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
