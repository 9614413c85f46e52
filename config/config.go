// Package config loads scenario and runner settings from JSON with flag overrides
package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/physics"
	"github.com/lixenwraith/skykernel/spatial"
)

// Controller names accepted by CameraConfig.Controller
const (
	ControllerOrbit    = "orbit"
	ControllerPlanet   = "planet"
	ControllerFree     = "free"
	ControllerAttached = "attached"
)

// Config is a complete simulation setup
type Config struct {
	Stepper  StepperConfig  `json:"stepper"`
	World    WorldConfig    `json:"world"`
	Planet   PlanetConfig   `json:"planet"`
	Camera   CameraConfig   `json:"camera"`
	Entities []EntityConfig `json:"entities"`
	Runner   RunnerConfig   `json:"runner"`
}

type StepperConfig struct {
	StepSize        float64 `json:"step_size"`
	MaxSubsteps     int     `json:"max_substeps"`
	DynamicsEnabled bool    `json:"dynamics_enabled"`
}

type WorldConfig struct {
	ApplicationID uint32  `json:"application_id"`
	Gravity       float64 `json:"gravity"`
}

type PlanetConfig struct {
	Name   string  `json:"name"`
	Radius float64 `json:"radius"`
	// Mass feeds orbit tracking, 0 uses earth mass
	Mass float64 `json:"mass"`
}

// CameraConfig selects the initial controller and its target
type CameraConfig struct {
	Controller string `json:"controller"`
	// Target names an entity, empty targets the first configured entity
	Target string `json:"target"`
	// Point is the attachment point used by the attached controller
	Point string  `json:"point"`
	Zoom  float64 `json:"zoom"`
}

// PointConfig is a named attachment pose in body axes, angles in degrees
type PointConfig struct {
	Name   string     `json:"name"`
	Offset [3]float64 `json:"offset"`
	Yaw    float64    `json:"yaw"`
	Pitch  float64    `json:"pitch"`
}

// EntityConfig places one body above the planet, angles in degrees
type EntityConfig struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Alt     float64 `json:"alt"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	Mass    float64 `json:"mass"`
	// Drag is Cd times area, 0 disables drag
	Drag        float64       `json:"drag"`
	TrackOrbit  bool          `json:"track_orbit"`
	AttachTo    string        `json:"attach_to"`
	AttachPoint string        `json:"attach_point"`
	Points      []PointConfig `json:"points"`
}

// RunnerConfig drives the host loop
type RunnerConfig struct {
	// Frames limits the run, 0 runs until interrupted
	Frames int `json:"frames"`
	// RateHz is the host frame rate
	RateHz float64 `json:"rate_hz"`
	// FixedDt steps by 1/RateHz instead of measured wall time
	FixedDt bool `json:"fixed_dt"`
	// Telemetry is the listen address for the telemetry feed, empty disables it
	Telemetry string `json:"telemetry"`
}

// Default returns a single aircraft over the equator with an orbit camera
func Default() Config {
	return Config{
		Stepper: StepperConfig{
			StepSize:        parameter.DefaultStepSize,
			MaxSubsteps:     parameter.DefaultMaxSubsteps,
			DynamicsEnabled: true,
		},
		World: WorldConfig{
			ApplicationID: parameter.DefaultApplicationID,
			Gravity:       parameter.StandardGravity,
		},
		Planet: PlanetConfig{
			Name:   "earth",
			Radius: spatial.EarthRadius,
			Mass:   physics.EarthMass,
		},
		Camera: CameraConfig{Controller: ControllerOrbit, Point: "cockpit"},
		Entities: []EntityConfig{{
			Name:  "aircraft",
			Alt:   1000,
			Speed: 200,
			Mass:  1000,
			Points: []PointConfig{
				{Name: "cockpit", Offset: [3]float64{4, 0, -1}},
			},
		}},
		Runner: RunnerConfig{RateHz: 1 / parameter.FrameInterval.Seconds()},
	}
}

// Load reads a JSON file over Default, a missing file yields Default
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %q", cleanPath)
	}
	// entities replace the default list instead of merging into it
	file := struct {
		*Config
		Entities *[]EntityConfig `json:"entities"`
	}{Config: &cfg}
	if err := json.Unmarshal(data, &file); err != nil {
		return Default(), errors.Wrapf(err, "parse config %q", cleanPath)
	}
	if file.Entities != nil {
		cfg.Entities = *file.Entities
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %q", cleanPath)
	}
	return cfg, nil
}

// Validate reports the first setting the engine would reject
func (c Config) Validate() error {
	switch {
	case !(c.Stepper.StepSize > 0) || math.IsInf(c.Stepper.StepSize, 0):
		return errors.Errorf("stepper.step_size must be positive, got %v", c.Stepper.StepSize)
	case c.Stepper.MaxSubsteps < 0:
		return errors.Errorf("stepper.max_substeps must not be negative, got %d", c.Stepper.MaxSubsteps)
	case c.World.Gravity < 0:
		return errors.Errorf("world.gravity must not be negative, got %v", c.World.Gravity)
	case !(c.Planet.Radius > 0):
		return errors.Errorf("planet.radius must be positive, got %v", c.Planet.Radius)
	case c.Runner.RateHz <= 0:
		return errors.Errorf("runner.rate_hz must be positive, got %v", c.Runner.RateHz)
	case c.Runner.Frames < 0:
		return errors.Errorf("runner.frames must not be negative, got %d", c.Runner.Frames)
	}
	switch c.Camera.Controller {
	case ControllerOrbit, ControllerPlanet, ControllerFree, ControllerAttached:
	default:
		return errors.Errorf("camera.controller %q unknown", c.Camera.Controller)
	}

	names := make(map[string]bool, len(c.Entities)+1)
	names[c.Planet.Name] = true
	for i, e := range c.Entities {
		if e.Name == "" {
			return errors.Errorf("entities[%d]: name required", i)
		}
		if names[e.Name] {
			return errors.Errorf("entities[%d]: duplicate name %q", i, e.Name)
		}
		if e.Mass < 0 {
			return errors.Errorf("entities[%d]: mass must not be negative", i)
		}
		names[e.Name] = true
	}
	for i, e := range c.Entities {
		if e.AttachTo != "" && !names[e.AttachTo] {
			return errors.Errorf("entities[%d]: attach_to %q not found", i, e.AttachTo)
		}
		if e.AttachTo == e.Name && e.AttachTo != "" {
			return errors.Errorf("entities[%d]: cannot attach to itself", i)
		}
	}
	if c.Camera.Target != "" && !names[c.Camera.Target] {
		return errors.Errorf("camera.target %q not found", c.Camera.Target)
	}
	return nil
}

// EngineStepper converts to the engine stepper settings
func (c Config) EngineStepper() engine.StepperConfig {
	return engine.StepperConfig{
		StepSize:        c.Stepper.StepSize,
		MaxSubsteps:     c.Stepper.MaxSubsteps,
		DynamicsEnabled: c.Stepper.DynamicsEnabled,
	}
}

// EngineWorld converts to the engine world settings
func (c Config) EngineWorld() engine.WorldConfig {
	return engine.WorldConfig{
		ApplicationID: c.World.ApplicationID,
		Gravity:       c.World.Gravity,
	}
}

// FrameDt returns the fixed host frame delta in seconds
func (c Config) FrameDt() float64 { return 1 / c.Runner.RateHz }
