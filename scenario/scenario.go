// Package scenario assembles a runnable world from a config.Config
package scenario

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/camera"
	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/config"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/physics"
	"github.com/lixenwraith/skykernel/spatial"
	"github.com/lixenwraith/skykernel/status"
	"github.com/lixenwraith/skykernel/vmath"
)

// RigName is the name of the camera rig entity
const RigName = "camera"

// Scenario is a world with its stepper, camera rig and input routing
type Scenario struct {
	Config   config.Config
	World    *engine.World
	Stepper  *engine.Stepper
	Status   *status.Registry
	Planet   *engine.Entity
	Rig      *engine.Entity
	Selector *camera.Selector
	Input    *camera.InputSystem
	// Bodies holds the configured entities in config order
	Bodies []*engine.Entity
}

// Build validates cfg and creates every entity, system and controller it describes
func Build(cfg config.Config) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "scenario")
	}

	s := &Scenario{
		Config: cfg,
		World:  engine.NewWorld(cfg.EngineWorld()),
		Status: status.NewRegistry(),
	}

	s.Planet = s.World.CreateEntity(cfg.Planet.Name,
		component.NewNode(mgl64.Vec3{}, mgl64.QuatIdent()),
		component.NewPlanet(cfg.Planet.Radius),
	)

	for _, ec := range cfg.Entities {
		s.Bodies = append(s.Bodies, s.createBody(ec))
	}
	for i, ec := range cfg.Entities {
		if ec.AttachTo == "" {
			continue
		}
		parent, _ := s.World.FindByName(ec.AttachTo)
		body := s.Bodies[i]
		body.AddComponent(component.NewAttacher(component.AttacherConfig{
			Parent:            parent.ID(),
			Point:             ec.AttachPoint,
			OrientationOffset: mgl64.QuatIdent(),
			CopyVelocity:      true,
		}))
		// the parent drives the pose
		body.SetDynamicsEnabled(false)
	}

	entityCount := s.Status.Ints.Get("world.entities")
	entityCount.Store(int64(s.World.EntityCount()))
	s.World.OnEntityAdded(func(*engine.Entity) { entityCount.Add(1) })
	s.World.OnEntityRemoved(func(*engine.Entity) { entityCount.Add(-1) })

	s.buildCamera()

	s.Input = camera.NewInputSystem(s.World, s.Rig.ID())
	s.Stepper = engine.NewStepper(cfg.EngineStepper(), s.Input, engine.NewEntitySystem(s.World))
	s.Stepper.UseStatus(s.Status)

	logger.Log.WithFields(logrus.Fields{
		"entities":   s.World.EntityCount(),
		"step":       cfg.Stepper.StepSize,
		"controller": cfg.Camera.Controller,
	}).Info("scenario built")
	return s, nil
}

func (s *Scenario) createBody(ec config.EntityConfig) *engine.Entity {
	radius := s.Config.Planet.Radius
	ll := spatial.Deg(ec.Lat, ec.Lon)
	pos := spatial.LlaToGeocentric(ll.WithAlt(ec.Alt), radius)
	ori := spatial.LatLonToGeocentricLtpOrientation(ll).Mul(vmath.RotZ(ec.Heading * math.Pi / 180)).Normalize()
	vel := ori.Rotate(mgl64.Vec3{ec.Speed, 0, 0})

	comps := []engine.Component{component.NewNode(pos, ori)}
	if ec.Mass > 0 {
		body := component.NewSimpleDynamicBody(component.BodyProperties{
			Mass:    ec.Mass,
			Inertia: mgl64.Vec3{ec.Mass, ec.Mass, ec.Mass},
		})
		body.SetVelocity(vel)
		comps = append(comps, body)
		if ec.Drag > 0 {
			comps = append(comps, component.NewDrag(component.DragConfig{
				Coefficient:     ec.Drag,
				SeaLevelDensity: physics.SeaLevelDensity,
				ScaleHeight:     physics.AtmosphereScaleHeight,
				PlanetRadius:    radius,
			}))
		}
	} else {
		motion := component.NewMotion()
		motion.SetVelocity(vel)
		comps = append(comps, motion)
	}
	if len(ec.Points) > 0 {
		points := make([]component.AttachmentPoint, 0, len(ec.Points))
		for _, pc := range ec.Points {
			points = append(points, component.AttachmentPoint{
				Name:        pc.Name,
				Position:    mgl64.Vec3(pc.Offset),
				Orientation: vmath.RotZ(pc.Yaw * math.Pi / 180).Mul(vmath.RotY(pc.Pitch * math.Pi / 180)),
			})
		}
		comps = append(comps, component.NewAttachmentPoints(points...))
	}
	if ec.TrackOrbit {
		comps = append(comps, physics.NewOrbitTracker(s.Config.Planet.Mass))
	}
	return s.World.CreateEntity(ec.Name, comps...)
}

func (s *Scenario) buildCamera() {
	cfg := s.Config.Camera
	s.Selector = camera.NewSelector()
	active := s.Status.Labels.Get("camera.controller")
	s.Selector.OnSelect(func(name string, _ camera.Controller) { active.Store(name) })
	s.Rig = s.World.CreateEntity(RigName,
		component.NewNode(mgl64.Vec3{s.Config.Planet.Radius * 2, 0, 0}, mgl64.QuatIdent()),
		component.NewCamera(component.DefaultCameraState()),
		camera.NewControllerComponent(s.Selector),
	)

	attachedCfg := camera.DefaultAttachedConfig()
	attachedCfg.Point = cfg.Point
	s.Selector.AddController(config.ControllerOrbit, camera.NewOrbit(s.World, s.Rig, camera.DefaultOrbitConfig()))
	s.Selector.AddController(config.ControllerPlanet, camera.NewPlanet(s.World, s.Rig, camera.DefaultPlanetConfig()))
	s.Selector.AddController(config.ControllerFree, camera.NewFree(s.Rig, camera.DefaultFreeConfig()))
	s.Selector.AddController(config.ControllerAttached, camera.NewAttached(s.World, s.Rig, attachedCfg))

	target := s.Planet
	if cfg.Target != "" {
		target, _ = s.World.FindByName(cfg.Target)
	} else if len(s.Bodies) > 0 {
		target = s.Bodies[0]
	}
	s.Selector.SetTarget(target.ID())

	initial, _ := s.Selector.Controller(cfg.Controller)
	if z, ok := initial.(camera.Zoomable); ok {
		z.SetZoom(cfg.Zoom)
	}
	s.Selector.SelectController(cfg.Controller)
}

// Step advances one host frame
func (s *Scenario) Step(wallDt float64) engine.StepStats {
	s.Stepper.Step(wallDt)
	return s.Stepper.LastStep()
}

// Target returns the entity the camera follows
func (s *Scenario) Target() (*engine.Entity, bool) {
	return s.World.EntityByID(s.Selector.Target())
}

// Close tears the world down
func (s *Scenario) Close() {
	s.World.Close()
}
