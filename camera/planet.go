package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/spatial"
	"github.com/lixenwraith/skykernel/vmath"
)

// PlanetConfig parameterizes a planet-relative controller
type PlanetConfig struct {
	// MinDistance is the lowest altitude above the surface
	MinDistance float64
	// MaxDistanceOnRadius is the farthest distance from the center in planet radii
	MaxDistanceOnRadius float64
	// ForwardZoomGain converts forward speed into zoom rate
	ForwardZoomGain float64
	FovY            float64
	YawRate         float64
	PitchRate       float64
	ZoomRate        float64
}

// DefaultPlanetConfig returns the standard globe-view settings
func DefaultPlanetConfig() PlanetConfig {
	return PlanetConfig{
		MinDistance:         parameter.PlanetMinDistance,
		MaxDistanceOnRadius: parameter.PlanetMaxDistanceOnRadius,
		ForwardZoomGain:     parameter.PlanetForwardZoomGain,
		FovY:                parameter.DefaultFovY,
		YawRate:             parameter.PlanetYawRate,
		PitchRate:           parameter.PlanetPitchRate,
		ZoomRate:            parameter.PlanetZoomRate,
	}
}

// Planet hovers over a lat/lon point of the target planet
//
// Without modifier 1, yaw and tilt input pan the ground point at a rate
// proportional to altitude. With modifier 1 held, tilt changes the view
// pitch (0 horizon, pi/2 straight down) and yaw turns the heading.
// Altitude is exponential in zoom so close zoom steps stay fine-grained.
type Planet struct {
	rig
	Targeting
	YawControl
	PitchControl
	ZoomControl

	config PlanetConfig
	latLon spatial.LatLon
}

// NewPlanet binds a planet controller to a rig with node and camera components
func NewPlanet(w *engine.World, rigEntity *engine.Entity, cfg PlanetConfig) *Planet {
	p := &Planet{
		rig:          newRig(rigEntity),
		Targeting:    NewTargeting(w),
		YawControl:   NewYawControl(cfg.YawRate),
		PitchControl: NewPitchControl(cfg.PitchRate, parameter.PlanetInitialPitch),
		ZoomControl:  NewZoomControl(cfg.ZoomRate, 0),
		config:       cfg,
	}
	p.SetPitchLimits(0, math.Pi/2)
	return p
}

func (p *Planet) Config() PlanetConfig { return p.config }

// LatLon returns the ground point under the camera
func (p *Planet) LatLon() spatial.LatLon { return p.latLon }

// SetLatLon moves the ground point, latitude is clamped to the poles
func (p *Planet) SetLatLon(ll spatial.LatLon) {
	p.latLon = spatial.LatLon{Lat: vmath.Clamp(ll.Lat, -math.Pi/2, math.Pi/2), Lon: vmath.WrapAngle(ll.Lon)}
}

func (p *Planet) SetTarget(id engine.EntityID) {
	p.Targeting.SetTarget(id)
	if p.active {
		p.Update(0)
	}
}

func (p *Planet) SetActive(active bool) { p.active = active }

func (p *Planet) UpdatePostDynamicsSubstep(float64) {}

// Altitude returns the height above the surface for the current zoom
func (p *Planet) Altitude(radius float64) float64 {
	maxDistance := p.config.MaxDistanceOnRadius * radius
	lo := math.Log(math.Max(p.config.MinDistance, vmath.Epsilon))
	hi := math.Log(math.Max(maxDistance-radius, vmath.Epsilon))
	return math.Exp(lo + (hi-lo)*(1-p.Zoom()))
}

// resolvePlanet returns the planet to hover over
// A target without a Planet component selects the planet nearest to it
func (p *Planet) resolvePlanet() (*engine.Entity, *component.Planet, bool) {
	target, ok := p.TargetEntity()
	if !ok {
		return nil, nil, false
	}
	if planet, ok := component.PlanetOf(target); ok {
		return target, planet, true
	}
	pos, ok := engine.Position(target)
	if !ok {
		return nil, nil, false
	}
	nearest, ok := engine.FindNearestEntityWithCapability(p.world, pos, engine.CapPlanet)
	if !ok {
		return nil, nil, false
	}
	planet, ok := component.PlanetOf(nearest)
	return nearest, planet, ok
}

func (p *Planet) Update(dt float64) {
	p.camera.FovY = p.config.FovY

	target, planet, ok := p.resolvePlanet()
	if !ok {
		return
	}
	planetPos, ok := engine.Position(target)
	if !ok {
		return
	}
	planetOri, _ := engine.Orientation(target)
	radius := planet.Radius

	in := p.input
	p.SetZoom(p.Zoom() + (in.ZoomRate+in.ForwardSpeed*p.config.ForwardZoomGain)*dt*p.ZoomRate())

	maxDistance := p.config.MaxDistanceOnRadius * radius
	dist := p.Altitude(radius)

	yawDelta := p.yawDelta(in.YawRate, dt)
	pitchDelta := p.pitchDelta(in.TiltRate, dt)
	if in.Modifier1Pressed {
		p.SetPitch(p.Pitch() - pitchDelta)
		p.SetYaw(p.Yaw() + yawDelta)
	} else {
		rs := math.Min(1, dist/maxDistance)
		north := -pitchDelta * rs
		east := -yawDelta * rs
		h := p.Yaw()
		p.SetLatLon(spatial.LatLon{
			Lat: p.latLon.Lat + north*math.Cos(h) - east*math.Sin(h),
			Lon: p.latLon.Lon + north*math.Sin(h) + east*math.Cos(h),
		})
	}

	// level frame with body x pointing down at the ground point
	ltp := spatial.LatLonToGeocentricLtpOrientation(p.latLon)
	down := planetOri.Mul(ltp).Mul(vmath.RotZ(p.Yaw())).Mul(vmath.RotY(-math.Pi / 2))
	rigOri := down.Mul(vmath.RotY(math.Pi/2 - p.Pitch())).Normalize()

	surface := planetPos.Add(down.Rotate(mgl64.Vec3{-radius, 0, 0}))
	p.node.SetPosition(surface.Add(rigOri.Rotate(mgl64.Vec3{-dist, 0, 0})))
	p.node.SetOrientation(rigOri)
}
