package telemetry

import (
	"github.com/lixenwraith/skykernel/camera"
	"github.com/lixenwraith/skykernel/component"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/spatial"
	"github.com/lixenwraith/skykernel/status"
)

// StatsSource reports the latest step, satisfied by *engine.Stepper
type StatsSource interface {
	LastStep() engine.StepStats
}

// Sink receives every published frame
type Sink interface {
	Publish(f Frame)
}

// Publisher builds a Frame at the Output stage and hands it to a Sink
type Publisher struct {
	engine.SystemBase
	world        *engine.World
	stats        StatsSource
	selector     *camera.Selector
	planetRadius float64
	sink         Sink
	registry     *status.Registry
}

// NewPublisher creates the system, selector may be nil
func NewPublisher(w *engine.World, stats StatsSource, selector *camera.Selector, planetRadius float64, sink Sink) *Publisher {
	return &Publisher{
		SystemBase:   engine.NewSystemBase(parameter.PriorityTelemetry),
		world:        w,
		stats:        stats,
		selector:     selector,
		planetRadius: planetRadius,
		sink:         sink,
	}
}

// UseStatus includes a metrics snapshot in every frame
func (p *Publisher) UseStatus(reg *status.Registry) { p.registry = reg }

func (p *Publisher) Update(stage engine.Stage) {
	if stage != engine.StageOutput || p.sink == nil {
		return
	}
	p.sink.Publish(p.Snapshot())
}

// Snapshot builds a frame from the current world state
func (p *Publisher) Snapshot() Frame {
	st := p.stats.LastStep()
	f := Frame{
		Frame:    st.Frame,
		SimTime:  st.SimTime,
		WallTime: st.WallTime,
		Substeps: st.Substeps,
		Behind:   st.Behind,
		Dropped:  st.DroppedTime,
	}

	entities := p.world.Entities()
	f.Entities = make([]EntityFrame, 0, len(entities))
	for _, e := range entities {
		pos, ok := engine.Position(e)
		if !ok {
			continue
		}
		ori, _ := engine.Orientation(e)
		ef := EntityFrame{
			ID:          e.ID().String(),
			Name:        e.Name(),
			Position:    vec3(pos),
			Orientation: quat(ori),
		}
		if v, ok := engine.Velocity(e); ok {
			ef.Velocity = vec3(v)
		}
		if pos.Len() > 0 {
			lla := spatial.GeocentricToLla(pos, p.planetRadius)
			ef.Lat, ef.Lon, ef.Alt = degrees(lla.Lat), degrees(lla.Lon), lla.Alt
		}
		f.Entities = append(f.Entities, ef)
	}

	if p.selector != nil {
		if name, ctrl, ok := p.selector.Selected(); ok {
			f.Camera = cameraFrame(name, ctrl, p.world, p.selector.Target())
		}
	}
	if p.registry != nil {
		f.Metrics = p.registry.Snapshot()
	}
	return f
}

func cameraFrame(name string, ctrl camera.Controller, w *engine.World, target engine.EntityID) *CameraFrame {
	rig := ctrl.Rig()
	pos, _ := engine.Position(rig)
	ori, _ := engine.Orientation(rig)
	cf := &CameraFrame{
		Controller:  name,
		Position:    vec3(pos),
		Orientation: quat(ori),
	}
	if t, ok := w.EntityByID(target); ok {
		cf.Target = t.Name()
	}
	if cam, ok := component.CameraOf(rig); ok {
		cf.FovY = cam.FovY
	}
	return cf
}
