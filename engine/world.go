package engine

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/vmath"
)

// WorldConfig holds world construction settings
type WorldConfig struct {
	// ApplicationID partitions the entity id space
	ApplicationID uint32
	// Gravity is the central gravitational acceleration magnitude in m/s², 0 disables it
	Gravity float64
}

// DefaultWorldConfig returns the standard earth-like settings
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		ApplicationID: parameter.DefaultApplicationID,
		Gravity:       parameter.StandardGravity,
	}
}

// World owns every entity in the simulation
// Outside references hold an EntityID and resolve it through EntityByID
type World struct {
	config WorldConfig
	ids    *IDSource

	entities []*Entity
	byID     map[EntityID]*Entity
	byName   map[string][]*Entity

	destructing bool

	onAdded         []func(*Entity)
	onAboutToRemove []func(*Entity)
	onRemoved       []func(*Entity)
}

// NewWorld creates an empty world
func NewWorld(cfg WorldConfig) *World {
	return &World{
		config: cfg,
		ids:    NewIDSource(cfg.ApplicationID),
		byID:   make(map[EntityID]*Entity),
		byName: make(map[string][]*Entity),
	}
}

// Config returns the construction settings
func (w *World) Config() WorldConfig { return w.config }

// NextEntityID reserves a fresh id
func (w *World) NextEntityID() EntityID { return w.ids.Next() }

// CreateEntity builds and registers an entity with a fresh id
func (w *World) CreateEntity(name string, components ...Component) *Entity {
	e := NewEntity(w.NextEntityID(), name)
	for _, c := range components {
		e.AddComponent(c)
	}
	w.AddEntity(e)
	return e
}

// AddEntity takes ownership of e
// Panics on nil, null id or an id already registered; ignored while the world is closing
func (w *World) AddEntity(e *Entity) {
	if w.destructing {
		return
	}
	if e == nil {
		panic("engine: nil entity added to world")
	}
	if e.id.IsNull() {
		panic(fmt.Sprintf("engine: entity %q has null id", e.name))
	}
	if _, dup := w.byID[e.id]; dup {
		panic(fmt.Sprintf("engine: duplicate entity id %s (%q)", e.id, e.name))
	}
	if e.world != nil && e.world != w {
		panic(fmt.Sprintf("engine: entity %s already owned by another world", e.id))
	}

	w.ids.Reserve(e.id)
	e.world = w
	w.entities = append(w.entities, e)
	w.byID[e.id] = e
	w.byName[e.name] = append(w.byName[e.name], e)

	logger.Log.WithFields(logrus.Fields{"entity": e.id.String(), "name": e.name}).Debug("entity added")

	for _, fn := range slices.Clone(w.onAdded) {
		fn(e)
	}
}

// RemoveEntity unregisters and destroys the entity with id
// Returns false if no such entity exists or the world is closing
func (w *World) RemoveEntity(id EntityID) bool {
	if w.destructing {
		return false
	}
	e, ok := w.byID[id]
	if !ok {
		return false
	}

	for _, fn := range slices.Clone(w.onAboutToRemove) {
		fn(e)
	}
	// a listener may have removed it already
	if _, ok := w.byID[id]; !ok {
		return true
	}

	w.unindex(e)

	logger.Log.WithFields(logrus.Fields{"entity": e.id.String(), "name": e.name}).Debug("entity removed")

	for _, fn := range slices.Clone(w.onRemoved) {
		fn(e)
	}
	e.destroy()
	e.world = nil
	return true
}

func (w *World) unindex(e *Entity) {
	delete(w.byID, e.id)
	w.entities = slices.DeleteFunc(slices.Clone(w.entities), func(x *Entity) bool { return x == e })
	named := slices.DeleteFunc(slices.Clone(w.byName[e.name]), func(x *Entity) bool { return x == e })
	if len(named) == 0 {
		delete(w.byName, e.name)
	} else {
		w.byName[e.name] = named
	}
}

// EntityByID resolves id, false if the entity is gone
func (w *World) EntityByID(id EntityID) (*Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// FindByName returns the earliest registered entity with the given name
func (w *World) FindByName(name string) (*Entity, bool) {
	if list := w.byName[name]; len(list) > 0 {
		return list[0], true
	}
	return nil, false
}

// Entities returns a copy of the entity list in insertion order
func (w *World) Entities() []*Entity {
	return slices.Clone(w.entities)
}

// EntityCount returns the number of registered entities
func (w *World) EntityCount() int { return len(w.entities) }

// CalcGravity returns the central gravity force on a body of mass at position
// Points toward the planet center, zero within Epsilon of it
func (w *World) CalcGravity(position mgl64.Vec3, mass float64) mgl64.Vec3 {
	l := position.Len()
	if l < vmath.Epsilon || w.config.Gravity == 0 {
		return mgl64.Vec3{}
	}
	return position.Mul(-w.config.Gravity * mass / l)
}

// OnEntityAdded registers fn to run after an entity is registered
func (w *World) OnEntityAdded(fn func(*Entity)) { w.onAdded = append(w.onAdded, fn) }

// OnEntityAboutToBeRemoved registers fn to run while the entity is still indexed
func (w *World) OnEntityAboutToBeRemoved(fn func(*Entity)) {
	w.onAboutToRemove = append(w.onAboutToRemove, fn)
}

// OnEntityRemoved registers fn to run after the entity is unindexed, before it is destroyed
func (w *World) OnEntityRemoved(fn func(*Entity)) { w.onRemoved = append(w.onRemoved, fn) }

// Closing reports whether Close is in progress or done
func (w *World) Closing() bool { return w.destructing }

// Close destroys every entity in insertion order
// Add and remove calls made from component teardown are ignored
func (w *World) Close() {
	if w.destructing {
		return
	}
	w.destructing = true
	entities := w.entities
	w.entities = nil
	w.byID = make(map[EntityID]*Entity)
	w.byName = make(map[string][]*Entity)
	for _, e := range entities {
		e.destroy()
		e.world = nil
	}
	w.onAdded, w.onAboutToRemove, w.onRemoved = nil, nil, nil
}
