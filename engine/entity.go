package engine

import (
	"fmt"
	"slices"
)

// Entity owns an ordered, capability-indexed set of components
// Mutate only from the simulation goroutine
type Entity struct {
	id    EntityID
	name  string
	world *World

	components []Component
	index      map[Capability][]Component

	dynamicsEnabled bool
	destroyed       bool

	onAdded   []func(*Entity, Component)
	onRemove  []func(*Entity, Component)
	onDestroy []func(*Entity)
}

// NewEntity creates a detached entity with dynamics enabled
func NewEntity(id EntityID, name string) *Entity {
	return &Entity{
		id:              id,
		name:            name,
		index:           make(map[Capability][]Component),
		dynamicsEnabled: true,
	}
}

// ID returns the entity id
func (e *Entity) ID() EntityID { return e.id }

// Name returns the display name, not necessarily unique
func (e *Entity) Name() string { return e.name }

// World returns the owning world, nil while detached
func (e *Entity) World() *World { return e.world }

// Alive reports whether the entity is registered and not destroyed
func (e *Entity) Alive() bool { return e.world != nil && !e.destroyed }

// DynamicsEnabled reports whether dynamics substeps are dispatched to this entity
func (e *Entity) DynamicsEnabled() bool { return e.dynamicsEnabled }

// SetDynamicsEnabled toggles dynamics dispatch and notifies components that care
func (e *Entity) SetDynamicsEnabled(enabled bool) {
	if e.dynamicsEnabled == enabled {
		return
	}
	e.dynamicsEnabled = enabled
	for _, c := range e.components {
		if t, ok := c.(DynamicsToggler); ok {
			t.SetDynamicsEnabled(enabled)
		}
	}
}

// AddComponent takes ownership of c and indexes it under its capabilities
// Listeners are notified after the component is reachable
func (e *Entity) AddComponent(c Component) {
	if c == nil {
		panic(fmt.Sprintf("engine: nil component added to entity %s", e.id))
	}
	if e.destroyed {
		return
	}
	if slices.Contains(e.components, c) {
		panic(fmt.Sprintf("engine: component %T added twice to entity %s", c, e.id))
	}

	e.components = append(e.components, c)
	for _, cp := range c.Capabilities() {
		e.index[cp] = append(e.index[cp], c)
	}
	if a, ok := c.(Attachable); ok {
		a.Attach(e)
	}

	for _, fn := range slices.Clone(e.onAdded) {
		fn(e, c)
	}
}

// RemoveComponent releases c, listeners are notified while it is still reachable
// Returns false if c is not owned by this entity
func (e *Entity) RemoveComponent(c Component) bool {
	if !slices.Contains(e.components, c) {
		return false
	}

	for _, fn := range slices.Clone(e.onRemove) {
		fn(e, c)
	}
	e.detach(c)
	return true
}

// detach drops c from storage without notification
// Slices are rebuilt so callers ranging over a previous slice are unaffected
func (e *Entity) detach(c Component) {
	e.components = slices.DeleteFunc(slices.Clone(e.components), func(x Component) bool { return x == c })
	for _, cp := range c.Capabilities() {
		list := slices.DeleteFunc(slices.Clone(e.index[cp]), func(x Component) bool { return x == c })
		if len(list) == 0 {
			delete(e.index, cp)
		} else {
			e.index[cp] = list
		}
	}
	if a, ok := c.(Attachable); ok {
		a.Attach(nil)
	}
	if d, ok := c.(Disposer); ok {
		d.Dispose()
	}
}

// Components returns a copy of the components in insertion order
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

// HasCapability reports whether any component exposes cp
func (e *Entity) HasCapability(cp Capability) bool {
	return len(e.index[cp]) > 0
}

// OnComponentAdded registers fn to run after a component is added
func (e *Entity) OnComponentAdded(fn func(*Entity, Component)) {
	e.onAdded = append(e.onAdded, fn)
}

// OnComponentRemove registers fn to run before a component is removed
func (e *Entity) OnComponentRemove(fn func(*Entity, Component)) {
	e.onRemove = append(e.onRemove, fn)
}

// OnDestroy registers fn to run when the entity is destroyed, before its components are released
func (e *Entity) OnDestroy(fn func(*Entity)) {
	e.onDestroy = append(e.onDestroy, fn)
}

// destroy releases components in reverse insertion order
func (e *Entity) destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for _, fn := range slices.Clone(e.onDestroy) {
		fn(e)
	}
	for i := len(e.components) - 1; i >= 0; i-- {
		e.detach(e.components[i])
	}
	e.onAdded, e.onRemove, e.onDestroy = nil, nil, nil
}

// FirstComponent returns the first component exposing cp that is assignable to T
func FirstComponent[T any](e *Entity, cp Capability) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	for _, c := range e.index[cp] {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// ComponentsOfType returns every component exposing cp that is assignable to T
func ComponentsOfType[T any](e *Entity, cp Capability) []T {
	if e == nil {
		return nil
	}
	var out []T
	for _, c := range e.index[cp] {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// MustFirstComponent is FirstComponent for mandatory components
// Panics when absent, a missing mandatory component is a construction error
func MustFirstComponent[T any](e *Entity, cp Capability) T {
	v, ok := FirstComponent[T](e, cp)
	if !ok {
		id := NullEntityID
		if e != nil {
			id = e.id
		}
		panic(fmt.Sprintf("engine: entity %s has no %s component of type %T", id, cp, (*T)(nil)))
	}
	return v
}
