package engine

import "fmt"

// EntityID uniquely identifies an entity across cooperating applications
// Application partitions the id space, Local is assigned by the owning IDSource
type EntityID struct {
	Application uint32
	Local       uint64
}

// NullEntityID refers to no entity
var NullEntityID = EntityID{}

// IsNull reports whether id refers to no entity
func (id EntityID) IsNull() bool {
	return id == NullEntityID
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Application, id.Local)
}

// IDSource hands out monotonically increasing local ids for one application
// Ids are never reused, local id 0 is reserved for the null id
type IDSource struct {
	application uint32
	next        uint64
}

// NewIDSource creates a source for the given application partition
func NewIDSource(application uint32) *IDSource {
	return &IDSource{application: application, next: 1}
}

// Next returns a fresh id
func (s *IDSource) Next() EntityID {
	id := EntityID{Application: s.application, Local: s.next}
	s.next++
	return id
}

// Reserve advances the source past id so ids loaded from elsewhere are never handed out again
func (s *IDSource) Reserve(id EntityID) {
	if id.Application == s.application && id.Local >= s.next {
		s.next = id.Local + 1
	}
}
