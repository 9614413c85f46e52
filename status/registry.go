// Package status collects process metrics written by the frame loop and read by telemetry
package status

import "sync/atomic"

// Registry groups metric families by value type
type Registry struct {
	Bools  *Family[atomic.Bool]
	Ints   *Family[atomic.Int64]
	Floats *Family[Gauge]
	Labels *Family[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  newFamily[atomic.Bool](),
		Ints:   newFamily[atomic.Int64](),
		Floats: newFamily[Gauge](),
		Labels: newFamily[Label](),
	}
}

// Len returns the metric count across families
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Labels.Len()
}

// Snapshot copies every current value into a map keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Len())
	r.Bools.Each(func(k string, m *atomic.Bool) { out[k] = m.Load() })
	r.Ints.Each(func(k string, m *atomic.Int64) { out[k] = m.Load() })
	r.Floats.Each(func(k string, m *Gauge) { out[k] = m.Load() })
	r.Labels.Each(func(k string, m *Label) { out[k] = m.Load() })
	return out
}
