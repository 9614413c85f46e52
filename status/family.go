package status

import (
	"maps"
	"slices"
	"sync"
)

// Family holds named metrics of one value type
// Lookups lock, so hot paths resolve a metric once and keep the pointer
type Family[T any] struct {
	mu      sync.Mutex
	metrics map[string]*T
}

func newFamily[T any]() *Family[T] {
	return &Family[T]{metrics: make(map[string]*T)}
}

// Get returns the metric named key, registering a zero value on first use
func (f *Family[T]) Get(key string) *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.metrics[key]
	if !ok {
		m = new(T)
		f.metrics[key] = m
	}
	return m
}

// Has reports whether key was registered
func (f *Family[T]) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.metrics[key]
	return ok
}

// Keys returns registered names sorted
func (f *Family[T]) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Sorted(maps.Keys(f.metrics))
}

// Len returns the number of registered metrics
func (f *Family[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.metrics)
}

// Each calls fn for every metric in key order
// fn runs without the family lock held and may register further metrics
func (f *Family[T]) Each(fn func(key string, m *T)) {
	f.mu.Lock()
	keys := slices.Sorted(maps.Keys(f.metrics))
	ptrs := make([]*T, len(keys))
	for i, k := range keys {
		ptrs[i] = f.metrics[k]
	}
	f.mu.Unlock()

	for i, k := range keys {
		fn(k, ptrs[i])
	}
}
