package status

import (
	"sync"
	"testing"
)

func TestFamilyGetCaches(t *testing.T) {
	f := newFamily[Gauge]()
	a := f.Get("stepper.sim_time")
	if b := f.Get("stepper.sim_time"); a != b {
		t.Fatal("Get should return the registered metric")
	}
	if !f.Has("stepper.sim_time") || f.Has("missing") {
		t.Error("Has reports wrong membership")
	}
}

func TestFamilyEachMayRegister(t *testing.T) {
	f := newFamily[Gauge]()
	f.Get("b")
	f.Get("a")
	var seen []string
	f.Each(func(k string, _ *Gauge) {
		seen = append(seen, k)
		f.Get(k + ".derived")
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("Each order = %v", seen)
	}
	if f.Len() != 4 {
		t.Errorf("Len = %d, want 4", f.Len())
	}
}

func TestGaugeConcurrentAdd(t *testing.T) {
	var g Gauge
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				g.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := g.Load(); got != 400 {
		t.Errorf("got %v, want 400", got)
	}
}

func TestLabelTruncates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "orbit", "orbit"},
		{"ascii", "0123456789012345678901234567890123456789", "01234567890123456789012345678901"},
		// 31 ascii bytes then a two byte rune straddling the limit
		{"rune boundary", "0123456789012345678901234567890é", "0123456789012345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Label
			if l.Load() != "" {
				t.Fatal("zero value should be empty")
			}
			l.Store(tt.in)
			if got := l.Load(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("stepper.frames").Store(3)
	r.Bools.Get("stepper.behind").Store(true)
	r.Floats.Get("stepper.dropped_seconds").Store(0.25)
	r.Labels.Get("camera.controller").Store("orbit")

	snap := r.Snapshot()
	tests := []struct {
		key  string
		want any
	}{
		{"stepper.frames", int64(3)},
		{"stepper.behind", true},
		{"stepper.dropped_seconds", 0.25},
		{"camera.controller", "orbit"},
	}
	for _, tt := range tests {
		if snap[tt.key] != tt.want {
			t.Errorf("%s = %v, want %v", tt.key, snap[tt.key], tt.want)
		}
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d, want 4", r.Len())
	}
	if keys := r.Ints.Keys(); len(keys) != 1 || keys[0] != "stepper.frames" {
		t.Errorf("Keys = %v", keys)
	}
}
