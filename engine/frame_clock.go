package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameClock measures wall-clock time between frames for Stepper.Step
// Tick is called from the frame loop, Pause and Resume from any goroutine
type FrameClock struct {
	mu sync.Mutex

	source   TimeSource
	last     time.Time
	maxDelta time.Duration

	// Pause state
	isPaused        atomic.Bool
	pauseBegan      time.Time     // When current pause started
	pauseMark       time.Time     // Start of the pause part not yet charged to a Tick
	pendingPause    time.Duration // Completed pause time not yet charged to a Tick
	totalPausedTime time.Duration // Cumulative completed pause duration
}

// NewFrameClock creates a clock reading from source, nil uses SystemTime
// maxDelta clamps a single frame delta after stalls, 0 disables clamping
func NewFrameClock(source TimeSource, maxDelta time.Duration) *FrameClock {
	if source == nil {
		source = SystemTime{}
	}
	return &FrameClock{
		source:   source,
		last:     source.Now(),
		maxDelta: maxDelta,
	}
}

// Tick returns seconds elapsed since the previous Tick, excluding paused intervals
func (fc *FrameClock) Tick() float64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	now := fc.source.Now()
	d := now.Sub(fc.last) - fc.pendingPause
	if fc.isPaused.Load() {
		d -= now.Sub(fc.pauseMark)
		fc.pauseMark = now
	}
	fc.pendingPause = 0
	fc.last = now

	if d < 0 {
		d = 0
	}
	if fc.maxDelta > 0 && d > fc.maxDelta {
		d = fc.maxDelta
	}
	return d.Seconds()
}

// Pause stops time accumulation
func (fc *FrameClock) Pause() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.pauseLocked()
}

// Resume continues time accumulation
func (fc *FrameClock) Resume() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.resumeLocked()
}

// Toggle flips the pause state and returns true if now paused
func (fc *FrameClock) Toggle() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.isPaused.Load() {
		fc.resumeLocked()
		return false
	}
	fc.pauseLocked()
	return true
}

// pause state flips only under mu so Tick never sees a flag without its marks
func (fc *FrameClock) pauseLocked() {
	if fc.isPaused.Load() {
		return
	}
	now := fc.source.Now()
	fc.pauseBegan = now
	fc.pauseMark = now
	fc.isPaused.Store(true)
}

func (fc *FrameClock) resumeLocked() {
	if !fc.isPaused.Load() {
		return
	}
	now := fc.source.Now()
	fc.pendingPause += now.Sub(fc.pauseMark)
	fc.totalPausedTime += now.Sub(fc.pauseBegan)
	fc.isPaused.Store(false)
}

// IsPaused returns current pause state
func (fc *FrameClock) IsPaused() bool {
	return fc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (fc *FrameClock) TotalPauseDuration() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	total := fc.totalPausedTime
	if fc.isPaused.Load() {
		total += fc.source.Now().Sub(fc.pauseBegan)
	}
	return total
}
