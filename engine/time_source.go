package engine

import (
	"sync"
	"time"
)

// TimeSource supplies the current time to a FrameClock
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the wall clock including its monotonic component
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

// ManualTime only moves when told to, for tests and replay
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set jumps to t, which may lie in the past
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
