package engine

import (
	"math"
	"sync"
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualTimeAdvance(t *testing.T) {
	mock := NewManualTime(testEpoch)
	mock.Advance(time.Hour)
	mock.Advance(30 * time.Minute)
	if want := testEpoch.Add(90 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after advances, got %v", want, mock.Now())
	}
	mock.Set(testEpoch)
	if !mock.Now().Equal(testEpoch) {
		t.Errorf("Expected %v after Set, got %v", testEpoch, mock.Now())
	}
}

func TestManualTimeConcurrency(t *testing.T) {
	mock := NewManualTime(testEpoch)
	done := make(chan struct{})
	for range 5 {
		go func() {
			for range 50 {
				mock.Advance(time.Millisecond)
				_ = mock.Now()
			}
			done <- struct{}{}
		}()
	}
	for range 5 {
		<-done
	}
	if want := testEpoch.Add(250 * time.Millisecond); !mock.Now().Equal(want) {
		t.Errorf("Expected %v after concurrent advances, got %v", want, mock.Now())
	}
}

func TestTimeSources(t *testing.T) {
	var _ TimeSource = SystemTime{}
	var _ TimeSource = &ManualTime{}

	before := time.Now()
	if got := (SystemTime{}).Now(); got.Before(before) {
		t.Errorf("SystemTime went backwards: %v < %v", got, before)
	}
}

func approxSeconds(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %vs, want %vs", name, got, want)
	}
}

func TestFrameClockTick(t *testing.T) {
	mock := NewManualTime(testEpoch)
	fc := NewFrameClock(mock, 0)

	mock.Advance(16 * time.Millisecond)
	approxSeconds(t, "first tick", fc.Tick(), 0.016)
	approxSeconds(t, "no elapsed time", fc.Tick(), 0)

	mock.Advance(time.Second)
	approxSeconds(t, "one second", fc.Tick(), 1)
}

func TestFrameClockPauseExcluded(t *testing.T) {
	mock := NewManualTime(testEpoch)
	fc := NewFrameClock(mock, 0)

	mock.Advance(time.Second) // running
	fc.Pause()
	mock.Advance(time.Second) // paused
	approxSeconds(t, "tick during pause", fc.Tick(), 1)
	mock.Advance(time.Second) // paused
	approxSeconds(t, "tick deep in pause", fc.Tick(), 0)
	mock.Advance(time.Second) // paused
	fc.Resume()
	mock.Advance(time.Second) // running
	approxSeconds(t, "tick after resume", fc.Tick(), 1)

	if got := fc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("total pause = %v, want 3s", got)
	}
	if fc.IsPaused() {
		t.Error("clock should not be paused")
	}
}

func TestFrameClockToggleAndClamp(t *testing.T) {
	mock := NewManualTime(testEpoch)
	fc := NewFrameClock(mock, 100*time.Millisecond)

	mock.Advance(5 * time.Second)
	approxSeconds(t, "clamped stall", fc.Tick(), 0.1)

	if !fc.Toggle() {
		t.Fatal("Toggle should report paused")
	}
	if fc.Toggle() {
		t.Fatal("Toggle should report running")
	}
}

func TestFrameClockConcurrentPauseAccounting(t *testing.T) {
	mock := NewManualTime(testEpoch)
	fc := NewFrameClock(mock, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 2000 {
			mock.Advance(time.Millisecond)
		}
	}()
	go func() {
		defer wg.Done()
		for range 2000 {
			fc.Toggle()
		}
	}()

	var ticked float64
	stop := make(chan struct{})
	go func() {
		wg.Wait()
		close(stop)
	}()
	for running := true; running; {
		select {
		case <-stop:
			running = false
		default:
			ticked += fc.Tick()
		}
	}
	fc.Resume()
	ticked += fc.Tick()

	elapsed := mock.Now().Sub(testEpoch).Seconds()
	paused := fc.TotalPauseDuration().Seconds()
	if math.Abs(ticked+paused-elapsed) > 1e-6 {
		t.Errorf("ticked %v + paused %v != elapsed %v", ticked, paused, elapsed)
	}
}
