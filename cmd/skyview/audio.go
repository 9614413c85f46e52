package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	alertSampleRate = 44100
	alertToneHz     = 440
	alertDuration   = 80 * time.Millisecond
	// alertMinGap throttles repeated behind-schedule alerts
	alertMinGap = time.Second
)

// alarm plays a short tone, a no-op when the speaker failed to open
type alarm struct {
	ready bool
	last  time.Time
}

func newAlarm() (*alarm, error) {
	a := &alarm{}
	sampleRate := beep.SampleRate(alertSampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return a, err
	}
	a.ready = true
	return a, nil
}

func (a *alarm) play(now time.Time) {
	if !a.ready || now.Sub(a.last) < alertMinGap {
		return
	}
	a.last = now

	sampleRate := beep.SampleRate(alertSampleRate)
	sine, err := generators.SineTone(sampleRate, alertToneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(alertDuration), sine))
}

func (a *alarm) close() {
	if a.ready {
		speaker.Close()
	}
}
