// Command skyview renders a scenario in the terminal and flies its camera from the keyboard
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skykernel/config"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/scenario"
)

const (
	// pointerStep is the look delta per arrow key press
	pointerStep = 5.0
	// zoomStep is the zoom delta per +/- press
	zoomStep = 50.0
)

type viewer struct {
	screen tcell.Screen
	sc     *scenario.Scenario
	clock  *engine.FrameClock
	alarm  *alarm
	behind bool
}

func main() {
	configPath := flag.String("config", "", "scenario JSON file")
	controller := flag.String("camera", "", "initial camera controller: orbit, planet, free, attached")
	debugFlag := flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}
	log := logger.With("skyview")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyview: %v\n", err)
		os.Exit(1)
	}
	var overrides config.Overrides
	if *controller != "" {
		overrides.Controller = controller
	}
	sc, err := scenario.Build(overrides.Apply(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyview: %v\n", err)
		os.Exit(1)
	}
	defer sc.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "skyview: %v\n", err)
		os.Exit(1)
	}
	// restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "skyview crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	a, err := newAlarm()
	if err != nil {
		log.WithError(err).Warn("audio unavailable, continuing without alerts")
	}
	defer a.close()

	v := &viewer{
		screen: screen,
		sc:     sc,
		clock:  engine.NewFrameClock(engine.SystemTime{}, parameter.MaxFrameDelta),
		alarm:  a,
	}
	sc.Stepper.OnBehindSchedule(func(engine.StepStats) { v.behind = true })
	v.run()
}

func (v *viewer) run() {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.sc.Step(v.clock.Tick())
			if v.behind {
				v.alarm.play(time.Now())
				v.behind = false
			}
			draw(v.screen, v.sc, v.clock.IsPaused())
		}
	}
}

// handleEvent maps keys onto camera input, false quits
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in := v.sc.Input
		mods := ev.Modifiers()
		in.SetModifiers(mods&tcell.ModShift != 0, mods&tcell.ModAlt != 0)

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			v.sc.Selector.Cycle()
		case tcell.KeyLeft:
			in.AddPointerDelta(-pointerStep, 0)
		case tcell.KeyRight:
			in.AddPointerDelta(pointerStep, 0)
		case tcell.KeyUp:
			in.AddPointerDelta(0, pointerStep)
		case tcell.KeyDown:
			in.AddPointerDelta(0, -pointerStep)
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleRune(r rune) bool {
	in := v.sc.Input
	// upper case letters act as modifier 1
	if r >= 'A' && r <= 'Z' {
		in.SetModifiers(true, false)
		r += 'a' - 'A'
	}
	switch r {
	case 'q':
		return false
	case 'w':
		in.SetAxes(1, 0)
	case 's':
		in.SetAxes(-1, 0)
	case 'a':
		in.SetAxes(0, -1)
	case 'd':
		in.SetAxes(0, 1)
	case '+', '=':
		in.AddZoomDelta(zoomStep)
	case '-', '_':
		in.AddZoomDelta(-zoomStep)
	case 'p':
		v.clock.Toggle()
	case 'n':
		v.nextTarget()
	}
	return true
}

// nextTarget moves the camera to the next configured body
func (v *viewer) nextTarget() {
	bodies := v.sc.Bodies
	if len(bodies) == 0 {
		return
	}
	current := v.sc.Selector.Target()
	next := bodies[0]
	for i, b := range bodies {
		if b.ID() == current {
			next = bodies[(i+1)%len(bodies)]
			break
		}
	}
	v.sc.Selector.SetTarget(next.ID())
}
