// Command skysim runs a scenario headless and optionally serves telemetry
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/config"
	"github.com/lixenwraith/skykernel/engine"
	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/parameter"
	"github.com/lixenwraith/skykernel/physics"
	"github.com/lixenwraith/skykernel/scenario"
	"github.com/lixenwraith/skykernel/telemetry"
)

func main() {
	configPath := flag.String("config", "", "scenario JSON file")
	frames := flag.Int("frames", 0, "stop after this many frames, 0 runs until interrupted")
	rate := flag.Float64("rate", 0, "host frame rate in Hz")
	step := flag.Float64("step", 0, "dynamics step size in seconds")
	maxSubsteps := flag.Int("max-substeps", 0, "substep cap per frame, 0 unbounded")
	telemetryAddr := flag.String("telemetry", "", "telemetry listen address, e.g. :8090")
	fixed := flag.Bool("fixed", false, "step by 1/rate without waiting on the wall clock")
	profileMode := flag.String("profile", "", "write a profile: cpu, mem or trace")
	flag.Parse()

	logger.Init()
	log := logger.With("skysim")

	// only flags given on the command line override the file
	var overrides config.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			overrides.Frames = frames
		case "rate":
			overrides.RateHz = rate
		case "step":
			overrides.StepSize = step
		case "max-substeps":
			overrides.MaxSubsteps = maxSubsteps
		case "telemetry":
			overrides.Telemetry = telemetryAddr
		case "fixed":
			overrides.FixedDt = fixed
		}
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skysim: %v\n", err)
		os.Exit(1)
	}
	cfg = overrides.Apply(cfg)

	if stop := startProfile(*profileMode); stop != nil {
		defer stop()
	}

	sc, err := scenario.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skysim: %v\n", err)
		os.Exit(1)
	}
	defer sc.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Runner.Telemetry != "" {
		hub := telemetry.NewHub(parameter.TelemetryPushInterval)
		pub := telemetry.NewPublisher(sc.World, sc.Stepper, sc.Selector, cfg.Planet.Radius, hub)
		pub.UseStatus(sc.Status)
		sc.Stepper.AddSystem(pub)
		go func() {
			if err := hub.Serve(ctx, cfg.Runner.Telemetry); err != nil {
				log.WithError(err).Error("telemetry stopped")
			}
		}()
	}

	sc.Stepper.OnBehindSchedule(func(st engine.StepStats) {
		log.WithFields(logrus.Fields{"frame": st.Frame, "dropped": st.DroppedTime}).Debug("frame behind")
	})

	start := time.Now()
	run(ctx, sc)
	summarize(log, sc, time.Since(start))
}

func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	case "trace":
		opt = profile.TraceProfile
	default:
		fmt.Fprintf(os.Stderr, "skysim: unknown profile mode %q\n", mode)
		os.Exit(2)
	}
	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	return p.Stop
}

// run drives the stepper until the frame limit or ctx ends
func run(ctx context.Context, sc *scenario.Scenario) {
	rc := sc.Config.Runner
	if rc.FixedDt {
		dt := sc.Config.FrameDt()
		for n := 0; rc.Frames == 0 || n < rc.Frames; n++ {
			if ctx.Err() != nil {
				return
			}
			sc.Step(dt)
		}
		return
	}

	clock := engine.NewFrameClock(engine.SystemTime{}, parameter.MaxFrameDelta)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rc.RateHz))
	defer ticker.Stop()

	for n := 0; rc.Frames == 0 || n < rc.Frames; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sc.Step(clock.Tick())
		}
	}
}

func summarize(log *logrus.Entry, sc *scenario.Scenario, elapsed time.Duration) {
	st := sc.Stepper.LastStep()
	log.WithFields(logrus.Fields{
		"frames":        st.Frame,
		"sim_time":      st.SimTime,
		"wall":          elapsed.Round(time.Millisecond).String(),
		"behind_frames": sc.Status.Ints.Get("stepper.behind_frames").Load(),
		"dropped":       sc.Status.Floats.Get("stepper.dropped_seconds").Load(),
	}).Info("run complete")

	for _, e := range sc.Bodies {
		tracker, ok := engine.FirstComponent[*physics.OrbitTracker](e, engine.CapOrbitTracker)
		if !ok {
			continue
		}
		el, ok := tracker.Elements()
		if !ok {
			continue
		}
		log.WithFields(logrus.Fields{
			"entity":       e.Name(),
			"semimajor":    el.SemiMajorAxis,
			"eccentricity": el.Eccentricity,
			"inclination":  el.Inclination,
			"periapsis":    el.Periapsis(),
		}).Info("orbit")
	}
}
