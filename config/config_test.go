package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/skykernel/engine"
)

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.EngineStepper(); got != engine.DefaultStepperConfig() {
		t.Errorf("EngineStepper = %+v, want %+v", got, engine.DefaultStepperConfig())
	}
	if got := cfg.EngineWorld(); got != engine.DefaultWorldConfig() {
		t.Errorf("EngineWorld = %+v, want %+v", got, engine.DefaultWorldConfig())
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"stepper": {"step_size": 0.01, "max_substeps": 4, "dynamics_enabled": true},
		"camera": {"controller": "planet", "target": "earth"},
		"entities": [
			{"name": "jet", "alt": 5000, "mass": 9000},
			{"name": "pod", "attach_to": "jet", "attach_point": "belly"}
		]
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stepper.StepSize != 0.01 || cfg.Stepper.MaxSubsteps != 4 {
		t.Errorf("stepper = %+v", cfg.Stepper)
	}
	if cfg.Camera.Controller != ControllerPlanet {
		t.Errorf("controller = %q", cfg.Camera.Controller)
	}
	if len(cfg.Entities) != 2 || cfg.Entities[1].AttachTo != "jet" {
		t.Errorf("entities = %+v", cfg.Entities)
	}
	// unspecified sections keep defaults
	if cfg.Planet != Default().Planet {
		t.Errorf("planet = %+v, want default", cfg.Planet)
	}
}

func TestLoadMissingAndEmpty(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.json")} {
		cfg, err := Load(path)
		if err != nil {
			t.Errorf("Load(%q): %v", path, err)
		}
		if cfg.Camera != Default().Camera {
			t.Errorf("Load(%q) did not return defaults", path)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `{"stepper": `, "parse config"},
		{"step size", `{"stepper": {"step_size": 0}}`, "step_size"},
		{"controller", `{"camera": {"controller": "chase"}}`, "camera.controller"},
		{"duplicate", `{"entities": [{"name": "a"}, {"name": "a"}]}`, "duplicate"},
		{"attach", `{"entities": [{"name": "a", "attach_to": "b"}]}`, "attach_to"},
		{"self attach", `{"entities": [{"name": "a", "attach_to": "a"}]}`, "itself"},
		{"target", `{"camera": {"controller": "orbit", "target": "ghost"}}`, "camera.target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestOverrides(t *testing.T) {
	step := 0.02
	frames := 30
	ctrl := ControllerFree
	cfg := Overrides{StepSize: &step, Frames: &frames, Controller: &ctrl}.Apply(Default())

	if cfg.Stepper.StepSize != step || cfg.Runner.Frames != frames || cfg.Camera.Controller != ctrl {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Stepper.MaxSubsteps != Default().Stepper.MaxSubsteps {
		t.Error("unset override changed max_substeps")
	}
	if got := (Config{Runner: RunnerConfig{RateHz: 50}}).FrameDt(); got != 0.02 {
		t.Errorf("FrameDt = %v", got)
	}
}
