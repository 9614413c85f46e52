package config

// Overrides are optional command line replacements, nil leaves the loaded value
type Overrides struct {
	StepSize    *float64
	MaxSubsteps *int
	Frames      *int
	RateHz      *float64
	Telemetry   *string
	Controller  *string
	FixedDt     *bool
}

// Apply returns cfg with every set override written over it
func (o Overrides) Apply(cfg Config) Config {
	if o.StepSize != nil {
		cfg.Stepper.StepSize = *o.StepSize
	}
	if o.MaxSubsteps != nil {
		cfg.Stepper.MaxSubsteps = *o.MaxSubsteps
	}
	if o.Frames != nil {
		cfg.Runner.Frames = *o.Frames
	}
	if o.RateHz != nil {
		cfg.Runner.RateHz = *o.RateHz
	}
	if o.Telemetry != nil {
		cfg.Runner.Telemetry = *o.Telemetry
	}
	if o.Controller != nil {
		cfg.Camera.Controller = *o.Controller
	}
	if o.FixedDt != nil {
		cfg.Runner.FixedDt = *o.FixedDt
	}
	return cfg
}
