package gait

import (
	"fmt"

	"github.com/longiy/lcm/pkg/math"
)

// Config holds the control points for every gait response curve.
// Curve X is the normalized speed ratio in [0, 1]; Y is the physical
// quantity at that speed.
type Config struct {
	StepLength      []Point `yaml:"step_length"`      // meters
	Frequency       []Point `yaml:"frequency"`        // steps per second
	StanceWidth     []Point `yaml:"stance_width"`     // meters between feet
	StanceRatio     []Point `yaml:"stance_ratio"`     // fraction of cycle planted
	StepHeight      []Point `yaml:"step_height"`      // swing arc peak, meters
	TriggerDistance []Point `yaml:"trigger_distance"` // ideal-vs-target drift, meters
}

// DefaultConfig returns the stock gait tuning: a small-step shuffle at
// idle widening into long fast strides at full speed.
func DefaultConfig() Config {
	return Config{
		StepLength: []Point{
			{X: 0.0, Y: 0.15}, {X: 0.5, Y: 0.4}, {X: 1.0, Y: 0.8},
		},
		Frequency: []Point{
			{X: 0.0, Y: 1.2}, {X: 0.5, Y: 2.0}, {X: 1.0, Y: 3.0},
		},
		StanceWidth: []Point{
			{X: 0.0, Y: 0.3}, {X: 1.0, Y: 0.42},
		},
		StanceRatio: []Point{
			{X: 0.0, Y: 0.6}, {X: 1.0, Y: 0.35},
		},
		StepHeight: []Point{
			{X: 0.0, Y: 0.08}, {X: 0.5, Y: 0.14}, {X: 1.0, Y: 0.22},
		},
		TriggerDistance: []Point{
			{X: 0.0, Y: 0.12}, {X: 0.5, Y: 0.2}, {X: 1.0, Y: 0.35},
		},
	}
}

// Params is the gait state for one frame: every curve evaluated at the
// current speed ratio.
type Params struct {
	StepLength      float32
	Frequency       float32
	StanceWidth     float32
	StanceRatio     float32
	StepHeight      float32
	TriggerDistance float32
}

// StepDuration returns the duration of one step in seconds, guarded
// against a zero or negative frequency curve.
func (p Params) StepDuration() float32 {
	if p.Frequency <= 0 {
		return 1
	}
	return 1.0 / p.Frequency
}

// CurveSet is the compiled set of gait curves.
type CurveSet struct {
	stepLength      *Curve
	frequency       *Curve
	stanceWidth     *Curve
	stanceRatio     *Curve
	stepHeight      *Curve
	triggerDistance *Curve
}

// NewCurveSet compiles the configured control points.
func NewCurveSet(cfg Config) (*CurveSet, error) {
	var set CurveSet
	var err error

	build := func(name string, pts []Point, dst **Curve) {
		if err != nil {
			return
		}
		var c *Curve
		c, err = NewCurve(pts)
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return
		}
		*dst = c
	}

	build("step_length", cfg.StepLength, &set.stepLength)
	build("frequency", cfg.Frequency, &set.frequency)
	build("stance_width", cfg.StanceWidth, &set.stanceWidth)
	build("stance_ratio", cfg.StanceRatio, &set.stanceRatio)
	build("step_height", cfg.StepHeight, &set.stepHeight)
	build("trigger_distance", cfg.TriggerDistance, &set.triggerDistance)
	if err != nil {
		return nil, err
	}

	return &set, nil
}

// Sample evaluates every curve at the given speed ratio, clamped to
// [0, 1].
func (s *CurveSet) Sample(speedRatio float32) Params {
	r := math.Clamp01(speedRatio)
	return Params{
		StepLength:      s.stepLength.Sample(r),
		Frequency:       s.frequency.Sample(r),
		StanceWidth:     s.stanceWidth.Sample(r),
		StanceRatio:     s.stanceRatio.Sample(r),
		StepHeight:      s.stepHeight.Sample(r),
		TriggerDistance: s.triggerDistance.Sample(r),
	}
}
