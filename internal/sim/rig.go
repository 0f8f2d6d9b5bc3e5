package sim

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/locomotion/balance"
	"github.com/longiy/lcm/internal/locomotion/gait"
	"github.com/longiy/lcm/internal/locomotion/ik"
	"github.com/longiy/lcm/internal/locomotion/stepping"
	"github.com/longiy/lcm/internal/locomotion/terrain"
	"github.com/longiy/lcm/internal/world"
)

// RigConfig aggregates every locomotion component's configuration.
type RigConfig struct {
	Terrain   terrain.Config          `yaml:"terrain"`
	Gait      gait.Config             `yaml:"gait"`
	COG       balance.COGConfig       `yaml:"cog"`
	Stepping  stepping.Config         `yaml:"stepping"`
	Stability balance.StabilityConfig `yaml:"stability"`
	IK        ik.BridgeConfig         `yaml:"ik"`
}

// DefaultRigConfig returns every component's default tuning.
func DefaultRigConfig() RigConfig {
	return RigConfig{
		Terrain:   terrain.DefaultConfig(),
		Gait:      gait.DefaultConfig(),
		COG:       balance.DefaultCOGConfig(),
		Stepping:  stepping.DefaultConfig(),
		Stability: balance.DefaultStabilityConfig(),
		IK:        ik.DefaultBridgeConfig(),
	}
}

// Rig wires the locomotion components together and runs them once per
// frame in dependency order: terrain analysis and the CoG must be fresh
// before the stepper reads them, the IK bridge consumes the stepper's
// targets, and the stability evaluator classifies the resulting feet.
type Rig struct {
	Detector  *terrain.Detector
	COG       *balance.CenterOfGravity
	Stepper   *stepping.Stepper
	Bridge    *ik.Bridge
	Evaluator *balance.Evaluator
}

// NewRig constructs and wires all components. Any configuration error
// aborts construction; there is no partially wired rig.
func NewRig(ground world.GroundQuery, cfg RigConfig) (*Rig, error) {
	detector, err := terrain.NewDetector(ground, cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}

	curves, err := gait.NewCurveSet(cfg.Gait)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}

	cog := balance.NewCenterOfGravity(cfg.COG)

	stepper, err := stepping.NewStepper(curves, detector, cog, cfg.Stepping)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}

	bridge, err := ik.NewBridge(cfg.IK)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}

	evaluator, err := balance.NewEvaluator(ground, cfg.Stability)
	if err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}

	return &Rig{
		Detector:  detector,
		COG:       cog,
		Stepper:   stepper,
		Bridge:    bridge,
		Evaluator: evaluator,
	}, nil
}

// Step runs one locomotion frame against the given body snapshot.
func (r *Rig) Step(body locomotion.BodyState, dt float32) {
	r.Detector.Update(body)
	r.COG.Update(body)
	r.Stepper.Update(body, dt)
	r.Bridge.Apply(body, r.Stepper.Foot(stepping.FootLeft), r.Stepper.Foot(stepping.FootRight), dt)
	r.Evaluator.Evaluate(body,
		r.Bridge.FootPosition(stepping.FootLeft),
		r.Bridge.FootPosition(stepping.FootRight),
		r.COG.WorldPosition(body),
	)
}
