package ik

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/locomotion/stepping"
	"github.com/longiy/lcm/pkg/math"
)

// BridgeConfig describes the leg geometry and blending behavior.
type BridgeConfig struct {
	HipHeight float32 `yaml:"hip_height"` // hips above the body origin
	HipWidth  float32 `yaml:"hip_width"`  // distance between the hips
	ThighLen  float32 `yaml:"thigh_len"`
	ShinLen   float32 `yaml:"shin_len"`
	BlendRate float32 `yaml:"blend_rate"` // influence change per second
}

// DefaultBridgeConfig returns leg proportions for a human-scale rig.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		HipHeight: 0.9,
		HipWidth:  0.25,
		ThighLen:  0.45,
		ShinLen:   0.45,
		BlendRate: 5,
	}
}

// LegPose is one leg's solved world-space pose.
type LegPose struct {
	Hip      math.Vec3
	Knee     math.Vec3
	Foot     math.Vec3
	Basis    math.Basis
	Swinging bool
}

// Bridge feeds the stepping targets into the two leg chains. It owns
// the per-foot effectors and the blended output pose.
type Bridge struct {
	cfg     BridgeConfig
	chain   Chain
	enabled bool

	effectors [2]Effector
	poses     [2]LegPose
}

// NewBridge validates the leg geometry and returns a bridge with IK
// enabled.
func NewBridge(cfg BridgeConfig) (*Bridge, error) {
	chain := Chain{UpperLen: cfg.ThighLen, LowerLen: cfg.ShinLen}
	if err := validateChain(chain); err != nil {
		return nil, err
	}
	if cfg.HipHeight <= 0 {
		return nil, fmt.Errorf("ik: hip height must be positive")
	}

	b := &Bridge{cfg: cfg, chain: chain, enabled: true}
	for i := range b.effectors {
		b.effectors[i].rate = cfg.BlendRate
	}
	return b, nil
}

// SetEnabled starts blending IK influence in or out.
func (b *Bridge) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Apply pulls both feet toward the stepping targets and solves the leg
// chains. The raw (un-IK'd) pose keeps each foot straight under its
// hip, which is also the fallback the feet blend back to when IK is
// disabled.
func (b *Bridge) Apply(body locomotion.BodyState, left, right stepping.Output, dt float32) {
	outputs := [2]stepping.Output{left, right}

	for i := range b.effectors {
		e := &b.effectors[i]
		e.SetTarget(outputs[i].Position, outputs[i].Basis)
		e.Blend(b.enabled, dt)

		side := float32(-1)
		if i == 1 {
			side = 1
		}
		hip := body.Position.
			Add(body.Basis.Up.Scale(b.cfg.HipHeight)).
			Add(body.Basis.Right.Scale(side * b.cfg.HipWidth / 2))

		raw := hip.Sub(math.Vec3{Y: b.cfg.ThighLen + b.cfg.ShinLen})
		foot := e.Apply(raw)

		// Knees bend forward of the hip-foot axis.
		pole := hip.Add(body.Basis.Forward.Scale(0.5))
		knee, _ := b.chain.Solve(hip, foot, pole)

		b.poses[i] = LegPose{
			Hip:      hip,
			Knee:     knee,
			Foot:     foot,
			Basis:    outputs[i].Basis,
			Swinging: outputs[i].Swinging,
		}
	}
}

// Pose returns a leg's solved world pose.
func (b *Bridge) Pose(i stepping.FootIndex) LegPose {
	return b.poses[i]
}

// FootPosition returns the blended world position of a foot.
func (b *Bridge) FootPosition(i stepping.FootIndex) math.Vec3 {
	return b.poses[i].Foot
}

// Influence returns a foot effector's current blend weight.
func (b *Bridge) Influence(i stepping.FootIndex) float32 {
	return b.effectors[i].Influence()
}
