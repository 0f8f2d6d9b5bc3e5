// Package balance tracks the character's center of gravity and judges
// its stability against the support polygon spanned by the feet.
package balance

import (
	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/pkg/math"
)

// COGConfig holds the center-of-gravity tunables.
type COGConfig struct {
	BaseOffset math.Vec3 `yaml:"base_offset"` // torso-relative rest position of the CoG

	SpeedThreshold    float32 `yaml:"speed_threshold"`    // speed at which offsets saturate
	ForwardMagnitude  float32 `yaml:"forward_magnitude"`  // max forward lean, meters
	BackwardMagnitude float32 `yaml:"backward_magnitude"` // max backward lean, smaller than forward
	LateralMagnitude  float32 `yaml:"lateral_magnitude"`  // max sideways lean
	LateralDeadZone   float32 `yaml:"lateral_dead_zone"`  // rightward speed below this is ignored

	StabilizationStrength    float32 `yaml:"stabilization_strength"`
	MaxStabilizationDistance float32 `yaml:"max_stabilization_distance"`
}

// DefaultCOGConfig returns the stock CoG tuning.
func DefaultCOGConfig() COGConfig {
	return COGConfig{
		BaseOffset:               math.Vec3{Y: 0.95},
		SpeedThreshold:           3.0,
		ForwardMagnitude:         0.12,
		BackwardMagnitude:        0.07,
		LateralMagnitude:         0.08,
		LateralDeadZone:          0.1,
		StabilizationStrength:    0.6,
		MaxStabilizationDistance: 0.3,
	}
}

// CenterOfGravity computes a velocity-driven torso offset each frame
// and exposes the stabilization vector the stepping logic uses to bias
// idle stance placement back under the drifting torso.
type CenterOfGravity struct {
	cfg    COGConfig
	offset math.Vec3 // current movement offset in body-local axes (X right, Z forward)
}

// NewCenterOfGravity returns a CoG tracker.
func NewCenterOfGravity(cfg COGConfig) *CenterOfGravity {
	return &CenterOfGravity{cfg: cfg}
}

// Update recomputes the movement offset from the body's horizontal
// velocity. The offset is applied directly, with no smoothing: the CoG
// snaps with velocity changes and snaps back to zero at rest.
func (c *CenterOfGravity) Update(body locomotion.BodyState) {
	vel := body.HorizontalVelocity()
	fwdSpeed := vel.Dot(body.Basis.Forward)
	rightSpeed := vel.Dot(body.Basis.Right)

	var local math.Vec3

	if fwdSpeed != 0 {
		ratio := math.Clamp01(math.Abs(fwdSpeed) / c.cfg.SpeedThreshold)
		mag := c.cfg.ForwardMagnitude
		if fwdSpeed < 0 {
			mag = c.cfg.BackwardMagnitude
		}
		local.Z = ratio * mag
		if fwdSpeed < 0 {
			local.Z = -local.Z
		}
	}

	if math.Abs(rightSpeed) > c.cfg.LateralDeadZone {
		ratio := math.Clamp01(math.Abs(rightSpeed) / c.cfg.SpeedThreshold)
		local.X = ratio * c.cfg.LateralMagnitude
		if rightSpeed < 0 {
			local.X = -local.X
		}
	}

	c.offset = local
}

// NeutralPosition returns where the CoG sits when the body is at rest:
// the body position plus the base offset, unrotated by movement.
func (c *CenterOfGravity) NeutralPosition(body locomotion.BodyState) math.Vec3 {
	return body.Position.Add(c.cfg.BaseOffset)
}

// WorldPosition returns the current CoG in world space.
func (c *CenterOfGravity) WorldPosition(body locomotion.BodyState) math.Vec3 {
	world := body.Basis.Right.Scale(c.offset.X).
		Add(body.Basis.Forward.Scale(c.offset.Z))
	return c.NeutralPosition(body).Add(world)
}

// StabilizationOffset returns the clamped correction vector: the
// horizontal drift of the current CoG from its freshly recomputed
// neutral position, scaled by the stabilization strength. If the torso
// has drifted forward, the idle foot stance should shift forward too,
// to stay under the CoG.
func (c *CenterOfGravity) StabilizationOffset(body locomotion.BodyState) math.Vec3 {
	drift := c.WorldPosition(body).Sub(c.NeutralPosition(body)).Horizontal()
	return drift.Scale(c.cfg.StabilizationStrength).
		ClampLength(c.cfg.MaxStabilizationDistance)
}
