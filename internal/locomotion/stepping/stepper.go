package stepping

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/locomotion/balance"
	"github.com/longiy/lcm/internal/locomotion/gait"
	"github.com/longiy/lcm/internal/locomotion/terrain"
	"github.com/longiy/lcm/pkg/math"
)

// Config holds the stepping tunables that are not gait-curve driven.
type Config struct {
	SpeedThreshold    float32 `yaml:"speed_threshold"`     // horizontal speed separating moving from stationary
	MaxSpeedReference float32 `yaml:"max_speed_reference"` // speed mapped to gait-curve ratio 1.0

	DirectionSmoothing float32 `yaml:"direction_smoothing"` // move-direction lerp rate, 1/s

	IdleStabilization      bool    `yaml:"idle_stabilization"`
	IdleStabilizationDelay float32 `yaml:"idle_stabilization_delay"` // seconds idle before stance biasing
	StabilizationInfluence float32 `yaml:"stabilization_influence"`
	MaxStabilizationOffset float32 `yaml:"max_stabilization_offset"`

	SlopeMinDeg        float32 `yaml:"slope_min_deg"`        // slopes under this get no arc boost
	SlopeArcMultiplier float32 `yaml:"slope_arc_multiplier"` // arc-height boost per unit of uphill steepness
}

// DefaultConfig returns the stock stepping tuning.
func DefaultConfig() Config {
	return Config{
		SpeedThreshold:         0.15,
		MaxSpeedReference:      4.0,
		DirectionSmoothing:     8.0,
		IdleStabilization:      true,
		IdleStabilizationDelay: 0.5,
		StabilizationInfluence: 0.8,
		MaxStabilizationOffset: 0.15,
		SlopeMinDeg:            10,
		SlopeArcMultiplier:     1.5,
	}
}

// Stepper is the stepping state machine. At most one foot is mid-step
// at any time; steps trigger only when the opposite foot is planted,
// the stance timer has run out, and the committed target has drifted
// past the speed-sampled trigger distance from the ideal position.
type Stepper struct {
	cfg      Config
	curves   *gait.CurveSet
	detector *terrain.Detector
	cog      *balance.CenterOfGravity

	feet    [2]footState
	params  gait.Params
	moveDir math.Vec3
	idle    float32
	primed  bool
}

// NewStepper validates the collaborators and returns a stepper. A
// missing collaborator is a configuration error: the caller gets an
// error once, and no component is constructed that could half-run.
func NewStepper(curves *gait.CurveSet, detector *terrain.Detector, cog *balance.CenterOfGravity, cfg Config) (*Stepper, error) {
	if curves == nil {
		return nil, fmt.Errorf("stepping: gait curves are required")
	}
	if detector == nil {
		return nil, fmt.Errorf("stepping: terrain detector is required")
	}
	if cog == nil {
		return nil, fmt.Errorf("stepping: center of gravity is required")
	}
	if cfg.MaxSpeedReference <= 0 {
		return nil, fmt.Errorf("stepping: max speed reference must be positive")
	}
	return &Stepper{
		cfg:      cfg,
		curves:   curves,
		detector: detector,
		cog:      cog,
	}, nil
}

// Update advances the state machine by dt. The terrain detector and the
// CoG must have been updated for this frame before the call.
func (s *Stepper) Update(body locomotion.BodyState, dt float32) {
	speed := body.HorizontalSpeed()
	s.params = s.curves.Sample(speed / s.cfg.MaxSpeedReference)

	s.updateMoveDirection(body, dt)
	moving := speed > s.cfg.SpeedThreshold
	if moving {
		s.idle = 0
	} else {
		s.idle += dt
	}

	s.updateIdeals(body, moving)

	if !s.primed {
		// First frame: plant both feet at their ideal stance positions.
		for i := range s.feet {
			s.feet[i].target = s.feet[i].ideal
			s.feet[i].basis = s.feet[i].idealBasis
		}
		s.primed = true
		return
	}

	for i := range s.feet {
		s.updateFoot(FootIndex(i), dt)
	}
}

// Foot returns the per-foot output consumed by the IK bridge.
func (s *Stepper) Foot(i FootIndex) Output {
	f := &s.feet[i]
	return Output{
		Position: f.target,
		Basis:    f.basis,
		Swinging: f.stepping,
		Progress: f.progress,
	}
}

// Ideal returns a foot's continuously recomputed goal position.
func (s *Stepper) Ideal(i FootIndex) math.Vec3 {
	return s.feet[i].ideal
}

// Params returns the gait parameters sampled this frame.
func (s *Stepper) Params() gait.Params {
	return s.params
}

// MoveDirection returns the smoothed horizontal movement direction.
func (s *Stepper) MoveDirection() math.Vec3 {
	return s.moveDir
}

func (s *Stepper) updateMoveDirection(body locomotion.BodyState, dt float32) {
	vel := body.HorizontalVelocity()
	if vel.Length() < 1e-4 {
		return // keep the last direction while stationary
	}
	target := vel.Normalize()
	if s.moveDir.Length() < 1e-4 {
		s.moveDir = target
		return
	}
	t := math.Clamp01(s.cfg.DirectionSmoothing * dt)
	s.moveDir = s.moveDir.Lerp(target, t).Normalize()
}

// updateIdeals recomputes both feet's goal positions and projects them
// onto the terrain.
func (s *Stepper) updateIdeals(body locomotion.BodyState, moving bool) {
	halfWidth := s.params.StanceWidth / 2

	if moving && s.moveDir.Length() > 1e-4 {
		s.updateMovingIdeals(body, halfWidth)
	} else {
		s.updateStationaryIdeals(body, halfWidth)
	}

	for i := range s.feet {
		f := &s.feet[i]
		sample := s.detector.SampleAt(f.ideal, terrain.CategoryQuery)
		f.ideal.Y = sample.GroundHeight
		f.groundNormal = sample.Normal
		f.slopeDeg = sample.SlopeDeg

		fwdHint := s.moveDir
		if fwdHint.Length() < 1e-4 {
			fwdHint = body.Basis.Forward
		}
		f.idealBasis = math.BasisFromNormal(sample.Normal, fwdHint)
	}
}

// updateMovingIdeals places one foot half a step length ahead and the
// other half a step behind, on either side of the travel line. The
// forward/backward assignment is whichever of the two pairings moves
// the feet least from their current targets, except that a foot already
// mid-step must take the forward slot so the swing lands ahead.
func (s *Stepper) updateMovingIdeals(body locomotion.BodyState, halfWidth float32) {
	up := math.Vec3{Y: 1}
	side := up.Cross(s.moveDir).Normalize() // right of travel
	fwd := s.moveDir.Scale(s.params.StepLength / 2)

	leftBase := body.Position.Sub(side.Scale(halfWidth))
	rightBase := body.Position.Add(side.Scale(halfWidth))

	// Pairing A: left forward, right back. Pairing B: the reverse.
	leftFwd, leftBack := leftBase.Add(fwd), leftBase.Sub(fwd)
	rightFwd, rightBack := rightBase.Add(fwd), rightBase.Sub(fwd)

	var leftForward bool
	switch {
	case s.feet[FootLeft].stepping:
		leftForward = true
	case s.feet[FootRight].stepping:
		leftForward = false
	default:
		costA := s.feet[FootLeft].target.Distance(leftFwd) +
			s.feet[FootRight].target.Distance(rightBack)
		costB := s.feet[FootLeft].target.Distance(leftBack) +
			s.feet[FootRight].target.Distance(rightFwd)
		leftForward = costA <= costB
	}

	if leftForward {
		s.feet[FootLeft].ideal = leftFwd
		s.feet[FootRight].ideal = rightBack
	} else {
		s.feet[FootLeft].ideal = leftBack
		s.feet[FootRight].ideal = rightFwd
	}
}

// updateStationaryIdeals targets a symmetric stance around the body,
// optionally biased by the CoG stabilization offset once the character
// has been idle long enough.
func (s *Stepper) updateStationaryIdeals(body locomotion.BodyState, halfWidth float32) {
	right := body.Basis.Right
	left := body.Position.Sub(right.Scale(halfWidth))
	rightP := body.Position.Add(right.Scale(halfWidth))

	if s.cfg.IdleStabilization && s.idle >= s.cfg.IdleStabilizationDelay {
		stab := s.cog.StabilizationOffset(body).
			Scale(s.cfg.StabilizationInfluence).
			ClampLength(s.cfg.MaxStabilizationOffset)
		left = left.Add(stab)
		rightP = rightP.Add(stab)
	}

	s.feet[FootLeft].ideal = left
	s.feet[FootRight].ideal = rightP
}

func (s *Stepper) updateFoot(i FootIndex, dt float32) {
	f := &s.feet[i]
	duration := s.params.StepDuration()

	if f.stepping {
		f.progress += dt / duration
		if f.progress >= 1 {
			// Snap exactly to the ideal computed this frame, not the
			// position the step was aimed at when it triggered.
			f.progress = 1
			f.stepping = false
			f.stance = 0
			f.target = f.ideal
			f.basis = f.idealBasis
			return
		}
		f.target = s.swingPosition(f)
		f.basis = math.BasisFromQuat(f.startRot.Slerp(f.idealBasis.Quat(), f.progress))
		return
	}

	f.stance += dt
	f.basis = f.idealBasis

	other := &s.feet[i.Other()]
	if other.stepping {
		return
	}
	if f.stance < duration*s.params.StanceRatio {
		return
	}
	if f.target.Distance(f.ideal) <= s.params.TriggerDistance {
		return
	}

	f.stepping = true
	f.progress = 0
	f.start = f.target
	f.startRot = f.basis.Quat()
}

// swingPosition interpolates the swing trajectory: linear XZ between
// the step start and the current ideal, with a sine arc on top of a
// linear height blend. Uphill targets get a taller arc.
func (s *Stepper) swingPosition(f *footState) math.Vec3 {
	t := f.progress
	p := f.start.Lerp(f.ideal, t)

	arc := s.params.StepHeight * (1 + s.slopeArcBoost(f))
	p.Y = math.Lerp(f.start.Y, f.ideal.Y, t) + arc*math.Sin(t*math.Pi)
	return p
}

// slopeArcBoost scales the swing arc up when the target sits on an
// uphill slope in the direction of travel: steeper climb, taller step.
func (s *Stepper) slopeArcBoost(f *footState) float32 {
	if f.slopeDeg <= s.cfg.SlopeMinDeg {
		return 0
	}
	downhill := f.groundNormal.Horizontal()
	if downhill.Length() < 1e-6 {
		return 0
	}
	uphill := downhill.Neg().Normalize()
	align := uphill.Dot(s.moveDir)
	if align <= 0 {
		return 0
	}
	steepness := (f.slopeDeg - s.cfg.SlopeMinDeg) / 45.0
	return steepness * align * s.cfg.SlopeArcMultiplier
}
