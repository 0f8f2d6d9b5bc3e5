// Package sim hosts the character body and the frame-loop driver that
// runs the locomotion components in their required per-frame order.
package sim

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

// BodyConfig holds the kinematic character tunables.
type BodyConfig struct {
	MaxSpeed float32 `yaml:"max_speed"` // m/s at full intent
	Accel    float32 `yaml:"accel"`     // m/s^2 toward the desired velocity
	TurnRate float32 `yaml:"turn_rate"` // rad/s toward the travel direction

	ProbeHeight float32 `yaml:"probe_height"` // ground probe origin above the body
	ProbeDepth  float32 `yaml:"probe_depth"`  // max ground distance below the body
}

// DefaultBodyConfig returns the stock body tuning.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		MaxSpeed:    4.0,
		Accel:       12.0,
		TurnRate:    6.0,
		ProbeHeight: 1.0,
		ProbeDepth:  2.0,
	}
}

// MoveIntent is one frame of movement input: a world-space XZ direction
// and a throttle in [0, 1].
type MoveIntent struct {
	Dir   math.Vec2
	Scale float32
}

// Body is the kinematic character the locomotion core observes. It
// accelerates toward the intended velocity, turns to face its travel
// direction, and follows the ground height under it.
type Body struct {
	cfg    BodyConfig
	ground world.GroundQuery

	pos         math.Vec3
	yaw         float32
	vel         math.Vec3
	grounded    bool
	floorNormal math.Vec3
}

// NewBody places a character at start, snapped to the ground.
func NewBody(ground world.GroundQuery, cfg BodyConfig, start math.Vec3) (*Body, error) {
	if ground == nil {
		return nil, fmt.Errorf("sim: ground query is required")
	}
	b := &Body{
		cfg:         cfg,
		ground:      ground,
		pos:         start,
		floorNormal: math.Vec3{Y: 1},
	}
	b.followGround()
	return b, nil
}

// Update advances the body by dt under the given intent.
func (b *Body) Update(intent MoveIntent, dt float32) {
	desired := math.FromVec2XZ(intent.Dir, 0)
	if desired.Length() > 1 {
		desired = desired.Normalize()
	}
	desired = desired.Scale(math.Clamp01(intent.Scale) * b.cfg.MaxSpeed)

	// Accelerate the horizontal velocity toward the desired one.
	delta := desired.Sub(b.vel.Horizontal())
	maxStep := b.cfg.Accel * dt
	if delta.Length() > maxStep {
		delta = delta.Normalize().Scale(maxStep)
	}
	b.vel = b.vel.Horizontal().Add(delta)

	b.pos = b.pos.Add(b.vel.Scale(dt))
	b.turnToward(b.vel, dt)
	b.followGround()
}

// turnToward rotates the yaw toward the travel direction at the
// configured rate.
func (b *Body) turnToward(vel math.Vec3, dt float32) {
	h := vel.Horizontal()
	if h.Length() < 0.05 {
		return
	}
	targetYaw := math.Atan2(h.X, h.Z)

	diff := targetYaw - b.yaw
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}

	maxTurn := b.cfg.TurnRate * dt
	b.yaw += math.Clamp(diff, -maxTurn, maxTurn)
}

// followGround snaps the body to the ground below it. Off the edge of
// the world the body keeps its height and reports not grounded.
func (b *Body) followGround() {
	origin := b.pos.Add(math.Vec3{Y: b.cfg.ProbeHeight})
	hit, ok := b.ground.Probe(origin, b.cfg.ProbeHeight+b.cfg.ProbeDepth)
	if !ok {
		b.grounded = false
		b.floorNormal = math.Vec3{Y: 1}
		return
	}
	b.pos.Y = hit.Point.Y
	b.grounded = true
	b.floorNormal = hit.Normal
}

// Teleport moves the body without velocity, snapping to the ground.
func (b *Body) Teleport(pos math.Vec3) {
	b.pos = pos
	b.vel = math.Vec3{}
	b.followGround()
}

// State returns the per-frame snapshot the locomotion components read.
func (b *Body) State() locomotion.BodyState {
	return locomotion.BodyState{
		Position:    b.pos,
		Basis:       math.BasisFromYaw(b.yaw),
		Velocity:    b.vel,
		Grounded:    b.grounded,
		FloorNormal: b.floorNormal,
	}
}

// Position returns the body's world position.
func (b *Body) Position() math.Vec3 {
	return b.pos
}
