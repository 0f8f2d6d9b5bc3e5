// Package locomotion holds the types shared by the locomotion
// subsystems: the per-frame physics body snapshot every component reads,
// and the debug-draw sink they optionally write to.
package locomotion

import (
	"github.com/longiy/lcm/pkg/math"
)

// BodyState is a read-only snapshot of the character body for one frame.
// Components receive it by value; nothing in it may be mutated downstream.
type BodyState struct {
	Position    math.Vec3
	Basis       math.Basis
	Velocity    math.Vec3
	Grounded    bool
	FloorNormal math.Vec3
}

// HorizontalVelocity returns the velocity with its vertical component
// removed.
func (b BodyState) HorizontalVelocity() math.Vec3 {
	return b.Velocity.Horizontal()
}

// HorizontalSpeed returns the magnitude of the horizontal velocity.
func (b BodyState) HorizontalSpeed() float32 {
	return b.Velocity.Horizontal().Length()
}

// DebugSink receives debug geometry from locomotion components. The
// viewer implements it; headless runs pass a nil sink and components
// must tolerate that.
type DebugSink interface {
	Line(from, to math.Vec3, color [3]float32)
	Marker(at math.Vec3, size float32, color [3]float32)
}
