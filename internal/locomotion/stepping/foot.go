// Package stepping implements the goal-directed stepping state machine:
// per-foot planted/stepping states, speed-responsive trigger decisions,
// and arced swing trajectories that keep tracking the moving ideal
// target until the step completes.
package stepping

import (
	"github.com/longiy/lcm/pkg/math"
)

// FootIndex identifies a foot.
type FootIndex int

const (
	FootLeft FootIndex = iota
	FootRight
)

func (f FootIndex) String() string {
	if f == FootLeft {
		return "left"
	}
	return "right"
}

// Other returns the opposite foot.
func (f FootIndex) Other() FootIndex {
	return 1 - f
}

// footState is the per-foot step state. A foot is either planted
// (accumulating stance time) or stepping (progress advancing toward 1).
type footState struct {
	target     math.Vec3 // committed target; only moves while stepping
	ideal      math.Vec3 // continuously recomputed goal position
	basis      math.Basis
	idealBasis math.Basis // ground frame under the ideal position
	stepping   bool
	progress   float32   // [0, 1] while stepping
	start      math.Vec3 // target snapshot at step trigger
	startRot   math.Quat // orientation snapshot at step trigger
	stance     float32   // seconds since this foot last planted

	groundNormal math.Vec3
	slopeDeg     float32
}

// Output is the per-foot state exposed to the IK bridge and animation.
type Output struct {
	Position math.Vec3
	Basis    math.Basis
	Swinging bool
	Progress float32
}
