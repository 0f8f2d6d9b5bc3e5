// Package world provides the ground-query service consumed by the
// locomotion components: a downward probe against some terrain
// representation, returning the nearest ground hit below a point.
package world

import (
	"github.com/longiy/lcm/pkg/math"
)

// Hit is the result of a successful ground probe.
type Hit struct {
	Point  math.Vec3 // contact point on the ground surface
	Normal math.Vec3 // surface normal at the contact point (unit length)
}

// GroundQuery answers downward probes. Probe casts from origin straight
// down and reports the nearest ground surface within maxDist, or ok=false
// when nothing is below the point in range.
type GroundQuery interface {
	Probe(origin math.Vec3, maxDist float32) (Hit, bool)
}
