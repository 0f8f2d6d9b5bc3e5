// Package terrain samples the ground around the character and distills
// the probes into a per-frame analysis: average height, roughness,
// slope trends and steppable zones. The stepping state machine reads the
// analysis and projects its foot targets through SampleAt.
package terrain

import (
	"github.com/longiy/lcm/pkg/math"
)

// Category tags where a probe came from.
type Category int

const (
	CategoryNear Category = iota
	CategoryFar
	CategoryForward
	CategoryQuery
	CategoryPath
)

func (c Category) String() string {
	switch c {
	case CategoryNear:
		return "near"
	case CategoryFar:
		return "far"
	case CategoryForward:
		return "forward"
	case CategoryQuery:
		return "query"
	case CategoryPath:
		return "path"
	default:
		return "unknown"
	}
}

// Sample is one ground probe result. Immutable once computed; the
// detector rebuilds its sample set every frame.
type Sample struct {
	Query        math.Vec3 // world position the probe was fired over
	GroundHeight float32   // hit height, or Query.Y when nothing was hit
	HasGround    bool
	Normal       math.Vec3 // ground normal, world up when nothing was hit
	SlopeDeg     float32   // angle between Normal and world up, degrees
	Category     Category
}

// Trend describes how the ground ahead compares to the ground underfoot.
type Trend int

const (
	TrendStationary Trend = iota
	TrendFlat
	TrendAscending
	TrendDescending
)

func (t Trend) String() string {
	switch t {
	case TrendStationary:
		return "stationary"
	case TrendFlat:
		return "flat"
	case TrendAscending:
		return "ascending"
	case TrendDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// SideTrend describes lateral ground tilt relative to the body.
type SideTrend int

const (
	SideLevel SideTrend = iota
	SideLeftHigh
	SideRightHigh
)

func (s SideTrend) String() string {
	switch s {
	case SideLeftHigh:
		return "left_high"
	case SideRightHigh:
		return "right_high"
	default:
		return "level"
	}
}

// Zone is a candidate foot-placement area found during analysis.
type Zone struct {
	Position math.Vec3
	Height   float32
	SlopeDeg float32
	Quality  float32 // [0, 1], higher is better
}

// Analysis is the aggregate terrain snapshot rebuilt every frame.
// Stale is set when a pass found no valid samples and the previous
// snapshot was carried over unchanged.
type Analysis struct {
	AverageHeight float32
	Roughness     float32 // stddev of sampled ground heights
	MaxSlopeDeg   float32
	ForwardTrend  Trend
	SideSlopeDeg  float32
	SideTrend     SideTrend
	Zones         []Zone
	Stale         bool
}
