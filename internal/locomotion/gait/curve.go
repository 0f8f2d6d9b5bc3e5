// Package gait provides the speed-indexed gait parameterization: a set
// of piecewise-linear response curves sampled once per frame from the
// normalized speed ratio, yielding the step length, frequency, stance
// width, stance ratio, step height and trigger distance the stepping
// state machine consumes.
package gait

import (
	"fmt"
	"sort"

	"github.com/longiy/lcm/pkg/math"
)

// Point is a single curve control point.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Curve is a piecewise-linear sampler over sorted control points.
// Sampling outside the control-point domain clamps to the end values,
// so a curve behaves like a designer-tuned response function rather
// than an extrapolating polynomial.
type Curve struct {
	points []Point
}

// NewCurve builds a curve from control points. Points are sorted by X;
// at least one point is required.
func NewCurve(points []Point) (*Curve, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("gait: curve needs at least one control point")
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	for i := 1; i < len(pts); i++ {
		if pts[i].X == pts[i-1].X {
			return nil, fmt.Errorf("gait: duplicate control point x=%v", pts[i].X)
		}
	}

	return &Curve{points: pts}, nil
}

// Sample evaluates the curve at x.
func (c *Curve) Sample(x float32) float32 {
	pts := c.points
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return last.Y
	}

	// Linear scan; curves carry a handful of points.
	for i := 1; i < len(pts); i++ {
		if x <= pts[i].X {
			a, b := pts[i-1], pts[i]
			t := (x - a.X) / (b.X - a.X)
			return math.Lerp(a.Y, b.Y, t)
		}
	}
	return last.Y
}
