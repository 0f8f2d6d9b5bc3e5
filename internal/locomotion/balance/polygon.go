package balance

import (
	"github.com/longiy/lcm/pkg/math"
)

// pointInPolygon runs the even-odd crossing-number test on a simple
// polygon in the XZ plane.
func pointInPolygon(p math.Vec2, poly []math.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// offsetPolygon grows the polygon outward by dist. Each vertex moves
// along the average of its two adjacent edge normals; the move distance
// is scaled by 1/max(0.5, dot(cornerDir, edgeNormal)) so acute corners
// do not blow up. This is a heuristic limiter, not an exact Minkowski
// offset, which is fine for the foot-stance quadrilaterals it serves.
func offsetPolygon(poly []math.Vec2, dist float32) []math.Vec2 {
	n := len(poly)
	out := make([]math.Vec2, n)
	if n < 3 {
		copy(out, poly)
		return out
	}

	winding := polygonArea2(poly)

	for i := 0; i < n; i++ {
		prev := poly[(i-1+n)%n]
		cur := poly[i]
		next := poly[(i+1)%n]

		nPrev := edgeOutwardNormal(prev, cur, winding)
		nNext := edgeOutwardNormal(cur, next, winding)

		dir := nPrev.Add(nNext)
		if dir.Length() < 1e-6 {
			// Edges fold back on themselves; fall back to one edge normal.
			dir = nNext
		}
		dir = dir.Normalize()

		scale := 1.0 / maxf(0.5, dir.Dot(nNext))
		out[i] = cur.Add(dir.Scale(dist * scale))
	}

	return out
}

// edgeOutwardNormal returns the outward normal of edge a→b for a polygon
// with the given signed-area winding.
func edgeOutwardNormal(a, b math.Vec2, winding float32) math.Vec2 {
	edge := b.Sub(a)
	if edge.Length() < 1e-6 {
		return math.Vec2{}
	}
	n := edge.Perp().Normalize()
	if winding > 0 {
		// Counter-clockwise winding: the left perpendicular points inward.
		n = n.Scale(-1)
	}
	return n
}

// polygonArea2 returns twice the signed area (positive = CCW).
func polygonArea2(poly []math.Vec2) float32 {
	var sum float32
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum
}

// polygonCenter returns the vertex centroid.
func polygonCenter(poly []math.Vec2) math.Vec2 {
	var c math.Vec2
	if len(poly) == 0 {
		return c
	}
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Scale(1 / float32(len(poly)))
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
