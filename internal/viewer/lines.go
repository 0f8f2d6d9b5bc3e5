package viewer

import (
	"github.com/longiy/lcm/pkg/math"
)

// LineVertex is one endpoint of a debug line: position plus color.
type LineVertex struct {
	X, Y, Z float32
	R, G, B float32
}

// Colors used by the overlay builders.
var (
	ColorGrid     = [3]float32{0.3, 0.3, 0.35}
	ColorBody     = [3]float32{0.9, 0.9, 0.9}
	ColorLeftLeg  = [3]float32{0.3, 0.7, 1.0}
	ColorRightLeg = [3]float32{1.0, 0.6, 0.3}
	ColorIdeal    = [3]float32{0.5, 1.0, 0.5}
	ColorSwing    = [3]float32{1.0, 1.0, 0.4}
	ColorSample   = [3]float32{0.45, 0.45, 0.5}
	ColorCoG      = [3]float32{1.0, 0.3, 0.8}

	ZoneColors = [4][3]float32{
		{0.2, 0.9, 0.2}, // stable
		{0.9, 0.9, 0.2}, // marginal
		{0.95, 0.6, 0.15}, // unstable
		{0.95, 0.2, 0.2},  // critical
	}
)

// LineBatch accumulates line vertices for one frame. It implements
// locomotion.DebugSink so components can draw into it directly.
type LineBatch struct {
	vertices []LineVertex
}

// Reset clears the batch for a new frame, keeping capacity.
func (b *LineBatch) Reset() {
	b.vertices = b.vertices[:0]
}

// Vertices returns the accumulated vertex data.
func (b *LineBatch) Vertices() []LineVertex {
	return b.vertices
}

// Line adds a line segment.
func (b *LineBatch) Line(from, to math.Vec3, color [3]float32) {
	b.vertices = append(b.vertices,
		LineVertex{from.X, from.Y, from.Z, color[0], color[1], color[2]},
		LineVertex{to.X, to.Y, to.Z, color[0], color[1], color[2]},
	)
}

// Marker adds a three-axis cross at a point.
func (b *LineBatch) Marker(at math.Vec3, size float32, color [3]float32) {
	h := size / 2
	b.Line(at.Sub(math.Vec3{X: h}), at.Add(math.Vec3{X: h}), color)
	b.Line(at.Sub(math.Vec3{Y: h}), at.Add(math.Vec3{Y: h}), color)
	b.Line(at.Sub(math.Vec3{Z: h}), at.Add(math.Vec3{Z: h}), color)
}

// Polyline adds connected segments through the points.
func (b *LineBatch) Polyline(points []math.Vec3, color [3]float32) {
	for i := 1; i < len(points); i++ {
		b.Line(points[i-1], points[i], color)
	}
}

// LoopXZ adds a closed loop through XZ-plane points at the given height.
func (b *LineBatch) LoopXZ(points []math.Vec2, y float32, color [3]float32) {
	n := len(points)
	for i := 0; i < n; i++ {
		a := points[i]
		c := points[(i+1)%n]
		b.Line(math.FromVec2XZ(a, y), math.FromVec2XZ(c, y), color)
	}
}
