package viewer

import (
	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/locomotion/stepping"
	"github.com/longiy/lcm/internal/sim"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

// Overlay builds the per-frame debug geometry into a line batch.
type Overlay struct {
	Batch LineBatch

	GridSpacing float32
	GridRadius  float32 // grid half-size around the character
}

// NewOverlay returns an overlay with default grid density.
func NewOverlay() *Overlay {
	return &Overlay{
		GridSpacing: 0.5,
		GridRadius:  8,
	}
}

// Build regenerates the batch from the current simulation state.
func (o *Overlay) Build(field *world.Heightfield, body locomotion.BodyState, rig *sim.Rig) {
	o.Batch.Reset()
	o.terrainGrid(field, body.Position)
	rig.Detector.EmitDebug(&o.Batch, ColorSample)
	o.character(body, rig)
	o.feet(rig)
	o.stability(rig)
}

// terrainGrid draws height-conforming grid lines around the character.
func (o *Overlay) terrainGrid(field *world.Heightfield, center math.Vec3) {
	minX := center.X - o.GridRadius
	maxX := center.X + o.GridRadius
	minZ := center.Z - o.GridRadius
	maxZ := center.Z + o.GridRadius

	for x := snap(minX, o.GridSpacing); x <= maxX; x += o.GridSpacing {
		var prev math.Vec3
		first := true
		for z := snap(minZ, o.GridSpacing); z <= maxZ; z += o.GridSpacing {
			p := math.Vec3{X: x, Y: field.HeightAt(x, z), Z: z}
			if !first {
				o.Batch.Line(prev, p, ColorGrid)
			}
			prev, first = p, false
		}
	}
	for z := snap(minZ, o.GridSpacing); z <= maxZ; z += o.GridSpacing {
		var prev math.Vec3
		first := true
		for x := snap(minX, o.GridSpacing); x <= maxX; x += o.GridSpacing {
			p := math.Vec3{X: x, Y: field.HeightAt(x, z), Z: z}
			if !first {
				o.Batch.Line(prev, p, ColorGrid)
			}
			prev, first = p, false
		}
	}
}

// character draws the body axis, the CoG marker and both leg chains.
func (o *Overlay) character(body locomotion.BodyState, rig *sim.Rig) {
	// Spine and facing direction.
	top := body.Position.Add(math.Vec3{Y: 1.6})
	o.Batch.Line(body.Position, top, ColorBody)
	o.Batch.Line(top, top.Add(body.Basis.Forward.Scale(0.3)), ColorBody)

	o.Batch.Marker(rig.COG.WorldPosition(body), 0.15, ColorCoG)

	for i, color := range [][3]float32{ColorLeftLeg, ColorRightLeg} {
		pose := rig.Bridge.Pose(stepping.FootIndex(i))
		o.Batch.Polyline([]math.Vec3{pose.Hip, pose.Knee, pose.Foot}, color)
	}
}

// feet draws the committed targets, the ideal goals and swing arcs.
func (o *Overlay) feet(rig *sim.Rig) {
	for i := stepping.FootLeft; i <= stepping.FootRight; i++ {
		out := rig.Stepper.Foot(i)

		color := ColorLeftLeg
		if i == stepping.FootRight {
			color = ColorRightLeg
		}
		if out.Swinging {
			color = ColorSwing
		}

		o.Batch.Marker(out.Position, 0.12, color)
		o.Batch.Line(out.Position, out.Position.Add(out.Basis.Up.Scale(0.15)), color)
		o.Batch.Marker(rig.Stepper.Ideal(i), 0.08, ColorIdeal)
	}
}

// stability draws the nested zone polygons, colored by ring, with the
// base polygon highlighted in the current classification's color.
func (o *Overlay) stability(rig *sim.Rig) {
	class := rig.Evaluator.Last()
	if len(class.Base) == 0 {
		return
	}

	y := class.Corners[0].Y + 0.02

	o.Batch.LoopXZ(class.Base, y, ZoneColors[class.Zone])
	for i, ring := range class.Rings {
		o.Batch.LoopXZ(ring, y, ZoneColors[i+1])
	}

	o.Batch.Marker(math.FromVec2XZ(class.CoG, y), 0.1, ColorCoG)
}

// snap rounds v down to a multiple of step.
func snap(v, step float32) float32 {
	return float32(int(v/step)) * step
}
