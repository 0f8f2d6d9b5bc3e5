package sim

import (
	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/locomotion/stepping"
	"github.com/longiy/lcm/pkg/math"
)

// FootFrame is one foot's state in a frame snapshot.
type FootFrame struct {
	Position [3]float32 `json:"position"`
	Ideal    [3]float32 `json:"ideal"`
	Swinging bool       `json:"swinging"`
	Progress float32    `json:"progress"`
}

// Frame is the per-tick snapshot broadcast to telemetry subscribers and
// written to trace files. Everything is plain values; the snapshot
// never aliases live component state.
type Frame struct {
	Tick int64   `json:"tick"`
	Time float32 `json:"time"`

	Position [3]float32 `json:"position"`
	Speed    float32    `json:"speed"`
	Yaw      float32    `json:"yaw"`

	Left  FootFrame `json:"left"`
	Right FootFrame `json:"right"`

	StepLength  float32 `json:"step_length"`
	StepHeight  float32 `json:"step_height"`
	StanceWidth float32 `json:"stance_width"`

	Stability     string     `json:"stability"`
	SupportCenter [2]float32 `json:"support_center"`
	CoG           [2]float32 `json:"cog"`

	TerrainRoughness float32 `json:"terrain_roughness"`
	TerrainTrend     string  `json:"terrain_trend"`
	TerrainStale     bool    `json:"terrain_stale"`
}

func vec3Array(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Snapshot captures the rig's current outputs.
func Snapshot(tick int64, t float32, body locomotion.BodyState, rig *Rig) Frame {
	left := rig.Stepper.Foot(stepping.FootLeft)
	right := rig.Stepper.Foot(stepping.FootRight)
	params := rig.Stepper.Params()
	class := rig.Evaluator.Last()
	analysis := rig.Detector.Analysis()

	yaw := math.Atan2(body.Basis.Forward.X, body.Basis.Forward.Z)

	return Frame{
		Tick:     tick,
		Time:     t,
		Position: vec3Array(body.Position),
		Speed:    body.HorizontalSpeed(),
		Yaw:      yaw,
		Left: FootFrame{
			Position: vec3Array(rig.Bridge.FootPosition(stepping.FootLeft)),
			Ideal:    vec3Array(rig.Stepper.Ideal(stepping.FootLeft)),
			Swinging: left.Swinging,
			Progress: left.Progress,
		},
		Right: FootFrame{
			Position: vec3Array(rig.Bridge.FootPosition(stepping.FootRight)),
			Ideal:    vec3Array(rig.Stepper.Ideal(stepping.FootRight)),
			Swinging: right.Swinging,
			Progress: right.Progress,
		},
		StepLength:       params.StepLength,
		StepHeight:       params.StepHeight,
		StanceWidth:      params.StanceWidth,
		Stability:        class.Zone.String(),
		SupportCenter:    [2]float32{class.Center.X, class.Center.Y},
		CoG:              [2]float32{class.CoG.X, class.CoG.Y},
		TerrainRoughness: analysis.Roughness,
		TerrainTrend:     analysis.ForwardTrend.String(),
		TerrainStale:     analysis.Stale,
	}
}
