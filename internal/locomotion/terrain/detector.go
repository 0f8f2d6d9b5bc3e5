package terrain

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

// Config holds the terrain sampling tunables.
type Config struct {
	NearSamples    int     `yaml:"near_samples"`
	FarSamples     int     `yaml:"far_samples"`
	ForwardSamples int     `yaml:"forward_samples"`
	NearRadius     float32 `yaml:"near_radius"`
	FarRadius      float32 `yaml:"far_radius"`

	RayStartHeight float32 `yaml:"ray_start_height"` // probe origin above the query point
	RayLength      float32 `yaml:"ray_length"`       // max probe distance

	StepHeightThreshold float32 `yaml:"step_height_threshold"` // max steppable height delta
	SteepSlopeDeg       float32 `yaml:"steep_slope_deg"`       // slopes past this are unsteppable
	TrendThreshold      float32 `yaml:"trend_threshold"`       // near/far mean delta for a trend
}

// DefaultConfig returns the stock sampling pattern: 16 near, 32 far,
// 4 forward-biased probes.
func DefaultConfig() Config {
	return Config{
		NearSamples:         16,
		FarSamples:          32,
		ForwardSamples:      4,
		NearRadius:          0.5,
		FarRadius:           1.5,
		RayStartHeight:      1.0,
		RayLength:           3.0,
		StepHeightThreshold: 0.35,
		SteepSlopeDeg:       40,
		TrendThreshold:      0.1,
	}
}

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Detector samples the ground around the character. One Update per
// frame; SampleAt may additionally be called by collaborators to project
// individual points onto the ground.
type Detector struct {
	ground   world.GroundQuery
	cfg      Config
	analysis Analysis
	samples  []Sample // scratch, reused across frames
}

// NewDetector validates the collaborators and returns a detector.
func NewDetector(ground world.GroundQuery, cfg Config) (*Detector, error) {
	if ground == nil {
		return nil, fmt.Errorf("terrain: ground query is required")
	}
	if cfg.NearSamples <= 0 || cfg.FarSamples <= 0 {
		return nil, fmt.Errorf("terrain: ring sample counts must be positive")
	}
	if cfg.FarRadius <= cfg.NearRadius {
		return nil, fmt.Errorf("terrain: far radius %v must exceed near radius %v",
			cfg.FarRadius, cfg.NearRadius)
	}
	return &Detector{
		ground:  ground,
		cfg:     cfg,
		samples: make([]Sample, 0, cfg.NearSamples+cfg.FarSamples+cfg.ForwardSamples+2),
	}, nil
}

// SampleAt fires a single downward probe over the world position.
// A miss is a valid outcome: height falls back to the query point's own
// Y and the normal to world up.
func (d *Detector) SampleAt(pos math.Vec3, cat Category) Sample {
	origin := pos.Add(worldUp.Scale(d.cfg.RayStartHeight))
	hit, ok := d.ground.Probe(origin, d.cfg.RayStartHeight+d.cfg.RayLength)
	if !ok {
		return Sample{
			Query:        pos,
			GroundHeight: pos.Y,
			HasGround:    false,
			Normal:       worldUp,
			Category:     cat,
		}
	}

	return Sample{
		Query:        pos,
		GroundHeight: hit.Point.Y,
		HasGround:    true,
		Normal:       hit.Normal,
		SlopeDeg:     math.Degrees(math.Acos(hit.Normal.Dot(worldUp))),
		Category:     cat,
	}
}

// Update runs the full analysis pass: two concentric probe rings plus
// forward-biased probes along the movement direction, aggregated into a
// fresh Analysis. When every probe misses, the previous analysis is
// kept and marked stale rather than zeroed, so consumers coast on the
// last known terrain instead of snapping to a flat default.
func (d *Detector) Update(body locomotion.BodyState) {
	d.samples = d.samples[:0]

	d.sampleRing(body.Position, d.cfg.NearRadius, d.cfg.NearSamples, CategoryNear)
	d.sampleRing(body.Position, d.cfg.FarRadius, d.cfg.FarSamples, CategoryFar)

	moveDir := body.HorizontalVelocity()
	if moveDir.Length() > 1e-4 {
		moveDir = moveDir.Normalize()
		for i := 0; i < d.cfg.ForwardSamples; i++ {
			t := float32(i+1) / float32(d.cfg.ForwardSamples)
			dist := math.Lerp(d.cfg.NearRadius, d.cfg.FarRadius, t)
			pos := body.Position.Add(moveDir.Scale(dist))
			d.samples = append(d.samples, d.SampleAt(pos, CategoryForward))
		}
	}

	d.aggregate(body, moveDir)
}

// Analysis returns the current terrain snapshot.
func (d *Detector) Analysis() Analysis {
	return d.analysis
}

// EmitDebug draws the last pass's probe set into the sink. Probes that
// missed are skipped.
func (d *Detector) EmitDebug(sink locomotion.DebugSink, color [3]float32) {
	if sink == nil {
		return
	}
	for i := range d.samples {
		s := &d.samples[i]
		if !s.HasGround {
			continue
		}
		p := math.Vec3{X: s.Query.X, Y: s.GroundHeight, Z: s.Query.Z}
		sink.Marker(p, 0.06, color)
		sink.Line(p, p.Add(s.Normal.Scale(0.12)), color)
	}
}

func (d *Detector) sampleRing(center math.Vec3, radius float32, count int, cat Category) {
	step := 2 * math.Pi / float32(count)
	for i := 0; i < count; i++ {
		a := float32(i) * step
		pos := center.Add(math.Vec3{X: math.Cos(a) * radius, Z: math.Sin(a) * radius})
		d.samples = append(d.samples, d.SampleAt(pos, cat))
	}
}

func (d *Detector) aggregate(body locomotion.BodyState, moveDir math.Vec3) {
	var valid []Sample
	for i := range d.samples {
		if d.samples[i].HasGround {
			valid = append(valid, d.samples[i])
		}
	}

	if len(valid) == 0 {
		d.analysis.Stale = true
		return
	}

	var a Analysis

	var sum float32
	for _, s := range valid {
		sum += s.GroundHeight
		if s.SlopeDeg > a.MaxSlopeDeg {
			a.MaxSlopeDeg = s.SlopeDeg
		}
	}
	a.AverageHeight = sum / float32(len(valid))

	var variance float32
	for _, s := range valid {
		dh := s.GroundHeight - a.AverageHeight
		variance += dh * dh
	}
	a.Roughness = math.Sqrt(variance / float32(len(valid)))

	a.ForwardTrend = d.forwardTrend(valid, moveDir)
	a.SideSlopeDeg, a.SideTrend = d.sideSlope(body)
	a.Zones = d.steppableZones(body, valid)

	d.analysis = a
}

// forwardTrend compares the mean height of the near and far ring
// samples. Without movement there is no meaningful "ahead", so the
// trend is reported as stationary.
func (d *Detector) forwardTrend(valid []Sample, moveDir math.Vec3) Trend {
	if moveDir.Length() < 1e-4 {
		return TrendStationary
	}

	var nearSum, farSum float32
	var nearN, farN int
	for _, s := range valid {
		switch s.Category {
		case CategoryNear:
			nearSum += s.GroundHeight
			nearN++
		case CategoryFar, CategoryForward:
			farSum += s.GroundHeight
			farN++
		}
	}
	if nearN == 0 || farN == 0 {
		return TrendFlat
	}

	diff := farSum/float32(farN) - nearSum/float32(nearN)
	switch {
	case diff > d.cfg.TrendThreshold:
		return TrendAscending
	case diff < -d.cfg.TrendThreshold:
		return TrendDescending
	default:
		return TrendFlat
	}
}

// sideSlope probes half a meter out along each side of the body and
// converts the height difference to an angle.
func (d *Detector) sideSlope(body locomotion.BodyState) (float32, SideTrend) {
	const lateral = 0.5
	right := body.Basis.Right

	rs := d.SampleAt(body.Position.Add(right.Scale(lateral)), CategoryQuery)
	ls := d.SampleAt(body.Position.Add(right.Scale(-lateral)), CategoryQuery)
	if !rs.HasGround || !ls.HasGround {
		return 0, SideLevel
	}

	dh := ls.GroundHeight - rs.GroundHeight
	angle := math.Degrees(math.Atan2(math.Abs(dh), 2*lateral))
	switch {
	case dh > d.cfg.TrendThreshold:
		return angle, SideLeftHigh
	case dh < -d.cfg.TrendThreshold:
		return angle, SideRightHigh
	default:
		return angle, SideLevel
	}
}

// steppableZones filters the sample set down to positions a foot could
// plausibly land on, scored by slope and distance from the body.
func (d *Detector) steppableZones(body locomotion.BodyState, valid []Sample) []Zone {
	var zones []Zone
	for _, s := range valid {
		if math.Abs(s.GroundHeight-body.Position.Y) > d.cfg.StepHeightThreshold {
			continue
		}
		if s.SlopeDeg > d.cfg.SteepSlopeDeg {
			continue
		}

		slopePenalty := s.SlopeDeg / d.cfg.SteepSlopeDeg
		dist := s.Query.Horizontal().Distance(body.Position.Horizontal())
		distPenalty := dist / d.cfg.FarRadius

		zones = append(zones, Zone{
			Position: math.Vec3{X: s.Query.X, Y: s.GroundHeight, Z: s.Query.Z},
			Height:   s.GroundHeight,
			SlopeDeg: s.SlopeDeg,
			Quality:  math.Clamp01(1 - 0.5*slopePenalty - 0.5*distPenalty),
		})
	}
	return zones
}
