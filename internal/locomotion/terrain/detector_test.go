package terrain

import (
	"testing"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

// groundFunc adapts a height function into a world.GroundQuery.
type groundFunc func(x, z float32) (float32, bool)

func (g groundFunc) Probe(origin math.Vec3, maxDist float32) (world.Hit, bool) {
	h, ok := g(origin.X, origin.Z)
	if !ok || h > origin.Y || origin.Y-h > maxDist {
		return world.Hit{}, false
	}
	return world.Hit{
		Point:  math.Vec3{X: origin.X, Y: h, Z: origin.Z},
		Normal: math.Vec3{Y: 1},
	}, true
}

func flatGround() groundFunc {
	return func(x, z float32) (float32, bool) { return 0, true }
}

func noGround() groundFunc {
	return func(x, z float32) (float32, bool) { return 0, false }
}

func standingBody() locomotion.BodyState {
	return locomotion.BodyState{
		Basis:       math.IdentityBasis(),
		Grounded:    true,
		FloorNormal: math.Vec3{Y: 1},
	}
}

func TestNewDetectorRequiresGround(t *testing.T) {
	if _, err := NewDetector(nil, DefaultConfig()); err == nil {
		t.Error("NewDetector(nil) should fail")
	}
}

func TestNewDetectorRejectsBadRadii(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FarRadius = cfg.NearRadius
	if _, err := NewDetector(flatGround(), cfg); err == nil {
		t.Error("NewDetector() should reject far radius <= near radius")
	}
}

func TestSampleAtMissFallsBack(t *testing.T) {
	d, err := NewDetector(noGround(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	query := math.Vec3{X: 2, Y: 1.5, Z: -3}
	s := d.SampleAt(query, CategoryQuery)

	if s.HasGround {
		t.Error("SampleAt() over no ground should report HasGround=false")
	}
	if s.GroundHeight != query.Y {
		t.Errorf("fallback height = %v, want query height %v", s.GroundHeight, query.Y)
	}
	if s.Normal != (math.Vec3{Y: 1}) {
		t.Errorf("fallback normal = %v, want world up", s.Normal)
	}
	if s.SlopeDeg != 0 {
		t.Errorf("fallback slope = %v, want 0", s.SlopeDeg)
	}
}

func TestFlatGroundAnalysis(t *testing.T) {
	d, err := NewDetector(flatGround(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	d.Update(standingBody())
	a := d.Analysis()

	if a.Stale {
		t.Error("analysis over flat ground should not be stale")
	}
	if a.AverageHeight != 0 {
		t.Errorf("average height = %v, want 0", a.AverageHeight)
	}
	if a.Roughness != 0 {
		t.Errorf("roughness = %v, want 0", a.Roughness)
	}
	if a.ForwardTrend != TrendStationary {
		t.Errorf("trend while stationary = %v, want stationary", a.ForwardTrend)
	}
	if a.SideTrend != SideLevel {
		t.Errorf("side trend = %v, want level", a.SideTrend)
	}
	if len(a.Zones) == 0 {
		t.Error("flat ground should produce steppable zones")
	}
}

func TestForwardTrendAscending(t *testing.T) {
	// Ground rises along +Z at 0.5 per unit.
	slope := groundFunc(func(x, z float32) (float32, bool) {
		if z <= 0 {
			return 0, true
		}
		return z * 0.5, true
	})

	d, err := NewDetector(slope, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	body := standingBody()
	body.Position = math.Vec3{Y: 0}
	body.Velocity = math.Vec3{Z: 2}
	d.Update(body)

	if got := d.Analysis().ForwardTrend; got != TrendAscending {
		t.Errorf("trend walking uphill = %v, want ascending", got)
	}
}

func TestAllMissesKeepPreviousAnalysisStale(t *testing.T) {
	hits := true
	toggling := groundFunc(func(x, z float32) (float32, bool) { return 0.5, hits })

	d, err := NewDetector(toggling, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	body := standingBody()
	body.Position = math.Vec3{Y: 0.5}
	d.Update(body)
	before := d.Analysis()
	if before.Stale {
		t.Fatal("first analysis should be fresh")
	}

	hits = false
	d.Update(body)
	after := d.Analysis()

	if !after.Stale {
		t.Error("analysis with no valid samples should be marked stale")
	}
	if after.AverageHeight != before.AverageHeight {
		t.Errorf("stale analysis changed average height: %v -> %v",
			before.AverageHeight, after.AverageHeight)
	}
}

type recordingSink struct {
	markers int
	lines   int
}

func (r *recordingSink) Line(from, to math.Vec3, color [3]float32) { r.lines++ }

func (r *recordingSink) Marker(at math.Vec3, size float32, color [3]float32) { r.markers++ }

func TestEmitDebugDrawsProbes(t *testing.T) {
	cfg := DefaultConfig()
	d, err := NewDetector(flatGround(), cfg)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	d.EmitDebug(nil, [3]float32{}) // nil sink is fine

	d.Update(standingBody())
	var sink recordingSink
	d.EmitDebug(&sink, [3]float32{1, 1, 1})

	if want := cfg.NearSamples + cfg.FarSamples; sink.markers != want {
		t.Errorf("emitted %d probe markers, want %d", sink.markers, want)
	}
}

func TestSteppableZonesRejectBigDrops(t *testing.T) {
	// A cliff: ground is 2m below everywhere around the character.
	cliff := groundFunc(func(x, z float32) (float32, bool) { return -2, true })

	d, err := NewDetector(cliff, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	body := standingBody()
	d.Update(body)

	if zones := d.Analysis().Zones; len(zones) != 0 {
		t.Errorf("cliff produced %d steppable zones, want 0", len(zones))
	}
}
