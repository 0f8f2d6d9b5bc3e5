package balance

import (
	"testing"

	"github.com/longiy/lcm/pkg/math"
)

func TestPointInPolygon(t *testing.T) {
	square := []math.Vec2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}

	tests := []struct {
		name string
		p    math.Vec2
		want bool
	}{
		{"center", math.Vec2{}, true},
		{"near edge inside", math.Vec2{X: 0.99, Y: 0}, true},
		{"outside right", math.Vec2{X: 1.5, Y: 0}, false},
		{"outside diagonal", math.Vec2{X: 1.5, Y: 1.5}, false},
		{"far away", math.Vec2{X: 100, Y: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("pointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOffsetPolygonContainsOriginal(t *testing.T) {
	base := []math.Vec2{
		{X: -0.3, Y: 0.2}, {X: 0.3, Y: 0.2}, {X: 0.3, Y: -0.2}, {X: -0.3, Y: -0.2},
	}
	grown := offsetPolygon(base, 0.1)

	if len(grown) != len(base) {
		t.Fatalf("offsetPolygon() returned %d vertices, want %d", len(grown), len(base))
	}
	// Every original vertex must lie inside the grown polygon.
	for i, p := range base {
		if !pointInPolygon(p, grown) {
			t.Errorf("base vertex %d %v escaped the offset polygon %v", i, p, grown)
		}
	}
	// The grown polygon must actually grow.
	if a, b := polygonArea2(base), polygonArea2(grown); math.Abs(b) <= math.Abs(a) {
		t.Errorf("offset polygon area %v not larger than base %v", b, a)
	}
}

func TestOffsetPolygonWindingIndependent(t *testing.T) {
	ccw := []math.Vec2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}
	cw := []math.Vec2{ccw[3], ccw[2], ccw[1], ccw[0]}

	probe := math.Vec2{X: 1.05, Y: 0}
	if !pointInPolygon(probe, offsetPolygon(ccw, 0.2)) {
		t.Error("CCW offset polygon does not cover the grown edge")
	}
	if !pointInPolygon(probe, offsetPolygon(cw, 0.2)) {
		t.Error("CW offset polygon does not cover the grown edge")
	}
}

func TestNewEvaluatorValidation(t *testing.T) {
	cfg := DefaultStabilityConfig()
	cfg.TerrainAlign = true
	if _, err := NewEvaluator(nil, cfg); err == nil {
		t.Error("terrain alignment without a ground query should fail")
	}

	cfg = DefaultStabilityConfig()
	cfg.UnstableOffset = cfg.MarginalOffset
	if _, err := NewEvaluator(nil, cfg); err == nil {
		t.Error("non-increasing zone offsets should fail")
	}
}

func TestEvaluateNestedZones(t *testing.T) {
	eval, err := NewEvaluator(nil, DefaultStabilityConfig())
	if err != nil {
		t.Fatalf("NewEvaluator() error: %v", err)
	}

	body := restingBody()
	left := math.Vec3{X: -0.2}
	right := math.Vec3{X: 0.2}

	// Pushing the CoG further out along +X must never decrease the zone.
	prev := ZoneStable
	for _, x := range []float32{0, 0.15, 0.25, 0.35, 0.5, 1.0} {
		c := eval.Evaluate(body, left, right, math.Vec3{X: x, Y: 0.95})
		if c.Zone < prev {
			t.Errorf("zone regressed from %v to %v as CoG moved out to x=%v",
				prev, c.Zone, x)
		}
		prev = c.Zone
	}
	if prev != ZoneCritical {
		t.Errorf("far-out CoG classified %v, want critical", prev)
	}
}

func TestEvaluateCenteredIsStable(t *testing.T) {
	eval, err := NewEvaluator(nil, DefaultStabilityConfig())
	if err != nil {
		t.Fatalf("NewEvaluator() error: %v", err)
	}

	body := restingBody()
	c := eval.Evaluate(body, math.Vec3{X: -0.2}, math.Vec3{X: 0.2}, math.Vec3{Y: 0.95})

	if c.Zone != ZoneStable {
		t.Errorf("centered CoG classified %v, want stable", c.Zone)
	}
	if c.CoG != (math.Vec2{}) {
		t.Errorf("projected CoG = %v, want origin", c.CoG)
	}
	if got := eval.Last(); got.Zone != c.Zone {
		t.Errorf("Last() zone = %v, want %v", got.Zone, c.Zone)
	}
}

func TestEvaluateQuadFollowsFacing(t *testing.T) {
	eval, err := NewEvaluator(nil, DefaultStabilityConfig())
	if err != nil {
		t.Fatalf("NewEvaluator() error: %v", err)
	}

	body := restingBody() // facing +Z
	left := math.Vec3{X: -0.2}
	right := math.Vec3{X: 0.2}
	c := eval.Evaluate(body, left, right, math.Vec3{Y: 0.95})

	// Front corners extend along +Z, back corners along -Z.
	if c.Base[0].Y <= 0 || c.Base[1].Y <= 0 {
		t.Errorf("front corners %v %v should extend forward", c.Base[0], c.Base[1])
	}
	if c.Base[2].Y >= 0 || c.Base[3].Y >= 0 {
		t.Errorf("back corners %v %v should extend backward", c.Base[2], c.Base[3])
	}
}
