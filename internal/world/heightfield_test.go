package world

import (
	"testing"

	"github.com/longiy/lcm/pkg/math"
)

func TestFlatFieldProbe(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{Preset: PresetFlat, Extent: 10})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}

	hit, ok := f.Probe(math.Vec3{X: 1, Y: 2, Z: 3}, 5)
	if !ok {
		t.Fatal("Probe() missed flat ground")
	}
	if hit.Point.Y != 0 {
		t.Errorf("hit height = %v, want 0", hit.Point.Y)
	}
	if hit.Normal != (math.Vec3{Y: 1}) {
		t.Errorf("flat normal = %v, want +Y", hit.Normal)
	}
}

func TestProbeMissesOutOfRange(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{Preset: PresetFlat, Extent: 10})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}

	if _, ok := f.Probe(math.Vec3{Y: 10}, 5); ok {
		t.Error("Probe() should miss when ground is beyond maxDist")
	}
	if _, ok := f.Probe(math.Vec3{Y: -1}, 5); ok {
		t.Error("Probe() should miss when origin is below ground")
	}
}

func TestProbeMissesOutOfBounds(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{Preset: PresetFlat, Extent: 10})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}
	if _, ok := f.Probe(math.Vec3{X: 50, Y: 1}, 5); ok {
		t.Error("Probe() should miss outside the walkable extent")
	}
}

func TestRampHeights(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{Preset: PresetRamp, Extent: 20, RampSlope: 0.5})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}
	if got := f.HeightAt(0, -5); got != 0 {
		t.Errorf("height before ramp = %v, want 0", got)
	}
	if got := f.HeightAt(0, 4); got != 2 {
		t.Errorf("height on ramp = %v, want 2", got)
	}
}

func TestRampNormalTiltsBack(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{Preset: PresetRamp, Extent: 20, RampSlope: 0.5})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}
	n := f.NormalAt(0, 5)
	if n.Z >= 0 {
		t.Errorf("ramp normal Z = %v, want negative (tilting away from the climb)", n.Z)
	}
	if n.Y <= 0 {
		t.Errorf("ramp normal Y = %v, want positive", n.Y)
	}
}

func TestStairsQuantizeHeight(t *testing.T) {
	f, err := NewHeightfield(HeightfieldConfig{
		Preset: PresetStairs, Extent: 20, StairHeight: 0.2, StairDepth: 0.5,
	})
	if err != nil {
		t.Fatalf("NewHeightfield() error: %v", err)
	}
	if got := f.HeightAt(0, 0.25); got != 0 {
		t.Errorf("first tread height = %v, want 0", got)
	}
	if got := f.HeightAt(0, 1.25); got != 0.4 {
		t.Errorf("third tread height = %v, want 0.4", got)
	}
}

func TestUnknownPresetFails(t *testing.T) {
	if _, err := NewHeightfield(HeightfieldConfig{Preset: "mesa"}); err == nil {
		t.Error("NewHeightfield() with unknown preset should fail")
	}
}
