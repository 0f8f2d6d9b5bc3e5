package world

import (
	"fmt"

	"github.com/longiy/lcm/pkg/math"
)

// Preset names a built-in terrain shape.
type Preset string

const (
	PresetFlat    Preset = "flat"
	PresetRolling Preset = "rolling"
	PresetRamp    Preset = "ramp"
	PresetStairs  Preset = "stairs"
)

// HeightfieldConfig describes a procedural heightfield.
type HeightfieldConfig struct {
	Preset Preset  `yaml:"preset"`
	Extent float32 `yaml:"extent"` // half-size of the square walkable area

	// Rolling terrain parameters.
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"` // radians per world unit of the base octave

	// Ramp parameters.
	RampSlope float32 `yaml:"ramp_slope"` // rise per unit of +Z

	// Stair parameters.
	StairHeight float32 `yaml:"stair_height"`
	StairDepth  float32 `yaml:"stair_depth"`
}

// DefaultHeightfieldConfig returns a gently rolling field.
func DefaultHeightfieldConfig() HeightfieldConfig {
	return HeightfieldConfig{
		Preset:      PresetRolling,
		Extent:      50,
		Amplitude:   0.35,
		Frequency:   0.25,
		RampSlope:   0.3,
		StairHeight: 0.18,
		StairDepth:  0.6,
	}
}

// Heightfield is an analytic terrain surface: a height function over the
// XZ plane with normals from central differences. It implements
// GroundQuery for the locomotion core and feeds the viewer's terrain grid.
type Heightfield struct {
	cfg    HeightfieldConfig
	height func(x, z float32) float32
}

// NewHeightfield builds a heightfield for the configured preset.
func NewHeightfield(cfg HeightfieldConfig) (*Heightfield, error) {
	h := &Heightfield{cfg: cfg}

	switch cfg.Preset {
	case PresetFlat, "":
		h.height = func(x, z float32) float32 { return 0 }
	case PresetRolling:
		amp, freq := cfg.Amplitude, cfg.Frequency
		h.height = func(x, z float32) float32 {
			// Two octaves keep the surface uneven without sharp features.
			return amp*math.Sin(x*freq)*math.Cos(z*freq) +
				0.4*amp*math.Sin(x*freq*2.7+1.3)*math.Sin(z*freq*2.3+0.7)
		}
	case PresetRamp:
		slope := cfg.RampSlope
		h.height = func(x, z float32) float32 {
			if z <= 0 {
				return 0
			}
			return z * slope
		}
	case PresetStairs:
		sh, sd := cfg.StairHeight, cfg.StairDepth
		if sd <= 0 {
			return nil, fmt.Errorf("heightfield: stair depth must be positive, got %v", sd)
		}
		h.height = func(x, z float32) float32 {
			if z <= 0 {
				return 0
			}
			return float32(int(z/sd)) * sh
		}
	default:
		return nil, fmt.Errorf("heightfield: unknown preset %q", cfg.Preset)
	}

	return h, nil
}

// HeightAt returns the surface height at a world XZ position.
func (h *Heightfield) HeightAt(x, z float32) float32 {
	return h.height(x, z)
}

// NormalAt returns the surface normal at a world XZ position, computed
// from central height differences.
func (h *Heightfield) NormalAt(x, z float32) math.Vec3 {
	const eps = 0.05
	dx := h.height(x+eps, z) - h.height(x-eps, z)
	dz := h.height(x, z+eps) - h.height(x, z-eps)
	return math.Vec3{X: -dx / (2 * eps), Y: 1, Z: -dz / (2 * eps)}.Normalize()
}

// InBounds reports whether the XZ position is inside the walkable extent.
func (h *Heightfield) InBounds(x, z float32) bool {
	e := h.cfg.Extent
	return x >= -e && x <= e && z >= -e && z <= e
}

// Extent returns the half-size of the walkable area.
func (h *Heightfield) Extent() float32 {
	return h.cfg.Extent
}

// Probe implements GroundQuery. The surface is single-valued over XZ, so
// the downward cast reduces to a height lookup: the probe hits when the
// surface lies at or below the origin and within maxDist of it.
func (h *Heightfield) Probe(origin math.Vec3, maxDist float32) (Hit, bool) {
	if !h.InBounds(origin.X, origin.Z) {
		return Hit{}, false
	}

	ground := h.height(origin.X, origin.Z)
	if ground > origin.Y || origin.Y-ground > maxDist {
		return Hit{}, false
	}

	return Hit{
		Point:  math.Vec3{X: origin.X, Y: ground, Z: origin.Z},
		Normal: h.NormalAt(origin.X, origin.Z),
	}, true
}
