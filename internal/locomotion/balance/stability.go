package balance

import (
	"fmt"

	"github.com/longiy/lcm/internal/locomotion"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

// Zone classifies how far the CoG projection sits from the support
// polygon. The order matters: each zone's polygon strictly contains the
// previous one, so classification is monotonic.
type Zone int

const (
	ZoneStable Zone = iota
	ZoneMarginal
	ZoneUnstable
	ZoneCritical
)

func (z Zone) String() string {
	switch z {
	case ZoneStable:
		return "stable"
	case ZoneMarginal:
		return "marginal"
	case ZoneUnstable:
		return "unstable"
	default:
		return "critical"
	}
}

// StabilityConfig holds the support-polygon tunables.
type StabilityConfig struct {
	ForwardDepth float32 `yaml:"forward_depth"` // quad extension ahead of the feet
	BackDepth    float32 `yaml:"back_depth"`    // quad extension behind the feet

	MarginalOffset float32 `yaml:"marginal_offset"`
	UnstableOffset float32 `yaml:"unstable_offset"`
	CriticalOffset float32 `yaml:"critical_offset"`

	TerrainAlign  bool    `yaml:"terrain_align"`   // project quad corners onto the ground
	CacheCellSize float32 `yaml:"cache_cell_size"` // corner raycast cache bucket size
}

// DefaultStabilityConfig returns the stock stability tuning.
func DefaultStabilityConfig() StabilityConfig {
	return StabilityConfig{
		ForwardDepth:   0.2,
		BackDepth:      0.15,
		MarginalOffset: 0.08,
		UnstableOffset: 0.18,
		CriticalOffset: 0.3,
		TerrainAlign:   false,
		CacheCellSize:  0.25,
	}
}

// Classification is one frame's stability result.
type Classification struct {
	Zone    Zone
	Center  math.Vec2    // support polygon centroid in the XZ plane
	CoG     math.Vec2    // classified CoG projection
	Base    []math.Vec2  // base support quadrilateral
	Rings   [3][]math.Vec2 // marginal/unstable/critical offset polygons
	Corners [4]math.Vec3 // 3D corners, terrain-projected when enabled
}

// Evaluator builds the support polygon from the current foot positions
// and classifies the CoG projection against the nested stability zones.
type Evaluator struct {
	cfg    StabilityConfig
	ground world.GroundQuery

	cache map[[2]int32]float32
	last  Classification
}

// NewEvaluator returns a stability evaluator. The ground query is only
// required when terrain alignment is enabled.
func NewEvaluator(ground world.GroundQuery, cfg StabilityConfig) (*Evaluator, error) {
	if cfg.TerrainAlign && ground == nil {
		return nil, fmt.Errorf("balance: terrain alignment needs a ground query")
	}
	if !(cfg.MarginalOffset < cfg.UnstableOffset && cfg.UnstableOffset < cfg.CriticalOffset) {
		return nil, fmt.Errorf("balance: zone offsets must be strictly increasing")
	}
	return &Evaluator{
		cfg:    cfg,
		ground: ground,
		cache:  make(map[[2]int32]float32),
	}, nil
}

// Evaluate classifies the CoG against the support polygon spanned by
// the two foot positions, extended forward and back along the body's
// facing direction.
func (e *Evaluator) Evaluate(body locomotion.BodyState, leftFoot, rightFoot, cog math.Vec3) Classification {
	facing := body.Basis.Forward.XZ()
	if facing.Length() < 1e-6 {
		facing = math.Vec2{X: 0, Y: 1}
	}
	facing = facing.Normalize()

	l := leftFoot.XZ()
	r := rightFoot.XZ()
	fwd := facing.Scale(e.cfg.ForwardDepth)
	back := facing.Scale(e.cfg.BackDepth)

	base := []math.Vec2{
		l.Add(fwd),  // front left
		r.Add(fwd),  // front right
		r.Sub(back), // back right
		l.Sub(back), // back left
	}

	c := Classification{
		Base:   base,
		Center: polygonCenter(base),
		CoG:    cog.XZ(),
	}
	c.Rings[0] = offsetPolygon(base, e.cfg.MarginalOffset)
	c.Rings[1] = offsetPolygon(base, e.cfg.UnstableOffset)
	c.Rings[2] = offsetPolygon(base, e.cfg.CriticalOffset)

	for i, p := range base {
		y := leftFoot.Y
		if i == 1 || i == 2 {
			y = rightFoot.Y
		}
		if e.cfg.TerrainAlign {
			y = e.groundHeight(p, y)
		}
		c.Corners[i] = math.FromVec2XZ(p, y)
	}

	switch {
	case pointInPolygon(c.CoG, base):
		c.Zone = ZoneStable
	case pointInPolygon(c.CoG, c.Rings[0]):
		c.Zone = ZoneMarginal
	case pointInPolygon(c.CoG, c.Rings[1]):
		c.Zone = ZoneUnstable
	default:
		c.Zone = ZoneCritical
	}

	e.last = c
	return c
}

// Last returns the most recent classification.
func (e *Evaluator) Last() Classification {
	return e.last
}

// groundHeight projects a corner onto the terrain, caching by a coarse
// position bucket so corners that barely move between frames do not
// re-cast every frame.
func (e *Evaluator) groundHeight(p math.Vec2, fallback float32) float32 {
	cell := e.cfg.CacheCellSize
	if cell <= 0 {
		cell = 0.25
	}
	key := [2]int32{int32(p.X / cell), int32(p.Y / cell)}
	if h, ok := e.cache[key]; ok {
		return h
	}

	h := fallback
	origin := math.FromVec2XZ(p, fallback+1.0)
	if hit, ok := e.ground.Probe(origin, 3.0); ok {
		h = hit.Point.Y
	}

	// Bound the cache; buckets are revisited constantly while walking.
	if len(e.cache) > 4096 {
		clear(e.cache)
	}
	e.cache[key] = h
	return h
}
