// Package ik applies the stepping targets to two-bone leg chains,
// blending IK influence in and out so the feet can hand back to the raw
// pose without popping.
package ik

import (
	"fmt"

	"github.com/longiy/lcm/pkg/math"
)

// Chain is a two-bone (thigh/shin) kinematic chain.
type Chain struct {
	UpperLen float32
	LowerLen float32
}

// Solve places the mid joint for the chain rooted at root reaching for
// target, bending toward the pole hint. When the target is out of
// reach the chain extends straight toward it and reached is false.
func (c Chain) Solve(root, target, pole math.Vec3) (knee math.Vec3, reached bool) {
	toTarget := target.Sub(root)
	dist := toTarget.Length()
	maxReach := c.UpperLen + c.LowerLen

	if dist < 1e-6 {
		// Target on the root; fold the knee toward the pole.
		return root.Add(pole.Sub(root).Normalize().Scale(c.UpperLen)), false
	}

	dir := toTarget.Scale(1 / dist)

	if dist >= maxReach {
		return root.Add(dir.Scale(c.UpperLen)), false
	}

	// Law of cosines: distance from root to the knee's projection on
	// the root-target axis.
	a := (c.UpperLen*c.UpperLen - c.LowerLen*c.LowerLen + dist*dist) / (2 * dist)
	hSq := c.UpperLen*c.UpperLen - a*a
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	// Bend direction: the pole hint made perpendicular to the axis.
	bend := pole.Sub(root).Sub(dir.Scale(pole.Sub(root).Dot(dir)))
	if bend.Length() < 1e-6 {
		// Pole is on the axis; pick any perpendicular.
		bend = math.Vec3{X: 1}.Sub(dir.Scale(dir.X))
		if bend.Length() < 1e-6 {
			bend = math.Vec3{Z: 1}
		}
	}
	bend = bend.Normalize()

	return root.Add(dir.Scale(a)).Add(bend.Scale(h)), true
}

// Effector carries one foot's IK target and an influence weight that
// blends toward 1 while enabled and back to 0 while disabled.
type Effector struct {
	target    math.Vec3
	basis     math.Basis
	influence float32
	rate      float32
}

// SetTarget updates the effector's goal transform.
func (e *Effector) SetTarget(pos math.Vec3, basis math.Basis) {
	e.target = pos
	e.basis = basis
}

// Blend advances the influence weight toward 1 (enabled) or 0.
func (e *Effector) Blend(enabled bool, dt float32) {
	if e.rate <= 0 {
		e.rate = 5
	}
	step := e.rate * dt
	if enabled {
		e.influence = math.Clamp01(e.influence + step)
	} else {
		e.influence = math.Clamp01(e.influence - step)
	}
}

// Influence returns the current blend weight.
func (e *Effector) Influence() float32 {
	return e.influence
}

// Apply blends a raw pose position toward the effector target by the
// current influence.
func (e *Effector) Apply(raw math.Vec3) math.Vec3 {
	return raw.Lerp(e.target, e.influence)
}

// validateChain rejects degenerate bone lengths once, at construction.
func validateChain(c Chain) error {
	if c.UpperLen <= 0 || c.LowerLen <= 0 {
		return fmt.Errorf("ik: bone lengths must be positive, got %v/%v", c.UpperLen, c.LowerLen)
	}
	return nil
}
