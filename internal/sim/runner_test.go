package sim

import (
	"testing"

	"github.com/longiy/lcm/internal/locomotion/stepping"
	"github.com/longiy/lcm/pkg/math"
)

func TestLookupScenario(t *testing.T) {
	for _, name := range ScenarioNames() {
		if _, err := LookupScenario(name); err != nil {
			t.Errorf("LookupScenario(%q) error: %v", name, err)
		}
	}
	if _, err := LookupScenario("moonwalk"); err == nil {
		t.Error("unknown scenario should fail")
	}
}

func TestNewRunnerValidation(t *testing.T) {
	field := flatField(t)
	body, err := NewBody(field, DefaultBodyConfig(), math.Vec3{})
	if err != nil {
		t.Fatalf("NewBody() error: %v", err)
	}
	rig, err := NewRig(field, DefaultRigConfig())
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	scenario, _ := LookupScenario("idle")

	if _, err := NewRunner(nil, rig, scenario, 1.0/60); err == nil {
		t.Error("nil body should fail")
	}
	if _, err := NewRunner(body, rig, nil, 1.0/60); err == nil {
		t.Error("nil scenario should fail")
	}
	if _, err := NewRunner(body, rig, scenario, 0); err == nil {
		t.Error("zero timestep should fail")
	}
}

func TestWalkScenarioIntegration(t *testing.T) {
	field := flatField(t)
	body, err := NewBody(field, DefaultBodyConfig(), math.Vec3{})
	if err != nil {
		t.Fatalf("NewBody() error: %v", err)
	}
	rig, err := NewRig(field, DefaultRigConfig())
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	scenario, err := LookupScenario("walk")
	if err != nil {
		t.Fatalf("LookupScenario() error: %v", err)
	}
	runner, err := NewRunner(body, rig, scenario, 1.0/60)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}

	steps, critical := 0, 0
	var last Frame
	wasSwinging := [2]bool{}
	for i := 0; i < 600; i++ {
		last = runner.Step()

		if last.Left.Swinging && last.Right.Swinging {
			t.Fatalf("both feet swinging at tick %d", last.Tick)
		}
		if last.Left.Swinging && !wasSwinging[0] {
			steps++
		}
		if last.Right.Swinging && !wasSwinging[1] {
			steps++
		}
		wasSwinging[0], wasSwinging[1] = last.Left.Swinging, last.Right.Swinging
		if last.Stability == "critical" {
			critical++
		}
	}

	if steps < 4 {
		t.Errorf("walk scenario triggered %d steps over 10s, want several", steps)
	}
	if last.Position[2] < 5 {
		t.Errorf("body only reached z=%v after 10s of walking", last.Position[2])
	}
	if last.Speed < 1.5 {
		t.Errorf("cruise speed = %v, want around half max", last.Speed)
	}
	if last.TerrainStale {
		t.Error("terrain analysis stale over flat ground")
	}
	// Transient excursions mid-swing are fine; the walk as a whole must
	// not live in the critical zone.
	if critical > 300 {
		t.Errorf("%d of 600 walk frames classified critical", critical)
	}

	// Both feet stay near the body the whole way out.
	for _, f := range []stepping.FootIndex{stepping.FootLeft, stepping.FootRight} {
		foot := rig.Bridge.FootPosition(f)
		d := foot.Horizontal().Distance(body.Position().Horizontal())
		if d > 1.5 {
			t.Errorf("foot %v ended %vm from the body", f, d)
		}
	}
}

func TestIdleScenarioStaysPut(t *testing.T) {
	field := flatField(t)
	body, _ := NewBody(field, DefaultBodyConfig(), math.Vec3{})
	rig, err := NewRig(field, DefaultRigConfig())
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	scenario, _ := LookupScenario("idle")
	runner, err := NewRunner(body, rig, scenario, 1.0/60)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}

	var last Frame
	for i := 0; i < 300; i++ {
		last = runner.Step()
		if last.Left.Swinging || last.Right.Swinging {
			t.Fatalf("idle character stepped at tick %d", last.Tick)
		}
	}

	if last.Speed != 0 {
		t.Errorf("idle speed = %v, want 0", last.Speed)
	}
	if last.Stability != "stable" {
		t.Errorf("idle stance classified %q, want stable", last.Stability)
	}
	if got := runner.Time(); math.Abs(got-300.0/60) > 1e-3 {
		t.Errorf("runner time = %v, want 5s", got)
	}
}

func TestSnapshotTracksTicks(t *testing.T) {
	field := flatField(t)
	body, _ := NewBody(field, DefaultBodyConfig(), math.Vec3{})
	rig, err := NewRig(field, DefaultRigConfig())
	if err != nil {
		t.Fatalf("NewRig() error: %v", err)
	}
	scenario, _ := LookupScenario("walk")
	runner, err := NewRunner(body, rig, scenario, 1.0/60)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}

	for want := int64(0); want < 5; want++ {
		if frame := runner.Step(); frame.Tick != want {
			t.Errorf("frame tick = %d, want %d", frame.Tick, want)
		}
	}
}
