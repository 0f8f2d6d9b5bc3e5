package sim

import (
	"fmt"
	"sort"

	"github.com/longiy/lcm/pkg/math"
)

// Scenario produces scripted movement input over time. Scenarios drive
// the headless runner, the viewer's auto mode, and integration tests.
type Scenario func(t float32) MoveIntent

var scenarios = map[string]Scenario{
	"idle": func(t float32) MoveIntent {
		return MoveIntent{}
	},
	"walk": func(t float32) MoveIntent {
		return MoveIntent{Dir: math.Vec2{Y: 1}, Scale: 0.5}
	},
	"sprint": func(t float32) MoveIntent {
		return MoveIntent{Dir: math.Vec2{Y: 1}, Scale: 1}
	},
	"circle": func(t float32) MoveIntent {
		// A slow turn: the heading advances a quarter revolution per
		// second while throttle stays moderate.
		a := t * math.Pi / 2
		return MoveIntent{Dir: math.Vec2{X: math.Sin(a), Y: math.Cos(a)}, Scale: 0.6}
	},
	"zigzag": func(t float32) MoveIntent {
		x := float32(1)
		if int(t/1.5)%2 == 1 {
			x = -1
		}
		return MoveIntent{Dir: math.Vec2{X: x * 0.5, Y: 1}.Normalize(), Scale: 0.7}
	},
	"march": func(t float32) MoveIntent {
		// Alternate four seconds of walking with two at rest, which
		// exercises both the idle stabilization path and gait spin-up.
		phase := t - float32(int(t/6))*6
		if phase < 4 {
			return MoveIntent{Dir: math.Vec2{Y: 1}, Scale: 0.6}
		}
		return MoveIntent{}
	},
}

// LookupScenario returns a named scenario.
func LookupScenario(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("sim: unknown scenario %q (have %v)", name, ScenarioNames())
	}
	return s, nil
}

// ScenarioNames lists the available scenarios, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner steps a body, rig and scenario together at a fixed dt.
type Runner struct {
	Body     *Body
	Rig      *Rig
	Scenario Scenario

	dt   float32
	time float32
	tick int64
}

// NewRunner returns a fixed-timestep runner.
func NewRunner(body *Body, rig *Rig, scenario Scenario, dt float32) (*Runner, error) {
	if body == nil || rig == nil || scenario == nil {
		return nil, fmt.Errorf("sim: runner needs a body, rig and scenario")
	}
	if dt <= 0 {
		return nil, fmt.Errorf("sim: timestep must be positive, got %v", dt)
	}
	return &Runner{Body: body, Rig: rig, Scenario: scenario, dt: dt}, nil
}

// Step advances one frame and returns its snapshot.
func (r *Runner) Step() Frame {
	r.Body.Update(r.Scenario(r.time), r.dt)
	state := r.Body.State()
	r.Rig.Step(state, r.dt)

	frame := Snapshot(r.tick, r.time, state, r.Rig)
	r.tick++
	r.time += r.dt
	return frame
}

// Time returns the accumulated simulation time.
func (r *Runner) Time() float32 {
	return r.time
}
