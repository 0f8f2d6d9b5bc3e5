package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/longiy/lcm/internal/sim"
	"github.com/longiy/lcm/pkg/math"
)

// Input polls SDL events and converts them into a movement intent and
// camera adjustments.
type Input struct {
	quit     bool
	resized  bool
	width    int
	height   int
	dragging bool

	keys map[sdl.Scancode]bool
}

// NewInput returns an input handler.
func NewInput() *Input {
	return &Input{keys: make(map[sdl.Scancode]bool)}
}

// Update polls pending SDL events, feeding drags and zooms to the
// camera. Returns false when the viewer should quit.
func (in *Input) Update(cam *OrbitCamera) bool {
	in.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				in.resized = true
				in.width = int(e.Data1)
				in.height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			down := e.Type == sdl.KEYDOWN
			in.keys[e.Keysym.Scancode] = down
			if down && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				in.quit = true
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				in.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if in.dragging {
				cam.HandleDrag(float32(e.XRel), float32(e.YRel))
			}

		case *sdl.MouseWheelEvent:
			cam.HandleZoom(float32(e.Y))
		}
	}

	return !in.quit
}

// Resized reports a pending window resize and its new size.
func (in *Input) Resized() (bool, int, int) {
	return in.resized, in.width, in.height
}

// MoveIntent converts the held WASD keys into a camera-relative
// movement intent; holding shift sprints.
func (in *Input) MoveIntent(cam *OrbitCamera) sim.MoveIntent {
	var dir math.Vec2
	if in.keys[sdl.SCANCODE_W] {
		dir.Y += 1
	}
	if in.keys[sdl.SCANCODE_S] {
		dir.Y -= 1
	}
	if in.keys[sdl.SCANCODE_A] {
		dir.X -= 1
	}
	if in.keys[sdl.SCANCODE_D] {
		dir.X += 1
	}
	if dir.Length() == 0 {
		return sim.MoveIntent{}
	}
	dir = dir.Normalize()

	// Rotate the input into the camera's horizontal frame so forward
	// always means away from the camera.
	// Camera forward in XZ is (-sin, -cos); right is (cos, -sin).
	sin, cos := math.Sin(cam.RotationY), math.Cos(cam.RotationY)
	worldDir := math.Vec2{
		X: dir.X*cos - dir.Y*sin,
		Y: -dir.X*sin - dir.Y*cos,
	}

	scale := float32(0.5)
	if in.keys[sdl.SCANCODE_LSHIFT] || in.keys[sdl.SCANCODE_RSHIFT] {
		scale = 1
	}
	return sim.MoveIntent{Dir: worldDir, Scale: scale}
}
