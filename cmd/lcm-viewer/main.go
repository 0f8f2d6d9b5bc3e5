// Package main is the interactive debug viewer: WASD drives the
// character over the terrain while the locomotion state is drawn as
// line overlays.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/longiy/lcm/internal/config"
	"github.com/longiy/lcm/internal/logger"
	"github.com/longiy/lcm/internal/sim"
	"github.com/longiy/lcm/internal/viewer"
	"github.com/longiy/lcm/internal/world"
	"github.com/longiy/lcm/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	field, err := world.NewHeightfield(cfg.World)
	if err != nil {
		return err
	}

	body, err := sim.NewBody(field, cfg.Body, math.Vec3{})
	if err != nil {
		return err
	}

	rig, err := sim.NewRig(field, cfg.Rig)
	if err != nil {
		return err
	}

	win, err := viewer.NewWindow(viewer.WindowConfig{
		Title:      "lcm viewer",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := viewer.NewRenderer(cfg.Viewer.Width, cfg.Viewer.Height)
	if err != nil {
		return err
	}
	defer renderer.Close()

	input := viewer.NewInput()
	camera := viewer.NewOrbitCamera()
	overlay := viewer.NewOverlay()

	dt := cfg.Sim.Timestep
	step := time.Duration(float64(dt) * float64(time.Second))
	zone := ""

	for input.Update(camera) {
		if ok, w, h := input.Resized(); ok {
			renderer.Resize(w, h)
		}

		body.Update(input.MoveIntent(camera), dt)
		state := body.State()
		rig.Step(state, dt)

		camera.Follow(state.Position.Add(math.Vec3{Y: 1}), dt)
		overlay.Build(field, state, rig)

		if z := rig.Evaluator.Last().Zone.String(); z != zone {
			zone = z
			win.SetTitle("lcm viewer — " + zone)
		}

		w, h := win.Size()
		proj := math.Perspective(math.Radians(60), float32(w)/float32(h), 0.05, 200)
		viewProj := proj.Mul(camera.ViewMatrix())

		renderer.Begin()
		renderer.Draw(&overlay.Batch, viewProj)
		win.SwapBuffers()

		if !cfg.Viewer.VSync {
			time.Sleep(step)
		}
	}

	return nil
}
