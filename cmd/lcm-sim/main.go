// Package main is the headless locomotion simulation runner.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/longiy/lcm/internal/config"
	"github.com/longiy/lcm/internal/logger"
	"github.com/longiy/lcm/internal/sim"
	"github.com/longiy/lcm/internal/telemetry"
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
		logger.Error("simulation error", zap.Error(err))
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

	scenario, err := sim.LookupScenario(cfg.Sim.Scenario)
	if err != nil {
		return err
	}

	runner, err := sim.NewRunner(body, rig, scenario, cfg.Sim.Timestep)
	if err != nil {
		return err
	}

	var hub *telemetry.Hub
	if cfg.Telemetry.Enabled {
		hub = telemetry.NewHub(cfg.Telemetry.Divisor)
		hub.Serve(cfg.Telemetry.Addr)
		defer hub.Close()
	}

	var trace *csv.Writer
	if cfg.Sim.Trace != "" {
		f, err := os.Create(cfg.Sim.Trace)
		if err != nil {
			return fmt.Errorf("trace file: %w", err)
		}
		defer f.Close()
		trace = csv.NewWriter(f)
		defer trace.Flush()
		writeTraceHeader(trace)
	}

	logger.Info("simulation starting",
		zap.String("scenario", cfg.Sim.Scenario),
		zap.String("terrain", string(cfg.World.Preset)),
		zap.Float64("duration", float64(cfg.Sim.Duration)),
		zap.Float64("timestep", float64(cfg.Sim.Timestep)),
	)

	var stats summary

	// With telemetry on, pace the loop in real time so subscribers see
	// a live character; otherwise run flat out.
	var ticker *time.Ticker
	if cfg.Telemetry.Enabled {
		ticker = time.NewTicker(time.Duration(float64(cfg.Sim.Timestep) * float64(time.Second)))
		defer ticker.Stop()
	}

	for cfg.Sim.Duration == 0 || runner.Time() < cfg.Sim.Duration {
		frame := runner.Step()
		stats.observe(frame)

		if hub != nil {
			hub.Broadcast(frame)
		}
		if trace != nil {
			writeTraceRow(trace, frame)
		}
		if ticker != nil {
			<-ticker.C
		}
	}

	stats.log()
	return nil
}

// summary accumulates run statistics for the exit report.
type summary struct {
	frames     int64
	leftSteps  int
	rightSteps int
	zones      map[string]int64

	prevLeft  bool
	prevRight bool
}

func (s *summary) observe(f sim.Frame) {
	if s.zones == nil {
		s.zones = make(map[string]int64)
	}
	s.frames++
	s.zones[f.Stability]++

	if f.Left.Swinging && !s.prevLeft {
		s.leftSteps++
	}
	if f.Right.Swinging && !s.prevRight {
		s.rightSteps++
	}
	s.prevLeft = f.Left.Swinging
	s.prevRight = f.Right.Swinging
}

func (s *summary) log() {
	logger.Info("simulation finished",
		zap.Int64("frames", s.frames),
		zap.Int("left_steps", s.leftSteps),
		zap.Int("right_steps", s.rightSteps),
		zap.Any("stability", s.zones),
	)
}

func writeTraceHeader(w *csv.Writer) {
	_ = w.Write([]string{
		"tick", "time", "x", "y", "z", "speed",
		"left_x", "left_y", "left_z", "left_swinging",
		"right_x", "right_y", "right_z", "right_swinging",
		"step_length", "stability",
	})
}

func writeTraceRow(w *csv.Writer, f sim.Frame) {
	_ = w.Write([]string{
		fmt.Sprint(f.Tick),
		fmt.Sprintf("%.4f", f.Time),
		fmt.Sprintf("%.4f", f.Position[0]),
		fmt.Sprintf("%.4f", f.Position[1]),
		fmt.Sprintf("%.4f", f.Position[2]),
		fmt.Sprintf("%.4f", f.Speed),
		fmt.Sprintf("%.4f", f.Left.Position[0]),
		fmt.Sprintf("%.4f", f.Left.Position[1]),
		fmt.Sprintf("%.4f", f.Left.Position[2]),
		fmt.Sprint(f.Left.Swinging),
		fmt.Sprintf("%.4f", f.Right.Position[0]),
		fmt.Sprintf("%.4f", f.Right.Position[1]),
		fmt.Sprintf("%.4f", f.Right.Position[2]),
		fmt.Sprint(f.Right.Swinging),
		fmt.Sprintf("%.4f", f.StepLength),
		f.Stability,
	})
}
