package config

import (
	"flag"

	"github.com/longiy/lcm/internal/world"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagScenario  = flag.String("scenario", "", "Scenario to run")
	flagDuration  = flag.Float64("duration", -1, "Run duration in seconds (0 = forever)")
	flagPreset    = flag.String("terrain", "", "Terrain preset (flat, rolling, ramp, stairs)")
	flagTrace     = flag.String("trace", "", "CSV trace output path")
	flagTelemetry = flag.String("telemetry", "", "Enable telemetry on the given address")
	flagWidth     = flag.Int("width", 0, "Viewer window width")
	flagHeight    = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScenario != "" {
		cfg.Sim.Scenario = *flagScenario
	}
	if *flagDuration >= 0 {
		cfg.Sim.Duration = float32(*flagDuration)
	}
	if *flagPreset != "" {
		cfg.World.Preset = world.Preset(*flagPreset)
	}
	if *flagTrace != "" {
		cfg.Sim.Trace = *flagTrace
	}
	if *flagTelemetry != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Addr = *flagTelemetry
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
