// Package config handles simulation configuration loading and management.
package config

import (
	"github.com/longiy/lcm/internal/sim"
	"github.com/longiy/lcm/internal/world"
)

// Config holds all simulation settings.
type Config struct {
	Sim       SimConfig               `yaml:"sim"`
	Body      sim.BodyConfig          `yaml:"body"`
	World     world.HeightfieldConfig `yaml:"world"`
	Rig       sim.RigConfig           `yaml:"rig"`
	Telemetry TelemetryConfig         `yaml:"telemetry"`
	Viewer    ViewerConfig            `yaml:"viewer"`
	Logging   LoggingConfig           `yaml:"logging"`
}

// SimConfig holds the frame-loop settings.
type SimConfig struct {
	Timestep float32 `yaml:"timestep"` // fixed simulation dt, seconds
	Duration float32 `yaml:"duration"` // headless run length, seconds (0 = forever)
	Scenario string  `yaml:"scenario"`
	Trace    string  `yaml:"trace"` // CSV trace output path, empty to disable
}

// TelemetryConfig holds the websocket broadcast settings.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Divisor int    `yaml:"divisor"` // broadcast every Nth frame
}

// ViewerConfig holds display settings for the debug viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			Timestep: 1.0 / 60.0,
			Duration: 20,
			Scenario: "walk",
		},
		Body:  sim.DefaultBodyConfig(),
		World: world.DefaultHeightfieldConfig(),
		Rig:   sim.DefaultRigConfig(),
		Telemetry: TelemetryConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8791",
			Divisor: 2,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
