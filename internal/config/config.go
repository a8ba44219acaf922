// Package config handles configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	DayCycle   DayCycleConfig   `yaml:"day_cycle"`
	Audio      AudioConfig      `yaml:"audio"`
	Assets     AssetsConfig     `yaml:"assets"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds window and context settings.
type GraphicsConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Fullscreen  bool   `yaml:"fullscreen"`
	VSync       bool   `yaml:"vsync"`
	DepthBits   int    `yaml:"depth_bits"`
	StencilBits int    `yaml:"stencil_bits"`
	MSAA        int    `yaml:"msaa"`
	GLVersion   string `yaml:"gl_version"` // requested context version, e.g. "4.1"
	Screenshots string `yaml:"screenshots"`
}

// CameraConfig holds view and control settings.
type CameraConfig struct {
	FOV            float32 `yaml:"fov"` // degrees
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
	Sensitivity    float32 `yaml:"sensitivity"` // degrees per second
	MaxPitch       float32 `yaml:"max_pitch"`   // degrees
	FollowDistance float32 `yaml:"follow_distance"`
	FollowHeight   float32 `yaml:"follow_height"`
}

// SimulationConfig holds agent behaviour settings.
type SimulationConfig struct {
	Scene          string        `yaml:"scene"`
	PredatorSpeed  float32       `yaml:"predator_speed"`
	FleeSpeed      float32       `yaml:"flee_speed"`
	Bounds         float32       `yaml:"bounds"` // half extent of the square arena
	ExplodeRadius  float32       `yaml:"explode_radius"`
	FPSLogInterval time.Duration `yaml:"fps_log_interval"`
}

// DayCycleConfig holds the time-of-day settings.
type DayCycleConfig struct {
	PhaseSeconds float32 `yaml:"phase_seconds"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	SFXVolume float32 `yaml:"sfx_volume"`
	Muted     bool    `yaml:"muted"`
	Explosion string  `yaml:"explosion"` // wav file; empty synthesizes a tone
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	Root         string `yaml:"root"`
	WatchShaders bool   `yaml:"watch_shaders"`
	ShaderDir    string `yaml:"shader_dir"` // on-disk overrides for the embedded shaders
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1200,
			Height:      800,
			VSync:       true,
			DepthBits:   24,
			StencilBits: 8,
			MSAA:        2,
			GLVersion:   "4.1",
			Screenshots: "screenshots",
		},
		Camera: CameraConfig{
			FOV:            45,
			Near:           0.1,
			Far:            100,
			Sensitivity:    180,
			MaxPitch:       89,
			FollowDistance: 5,
			FollowHeight:   3,
		},
		Simulation: SimulationConfig{
			Scene:          "minecraft",
			PredatorSpeed:  2,
			FleeSpeed:      1,
			Bounds:         50,
			ExplodeRadius:  0.8,
			FPSLogInterval: time.Second,
		},
		DayCycle: DayCycleConfig{
			PhaseSeconds: 30,
		},
		Audio: AudioConfig{
			SFXVolume: 0.8,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the program cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: invalid clip range %v..%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Simulation.Bounds <= 0 {
		return fmt.Errorf("simulation: bounds must be positive, got %v", c.Simulation.Bounds)
	}
	if c.Simulation.Scene == "" {
		return fmt.Errorf("simulation: no scene selected")
	}
	return nil
}
