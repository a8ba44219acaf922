// Package main is the entry point for the creeperworld demo.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/creeperworld/internal/assets"
	"github.com/Faultbox/creeperworld/internal/config"
	"github.com/Faultbox/creeperworld/internal/engine/audio"
	"github.com/Faultbox/creeperworld/internal/engine/camera"
	"github.com/Faultbox/creeperworld/internal/engine/debug"
	"github.com/Faultbox/creeperworld/internal/engine/renderer"
	"github.com/Faultbox/creeperworld/internal/engine/shader"
	"github.com/Faultbox/creeperworld/internal/engine/window"
	"github.com/Faultbox/creeperworld/internal/game"
	"github.com/Faultbox/creeperworld/internal/game/agents"
	"github.com/Faultbox/creeperworld/internal/game/scenes"
	"github.com/Faultbox/creeperworld/internal/logger"
	"github.com/Faultbox/creeperworld/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== CreeperWorld ===", zap.String("scene", cfg.Simulation.Scene))
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	// Assets: embedded models, overridden by files under the asset root.
	manager := assets.NewManager()
	manager.AddFS("builtin", assets.Builtin())
	if cfg.Assets.Root != "" {
		if err := manager.AddDir(cfg.Assets.Root); err != nil {
			logger.Debug("asset root not used", zap.Error(err))
		}
	}
	defer manager.Close()

	setup, err := scenes.Build(cfg.Simulation.Scene, assets.NewImporter(manager))
	if err != nil {
		return err
	}

	// Window first, the renderer needs its GL context.
	win, err := window.New(window.Config{
		Title:       "CreeperWorld - " + cfg.Simulation.Scene,
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		DepthBits:   cfg.Graphics.DepthBits,
		StencilBits: cfg.Graphics.StencilBits,
		MSAA:        cfg.Graphics.MSAA,
		GLVersion:   cfg.Graphics.GLVersion,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	width, height := win.Size()
	r, err := renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		ShaderDir: cfg.Assets.ShaderDir,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer r.Close()

	opts := game.Options{
		Screenshots: debug.NewScreenshotter(cfg.Graphics.Screenshots, "creeperworld"),
		FPSInterval: cfg.Simulation.FPSLogInterval,
	}

	sound := newSound(cfg, manager)
	if sound != nil {
		defer sound.Close()
		opts.Sound = sound
	}

	if cfg.Assets.WatchShaders && cfg.Assets.ShaderDir != "" {
		watcher, err := shader.Watch(cfg.Assets.ShaderDir)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			opts.Shaders = watcher
		}
	}

	sim := game.NewSim(setup, newCamera(cfg), game.SimConfig{
		PredatorSpeed: cfg.Simulation.PredatorSpeed,
		FleeSpeed:     cfg.Simulation.FleeSpeed,
		DayPhase:      cfg.DayCycle.PhaseSeconds,
		Agents: agents.Config{
			Bounds:        cfg.Simulation.Bounds,
			ExplodeRadius: cfg.Simulation.ExplodeRadius,
		},
	})
	g := game.New(win, r, sim, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err = g.Run(ctx)
	logger.Info("frame loop finished",
		zap.Int("frames", g.Frames()),
		zap.Duration("wall", time.Since(start)))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newCamera(cfg *config.Config) *camera.Camera {
	cam := camera.New()
	cam.FOV = math.Radians(cfg.Camera.FOV)
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.Sensitivity = math.Radians(cfg.Camera.Sensitivity)
	cam.MaxPitch = math.Radians(cfg.Camera.MaxPitch)
	cam.FollowDistance = cfg.Camera.FollowDistance
	cam.FollowHeight = cfg.Camera.FollowHeight
	return cam
}

// newSound opens the speaker. Audio is optional: on failure the demo runs silent.
func newSound(cfg *config.Config, manager *assets.Manager) *audio.Manager {
	if cfg.Audio.Muted {
		return nil
	}
	m := audio.New(float64(cfg.Audio.SFXVolume), false)
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}
	if cfg.Audio.Explosion != "" {
		data, err := manager.Load(cfg.Audio.Explosion)
		if err == nil {
			err = m.LoadExplosion(data)
		}
		if err != nil {
			logger.Warn("using synthesized explosion", zap.Error(err))
		}
	}
	return m
}
