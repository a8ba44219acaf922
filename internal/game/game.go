// Package game implements the simulation step and the main frame loop.
package game

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/creeperworld/internal/engine/debug"
	"github.com/Faultbox/creeperworld/internal/engine/input"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/internal/game/agents"
	"github.com/Faultbox/creeperworld/internal/logger"
)

// Platform is the window, input and clock the loop runs against.
type Platform interface {
	PollEvents() []input.Event
	Keys() input.State
	Now() time.Duration
	Present()
}

// Renderer draws one frame of a scene.
type Renderer interface {
	scene.Submitter
	Begin(f world.Frame)
	End()
	Resize(width, height int)
	Aspect() float32
}

// Reloader rebuilds shader programs by name.
type Reloader interface {
	Reload(names []string) error
}

// PixelReader reads back the last rendered frame as bottom-up RGBA.
type PixelReader interface {
	ReadPixels() ([]byte, int, int)
}

// ShaderWatcher reports shader programs whose sources changed on disk.
type ShaderWatcher interface {
	Changed() []string
	Err() error
}

// Sound plays effects triggered by the simulation.
type Sound interface {
	PlayExplosion() error
}

// Options are the optional collaborators of a Game.
type Options struct {
	Screenshots *debug.Screenshotter
	Shaders     ShaderWatcher
	Sound       Sound
	FPSInterval time.Duration
}

// Game runs a Sim against a platform and renderer, one step per frame.
type Game struct {
	platform Platform
	renderer Renderer
	sim      *Sim
	opts     Options
	log      *zap.Logger
	fps      *debug.FPSCounter

	stop       atomic.Bool
	frames     int
	screenshot bool
}

// New creates a game. Explosions are forwarded to opts.Sound when set.
func New(p Platform, r Renderer, sim *Sim, opts Options) *Game {
	g := &Game{
		platform: p,
		renderer: r,
		sim:      sim,
		opts:     opts,
		log:      logger.Named("game"),
		fps:      debug.NewFPSCounter(opts.FPSInterval),
	}
	sim.Agents.OnExplosion(g.onExplosion)
	return g
}

// Sim returns the simulation being run.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Frames returns the number of frames presented so far.
func (g *Game) Frames() int {
	return g.frames
}

// Stop asks the loop to exit after the current frame. Safe to call from
// any goroutine.
func (g *Game) Stop() {
	g.stop.Store(true)
}

// Run drives the frame loop until the window is closed, Stop is called,
// ctx is cancelled or every prey of the scene is gone.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("starting frame loop", zap.String("scene", g.sim.Scene.Name))
	last := g.platform.Now()

	for !g.stop.Load() {
		select {
		case <-ctx.Done():
			g.log.Info("frame loop cancelled")
			return ctx.Err()
		default:
		}

		if !g.handleEvents() {
			g.log.Info("close requested")
			return nil
		}

		now := g.platform.Now()
		dt := float32((now - last).Seconds())
		last = now

		g.sim.Step(dt, g.platform.Keys())
		g.reloadShaders()
		g.render()
		g.platform.Present()
		g.frames++

		if fps, ok := g.fps.Frame(time.Now()); ok {
			g.log.Debug("fps", zap.Float64("fps", fps), zap.Float32("dt", dt))
		}

		if g.sim.Done() {
			g.log.Info("all prey gone", zap.Float32("time", g.sim.Time()))
			return nil
		}
	}
	return nil
}

// handleEvents drains pending platform events and returns false on a close
// request.
func (g *Game) handleEvents() bool {
	for _, ev := range g.platform.PollEvents() {
		switch ev.Type {
		case input.EventQuit:
			return false
		case input.EventWindowResize:
			g.renderer.Resize(ev.Width, ev.Height)
		case input.EventKeyDown:
			switch ev.Key {
			case input.KeyEscape:
				return false
			case input.KeyF12:
				g.screenshot = true
			}
		}
	}
	return true
}

func (g *Game) render() {
	g.renderer.Begin(g.sim.Frame(g.renderer.Aspect()))
	g.sim.Scene.Render(g.renderer)
	g.renderer.End()

	if g.screenshot {
		g.screenshot = false
		g.capture()
	}
}

func (g *Game) capture() {
	pr, ok := g.renderer.(PixelReader)
	if !ok || g.opts.Screenshots == nil {
		return
	}
	pixels, w, h := pr.ReadPixels()
	name, err := g.opts.Screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", name))
}

// reloadShaders rebuilds programs whose sources changed. A broken edit
// keeps the previous program.
func (g *Game) reloadShaders() {
	if g.opts.Shaders == nil {
		return
	}
	if err := g.opts.Shaders.Err(); err != nil {
		g.log.Warn("shader watcher", zap.Error(err))
	}
	names := g.opts.Shaders.Changed()
	if len(names) == 0 {
		return
	}
	rl, ok := g.renderer.(Reloader)
	if !ok {
		return
	}
	if err := rl.Reload(names); err != nil {
		g.log.Error("shader reload failed", zap.Strings("programs", names), zap.Error(err))
		return
	}
	g.log.Info("shaders reloaded", zap.Strings("programs", names))
}

func (g *Game) onExplosion(e agents.Explosion) {
	if g.opts.Sound == nil {
		return
	}
	if err := g.opts.Sound.PlayExplosion(); err != nil {
		g.log.Warn("explosion sound", zap.String("agent", e.Name), zap.Error(err))
	}
}
