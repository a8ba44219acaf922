package game

import (
	"github.com/Faultbox/creeperworld/internal/engine/camera"
	"github.com/Faultbox/creeperworld/internal/engine/daycycle"
	"github.com/Faultbox/creeperworld/internal/engine/input"
	"github.com/Faultbox/creeperworld/internal/engine/lighting"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/internal/game/agents"
	"github.com/Faultbox/creeperworld/internal/game/scenes"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// SimConfig holds the simulation tuning.
type SimConfig struct {
	PredatorSpeed float32 // units per second
	FleeSpeed     float32
	DayPhase      float32 // seconds per day cycle phase
	Agents        agents.Config
}

// DefaultSimConfig returns the demo tuning.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		PredatorSpeed: 2,
		FleeSpeed:     1,
		DayPhase:      daycycle.DefaultPhase,
		Agents:        agents.DefaultConfig(),
	}
}

// Sim advances one scene by discrete steps. It holds no platform or GPU
// state, so a step is fully determined by dt and the key snapshot.
type Sim struct {
	Scene  *world.Scene
	Camera *camera.Camera
	Day    *daycycle.Cycle
	Agents *agents.World

	cfg      SimConfig
	predator scene.Handle
	sun      scene.Handle
	hasPrey  bool
	time     float32
}

// NewSim wraps a built scene, registers its prey as fleeing agents and
// starts its animators.
func NewSim(setup *scenes.Setup, cam *camera.Camera, cfg SimConfig) *Sim {
	s := &Sim{
		Scene:    setup.Scene,
		Camera:   cam,
		Day:      daycycle.New(cfg.DayPhase),
		Agents:   agents.NewWorld(setup.Scene.Graph, cfg.Agents),
		cfg:      cfg,
		predator: setup.Predator,
		sun:      setup.Sun,
		hasPrey:  len(setup.Prey) > 0,
	}
	for _, p := range setup.Prey {
		s.Agents.Spawn(p.Node, p.Dir, cfg.FleeSpeed)
	}
	s.Scene.Start()
	return s
}

// Predator returns the player-controlled node, Nil if the scene has none.
func (s *Sim) Predator() scene.Handle {
	return s.predator
}

// Time returns the simulated seconds so far.
func (s *Sim) Time() float32 {
	return s.time
}

// Done reports whether the scene declared prey and all of it is gone.
func (s *Sim) Done() bool {
	return s.hasPrey && s.Agents.Len() == 0
}

// Step advances the simulation by dt seconds. dt is not clamped: a long
// stall produces one large step.
func (s *Sim) Step(dt float32, keys input.State) {
	s.time += dt
	g := s.Scene.Graph

	s.Day.Advance(dt)
	if sun, err := g.Node(s.sun); err == nil {
		sun.Transform.SetPosition(s.Day.SunPosition())
	}

	s.Camera.Update(keys, dt)

	if predator, err := g.Node(s.predator); err == nil {
		s.movePredator(&predator.Transform, keys, dt)
		s.Camera.Follow(predator.Transform.Position())
	}

	s.Agents.Flee(dt)
	if predator, err := g.Node(s.predator); err == nil {
		s.Agents.Explode(predator.Transform.Position())
	}

	s.Scene.Tick(dt)
}

// movePredator applies each held arrow key as a camera-relative step on the
// ground plane and turns the predator to face the last step taken.
func (s *Sim) movePredator(t *scene.Transform, keys input.State, dt float32) {
	forward := s.Camera.Forward()
	right := s.Camera.Right()
	moves := []struct {
		key input.Key
		dir math.Vec3
	}{
		{input.KeyUp, forward},
		{input.KeyDown, forward.Neg()},
		{input.KeyLeft, right.Neg()},
		{input.KeyRight, right},
	}
	for _, m := range moves {
		if !keys.Down(m.key) {
			continue
		}
		t.Move(m.dir.Scale(s.cfg.PredatorSpeed * dt))
		t.SetOrientation(math.Vec3{Y: m.dir.Heading()})
	}
}

// sunReach is how far from the origin the sun still lights the scene.
const sunReach = 500

// Frame returns the per-frame shading inputs for the current state. While
// the sun is up, light travels from it to the origin; otherwise the
// scene's own light direction is kept.
func (s *Sim) Frame(aspect float32) world.Frame {
	shading := s.Scene.Shading
	if m, err := s.Scene.Graph.WorldMatrix(s.sun); err == nil {
		if dir, ok := lighting.FromSun(m.Translation(), math.Vec3{}, sunReach); ok {
			shading.LightDir = dir
		}
	}
	return world.Frame{
		View:       s.Camera.ViewMatrix(),
		Projection: s.Camera.ProjectionMatrix(aspect),
		Ambient:    s.Day.Ambient(),
		ViewPos:    s.Camera.Position,
		Shading:    shading,
	}
}
