// Package agents drives autonomous scene actors on an ECS world.
//
// Each agent is a donburi entity pointing at a scene graph node. Systems
// move the node and remove it when a predator gets close, publishing an
// Explosion event for whoever wants to react (audio, logging).
package agents

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"

	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/logger"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// NodeRef ties an entity to its scene node.
type NodeRef struct {
	Handle scene.Handle
}

// Flee moves an entity along Dir, bouncing off the map bounds.
type Flee struct {
	Dir   math.Vec3
	Speed float32
}

// Explosion is published when a predator reaches an agent.
type Explosion struct {
	Name     string
	Node     scene.Handle
	Position math.Vec3
	Distance float32
}

var (
	NodeRefComponent = donburi.NewComponentType[NodeRef]()
	FleeComponent    = donburi.NewComponentType[Flee]()

	ExplosionEvent = events.NewEventType[Explosion]()
)

// Config holds the behaviour tuning.
type Config struct {
	Bounds        float32 // agents stay within [-Bounds, Bounds] on X and Z
	ExplodeRadius float32
}

// DefaultConfig returns the demo tuning.
func DefaultConfig() Config {
	return Config{Bounds: 50, ExplodeRadius: 0.8}
}

// World owns the ECS world and the systems that act on a scene graph.
type World struct {
	ecs   donburi.World
	graph *scene.Graph
	cfg   Config
	log   *zap.Logger

	agents  *donburi.Query
	fleeing *donburi.Query
}

// NewWorld creates an agent world acting on graph.
func NewWorld(graph *scene.Graph, cfg Config) *World {
	return &World{
		ecs:     donburi.NewWorld(),
		graph:   graph,
		cfg:     cfg,
		log:     logger.Named("agents"),
		agents:  donburi.NewQuery(filter.Contains(NodeRefComponent)),
		fleeing: donburi.NewQuery(filter.Contains(NodeRefComponent, FleeComponent)),
	}
}

// ECS exposes the underlying donburi world.
func (w *World) ECS() donburi.World {
	return w.ecs
}

// Spawn registers a fleeing agent for the node h.
func (w *World) Spawn(h scene.Handle, dir math.Vec3, speed float32) donburi.Entity {
	e := w.ecs.Create(NodeRefComponent, FleeComponent)
	entry := w.ecs.Entry(e)
	NodeRefComponent.SetValue(entry, NodeRef{Handle: h})
	FleeComponent.SetValue(entry, Flee{Dir: dir, Speed: speed})
	return e
}

// Len returns the number of live agents.
func (w *World) Len() int {
	return w.agents.Count(w.ecs)
}

// Handles returns the node handle of every agent.
func (w *World) Handles() []scene.Handle {
	var hs []scene.Handle
	w.agents.Each(w.ecs, func(entry *donburi.Entry) {
		hs = append(hs, NodeRefComponent.Get(entry).Handle)
	})
	return hs
}

// OnExplosion subscribes fn to explosion events. Events are delivered at
// the end of Explode.
func (w *World) OnExplosion(fn func(Explosion)) {
	ExplosionEvent.Subscribe(w.ecs, func(_ donburi.World, e Explosion) {
		fn(e)
	})
}

// Flee advances every fleeing agent by dt. A step that would leave the
// bounds inverts that component of the direction before moving, and the
// node is turned to face its direction of travel.
func (w *World) Flee(dt float32) {
	w.fleeing.Each(w.ecs, func(entry *donburi.Entry) {
		node, err := w.graph.Node(NodeRefComponent.Get(entry).Handle)
		if err != nil {
			return
		}
		f := FleeComponent.Get(entry)
		pos := node.Transform.Position()

		proposed := pos.Add(f.Dir.Scale(f.Speed * dt))
		if proposed.X < -w.cfg.Bounds || proposed.X > w.cfg.Bounds {
			f.Dir.X = -f.Dir.X
		}
		if proposed.Z < -w.cfg.Bounds || proposed.Z > w.cfg.Bounds {
			f.Dir.Z = -f.Dir.Z
		}

		node.Transform.SetPosition(pos.Add(f.Dir.Scale(f.Speed * dt)))
		node.Transform.SetOrientation(math.Vec3{Y: f.Dir.Heading()})
	})
}

// Explode removes every agent within the explode radius of predator, along
// with its scene subtree, and returns how many went off. Agents whose node
// is already gone are dropped silently.
func (w *World) Explode(predator math.Vec3) int {
	type hit struct {
		entity donburi.Entity
		ev     Explosion
		stale  bool
	}
	var hits []hit

	w.agents.Each(w.ecs, func(entry *donburi.Entry) {
		h := NodeRefComponent.Get(entry).Handle
		node, err := w.graph.Node(h)
		if err != nil {
			hits = append(hits, hit{entity: entry.Entity(), stale: true})
			return
		}
		pos := node.Transform.Position()
		if d := predator.Distance(pos); d < w.cfg.ExplodeRadius {
			hits = append(hits, hit{
				entity: entry.Entity(),
				ev:     Explosion{Name: node.Name, Node: h, Position: pos, Distance: d},
			})
		}
	})

	exploded := 0
	for _, h := range hits {
		w.ecs.Remove(h.entity)
		if h.stale {
			continue
		}
		if err := w.graph.Remove(h.ev.Node); err != nil {
			w.log.Warn("explosion target already removed", zap.Error(err))
			continue
		}
		exploded++
		w.log.Info("boom",
			zap.String("agent", h.ev.Name),
			zap.Float32("distance", h.ev.Distance))
		ExplosionEvent.Publish(w.ecs, h.ev)
	}
	ExplosionEvent.ProcessEvents(w.ecs)
	return exploded
}
