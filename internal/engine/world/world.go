// Package world holds the Scene aggregate: what is currently simulated and rendered.
package world

import (
	"github.com/Faultbox/creeperworld/internal/engine/animation"
	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Shader program names understood by the renderer.
const (
	ProgramTexturing = "texturing"
	ProgramLighting  = "lighting"
)

// Shading is the program used for a scene together with its scene-wide parameters.
type Shading struct {
	Program  string
	Material model.Material
	// LightDir is the direction light travels in, used by the lighting program.
	LightDir math.Vec3
}

// DefaultShading returns unlit texturing with the default material.
func DefaultShading() Shading {
	return Shading{
		Program:  ProgramTexturing,
		Material: model.DefaultMaterial(),
		LightDir: math.Vec3{X: -1, Y: -1, Z: -1}.Normalize(),
	}
}

// Scene owns the node graph and the animators that act on it.
type Scene struct {
	Name      string
	Shading   Shading
	Graph     *scene.Graph
	Animators []*animation.Animator
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{
		Name:    name,
		Shading: DefaultShading(),
		Graph:   scene.NewGraph(),
	}
}

// Spawn inserts obj as a new root.
func (s *Scene) Spawn(obj *scene.Object) (scene.Handle, error) {
	return s.Graph.Spawn(scene.Nil, obj)
}

// Animate appends an animator driving the given animations and returns it.
func (s *Scene) Animate(animations ...*animation.Animation) *animation.Animator {
	an := animation.NewAnimator(animations...)
	s.Animators = append(s.Animators, an)
	return an
}

// Start starts every animator.
func (s *Scene) Start() {
	for _, an := range s.Animators {
		an.Start()
	}
}

// Tick advances every animator by dt.
func (s *Scene) Tick(dt float32) {
	for _, an := range s.Animators {
		an.Tick(s.Graph, dt)
	}
}

// Render submits every root in insertion order.
func (s *Scene) Render(sub scene.Submitter) {
	s.Graph.Render(sub)
}

// Frame carries the per-frame shading inputs bound before a scene is drawn.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Ambient    math.Vec3
	ViewPos    math.Vec3
	Shading    Shading
}
