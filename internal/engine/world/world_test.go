package world

import (
	"testing"

	"github.com/Faultbox/creeperworld/internal/engine/animation"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

func TestSceneTicksAnimatorsAfterStart(t *testing.T) {
	s := New("cube")
	h, err := s.Spawn(scene.NewObject("cube"))
	if err != nil {
		t.Fatal(err)
	}
	s.Animate(animation.NewTranslation(h, math.Vec3{Y: 2}, 1))

	s.Tick(1)
	n, _ := s.Graph.Node(h)
	if got := n.Transform.Position(); got != (math.Vec3{}) {
		t.Fatalf("animator ran before Start: %v", got)
	}

	s.Start()
	s.Tick(0.5)
	s.Tick(0.5)
	if got := n.Transform.Position(); !got.ApproxEqual(math.Vec3{Y: 2}, 1e-5) {
		t.Errorf("position = %v, want y=2", got)
	}
}

func TestSceneSurvivesRemovedTarget(t *testing.T) {
	s := New("pig")
	h, _ := s.Spawn(scene.NewObject("pig"))
	an := s.Animate(animation.NewRotation(h, math.Vec3{Y: 1}, 10))
	s.Start()
	s.Tick(1)

	if err := s.Graph.Remove(h); err != nil {
		t.Fatal(err)
	}
	s.Tick(1)
	if !an.Finished() {
		t.Errorf("animation on removed node should finish")
	}
}
