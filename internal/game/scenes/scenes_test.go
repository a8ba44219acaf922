package scenes

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/creeperworld/internal/assets"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/pkg/math"
)

func builtinImporter() *assets.Importer {
	m := assets.NewManager()
	m.AddFS("builtin", assets.Builtin())
	return assets.NewImporter(m)
}

func TestNames(t *testing.T) {
	want := []string{"bunny", "cube", "cubeSequential", "lifeOfPi", "marbleSquare", "minecraft"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("nether", builtinImporter()); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Build(nether) = %v, want ErrUnknownScene", err)
	}
}

func TestMinecraft(t *testing.T) {
	s, err := Build("minecraft", builtinImporter())
	if err != nil {
		t.Fatal(err)
	}
	g := s.Scene.Graph

	tiles := (2*FloorHalf + 1) * (2*FloorHalf + 1)
	// floor tiles, steve, pig, sky, creeper
	if got := len(g.Roots()); got != tiles+4 {
		t.Errorf("roots = %d, want %d", got, tiles+4)
	}

	predator, err := g.Node(s.Predator)
	if err != nil {
		t.Fatal(err)
	}
	if predator.Name != "creeper" || predator.Transform.Scale() != math.Splat(1.5) {
		t.Errorf("predator = %q scale %v", predator.Name, predator.Transform.Scale())
	}

	sun, err := g.Node(s.Sun)
	if err != nil {
		t.Fatal(err)
	}
	sky, err := g.Node(sun.Parent())
	if err != nil || sky.Name != "sky" {
		t.Errorf("sun parent = %v, %v", sky, err)
	}

	if len(s.Prey) != 2 {
		t.Fatalf("prey = %d, want 2", len(s.Prey))
	}
	steve, err := g.Node(s.Prey[0].Node)
	if err != nil {
		t.Fatal(err)
	}
	if got := steve.Transform.Position(); got != (math.Vec3{Z: 6}) {
		t.Errorf("steve at %v", got)
	}
	if s.Prey[0].Dir != (math.Vec3{X: -1}) || s.Prey[1].Dir != (math.Vec3{X: 1}) {
		t.Errorf("flee directions = %v, %v", s.Prey[0].Dir, s.Prey[1].Dir)
	}

	first, _ := g.Node(g.Roots()[0])
	if got := first.Transform.Position(); got != (math.Vec3{X: -FloorHalf, Y: FloorY, Z: -FloorHalf}) {
		t.Errorf("first tile at %v", got)
	}
}

func TestDemoScenes(t *testing.T) {
	tests := []struct {
		name      string
		animators int
		program   string
	}{
		{"bunny", 1, world.ProgramTexturing},
		{"cube", 1, world.ProgramTexturing},
		{"cubeSequential", 1, world.ProgramTexturing},
		{"lifeOfPi", 2, world.ProgramTexturing},
		{"marbleSquare", 0, world.ProgramLighting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.name, builtinImporter())
			if err != nil {
				t.Fatal(err)
			}
			if got := len(s.Scene.Animators); got != tt.animators {
				t.Errorf("animators = %d, want %d", got, tt.animators)
			}
			if s.Scene.Shading.Program != tt.program {
				t.Errorf("program = %q, want %q", s.Scene.Shading.Program, tt.program)
			}
			if !s.Predator.IsNil() || !s.Sun.IsNil() || len(s.Prey) != 0 {
				t.Errorf("demo scene should not track agents: %+v", s)
			}
		})
	}
}

func TestLifeOfPiTigerRidesBoat(t *testing.T) {
	s, err := Build("lifeOfPi", builtinImporter())
	if err != nil {
		t.Fatal(err)
	}
	g := s.Scene.Graph
	boatH := g.Roots()[0]
	tigerH, err := g.Child(boatH, 1)
	if err != nil {
		t.Fatal(err)
	}
	tiger, _ := g.Node(tigerH)
	if tiger.Name != "tiger" {
		t.Errorf("child 1 = %q, want tiger", tiger.Name)
	}

	// Rotate the boat half a turn; the tiger's world position follows.
	s.Scene.Start()
	s.Scene.Tick(5)
	m, err := g.WorldMatrix(tigerH)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Translation(); got.Z > 0 {
		t.Errorf("tiger world z = %v, want behind the boat after half a turn", got.Z)
	}
}

func TestCubeSpinVariants(t *testing.T) {
	tests := []struct {
		name string
		want math.Vec3
	}{
		{"cube", math.Vec3{X: math32.Pi, Y: math32.Pi}},
		{"cubeSequential", math.Vec3{Y: math32.Pi}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.name, builtinImporter())
			if err != nil {
				t.Fatal(err)
			}
			s.Scene.Start()
			s.Scene.Tick(5)

			n, err := s.Scene.Graph.Node(s.Scene.Graph.Roots()[0])
			if err != nil {
				t.Fatal(err)
			}
			if got := n.Transform.Orientation(); !got.ApproxEqual(tt.want, 1e-3) {
				t.Errorf("orientation after 5s = %v, want %v", got, tt.want)
			}
		})
	}
}
