package scenes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creeperworld/internal/assets"
	"github.com/Faultbox/creeperworld/internal/engine/animation"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/internal/engine/world"
	"github.com/Faultbox/creeperworld/pkg/math"
)

const fullTurn = 2 * math32.Pi

// Bunny spins a bunny once around Y over ten seconds.
func Bunny(im *assets.Importer) (*Setup, error) {
	s := newSetup("bunny")

	bunny, err := im.Load("models/bunny.yaml", true)
	if err != nil {
		return nil, err
	}
	bunny.Grow(math.Splat(9)).Move(math.Vec3{X: 0.2, Y: -1})
	h, err := s.Scene.Spawn(bunny)
	if err != nil {
		return nil, err
	}

	s.Scene.Animate(animation.NewRotation(h, math.Vec3{Y: fullTurn}, 10))
	return s, nil
}

// MarbleSquare lays a single lit marble square as the floor.
func MarbleSquare(im *assets.Importer) (*Setup, error) {
	s := newSetup("marbleSquare")
	s.Scene.Shading.Program = world.ProgramLighting

	floor, err := im.Load("models/marble.yaml", false)
	if err != nil {
		return nil, err
	}
	floor.Grow(math.Splat(5)).
		Move(math.Vec3{Y: -1.5}).
		Rotate(math.Vec3{X: -math32.Pi / 2})
	if _, err := s.Scene.Spawn(floor); err != nil {
		return nil, err
	}
	return s, nil
}

// Cube spins a cube around Y and X at the same time.
func Cube(im *assets.Importer) (*Setup, error) {
	s, h, err := cubeSetup("cube", im)
	if err != nil {
		return nil, err
	}
	s.Scene.Animate(
		animation.NewRotation(h, math.Vec3{Y: fullTurn}, 10),
		animation.NewRotation(h, math.Vec3{X: fullTurn}, 10),
	)
	return s, nil
}

// CubeSequential spins a cube around Y, then around X.
func CubeSequential(im *assets.Importer) (*Setup, error) {
	s, h, err := cubeSetup("cubeSequential", im)
	if err != nil {
		return nil, err
	}
	s.Scene.Animate(animation.NewSequence(
		animation.NewRotation(h, math.Vec3{Y: fullTurn}, 10),
		animation.NewRotation(h, math.Vec3{X: fullTurn}, 10),
	))
	return s, nil
}

func cubeSetup(name string, im *assets.Importer) (*Setup, scene.Handle, error) {
	s := newSetup(name)
	cube, err := im.Load("models/cube.yaml", true)
	if err != nil {
		return nil, scene.Nil, err
	}
	h, err := s.Scene.Spawn(cube)
	if err != nil {
		return nil, scene.Nil, err
	}
	return s, h, nil
}

// LifeOfPi puts a tiger in a boat. The tiger is a child of the boat, so it
// rides along with the boat's spin while rolling on its own.
func LifeOfPi(im *assets.Importer) (*Setup, error) {
	s := newSetup("lifeOfPi")

	boat, err := im.Load("models/boat.yaml", true)
	if err != nil {
		return nil, err
	}
	boat.Move(math.Vec3{Y: -0.7}).Grow(math.Splat(0.01))

	tiger, err := im.Load("models/tiger.yaml", true)
	if err != nil {
		return nil, err
	}
	tiger.Move(math.Vec3{Y: -5, Z: 10})
	tigerIndex := boat.AddChild(tiger)

	boatH, err := s.Scene.Spawn(boat)
	if err != nil {
		return nil, err
	}
	tigerH, err := s.Scene.Graph.Child(boatH, tigerIndex)
	if err != nil {
		return nil, err
	}

	s.Scene.Animate(animation.NewRotation(boatH, math.Vec3{Y: fullTurn}, 10))
	s.Scene.Animate(animation.NewRotation(tigerH, math.Vec3{Z: fullTurn}, 10))
	return s, nil
}
