package scenes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creeperworld/internal/assets"
	"github.com/Faultbox/creeperworld/internal/engine/daycycle"
	"github.com/Faultbox/creeperworld/internal/engine/scene"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Floor layout: tiles from -FloorHalf to +FloorHalf on both axes.
const (
	FloorHalf    = 50
	FloorSpacing = 1
	FloorY       = -1.5
)

// Minecraft builds the default scene: a cobblestone floor, steve and a pig
// fleeing from a player-controlled creeper, and a sky with a moving sun.
func Minecraft(im *assets.Importer) (*Setup, error) {
	s := newSetup("minecraft")
	flat := math.Vec3{X: -math32.Pi / 2}

	tile, err := im.Load("models/cobblestone.yaml", true)
	if err != nil {
		return nil, err
	}
	for x := -FloorHalf; x <= FloorHalf; x++ {
		for z := -FloorHalf; z <= FloorHalf; z++ {
			t := scene.NewObject(tile.Name, tile.Parts...).
				Move(math.Vec3{X: float32(x * FloorSpacing), Y: FloorY, Z: float32(z * FloorSpacing)}).
				Rotate(flat)
			if _, err := s.Scene.Spawn(t); err != nil {
				return nil, err
			}
		}
	}

	creeper, err := im.Load("models/creeper.yaml", true)
	if err != nil {
		return nil, err
	}
	creeper.Grow(math.Splat(1.5))

	steve, err := im.Load("models/steve.yaml", true)
	if err != nil {
		return nil, err
	}
	steve.Grow(math.Splat(0.1)).
		Move(math.Vec3{Z: 6}).
		SetOrientation(math.Vec3{Y: math32.Pi})
	steveH, err := s.Scene.Spawn(steve)
	if err != nil {
		return nil, err
	}

	pig, err := im.Load("models/pig.yaml", true)
	if err != nil {
		return nil, err
	}
	pig.Grow(math.Splat(0.1)).
		Move(math.Vec3{Z: -6}).
		SetOrientation(math.Vec3{Y: math32.Pi})
	pigH, err := s.Scene.Spawn(pig)
	if err != nil {
		return nil, err
	}

	sky := scene.NewObject("sky")
	sun, err := im.Load("models/sun.yaml", true)
	if err != nil {
		return nil, err
	}
	sun.Move(math.Vec3{X: daycycle.SunStartX, Y: daycycle.SunHeight, Z: daycycle.SunDepth}).
		Grow(math.Splat(0.3))
	cloud, err := im.Load("models/cloud.yaml", true)
	if err != nil {
		return nil, err
	}
	cloud.Move(math.Vec3{X: -25, Y: 42, Z: -22}).
		Grow(math.Splat(1.5))
	sky.AddChild(sun)
	sky.AddChild(cloud)
	skyH, err := s.Scene.Spawn(sky)
	if err != nil {
		return nil, err
	}
	if s.Sun, err = s.Scene.Graph.Child(skyH, 0); err != nil {
		return nil, err
	}

	if s.Predator, err = s.Scene.Spawn(creeper); err != nil {
		return nil, err
	}

	s.Prey = []Prey{
		{Node: steveH, Dir: math.Vec3{X: -1}},
		{Node: pigH, Dir: math.Vec3{X: 1}},
	}
	return s, nil
}
